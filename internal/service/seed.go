package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-pokedex/internal/fetch"
	"github.com/pribylovaa/go-pokedex/internal/models"
	"github.com/pribylovaa/go-pokedex/internal/pkg/log"
	"github.com/pribylovaa/go-pokedex/internal/storage"
)

const (
	defaultSeedPageSize = 200
	defaultSeedMaxPages = 50
)

// ExecuteSeed наполняет каталог из внешнего постраничного списка.
//
// Алгоритм:
//  1. первая страница: seed.source_url?limit=<page_size>&offset=0, далее по next,
//     пока он не пуст; не больше seed.max_pages страниц;
//  2. из каждой записи {name, url} строится черновик: no - предпоследний
//     сегмент url; записи с нечисловым/неположительным номером отбрасываются;
//  3. каталог целиком заменяется новым поколением (Storage.ReplaceAll).
//
// Поведение/ошибки:
//   - ErrFetchFailed - не удалось получить страницу;
//   - ErrListingTruncated - лимит страниц исчерпан, а next всё ещё задан;
//   - ErrEmptyListing - нет ни одного валидного черновика (каталог не трогаем);
//   - ErrConflict (*ConflictError) - дубликат внутри списка, прежний каталог сохранён;
//   - ErrInternal - прочие ошибки.
func (s *Service) ExecuteSeed(ctx context.Context) (result *models.SeedResult, err error) {
	const op = "service/seed/ExecuteSeed"

	start := time.Now()
	res := &models.SeedResult{Generation: uuid.NewString()}
	// generation попадает во все логи прогона, включая staging-шаги ReplaceAll.
	ctx = log.With(ctx, "generation", res.Generation)
	lg := log.From(ctx).With("op", op)

	defer func() {
		res.Duration = time.Since(start)
		seedRuns.WithLabelValues(seedOutcome(err)).Inc()
		seedDuration.Observe(res.Duration.Seconds())
		if err == nil {
			seedRecords.Set(float64(res.Inserted))
		}
	}()

	next, err := firstPageURL(s.cfg.Seed.SourceURL, s.seedPageSize())
	if err != nil {
		lg.Error("invalid seed source url", "url", s.cfg.Seed.SourceURL, "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	maxPages := s.cfg.Seed.MaxPages
	if maxPages <= 0 {
		maxPages = defaultSeedMaxPages
	}

	var drafts []models.Pokemon

	for next != "" {
		if res.Pages >= maxPages {
			lg.Error("seed_listing_truncated", "max_pages", maxPages, "next", next)
			return nil, fmt.Errorf("%s: %w: max_pages=%d", op, ErrListingTruncated, maxPages)
		}

		page, err := fetch.Get[models.ListingPage](ctx, s.fetcher, next)
		if err != nil {
			lg.Error("seed_page_fetch_failed", "url", next, "err", err, "cause", errors.Unwrap(err))
			return nil, fmt.Errorf("%s: %w", op, ErrFetchFailed)
		}

		res.Pages++
		res.Fetched += len(page.Results)

		for _, e := range page.Results {
			no, err := parseNo(e.URL)
			name := models.NormalizeName(e.Name)

			if err != nil || name == "" {
				res.Skipped++
				lg.Warn("seed_entry_rejected", "name", e.Name, "url", e.URL, "err", err)
				continue
			}

			drafts = append(drafts, models.Pokemon{No: no, Name: name})
		}

		lg.Debug("seed_page_fetched", "page", res.Pages, "entries", len(page.Results))

		next = ""
		if page.Next != nil {
			next = strings.TrimSpace(*page.Next)
		}
	}

	if len(drafts) == 0 {
		lg.Warn("seed_empty_listing", "fetched", res.Fetched, "skipped", res.Skipped)
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyListing)
	}

	inserted, err := s.storage.ReplaceAll(ctx, drafts)
	if err != nil {
		var dup *storage.DuplicateKeyError
		switch {
		case errors.As(err, &dup):
			lg.Warn("seed_conflict", "no", dup.No, "name", dup.Name)
			return nil, fmt.Errorf("%s: %w", op, &ConflictError{No: dup.No, Name: dup.Name})
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("seed_conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on ReplaceAll", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	res.Inserted = inserted
	lg.Info("seed_completed",
		"pages", res.Pages,
		"fetched", res.Fetched,
		"skipped", res.Skipped,
		"inserted", res.Inserted,
	)

	return res, nil
}

func (s *Service) seedPageSize() int {
	if s.cfg.Seed.PageSize > 0 {
		return s.cfg.Seed.PageSize
	}

	return defaultSeedPageSize
}

// firstPageURL добавляет к источнику limit/offset, сохраняя прочие параметры.
func firstPageURL(source string, pageSize int) (string, error) {
	u, err := url.Parse(strings.TrimSpace(source))
	if err != nil {
		return "", err
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("not an absolute url: %q", source)
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("offset", "0")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// parseNo извлекает номер из url вида .../pokemon/<no>/ (предпоследний сегмент).
func parseNo(rawURL string) (int, error) {
	segments := strings.Split(rawURL, "/")
	if len(segments) < 2 {
		return 0, fmt.Errorf("no path segment in %q", rawURL)
	}

	seg := segments[len(segments)-2]

	no, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("non-numeric segment %q", seg)
	}

	if no <= 0 {
		return 0, fmt.Errorf("non-positive number %d", no)
	}

	return no, nil
}
