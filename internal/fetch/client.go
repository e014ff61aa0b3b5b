// fetch реализует HTTP-адаптер внешнего API: один GET, JSON в форму, заданную вызывающим.
//
// Контракт ошибок: любая ошибка транспорта, статуса или декодирования
// возвращается как *Error, для которого errors.Is(err, ErrFetchFailed) == true.
// Текст ошибки причину не раскрывает; она доступна через Unwrap/Cause для логов.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrFetchFailed - не удалось получить или декодировать ответ внешнего API.
var ErrFetchFailed = errors.New("fetch failed")

// Error - ошибка одного GET-запроса с сохранённой причиной.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: GET %s", ErrFetchFailed, e.URL)
}

// Is сводит все ошибки адаптера к одному виду ErrFetchFailed.
func (e *Error) Is(target error) bool {
	return target == ErrFetchFailed
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause - исходная причина (для логов, не для клиента).
func (e *Error) Cause() error {
	return e.Err
}

// Getter - минимальный контракт для Get.
type Getter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Options - параметры клиента.
type Options struct {
	Timeout   time.Duration
	RPS       float64 // <= 0 - без ограничения.
	UserAgent string
}

// Client - HTTP-клиент внешнего API. Ретраев и кэша нет.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// New создаёт клиента. httpClient можно передать извне (таймауты, прокси, тесты);
// при nil создаётся клиент с opts.Timeout.
func New(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		userAgent:  opts.UserAgent,
	}
}

// GetJSON выполняет GET url и декодирует JSON-тело в out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{URL: url, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{URL: url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{URL: url, Err: fmt.Errorf("decode: %w", err)}
	}

	return nil
}

// Get - типизированная обёртка: возвращает тело в форме T.
func Get[T any](ctx context.Context, g Getter, url string) (T, error) {
	var out T
	if err := g.GetJSON(ctx, url, &out); err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}
