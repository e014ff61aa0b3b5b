package http

// Тесты REST-слоя: роутер + хендлеры + настоящий сервис поверх MockStorage.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-pokedex/internal/config"
	"github.com/pribylovaa/go-pokedex/internal/fetch"
	"github.com/pribylovaa/go-pokedex/internal/models"
	"github.com/pribylovaa/go-pokedex/internal/service"
	"github.com/pribylovaa/go-pokedex/internal/storage"
	"github.com/pribylovaa/go-pokedex/internal/transport/http/handlers"
	"github.com/pribylovaa/go-pokedex/mocks"
	"github.com/stretchr/testify/require"
)

const testID = "65e0a0c9fd2f000000000007"

// stubGetter отдаёт заранее заготовленные JSON-тела по URL.
type stubGetter struct {
	bodies map[string]string
	err    error
}

func (g stubGetter) GetJSON(_ context.Context, url string, out any) error {
	if g.err != nil {
		return g.err
	}

	body, ok := g.bodies[url]
	if !ok {
		return &fetch.Error{URL: url, Err: errors.New("unexpected url")}
	}

	return json.Unmarshal([]byte(body), out)
}

type env struct {
	srv *httptest.Server
	ms  *mocks.MockStorage
}

func newEnv(t *testing.T, getter fetch.Getter) env {
	t.Helper()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	cfg := config.Config{
		Limits: config.LimitsConfig{Default: 20, Max: 100},
		Seed: config.SeedConfig{
			SourceURL: "https://pokeapi.test/api/v2/pokemon",
			PageSize:  2,
			MaxPages:  3,
		},
	}

	router := NewRouter(service.New(ms, getter, cfg), Options{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		ServiceTimeout: time.Second,
		SeedTimeout:    time.Second,
		BasePath:       "/api/v2",
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return env{srv: srv, ms: ms}
}

func (e env) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, e.srv.URL+"/api/v2"+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

type errBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decodeErr(t *testing.T, raw []byte) errBody {
	t.Helper()
	var b errBody
	require.NoError(t, json.Unmarshal(raw, &b))
	return b
}

func mustPokemon(no int, name string) *models.Pokemon {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Pokemon{ID: testID, No: no, Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestCreatePokemon_201(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().
		CreatePokemon(gomock.Any(), models.Pokemon{No: 25, Name: "pikachu"}).
		Return(mustPokemon(25, "pikachu"), nil)

	resp, raw := e.do(t, http.MethodPost, "/pokemon", `{"no":25,"name":" Pikachu "}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var got handlers.PokemonResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, testID, got.ID)
	require.Equal(t, 25, got.No)
	require.Equal(t, "pikachu", got.Name)
}

func TestCreatePokemon_BadBody_400(t *testing.T) {
	e := newEnv(t, nil)

	bodies := []string{
		`{`,
		`{"no":1,"name":"x","extra":true}`,
		`{"no":"1","name":"x"}`,
		`{"no":1,"name":"a"} {"junk":true}`,
		`{"no":1,"name":"a"}x`,
	}

	for _, body := range bodies {
		resp, raw := e.do(t, http.MethodPost, "/pokemon", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "body=%s", body)
		require.Equal(t, "invalid_argument", decodeErr(t, raw).Error.Code)
	}
}

func TestCreatePokemon_Conflict_409WithKey(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().
		CreatePokemon(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("wrap: %w", &storage.DuplicateKeyError{No: 25, Name: "pikachu"}))

	resp, raw := e.do(t, http.MethodPost, "/pokemon", `{"no":25,"name":"pikachu"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	b := decodeErr(t, raw)
	require.Equal(t, "already_exists", b.Error.Code)
	require.Contains(t, b.Error.Message, "no=25")
	require.Contains(t, b.Error.Message, `name="pikachu"`)
	require.Equal(t, resp.Header.Get("X-Request-Id"), b.Error.RequestID)
}

func TestListPokemon(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().
		ListPokemon(gomock.Any(), models.ListParams{Limit: 20}).
		Return([]models.Pokemon{*mustPokemon(1, "bulbasaur")}, nil)

	resp, raw := e.do(t, http.MethodGet, "/pokemon", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got handlers.ListPokemonResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got.Items, 1)
	require.Equal(t, "bulbasaur", got.Items[0].Name)

	e.ms.EXPECT().
		ListPokemon(gomock.Any(), models.ListParams{Limit: 2, Offset: 1}).
		Return(nil, nil)

	resp, raw = e.do(t, http.MethodGet, "/pokemon?limit=2&offset=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestListPokemon_BadQuery_400(t *testing.T) {
	e := newEnv(t, nil)

	for _, q := range []string{"?limit=abc", "?limit=0", "?limit=-5", "?offset=-1", "?offset=x"} {
		resp, _ := e.do(t, http.MethodGet, "/pokemon"+q, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "query=%s", q)
	}
}

func TestGetPokemon_ResolvesTerm(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().PokemonByNo(gomock.Any(), 25).Return(mustPokemon(25, "pikachu"), nil)

	resp, raw := e.do(t, http.MethodGet, "/pokemon/25", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got handlers.PokemonResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "pikachu", got.Name)
}

func TestGetPokemon_NotFound_404(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().PokemonByName(gomock.Any(), "missingno").Return(nil, storage.ErrNotFound)

	resp, raw := e.do(t, http.MethodGet, "/pokemon/MissingNo", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "not_found", decodeErr(t, raw).Error.Code)
}

func TestGetPokemon_StorageDown_500(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().PokemonByName(gomock.Any(), "pikachu").Return(nil, errors.New("server selection timeout"))

	resp, raw := e.do(t, http.MethodGet, "/pokemon/pikachu", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	b := decodeErr(t, raw)
	require.Equal(t, "internal", b.Error.Code)
	require.NotContains(t, b.Error.Message, "selection")
}

func TestUpdatePokemon_ProjectsPatch(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().PokemonByNo(gomock.Any(), 7).Return(mustPokemon(7, "squirtle"), nil)
	e.ms.EXPECT().UpdatePokemon(gomock.Any(), testID, gomock.Any()).Return(nil)

	resp, raw := e.do(t, http.MethodPatch, "/pokemon/7", `{"name":"Squirtle"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got handlers.PokemonResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, 7, got.No)
	require.Equal(t, "squirtle", got.Name)
}

func TestUpdatePokemon_EmptyPatch_400(t *testing.T) {
	e := newEnv(t, nil)

	resp, _ := e.do(t, http.MethodPatch, "/pokemon/7", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeletePokemon(t *testing.T) {
	e := newEnv(t, nil)

	e.ms.EXPECT().DeletePokemon(gomock.Any(), testID).Return(mustPokemon(4, "charmander"), nil)

	resp, raw := e.do(t, http.MethodDelete, "/pokemon/"+testID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got handlers.PokemonResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, "charmander", got.Name)

	// удаление не проходит через Resolve: номер в пути - это просто несуществующий id
	e.ms.EXPECT().DeletePokemon(gomock.Any(), "4").Return(nil, storage.ErrNotFound)

	resp, _ = e.do(t, http.MethodDelete, "/pokemon/4", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExecuteSeed_OK(t *testing.T) {
	getter := stubGetter{bodies: map[string]string{
		"https://pokeapi.test/api/v2/pokemon?limit=2&offset=0": `{
			"count": 2, "next": null, "previous": null,
			"results": [
				{"name": "Bulbasaur", "url": "https://pokeapi.test/api/v2/pokemon/1/"},
				{"name": "Ivysaur", "url": "https://pokeapi.test/api/v2/pokemon/2/"}
			]
		}`,
	}}
	e := newEnv(t, getter)

	e.ms.EXPECT().
		ReplaceAll(gomock.Any(), []models.Pokemon{{No: 1, Name: "bulbasaur"}, {No: 2, Name: "ivysaur"}}).
		Return(2, nil)

	resp, raw := e.do(t, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got handlers.SeedResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, 2, got.Inserted)
	require.Equal(t, 1, got.Pages)
	require.NotEmpty(t, got.Generation)
}

func TestExecuteSeed_FetchFailed_502(t *testing.T) {
	e := newEnv(t, stubGetter{err: &fetch.Error{URL: "x", Err: errors.New("dial tcp: refused")}})

	resp, raw := e.do(t, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	b := decodeErr(t, raw)
	require.Equal(t, "fetch_failed", b.Error.Code)
	require.NotContains(t, b.Error.Message, "refused")
}

func TestUnknownRoute_404(t *testing.T) {
	e := newEnv(t, nil)

	resp, _ := e.do(t, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
