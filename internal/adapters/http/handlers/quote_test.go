package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
)

type fakeQuoteService struct {
	reloadFn       func(ctx context.Context) (app.ReloadResult, error)
	listFn         func(ctx context.Context) ([]domain.Quote, error)
	listByAuthorFn func(ctx context.Context, author string) ([]domain.Quote, error)
	statsFn        func(ctx context.Context) (domain.AuthorStats, error)
}

func (f *fakeQuoteService) Reload(ctx context.Context) (app.ReloadResult, error) {
	return f.reloadFn(ctx)
}

func (f *fakeQuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	return f.listFn(ctx)
}

func (f *fakeQuoteService) ListQuotesByAuthor(ctx context.Context, author string) ([]domain.Quote, error) {
	return f.listByAuthorFn(ctx, author)
}

func (f *fakeQuoteService) QuoteStats(ctx context.Context) (domain.AuthorStats, error) {
	return f.statsFn(ctx)
}

func newTestRouter(service QuoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	NewQuoteHandler(service).RegisterQuoteRoutes(engine.Group(""))

	return engine
}

func performRequest(t *testing.T, engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	return rec
}

func TestLoad_Success(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		reloadFn: func(ctx context.Context) (app.ReloadResult, error) {
			return app.ReloadResult{Loaded: 21, Skipped: 2}, nil
		},
	})

	rec := performRequest(t, engine, http.MethodPost, "/load")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.LoadStatusSuccess, resp.Status)
	assert.Equal(t, 21, resp.Loaded)
	assert.Equal(t, 2, resp.Skipped)
	assert.Contains(t, resp.Message, "21 quotes")
}

func TestLoad_StorageFailure(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		reloadFn: func(ctx context.Context) (app.ReloadResult, error) {
			return app.ReloadResult{}, domain.NewUnavailableError("sqlite", "database is locked")
		},
	})

	rec := performRequest(t, engine, http.MethodPost, "/load")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.LoadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.LoadStatusError, resp.Status)
	assert.Contains(t, resp.Message, "database is locked")
}

func TestLoad_EmptySource(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		reloadFn: func(ctx context.Context) (app.ReloadResult, error) {
			return app.ReloadResult{}, domain.NewEmptyLoadError("quote source", 4)
		},
	})

	rec := performRequest(t, engine, http.MethodPost, "/load")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.LoadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.LoadStatusError, resp.Status)
	assert.NotEmpty(t, resp.Message)
}

func TestListQuotes_ReturnsArray(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		listFn: func(ctx context.Context) ([]domain.Quote, error) {
			return []domain.Quote{
				{ID: 1, Text: "Serenity now!", Author: "Frank", Season: 9, Episode: 3},
			}, nil
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes")

	require.Equal(t, http.StatusOK, rec.Code)

	var quotes []dto.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, "Serenity now!", quotes[0].Quote)
	assert.Equal(t, "Frank", quotes[0].Author)
}

func TestListQuotes_EmptyIsArrayNotNull(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		listFn: func(ctx context.Context) ([]domain.Quote, error) {
			return nil, nil
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListQuotes_StorageError(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		listFn: func(ctx context.Context) ([]domain.Quote, error) {
			return nil, domain.NewUnavailableError("sqlite", "no such table: quotes")
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeStorage, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "no such table")
}

func TestListQuotesByAuthor_PassesPathParam(t *testing.T) {
	var gotAuthor string

	engine := newTestRouter(&fakeQuoteService{
		listByAuthorFn: func(ctx context.Context, author string) ([]domain.Quote, error) {
			gotAuthor = author
			return []domain.Quote{}, nil
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes/Kramer")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kramer", gotAuthor)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListQuotesByAuthor_ValidationError(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		listByAuthorFn: func(ctx context.Context, author string) ([]domain.Quote, error) {
			return nil, domain.NewValidationError("author", "must not be blank")
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes/%20")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
	assert.Equal(t, "must not be blank", resp.Error.Details["author"])
}

func TestStats_Success(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		statsFn: func(ctx context.Context) (domain.AuthorStats, error) {
			return domain.AuthorStats{
				Total:    5,
				ByAuthor: map[string]int{"Jerry": 3, "Elaine": 2},
			}, nil
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes/stats")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, map[string]int{"Jerry": 3, "Elaine": 2}, resp.Authors)
}

func TestStats_ShadowsAuthorRoute(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		statsFn: func(ctx context.Context) (domain.AuthorStats, error) {
			return domain.AuthorStats{Total: 0, ByAuthor: map[string]int{}}, nil
		},
		listByAuthorFn: func(ctx context.Context, author string) ([]domain.Quote, error) {
			t.Fatal("author route should not handle /quotes/stats")
			return nil, nil
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes/stats")

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStats_Error(t *testing.T) {
	engine := newTestRouter(&fakeQuoteService{
		statsFn: func(ctx context.Context) (domain.AuthorStats, error) {
			return domain.AuthorStats{}, domain.NewUnavailableError("sqlite", "disk I/O error")
		},
	})

	rec := performRequest(t, engine, http.MethodGet, "/quotes/stats")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeStorage, resp.Error.Code)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "validation",
			err:            domain.NewValidationError("author", "must not be blank"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrorCodeValidation,
		},
		{
			name:           "empty load",
			err:            domain.NewEmptyLoadError("quote source", 0),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrorCodeEmptySource,
		},
		{
			name:           "unavailable",
			err:            domain.NewUnavailableError("sqlite", "locked"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrorCodeStorage,
		},
		{
			name:           "unknown",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestMapDomainError_NilError(t *testing.T) {
	status, resp := MapDomainError(nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, resp)
}

func TestMapDomainError_UnknownHidesMessage(t *testing.T) {
	_, resp := MapDomainError(assert.AnError)

	assert.Equal(t, "an internal error occurred", resp.Error.Message)
	assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
}
