package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

func init() {
	// Release mode keeps gin's debug output out of the benchmark numbers.
	gin.SetMode(gin.ReleaseMode)
}

type staticService struct {
	quotes []domain.Quote
}

func (s *staticService) Reload(ctx context.Context) (app.ReloadResult, error) {
	return app.ReloadResult{Loaded: len(s.quotes)}, nil
}

func (s *staticService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	return s.quotes, nil
}

func (s *staticService) ListQuotesByAuthor(ctx context.Context, author string) ([]domain.Quote, error) {
	return s.quotes, nil
}

func (s *staticService) QuoteStats(ctx context.Context) (domain.AuthorStats, error) {
	return domain.AuthorStats{Total: len(s.quotes), ByAuthor: map[string]int{"Jerry": len(s.quotes)}}, nil
}

func benchmarkQuotes(n int) []domain.Quote {
	quotes := make([]domain.Quote, 0, n)
	for i := 0; i < n; i++ {
		quotes = append(quotes, domain.Quote{
			ID:      int64(i + 1),
			Text:    "These pretzels are making me thirsty.",
			Author:  "Kramer",
			Season:  3,
			Episode: 11,
		})
	}

	return quotes
}

func newBenchEngine(service handlers.QuoteService) *gin.Engine {
	engine := gin.New()
	handlers.NewQuoteHandler(service).RegisterQuoteRoutes(engine.Group(""))

	registry := ports.NewHealthRegistry()
	handlers.NewHealthHandler(registry, handlers.NewBuildInfo("bench", "", "")).RegisterHealthRoutes(engine)

	return engine
}

// BenchmarkLiveness measures the probe path, which must stay cheap.
func BenchmarkLiveness(b *testing.B) {
	engine := newBenchEngine(&staticService{})
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkListQuotes measures serialization cost for a typical result set.
func BenchmarkListQuotes(b *testing.B) {
	engine := newBenchEngine(&staticService{quotes: benchmarkQuotes(100)})
	req := httptest.NewRequest(http.MethodGet, "/quotes", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkStats measures the aggregate endpoint.
func BenchmarkStats(b *testing.B) {
	engine := newBenchEngine(&staticService{quotes: benchmarkQuotes(100)})
	req := httptest.NewRequest(http.MethodGet, "/quotes/stats", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		engine.ServeHTTP(httptest.NewRecorder(), req)
	}
}
