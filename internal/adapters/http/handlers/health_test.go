package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/ports"
)

type staticChecker struct {
	name string
	err  error
}

func (c *staticChecker) Name() string { return c.name }

func (c *staticChecker) Check(ctx context.Context) error { return c.err }

func newHealthRouter(t *testing.T, checkers ...ports.HealthChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := ports.NewHealthRegistry()
	for _, checker := range checkers {
		require.NoError(t, registry.Register(checker))
	}

	engine := gin.New()
	handler := NewHealthHandler(registry, NewBuildInfo("1.2.3", "abc1234", "2026-08-30T00:00:00Z"))
	handler.RegisterHealthRoutes(engine)

	return engine
}

func TestLiveness_AlwaysOK(t *testing.T) {
	engine := newHealthRouter(t, &staticChecker{name: "sqlite", err: errors.New("down")})

	rec := performRequest(t, engine, http.MethodGet, "/-/live")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness_Healthy(t *testing.T) {
	engine := newHealthRouter(t, &staticChecker{name: "sqlite"})

	rec := performRequest(t, engine, http.MethodGet, "/-/ready")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string                        `json:"status"`
		Checks map[string]*ports.CheckResult `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(ports.HealthStatusHealthy), resp.Status)
	require.Contains(t, resp.Checks, "sqlite")
}

func TestReadiness_UnhealthyDependency(t *testing.T) {
	engine := newHealthRouter(t,
		&staticChecker{name: "sqlite", err: errors.New("database is locked")},
	)

	rec := performRequest(t, engine, http.MethodGet, "/-/ready")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database is locked")
}

func TestBuild_ReturnsBuildInfo(t *testing.T) {
	engine := newHealthRouter(t)

	rec := performRequest(t, engine, http.MethodGet, "/-/build")

	require.Equal(t, http.StatusOK, rec.Code)

	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestMetrics_Exposition(t *testing.T) {
	engine := newHealthRouter(t)

	rec := performRequest(t, engine, http.MethodGet, "/-/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
