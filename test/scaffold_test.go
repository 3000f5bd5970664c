package test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"surveymatch/internal/survey/metrics"
	httptransport "surveymatch/internal/transport/http"
	"surveymatch/pkg/platform/middleware/requestid"
	"surveymatch/pkg/testutil"
)

type pingModule struct{}

func (pingModule) Register(r chi.Router) {
	r.Get("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRouterScaffold(t *testing.T) {
	testutil.Given(t, "the HTTP router with a healthy store and a failing cache", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		m.SetPopulationSize(6)

		router := httptransport.NewRouter(httptransport.Deps{
			Gatherer: reg,
			Health: map[string]httptransport.HealthCheck{
				"reference": func(context.Context) error { return nil },
				"redis":     func(context.Context) error { return errors.New("connection refused") },
			},
			Modules: []httptransport.Registrar{pingModule{}},
		})

		testutil.When(t, "calling a module route", func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

			testutil.Then(t, "it should be served with a request id", func(t *testing.T) {
				if rec.Code != http.StatusNoContent {
					t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
				}
				if rec.Header().Get(requestid.Header) == "" {
					t.Fatal("expected a request id header")
				}
			})
		})

		testutil.When(t, "calling GET /healthz", func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			testutil.Then(t, "it should report the failing dependency", func(t *testing.T) {
				if rec.Code != http.StatusServiceUnavailable {
					t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
				}
				if !strings.Contains(rec.Body.String(), "connection refused") {
					t.Fatalf("expected redis failure in body, got %s", rec.Body.String())
				}
			})
		})

		testutil.When(t, "calling GET /metrics", func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			testutil.Then(t, "it should expose the population gauge", func(t *testing.T) {
				if !strings.Contains(rec.Body.String(), "surveymatch_population_size 6") {
					t.Fatalf("expected population gauge, got %s", rec.Body.String())
				}
			})
		})

		testutil.When(t, "calling an unknown route", func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/authorize", nil))

			testutil.Then(t, "it should respond with not found", func(t *testing.T) {
				if rec.Code != http.StatusNotFound {
					t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
				}
			})
		})
	})
}
