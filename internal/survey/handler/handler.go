package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"surveymatch/internal/survey/service"
	dErrors "surveymatch/pkg/domain-errors"
	"surveymatch/pkg/platform/httputil"
	"surveymatch/pkg/requestcontext"
)

// Service defines the interface for match operations.
type Service interface {
	Match(ctx context.Context, req service.MatchRequest) (*service.MatchResult, error)
	Clusters(ctx context.Context) []service.ClusterOverview
	Summary(ctx context.Context, ref string) (*service.ClusterSummary, error)
}

// Handler wires match endpoints to the match service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a match handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts match endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/match", h.HandleMatch)
	r.Get("/v1/clusters", h.HandleClusters)
	r.Get("/v1/clusters/{clusterID}/summary", h.HandleSummary)
}

// HandleMatch handles POST /v1/match requests.
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[MatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Match(ctx, service.MatchRequest{
		Person:      req.ParsedPerson(),
		CompareWith: req.CompareWith,
	})
	if err != nil {
		h.logFailure(ctx, "match failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person matched",
		"request_id", requestID,
		"cluster_id", result.ClusterID,
		"degraded", result.Degraded,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromMatchResult(result))
}

// HandleClusters handles GET /v1/clusters requests.
func (h *Handler) HandleClusters(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromClusters(h.service.Clusters(r.Context())))
}

// HandleSummary handles GET /v1/clusters/{clusterID}/summary requests. The
// path segment may be an id or a display name.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	ref := chi.URLParam(r, "clusterID")
	if ref == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "cluster id is required"))
		return
	}

	summary, err := h.service.Summary(ctx, ref)
	if err != nil {
		h.logFailure(ctx, "cluster summary failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClusterSummary(summary))
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	level := slog.LevelError
	if status := httputil.StatusFor(dErrors.CodeOf(err)); status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"error", err,
	)
}
