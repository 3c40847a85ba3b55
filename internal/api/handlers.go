package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tvoe/grabber/internal/config"
	"github.com/tvoe/grabber/internal/domain"
	"github.com/tvoe/grabber/internal/format"
	"github.com/tvoe/grabber/internal/metrics"
	"github.com/tvoe/grabber/internal/storage/local"
	"github.com/tvoe/grabber/internal/validator"
	"github.com/tvoe/grabber/internal/worker"
)

const maxDescriptionLen = 200

// Extractor is the external engine that fetches metadata and performs
// downloads. It either succeeds or fails with a descriptive error; failures
// are reported to the client verbatim.
type Extractor interface {
	Metadata(ctx context.Context, url string) (*domain.VideoMetadata, error)
	Download(ctx context.Context, url, formatExpr, destDir string) (string, error)
}

// Handler holds API dependencies
type Handler struct {
	config    *config.Config
	extractor Extractor
	store     *local.Store
	pool      *worker.Pool
	resolver  *format.Resolver
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewHandler creates a new handler
func NewHandler(
	cfg *config.Config,
	extractor Extractor,
	store *local.Store,
	pool *worker.Pool,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		config:    cfg,
		extractor: extractor,
		store:     store,
		pool:      pool,
		resolver:  format.NewResolver(cfg.YTDLP.VideoContainer, cfg.YTDLP.AudioContainer),
		logger:    logger,
		metrics:   m,
	}
}

// PreviewRequest represents the request to preview a video
type PreviewRequest struct {
	URL string `json:"url"`
}

// PreviewResponse represents video metadata and its selectable qualities
type PreviewResponse struct {
	Title             string                 `json:"title"`
	Thumbnail         string                 `json:"thumbnail"`
	Duration          int                    `json:"duration"`
	DurationFormatted string                 `json:"durationFormatted"`
	Formats           []domain.QualityOption `json:"formats"`
	VideoID           string                 `json:"videoId"`
	Uploader          string                 `json:"uploader"`
	ViewCount         int64                  `json:"viewCount"`
	LikeCount         int64                  `json:"likeCount"`
	Description       string                 `json:"description"`
}

// DownloadRequest represents the request to download a video
type DownloadRequest struct {
	URL      string `json:"url"`
	Quality  string `json:"quality"`
	FormatID string `json:"formatId,omitempty"`
}

// DownloadResponse represents the result of a completed download
type DownloadResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

// Preview fetches metadata and the normalized quality list for a video
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.IncPreviews("rejected")
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validator.IsSupportedURL(req.URL) {
		h.metrics.IncPreviews("rejected")
		writeDetail(w, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	start := time.Now()
	meta, err := h.extractor.Metadata(r.Context(), req.URL)
	if err != nil {
		h.metrics.IncPreviews("failed")
		h.logger.Warn("metadata extraction failed",
			zap.String("url", req.URL),
			zap.Error(err),
		)
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	h.metrics.ObserveExtractDuration(time.Since(start).Seconds())
	h.metrics.IncPreviews("ok")

	writeJSON(w, http.StatusOK, PreviewResponse{
		Title:             meta.Title,
		Thumbnail:         meta.Thumbnail,
		Duration:          meta.Duration,
		DurationFormatted: format.FormatDuration(meta.Duration),
		Formats:           format.Normalize(meta.Formats),
		VideoID:           meta.ID,
		Uploader:          meta.Uploader,
		ViewCount:         meta.ViewCount,
		LikeCount:         meta.LikeCount,
		Description:       truncateDescription(meta.Description),
	})
}

// Download resolves the requested quality, runs the engine on a worker and
// publishes the result into the serving directory
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.IncDownloads("rejected")
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validator.IsSupportedURL(req.URL) {
		h.metrics.IncDownloads("rejected")
		writeDetail(w, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}
	if req.Quality == "" {
		h.metrics.IncDownloads("rejected")
		writeDetail(w, http.StatusBadRequest, "Quality selection required")
		return
	}

	expr := h.resolver.Resolve(req.Quality, req.FormatID)

	scratch := filepath.Join(h.config.Storage.ScratchRoot, uuid.New().String())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		h.metrics.IncDownloads("failed")
		writeDetail(w, http.StatusBadRequest, "failed to create scratch directory: "+err.Error())
		return
	}
	defer os.RemoveAll(scratch)

	h.metrics.IncDownloadsActive()
	start := time.Now()
	var filename string
	err := h.pool.Submit(r.Context(), func() error {
		// Detached from the request context: a started download is never
		// aborted by a client disconnect.
		path, err := h.extractor.Download(context.Background(), req.URL, expr, scratch)
		if err != nil {
			return err
		}
		filename, err = h.store.Publish(path)
		return err
	})
	h.metrics.DecDownloadsActive()
	if err != nil {
		h.metrics.IncDownloads("failed")
		h.logger.Warn("download failed",
			zap.String("url", req.URL),
			zap.String("format", expr),
			zap.Error(err),
		)
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.metrics.IncDownloads("ok")
	h.metrics.ObserveDownloadDuration(time.Since(start).Seconds())
	if path, rErr := h.store.Resolve(filename); rErr == nil {
		if info, sErr := os.Stat(path); sErr == nil {
			h.metrics.AddDownloadBytes(float64(info.Size()))
		}
	}
	h.logger.Info("download completed",
		zap.String("url", req.URL),
		zap.String("format", expr),
		zap.String("filename", filename),
		zap.Duration("duration", time.Since(start)),
	)

	writeJSON(w, http.StatusOK, DownloadResponse{
		Success:     true,
		Message:     "Video downloaded successfully",
		DownloadURL: "/downloads/" + filename,
		Filename:    filename,
	})
}

// ServeDownload serves a completed download as an attachment
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, err := h.store.Resolve(filename)
	if err != nil || !h.store.Exists(filename) {
		writeDetail(w, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

// Root returns API information
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Video Download API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"preview":  "/preview - Get video information and available qualities",
			"download": "/download - Download video with specified quality",
		},
	})
}

// HealthCheck returns health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "video-download-api",
	})
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionLen {
		return s
	}
	return string(runes[:maxDescriptionLen]) + "..."
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
