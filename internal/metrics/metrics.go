package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	previewsTotal    *prometheus.CounterVec
	downloadsTotal   *prometheus.CounterVec
	downloadsActive  prometheus.Gauge
	extractDuration  prometheus.Histogram
	downloadDuration prometheus.Histogram
	downloadBytes    prometheus.Counter
}

// New creates a new metrics instance
func New() *Metrics {
	return &Metrics{
		previewsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grabber_previews_total",
				Help: "Total number of preview requests by status",
			},
			[]string{"status"},
		),
		downloadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grabber_downloads_total",
				Help: "Total number of download requests by status",
			},
			[]string{"status"},
		),
		downloadsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "grabber_downloads_active",
				Help: "Number of downloads currently running",
			},
		),
		extractDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "grabber_extract_duration_seconds",
				Help:    "Duration of metadata extraction in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 0.1s to ~6 minutes
			},
		),
		downloadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "grabber_download_duration_seconds",
				Help:    "Duration of completed downloads in seconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 15), // 1s to ~9 hours
			},
		),
		downloadBytes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "grabber_download_bytes_total",
				Help: "Total bytes placed into the serving directory",
			},
		),
	}
}

// IncPreviews increments the previews counter for a status
func (m *Metrics) IncPreviews(status string) {
	m.previewsTotal.WithLabelValues(status).Inc()
}

// IncDownloads increments the downloads counter for a status
func (m *Metrics) IncDownloads(status string) {
	m.downloadsTotal.WithLabelValues(status).Inc()
}

// IncDownloadsActive increments the active downloads gauge
func (m *Metrics) IncDownloadsActive() {
	m.downloadsActive.Inc()
}

// DecDownloadsActive decrements the active downloads gauge
func (m *Metrics) DecDownloadsActive() {
	m.downloadsActive.Dec()
}

// ObserveExtractDuration records the duration of a metadata extraction
func (m *Metrics) ObserveExtractDuration(seconds float64) {
	m.extractDuration.Observe(seconds)
}

// ObserveDownloadDuration records the duration of a completed download
func (m *Metrics) ObserveDownloadDuration(seconds float64) {
	m.downloadDuration.Observe(seconds)
}

// AddDownloadBytes adds bytes to the downloaded bytes total
func (m *Metrics) AddDownloadBytes(bytes float64) {
	m.downloadBytes.Add(bytes)
}
