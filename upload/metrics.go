package upload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	uploadsTotal  *prometheus.CounterVec
	uploadedBytes prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		uploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "counsel",
			Name:      "upload_total",
			Help:      "Uploads by outcome",
		}, []string{"outcome"}),

		uploadedBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "counsel",
			Name:      "upload_attachment_bytes",
			Help:      "Size of attachments that were sent",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}
}

// outcome is a Kind or "invalid" for uploads that never left the process.
func (m *metrics) record(outcome string) {
	m.uploadsTotal.WithLabelValues(outcome).Inc()
}
