package monitoring

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticketPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchases_total",
			Help: "Ticket purchase attempts by outcome",
		},
		[]string{"event_id", "status"},
	)

	purchaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_purchase_duration_seconds",
			Help:    "Duration of the purchase workflow",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"event_id"},
	)

	credentialsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fan_credentials_recorded_total",
			Help: "Fan credentials recorded by type",
		},
		[]string{"credential_type"},
	)

	reputationPoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reputation_points_awarded_total",
			Help: "Reputation points awarded by credential type",
		},
		[]string{"credential_type"},
	)
)

// TrackPurchase counts one purchase attempt; status is "success" or
// "sold_out".
func TrackPurchase(eventID, status string) {
	ticketPurchases.WithLabelValues(eventID, status).Inc()
}

func ObservePurchaseDuration(eventID string, d time.Duration) {
	purchaseDuration.WithLabelValues(eventID).Observe(d.Seconds())
}

func TrackCredential(credentialType string, points int) {
	credentialsRecorded.WithLabelValues(credentialType).Inc()
	reputationPoints.WithLabelValues(credentialType).Add(float64(points))
}

// Serve exposes /metrics on its own port; run it in a goroutine.
func Serve(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("Metrics listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("Metrics server stopped: %v", err)
	}
}
