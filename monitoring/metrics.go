package monitoring

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	reservationOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Reservation lifecycle operations",
		},
		[]string{"operation", "status"},
	)

	ticketTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_transfers_total",
			Help: "Ticket ownership transfers",
		},
		[]string{"status"},
	)

	cancellations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cancellation_operations_total",
			Help: "Cancellation workflow operations",
		},
		[]string{"operation", "status"},
	)

	entrySessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entry_sessions_total",
			Help: "Entry session gate activity",
		},
		[]string{"status"},
	)

	expiredSessions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entry_sessions_expired_total",
			Help: "Entry sessions swept by the cleanup batch",
		},
	)

	cachedCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reserved_seats_cached",
			Help: "Cached reserved-seat counter per event",
		},
		[]string{"event_id"},
	)
)

func TrackReservation(operation, status string) {
	reservationOps.WithLabelValues(operation, status).Inc()
}

func TrackTransfer(status string) {
	ticketTransfers.WithLabelValues(status).Inc()
}

func TrackCancellation(operation, status string) {
	cancellations.WithLabelValues(operation, status).Inc()
}

func TrackEntrySession(status string) {
	entrySessions.WithLabelValues(status).Inc()
}

func TrackExpiredSessions(n int64) {
	expiredSessions.Add(float64(n))
}

// Monitor periodically exports the cached capacity counters so dashboards can
// watch events fill up.
type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	monitor := &Monitor{redis: redisClient}

	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.collectCapacityMetrics(context.Background())
	}
}

func (m *Monitor) collectCapacityMetrics(ctx context.Context) {
	keys, _ := m.redis.Keys(ctx, "capacity:reserved:*").Result()
	for _, key := range keys {
		eventID := strings.TrimPrefix(key, "capacity:reserved:")
		n, err := m.redis.Get(ctx, key).Int()
		if err != nil {
			continue
		}
		cachedCapacity.WithLabelValues(eventID).Set(float64(n))
	}
}
