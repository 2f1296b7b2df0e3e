package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the scheduling flows.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	availabilityTotal *prometheus.CounterVec
	bookingLatency    prometheus.Histogram
	chatMessagesTotal *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "booking",
			Name:      "requests_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "booking",
			Name:      "availability_requests_total",
			Help:      "Availability lookups by status",
		}, []string{"status"}),
		bookingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nexus",
			Subsystem: "booking",
			Name:      "latency_seconds",
			Help:      "Latency of booking submissions",
			Buckets:   prometheus.DefBuckets,
		}),
		chatMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Chat messages by matched rule",
		}, []string{"rule"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.availabilityTotal, m.bookingLatency, m.chatMessagesTotal)
	return m
}

// ObserveBooking records a booking submission outcome
// (created, conflict, invalid, error).
func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAvailability records an availability lookup status (ok, invalid, error).
func (m *BookingMetrics) ObserveAvailability(status string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(status).Inc()
}

// ObserveBookingLatency records how long a booking submission took.
func (m *BookingMetrics) ObserveBookingLatency(seconds float64) {
	if m == nil {
		return
	}
	m.bookingLatency.Observe(seconds)
}

// ObserveChatMessage records which rule answered a chat message.
func (m *BookingMetrics) ObserveChatMessage(rule string) {
	if m == nil {
		return
	}
	m.chatMessagesTotal.WithLabelValues(rule).Inc()
}
