package conversation

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the router's Prometheus instruments. A nil *metrics is a
// valid no-op, used when no registry is configured.
type metrics struct {
	messages       *prometheus.CounterVec
	resets         prometheus.Counter
	quotes         prometheus.Counter
	collabFailures *prometheus.CounterVec
	quoteAmount    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_messages_total",
				Help: "Inbound messages handled, by the step they arrived at",
			},
			[]string{"step"},
		),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intake_resets_total",
			Help: "Conversations reset to the start step",
		}),
		quotes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "intake_quotes_total",
			Help: "Quotes computed at final confirmation",
		}),
		collabFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_collaborator_failures_total",
				Help: "Failed calls to external collaborators",
			},
			[]string{"collaborator"},
		),
		quoteAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_quote_amount_won",
			Help:    "VAT-inclusive quote totals in won",
			Buckets: prometheus.ExponentialBuckets(1_000_000, 2, 10),
		}),
	}

	reg.MustRegister(m.messages, m.resets, m.quotes, m.collabFailures, m.quoteAmount)
	return m
}

func (m *metrics) message(step string) {
	if m != nil {
		m.messages.WithLabelValues(step).Inc()
	}
}

func (m *metrics) reset() {
	if m != nil {
		m.resets.Inc()
	}
}

func (m *metrics) quote(totalWon int) {
	if m != nil {
		m.quotes.Inc()
		m.quoteAmount.Observe(float64(totalWon))
	}
}

func (m *metrics) collabFailure(name string) {
	if m != nil {
		m.collabFailures.WithLabelValues(name).Inc()
	}
}
