// Package metrics exposes run and bankroll instrumentation for the
// daemon's scrape endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics holds the engine's instrument set on a dedicated registry.
// A nil *Metrics is valid and records nothing, so single-run mode can
// skip the whole subsystem.
type Metrics struct {
	registry *prometheus.Registry

	fixturesAnalyzed prometheus.Counter
	signals          *prometheus.CounterVec
	betsPlaced       prometheus.Counter
	betsSettled      *prometheus.CounterVec
	runDuration      prometheus.Histogram
	currentCapital   prometheus.Gauge
	lossToRecover    prometheus.Gauge
	pendingBets      prometheus.Gauge
}

// New creates the instrument set on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		fixturesAnalyzed: factory.NewCounter(prometheus.CounterOpts{
			Name: "falcon_fixtures_analyzed_total",
			Help: "Fixtures evaluated by the strategy battery",
		}),
		signals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "falcon_signals_total",
			Help: "Actionable signals by kind and strategy",
		}, []string{"kind", "strategy"}),
		betsPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "falcon_bets_placed_total",
			Help: "Bets accepted into the pending store",
		}),
		betsSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "falcon_bets_settled_total",
			Help: "Bets settled by result",
		}, []string{"result"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "falcon_run_duration_seconds",
			Help:    "Wall time of one analysis run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		currentCapital: factory.NewGauge(prometheus.GaugeOpts{
			Name: "falcon_bankroll_capital",
			Help: "Current virtual bankroll capital",
		}),
		lossToRecover: factory.NewGauge(prometheus.GaugeOpts{
			Name: "falcon_bankroll_loss_to_recover",
			Help: "Outstanding loss the recovery policy targets",
		}),
		pendingBets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "falcon_pending_bets",
			Help: "Open bets awaiting settlement",
		}),
	}
}

// Handler returns the scrape endpoint handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFixture counts one evaluated fixture
func (m *Metrics) ObserveFixture() {
	if m == nil {
		return
	}
	m.fixturesAnalyzed.Inc()
}

// ObserveSignal counts one actionable signal
func (m *Metrics) ObserveSignal(kind, strategy string) {
	if m == nil {
		return
	}
	m.signals.WithLabelValues(kind, strategy).Inc()
}

// ObserveBetPlaced counts one accepted bet
func (m *Metrics) ObserveBetPlaced() {
	if m == nil {
		return
	}
	m.betsPlaced.Inc()
}

// ObserveBetSettled counts one settled bet by result
func (m *Metrics) ObserveBetSettled(result string) {
	if m == nil {
		return
	}
	m.betsSettled.WithLabelValues(result).Inc()
}

// ObserveRunDuration records the wall time of one run
func (m *Metrics) ObserveRunDuration(seconds float64) {
	if m == nil {
		return
	}
	m.runDuration.Observe(seconds)
}

// SetBankroll publishes the bankroll gauges
func (m *Metrics) SetBankroll(capital, lossToRecover decimal.Decimal) {
	if m == nil {
		return
	}
	m.currentCapital.Set(capital.InexactFloat64())
	m.lossToRecover.Set(lossToRecover.InexactFloat64())
}

// SetPendingBets publishes the open-bet count
func (m *Metrics) SetPendingBets(n int) {
	if m == nil {
		return
	}
	m.pendingBets.Set(float64(n))
}
