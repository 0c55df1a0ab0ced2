package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/dilemma/strategy"
)

// Metrics exports live simulation counters to prometheus. Every label has a
// bounded value set: strategy names, death causes and round outcomes.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	tickDuration prometheus.Histogram
	simTime      prometheus.Gauge
	population   *prometheus.GaugeVec
	food         prometheus.Gauge
	births       *prometheus.CounterVec
	deaths       *prometheus.CounterVec
	rounds       *prometheus.CounterVec
}

// NewMetrics registers the simulation metrics on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one simulation tick",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05},
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sim_time_seconds",
			Help:      "Simulated time since the last reset",
		}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "population",
			Help:      "Live agents per strategy",
		}, []string{"strategy"}),
		food: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "food_items",
			Help:      "Food items lying in the world",
		}),
		births: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "births_total",
			Help:      "Offspring spawned per strategy",
		}, []string{"strategy"}),
		deaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deaths_total",
			Help:      "Agents removed per strategy and cause",
		}, []string{"strategy", "cause"}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Rounds played per outcome",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.tickDuration, m.simTime, m.population, m.food, m.births, m.deaths, m.rounds)
	return m
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveTick records the wall time of one tick and the simulated clock.
func (m *Metrics) ObserveTick(d time.Duration, simTime float64) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
	m.simTime.Set(simTime)
}

// SetPopulation publishes per-strategy live counts and the food count.
func (m *Metrics) SetPopulation(counts [strategy.Count]int, food int) {
	if m == nil {
		return
	}
	for _, s := range strategy.All() {
		m.population.WithLabelValues(s.String()).Set(float64(counts[s]))
	}
	m.food.Set(float64(food))
}

// RecordBirth counts an offspring.
func (m *Metrics) RecordBirth(s strategy.Strategy) {
	if m == nil {
		return
	}
	m.births.WithLabelValues(s.String()).Inc()
}

// RecordDeath counts a removal.
func (m *Metrics) RecordDeath(s strategy.Strategy, cause DeathCause) {
	if m == nil {
		return
	}
	m.deaths.WithLabelValues(s.String(), cause.String()).Inc()
}

// RecordRound counts a round by outcome.
func (m *Metrics) RecordRound(a, b strategy.Action) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(Classify(a, b).String()).Inc()
}
