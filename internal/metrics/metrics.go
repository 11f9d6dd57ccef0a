// Package metrics собирает метрики Prometheus: исходы выполнений привычек,
// выданные награды и длительность HTTP-запросов.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "habit_casino"

// Metrics хранит собственный реестр и все коллекторы сервиса.
type Metrics struct {
	registry *prometheus.Registry

	completions  *prometheus.CounterVec
	rewards      *prometheus.CounterVec
	loot         *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New создаёт реестр и регистрирует коллекторы.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "habits",
				Name:      "completions_total",
				Help:      "Number of habit completion attempts by outcome.",
			},
			[]string{"outcome"},
		),
		rewards: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rewards",
				Name:      "granted_total",
				Help:      "Number of granted rewards by kind.",
			},
			[]string{"kind"},
		),
		loot: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rewards",
				Name:      "loot_total",
				Help:      "Number of dropped loot items by rarity.",
			},
			[]string{"rarity"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms .. ~2.5s
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		m.completions,
		m.rewards,
		m.loot,
		m.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// CompletionOutcome учитывает исход попытки выполнения.
func (m *Metrics) CompletionOutcome(outcome string) {
	m.completions.WithLabelValues(outcome).Inc()
}

// RewardGranted учитывает выданную награду. rarity пустая для всего, кроме лута.
func (m *Metrics) RewardGranted(kind, rarity string) {
	m.rewards.WithLabelValues(kind).Inc()
	if rarity != "" {
		m.loot.WithLabelValues(rarity).Inc()
	}
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware замеряет длительность запросов. Маршрут берётся из шаблона gin,
// чтобы id в пути не раздували число серий.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.
			WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
