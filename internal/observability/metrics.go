package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const metricsNamespace = "blogly"

// Metrics holds the application collectors. Each instance owns its registry so
// several servers (tests) can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	// DatabaseQueryLatency records GORM statement latency by operation and table.
	DatabaseQueryLatency *prometheus.HistogramVec
	// EntityMutations counts write operations by entity, operation and outcome.
	EntityMutations *prometheus.CounterVec
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		DatabaseQueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "database_query_latency_seconds",
			Help:      "Database query latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "table"}),
		EntityMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "entity_mutations_total",
			Help:      "Total number of entity write operations",
		}, []string{"entity", "operation", "outcome"}),
		RedisErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "redis_errors_total",
			Help:      "Total number of failed Redis commands",
		}, []string{"command"}),
	}

	m.Registry.MustRegister(
		m.DatabaseQueryLatency,
		m.EntityMutations,
		m.RedisErrors,
	)
	return m
}

// RecordMutation counts one write against entity. A nil err is a success.
func (m *Metrics) RecordMutation(entity, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.EntityMutations.WithLabelValues(entity, operation, outcome).Inc()
}

const startTimeKey = "blogly:query_start"

// GormPlugin returns a gorm.Plugin that feeds DatabaseQueryLatency.
func (m *Metrics) GormPlugin() gorm.Plugin {
	return &queryMetricsPlugin{metrics: m}
}

type queryMetricsPlugin struct {
	metrics *Metrics
}

func (p *queryMetricsPlugin) Name() string {
	return "blogly:query_metrics"
}

func (p *queryMetricsPlugin) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startTimeKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			p.metrics.DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		}
	}

	cb := db.Callback()
	steps := []func() error{
		func() error {
			if err := cb.Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("metrics:after_create", after("create"))
		},
		func() error {
			if err := cb.Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("metrics:after_query", after("query"))
		},
		func() error {
			if err := cb.Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("metrics:after_update", after("update"))
		},
		func() error {
			if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))
		},
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
