package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrdersSavedTotal counts persisted orders by operation (create, update) and price tier.
	OrdersSavedTotal *prometheus.CounterVec
	// CatalogMutationsTotal counts price list changes by operation and result.
	CatalogMutationsTotal *prometheus.CounterVec
	// LineItemsSkippedTotal counts line-item fragments dropped while parsing.
	LineItemsSkippedTotal *prometheus.CounterVec
	// ReportBuildsTotal counts report requests by cache outcome.
	ReportBuildsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrdersSavedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_saved_total",
			Help:      "Count of orders priced and persisted.",
		}, []string{"operation", "tier"})
		CatalogMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_mutations_total",
			Help:      "Count of price list mutations by outcome.",
		}, []string{"operation", "result"})
		LineItemsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_items_skipped_total",
			Help:      "Count of malformed line-item fragments dropped during parsing.",
		}, []string{"reason"})
		ReportBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_builds_total",
			Help:      "Count of analytics report requests by cache outcome.",
		}, []string{"report", "cache"})

		mustRegisterCollector(reg, OrdersSavedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrdersSavedTotal = v
			}
		})
		mustRegisterCollector(reg, CatalogMutationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CatalogMutationsTotal = v
			}
		})
		mustRegisterCollector(reg, LineItemsSkippedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				LineItemsSkippedTotal = v
			}
		})
		mustRegisterCollector(reg, ReportBuildsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportBuildsTotal = v
			}
		})
	})
}

// Inc increments vec when it has been registered. Packages call this so tests
// and tools that skip metric registration keep working.
func Inc(vec *prometheus.CounterVec, labels ...string) {
	if vec == nil {
		return
	}
	vec.WithLabelValues(labels...).Inc()
}

// Add adds n to vec when it has been registered.
func Add(vec *prometheus.CounterVec, n int, labels ...string) {
	if vec == nil || n <= 0 {
		return
	}
	vec.WithLabelValues(labels...).Add(float64(n))
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
