// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "egstify"

// HTTPRequests counts served requests by route, method and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests served.",
}, []string{"route", "method", "status"})

// HTTPLatency observes request latency by route.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})

// InvoicesSubmitted counts invoice submissions by final status.
var InvoicesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "invoice",
	Name:      "submitted_total",
	Help:      "Invoice submissions by resulting status (processed, error).",
}, []string{"status"})

// IRNLatency observes the time spent waiting on the IRN issuer.
var IRNLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "irn",
	Name:      "issue_duration_seconds",
	Help:      "Time taken to obtain an IRN.",
	Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
})

// Reconciliations counts reconciliation attempts by outcome.
var Reconciliations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "invoice",
	Name:      "reconciliations_total",
	Help:      "Reconciliation attempts by outcome (matched, unmatched, failed).",
}, []string{"outcome"})

// LedgerTotalSales mirrors the ledger's running sales total.
var LedgerTotalSales = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "total_sales_rupees",
	Help:      "Running total of recorded sales, tax included.",
})

// LedgerGSTCollected mirrors the ledger's running GST total.
var LedgerGSTCollected = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "gst_collected_rupees",
	Help:      "Running total of GST collected.",
})

// LedgerInvoiceCount mirrors the ledger's invoice count.
var LedgerInvoiceCount = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "invoices",
	Help:      "Number of invoices recorded in the ledger.",
})

// AssistantQueries counts tax questions by answering source and outcome.
var AssistantQueries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "assistant",
	Name:      "queries_total",
	Help:      "Tax questions answered, by provider and outcome.",
}, []string{"provider", "outcome"})

// UpstreamFailures counts failed calls to external providers.
var UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "upstream",
	Name:      "failures_total",
	Help:      "Failed calls to external providers.",
}, []string{"provider"})
