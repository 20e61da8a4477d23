// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for report and feed activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voter_summary"

// Registry holds every collector of the service
var Registry = newRegistry()

var factory = promauto.With(Registry)

var (
	ReportRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_requests_total",
		Help:      "Report requests by report and outcome.",
	}, []string{"report", "outcome"})

	ReportDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Time spent computing a report.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"report"})

	Exports = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Detail CSV downloads by kind.",
	}, []string{"kind"})

	FeedLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_loads_total",
		Help:      "Voter roll load attempts by outcome.",
	}, []string{"outcome"})

	RollRecords = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "roll_records",
		Help:      "Records in the currently served voter roll.",
	})
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Outcome maps an error to the outcome label
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveReport records one report computation
func ObserveReport(report string, start time.Time, err error) {
	ReportRequests.WithLabelValues(report, Outcome(err)).Inc()
	ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
