// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides ajax event handlers which record Prometheus
// metrics about dispatched requests.
//
//	c := metrics.New("myapp")
//	prometheus.MustRegister(c)
//	handlers := &ajax.HandlerGroup{}
//	c.Install(handlers)
//	client := &ajax.Client{Handlers: handlers}
package metrics

import (
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values. A request that ended with an error is labelled
// with the name of the error's Kind, for example "Timeout".
const (
	OutcomeSuccess = "Success"
)

// A Collector counts requests by method and outcome and observes their
// durations. It implements prometheus.Collector.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a Collector whose metric names are prefixed with
// namespace, if it is not empty.
func New(namespace string) *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ajax",
			Name:      "requests_total",
			Help:      "Number of requests dispatched, by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ajax",
			Name:      "request_duration_seconds",
			Help:      "Time from the start to the end of each dispatch.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Install adds a handler for the AfterExecutionEnd event to the back of
// g's handler chain.
func (c *Collector) Install(g *ajax.HandlerGroup) {
	g.PushBack(ajax.AfterExecutionEnd, ajax.HandlerFunc(c.observe))
}

func (c *Collector) observe(_ ajax.Event, e *request.Execution) {
	outcome := OutcomeSuccess
	if k := ajax.KindOf(e.Err); k != 0 {
		outcome = k.String()
	}
	c.requests.WithLabelValues(e.Plan.Method, outcome).Inc()
	c.duration.WithLabelValues(e.Plan.Method).Observe(e.Duration().Seconds())
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.requests.Describe(ch)
	c.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.requests.Collect(ch)
	c.duration.Collect(ch)
}
