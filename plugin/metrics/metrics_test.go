// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/timeout"
	"github.com/gogama/ajax/xhr"
	"github.com/gogama/ajax/xhr/xhrtest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := New("test")
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	g := &ajax.HandlerGroup{}
	c.Install(g)

	status := 200
	f := &xhrtest.Factory{Responder: func(tr *xhrtest.Transport) {
		tr.Respond(status, nil, "")
	}}
	cl := &ajax.Client{Transport: f, Handlers: g}

	_, err := cl.Get("/a", nil)
	require.NoError(t, err)
	_, err = cl.Get("/b", nil)
	require.NoError(t, err)
	status = 500
	_, err = cl.Post("/c", nil)
	require.Error(t, err)

	unavailable := &ajax.Client{Transport: xhr.Unavailable, Handlers: g}
	_, err = unavailable.Delete("/d", nil)
	require.Error(t, err)

	slow := &ajax.Client{Transport: &xhrtest.Factory{}, TimeoutPolicy: timeout.Fixed(time.Millisecond), Handlers: g}
	_, err = slow.Put("/e", nil)
	require.Error(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.requests.WithLabelValues("GET", OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("POST", "HTTPStatus")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("DELETE", "TransportUnavailable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues("PUT", "Timeout")))

	assert.Equal(t, 4, testutil.CollectAndCount(c, "test_ajax_requests_total"))
	assert.Equal(t, 4, testutil.CollectAndCount(c, "test_ajax_request_duration_seconds"))

	expected := `
# HELP test_ajax_requests_total Number of requests dispatched, by method and outcome.
# TYPE test_ajax_requests_total counter
test_ajax_requests_total{method="DELETE",outcome="TransportUnavailable"} 1
test_ajax_requests_total{method="GET",outcome="Success"} 2
test_ajax_requests_total{method="POST",outcome="HTTPStatus"} 1
test_ajax_requests_total{method="PUT",outcome="Timeout"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_ajax_requests_total"))
}

func TestNew_NoNamespace(t *testing.T) {
	c := New("")
	c.requests.WithLabelValues("GET", OutcomeSuccess).Inc()
	assert.Equal(t, 1, testutil.CollectAndCount(c, "ajax_requests_total"))
}
