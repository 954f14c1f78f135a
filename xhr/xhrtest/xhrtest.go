// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package xhrtest provides a scriptable fake transport for testing code
// that dispatches requests through package xhr.
//
// A Factory records every transport it creates. Tests either respond to
// a recorded transport manually, using Transport.Respond, or install a
// Responder on the factory to answer each request as soon as it is
// sent.
package xhrtest

import (
	"net/http"
	"sync"
	"time"

	"github.com/gogama/ajax/xhr"
)

// A Factory creates fake transports. Its zero value is ready to use.
type Factory struct {
	// Responder, if not nil, is invoked synchronously from within
	// Transport.Send. It typically calls Respond on the transport.
	Responder func(t *Transport)

	mu       sync.Mutex
	requests []*Transport
	sent     chan *Transport
}

// NewTransport creates and records a new fake transport.
func (f *Factory) NewTransport() (xhr.Transport, error) {
	t := &Transport{
		factory:        f,
		RequestHeaders: make(map[string][]string),
	}
	f.mu.Lock()
	f.requests = append(f.requests, t)
	f.mu.Unlock()
	return t, nil
}

// Requests returns every transport created so far, in creation order.
func (f *Factory) Requests() []*Transport {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := make([]*Transport, len(f.requests))
	copy(r, f.requests)
	return r
}

// Await waits up to d for the next transport to be sent and returns
// it, or returns nil if no transport is sent in time. Each sent
// transport is returned by Await exactly once.
func (f *Factory) Await(d time.Duration) *Transport {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case t := <-f.sentChan():
		return t
	case <-timer.C:
		return nil
	}
}

func (f *Factory) sentChan() chan *Transport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = make(chan *Transport, 64)
	}
	return f.sent
}

// A Transport is a fake xhr.Transport. Its exported fields describe the
// request made through it and are safe to read once the request has
// been sent.
type Transport struct {
	Method         string
	URL            string
	RequestHeaders map[string][]string
	Body           []byte
	// Sent is true once Send has been called.
	Sent bool
	// Aborted is true once Abort has been called.
	Aborted bool

	factory *Factory

	mu             sync.Mutex
	state          xhr.ReadyState
	onChange       func()
	status         int
	text           string
	responseHeader http.Header
}

// Open records the method and URL.
func (t *Transport) Open(method, url string) error {
	t.mu.Lock()
	t.Method = method
	t.URL = url
	t.mu.Unlock()
	t.transition(xhr.Opened)
	return nil
}

// SetRequestHeader records a request header under its exact name.
func (t *Transport) SetRequestHeader(name, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.RequestHeaders[name] = append(t.RequestHeaders[name], value)
	return nil
}

// RequestHeader returns the first value recorded for the exactly
// matching header name.
func (t *Transport) RequestHeader(name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v := t.RequestHeaders[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Send records the body and, if the factory has a Responder, invokes
// it.
func (t *Transport) Send(body []byte) error {
	t.mu.Lock()
	t.Body = body
	t.Sent = true
	t.mu.Unlock()

	if t.factory != nil {
		select {
		case t.factory.sentChan() <- t:
		default:
		}
		if t.factory.Responder != nil {
			t.factory.Responder(t)
		}
	}
	return nil
}

// Abort marks the transport aborted. Respond has no effect afterwards.
func (t *Transport) Abort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Aborted = true
	t.state = xhr.Unsent
	t.status = 0
}

// IsAborted reports whether Abort has been called.
func (t *Transport) IsAborted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Aborted
}

func (t *Transport) OnReadyStateChange(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = f
}

func (t *Transport) ReadyState() xhr.ReadyState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Transport) Status() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Transport) ResponseText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

func (t *Transport) GetResponseHeader(name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.responseHeader.Get(name)
}

// ReceiveHeaders simulates the arrival of the response status and
// headers, moving the transport to the HeadersReceived ready state
// without completing the request.
func (t *Transport) ReceiveHeaders(status int, header map[string]string) {
	h := make(http.Header, len(header))
	for k, v := range header {
		h.Set(k, v)
	}

	t.mu.Lock()
	if t.Aborted {
		t.mu.Unlock()
		return
	}
	t.status = status
	t.responseHeader = h
	t.mu.Unlock()
	t.transition(xhr.HeadersReceived)
}

// Respond completes the request with the given status, response headers
// and body, walking the transport through the HeadersReceived, Loading
// and Done ready states. A status of zero simulates a network error.
func (t *Transport) Respond(status int, header map[string]string, body string) {
	t.ReceiveHeaders(status, header)

	t.mu.Lock()
	if t.Aborted {
		t.mu.Unlock()
		return
	}
	t.text = body
	t.mu.Unlock()
	t.transition(xhr.Loading)
	t.transition(xhr.Done)
}

func (t *Transport) transition(s xhr.ReadyState) {
	t.mu.Lock()
	if t.Aborted {
		t.mu.Unlock()
		return
	}
	t.state = s
	f := t.onChange
	t.mu.Unlock()
	if f != nil {
		f()
	}
}
