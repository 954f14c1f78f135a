// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"time"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/timeout"
	"github.com/gogama/ajax/xhr"
	"github.com/google/uuid"
)

var emptyHandlers = HandlerGroup{}

// A Client dispatches requests over XHR-style transports. Its zero value
// is a valid configuration.
//
// The zero value client obtains transports from xhr.DefaultFactory
// (backed by http.DefaultClient from net/http), arms no timeout, and
// has an empty handler group (no event handlers/plug-ins).
//
// Client is safe for concurrent use by multiple goroutines. Each request
// uses its own transport; requests are entirely independent of one
// another.
//
// On top of the exchange performed by the transport, Client adds the
// following features:
//
// • Client form-encodes request data, appending it to the URL for GET
// requests and sending it as the body otherwise;
//
// • Client sets a default Content-type request header;
//
// • Client races the request against a timeout chosen by a customizable
// timeout policy, aborting the transport if the timeout wins;
//
// • Client decodes JSON responses;
//
// • Client classifies failures into the kinds described by Error; and
//
// • Client invokes user-provided handler functions at designated plug-in
// points, allowing features such as logging and metrics to be mixed in.
type Client struct {
	// Transport produces the transport for each request.
	//
	// If Transport is nil, xhr.DefaultFactory is used.
	Transport xhr.Factory
	// TimeoutPolicy specifies how long to wait for each request to
	// complete. A positive Timeout on the plan takes precedence.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a dispatch.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// newTimer replaces time.NewTimer in tests.
	newTimer func(d time.Duration) (<-chan time.Time, func() bool)
}

// Options holds the optional parts of a request.
type Options struct {
	// Data is the request data. It may be nil, a pre-encoded string or
	// []byte, or any structured data type accepted by request.Encode.
	Data interface{}
	// Header holds request headers keyed by exact header name. To
	// override the default content type, use the key "Content-type".
	Header map[string]string
	// Timeout, if positive, overrides the client's timeout policy.
	Timeout time.Duration
	// OnComplete, if not nil, is called exactly once with the outcome
	// of the request.
	OnComplete func(*request.Response, error)
}

func (o *Options) plan(method, url string) (*request.Plan, error) {
	if o == nil {
		return request.NewPlan(method, url, nil, nil)
	}
	p, err := request.NewPlan(method, url, o.Data, o.Header)
	if err != nil {
		return nil, err
	}
	p.Timeout = o.Timeout
	return p, nil
}

// A Result is the outcome of an asynchronous dispatch.
type Result struct {
	Response *request.Response
	Err      error
}

// Do dispatches a request plan and returns the outcome, blocking until
// the transport reaches its final ready state or the timeout expires.
//
// The timeout only covers the wait for the first sign of progress: once
// the transport reports any ready state change, the timer is stopped. If
// no timeout is armed, or the transport stalls after reporting progress,
// and the transport never completes, Do never returns.
//
// A non-nil error is always an *Error. The response is non-nil if, and
// only if, the transport reached its final ready state and, where the
// response was declared as JSON, it was decoded successfully. This
// means an HTTPStatus error is returned together with the response,
// allowing the caller to inspect the body of an error response, while
// errors of every other kind are returned with a nil response.
//
// For simple use cases, the Get, Post, Put and Delete methods may prove
// easier to use than Do.
func (c *Client) Do(p *request.Plan) (*request.Response, error) {
	e := request.Execution{
		Plan: p,
		ID:   uuid.NewString(),
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

	c.dispatch(&e, handlers)

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return e.Response, e.Err
}

func (c *Client) dispatch(e *request.Execution, handlers *HandlerGroup) {
	p := e.Plan

	t, err := c.factory().NewTransport()
	if err == nil && t == nil {
		err = xhr.ErrUnavailable
	}
	if err != nil {
		e.Err = newError(p, TransportUnavailable, err)
		return
	}
	e.Transport = t

	if err = t.Open(p.Method, p.URL); err != nil {
		e.Err = newError(p, TransportUnavailable, err)
		return
	}
	for _, name := range p.HeaderNames() {
		if err = t.SetRequestHeader(name, p.Header[name]); err != nil {
			e.Err = newError(p, TransportUnavailable, err)
			return
		}
	}

	// The transport may notify from any goroutine. Any notification
	// disarms the timer; only the final ready state completes the request,
	// and it is delivered at most once.
	progress := make(chan struct{}, 1)
	ready := make(chan struct{}, 1)
	t.OnReadyStateChange(func() {
		signal(progress)
		if t.ReadyState() == xhr.Done {
			signal(ready)
		}
	})

	e.Timeout = c.timeout(p)
	handlers.run(BeforeSend, e)

	var expired <-chan time.Time
	stop := func() bool { return false }
	if e.Timeout > 0 {
		expired, stop = c.timer(e.Timeout)
	}
	defer func() { stop() }()

	if err = t.Send(p.Body); err != nil {
		e.Err = newError(p, TransportUnavailable, err)
		return
	}

	for {
		select {
		case <-ready:
			c.complete(e, handlers)
			return
		case <-progress:
			stop()
			stop = func() bool { return false }
			expired = nil
		case <-expired:
			select {
			case <-ready:
				c.complete(e, handlers)
				return
			case <-progress:
				expired = nil
				continue
			default:
			}
			t.Abort()
			e.Err = newError(p, Timeout, nil)
			handlers.run(AfterTimeout, e)
			return
		}
	}
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (c *Client) complete(e *request.Execution, handlers *HandlerGroup) {
	p := e.Plan
	resp, err := request.ReadResponse(p, e.Transport)
	if err != nil {
		e.Err = newError(p, DecodeFailure, err)
	} else {
		e.Response = resp
		if !request.StatusOK(resp.StatusCode) {
			err := newError(p, HTTPStatus, nil)
			err.Status = resp.StatusCode
			e.Err = err
		}
	}
	handlers.run(AfterResponse, e)
}

// Go dispatches a request plan on a new goroutine. The returned channel
// delivers exactly one Result and is then closed.
func (c *Client) Go(p *request.Plan) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		resp, err := c.Do(p)
		ch <- Result{Response: resp, Err: err}
		close(ch)
	}()
	return ch
}

// Dispatch issues a request on a new goroutine and returns immediately.
// The outcome is only observable through opts.OnComplete, which is
// called exactly once.
func (c *Client) Dispatch(method, url string, opts *Options) {
	go func() {
		_, _ = send(c, method, url, opts)
	}()
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do. Request data in opts is appended to the URL as a
// query string.
func (c *Client) Get(url string, opts *Options) (*request.Response, error) {
	return Get(c, url, opts)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do. Request data in opts is sent as the request body.
func (c *Client) Post(url string, opts *Options) (*request.Response, error) {
	return Post(c, url, opts)
}

// Put issues a PUT to the specified URL, using the same policies
// followed by Do. Request data in opts is sent as the request body.
func (c *Client) Put(url string, opts *Options) (*request.Response, error) {
	return Put(c, url, opts)
}

// Delete issues a DELETE to the specified URL, using the same policies
// followed by Do. Request data in opts is sent as the request body.
func (c *Client) Delete(url string, opts *Options) (*request.Response, error) {
	return Delete(c, url, opts)
}

func (c *Client) factory() xhr.Factory {
	if c.Transport == nil {
		return xhr.DefaultFactory
	}
	return c.Transport
}

func (c *Client) timeout(p *request.Plan) time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	policy := c.TimeoutPolicy
	if policy == nil {
		policy = timeout.DefaultPolicy
	}
	return policy.Timeout(p)
}

func (c *Client) timer(d time.Duration) (<-chan time.Time, func() bool) {
	if c.newTimer != nil {
		return c.newTimer(d)
	}
	t := time.NewTimer(d)
	return t.C, t.Stop
}
