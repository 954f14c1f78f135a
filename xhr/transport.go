// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import "errors"

// A ReadyState is the lifecycle state of a Transport. The values mirror
// the readyState constants of the browser XMLHttpRequest object.
type ReadyState int

const (
	// Unsent is the state of a transport that has not been opened.
	Unsent ReadyState = iota
	// Opened is the state after Open has been called successfully.
	Opened
	// HeadersReceived is the state after the response status line and
	// headers are available.
	HeadersReceived
	// Loading is the state while the response body is being read.
	Loading
	// Done is the final state. No further state changes occur once a
	// transport is Done, and the status, response text and response
	// headers may be read.
	//
	// A transport whose request failed at the network level also ends
	// in Done, with a zero status.
	Done
)

var readyStateNames = []string{
	"Unsent",
	"Opened",
	"HeadersReceived",
	"Loading",
	"Done",
}

// String returns the name of the ready state.
func (s ReadyState) String() string {
	if s < Unsent || s > Done {
		return "ReadyState(?)"
	}
	return readyStateNames[s]
}

// ErrUnavailable is returned by a Factory that cannot produce a
// transport.
var ErrUnavailable = errors.New("xhr: no transport available")

// A Transport performs a single HTTP request/response exchange.
//
// A Transport is used by exactly one request. The ready-state change
// callback may be invoked from any goroutine, but implementations must
// not invoke it concurrently with itself. After Abort returns, the
// callback must not be invoked again.
type Transport interface {
	// Open prepares the transport to send a request with the given
	// method to the given URL.
	Open(method, url string) error
	// SetRequestHeader adds a request header. It must be called after
	// Open and before Send. Calling it twice with the same name adds
	// a second value rather than replacing the first.
	SetRequestHeader(name, value string) error
	// Send starts the exchange without waiting for it to finish. A nil
	// body means no request body.
	Send(body []byte) error
	// Abort stops an in-flight exchange.
	Abort()
	// OnReadyStateChange installs the callback to invoke whenever the
	// ready state changes. It replaces any previously installed
	// callback.
	OnReadyStateChange(f func())
	// ReadyState returns the current ready state.
	ReadyState() ReadyState
	// Status returns the HTTP status code of the response, or zero if
	// no response was received.
	Status() int
	// ResponseText returns the response body read so far.
	ResponseText() string
	// GetResponseHeader returns the first value of the named response
	// header, or the empty string. Matching of name is case-insensitive.
	GetResponseHeader(name string) string
}

// A Factory produces transports. NewTransport returns a non-nil error
// if no transport is available.
type Factory interface {
	NewTransport() (Transport, error)
}

// The FactoryFunc type is an adapter to allow the use of ordinary
// functions as transport factories.
type FactoryFunc func() (Transport, error)

// NewTransport calls f().
func (f FactoryFunc) NewTransport() (Transport, error) {
	return f()
}

// Unavailable is a factory which never has a transport available.
var Unavailable Factory = FactoryFunc(func() (Transport, error) {
	return nil, ErrUnavailable
})

// DefaultFactory is the factory used when no other is configured. It
// produces transports backed by http.DefaultClient.
var DefaultFactory Factory = &HTTPFactory{}
