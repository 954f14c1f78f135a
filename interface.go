// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"github.com/gogama/ajax/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do dispatches a request plan and returns the response (and error, if
// any). Client implements the Doer interface, and any other Doer
// implementation must behave substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(p *request.Plan) (*request.Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get creates a request plan to issue a GET to the specified URL,
// dispatches the plan, and returns the response (and error, if any).
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(url string, opts *Options) (*request.Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(url string, opts *Options) (*request.Response, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(url string, opts *Options) (*request.Response, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(url string, opts *Options) (*request.Response, error)
}

// Executor is the interface that groups the basic Do, Get, Post, Put,
// and Delete methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Poster
	Putter
	Deleter
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do. The opts parameter may be nil.
//
// If opts.OnComplete is set, it is called exactly once, before Get
// returns, with the same values Get returns.
func Get(d Doer, url string, opts *Options) (*request.Response, error) {
	return send(d, "GET", url, opts)
}

// Post uses the specified Doer to issue a POST to the specified URL,
// using the same policies as d.Do. The opts parameter may be nil.
//
// If opts.OnComplete is set, it is called exactly once, before Post
// returns, with the same values Post returns.
func Post(d Doer, url string, opts *Options) (*request.Response, error) {
	return send(d, "POST", url, opts)
}

// Put uses the specified Doer to issue a PUT to the specified URL,
// using the same policies as d.Do. The opts parameter may be nil.
//
// If opts.OnComplete is set, it is called exactly once, before Put
// returns, with the same values Put returns.
func Put(d Doer, url string, opts *Options) (*request.Response, error) {
	return send(d, "PUT", url, opts)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL, using the same policies as d.Do. The opts parameter may be nil.
//
// If opts.OnComplete is set, it is called exactly once, before Delete
// returns, with the same values Delete returns.
func Delete(d Doer, url string, opts *Options) (*request.Response, error) {
	return send(d, "DELETE", url, opts)
}

func send(d Doer, method, url string, opts *Options) (*request.Response, error) {
	p, err := opts.plan(method, url)
	var resp *request.Response
	if err == nil {
		resp, err = d.Do(p)
	}
	if opts != nil && opts.OnComplete != nil {
		opts.OnComplete(resp, err)
	}
	return resp, err
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("ajax: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(p *request.Plan) (*request.Response, error) {
	return i.doer.Do(p)
}

func (i inflated) Get(url string, opts *Options) (*request.Response, error) {
	return Get(i.doer, url, opts)
}

func (i inflated) Post(url string, opts *Options) (*request.Response, error) {
	return Post(i.doer, url, opts)
}

func (i inflated) Put(url string, opts *Options) (*request.Response, error) {
	return Put(i.doer, url, opts)
}

func (i inflated) Delete(url string, opts *Options) (*request.Response, error) {
	return Delete(i.doer, url, opts)
}
