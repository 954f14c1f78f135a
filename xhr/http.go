// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/http/httpguts"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// An HTTPFactory produces transports which perform their exchange
// using an HTTPDoer. Its zero value is a valid configuration.
type HTTPFactory struct {
	// Doer sends the requests. If Doer is nil, http.DefaultClient from
	// the standard net/http package is used.
	Doer HTTPDoer
	// Compress asks the server for a compressed response, unless the
	// caller sets its own Accept-Encoding header, and transparently
	// decodes gzip, deflate and br response bodies.
	Compress bool
}

// NewTransport returns a new, unopened, transport. It never fails.
func (f *HTTPFactory) NewTransport() (Transport, error) {
	doer := f.Doer
	if doer == nil {
		doer = http.DefaultClient
	}
	return &httpTransport{
		doer:     doer,
		compress: f.Compress,
		header:   make(http.Header),
	}, nil
}

var (
	errNotOpened   = errors.New("xhr: transport not opened")
	errAlreadySent = errors.New("xhr: request already sent")
)

type httpTransport struct {
	doer     HTTPDoer
	compress bool

	mu             sync.Mutex
	state          ReadyState
	method         string
	url            *urlpkg.URL
	header         http.Header
	sent           bool
	aborted        bool
	cancel         context.CancelFunc
	onChange       func()
	status         int
	responseHeader http.Header
	text           string
}

func (t *httpTransport) Open(method, url string) error {
	if method == "" || strings.IndexFunc(method, isNotToken) != -1 {
		return fmt.Errorf("xhr: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return err
	}

	t.mu.Lock()
	if t.sent {
		t.mu.Unlock()
		return errAlreadySent
	}
	t.method = method
	t.url = u
	t.mu.Unlock()

	t.transition(Opened)
	return nil
}

func (t *httpTransport) SetRequestHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("xhr: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("xhr: invalid value for header %q", name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Opened {
		return errNotOpened
	}
	if t.sent {
		return errAlreadySent
	}
	t.header.Add(name, value)
	return nil
}

func (t *httpTransport) Send(body []byte) error {
	t.mu.Lock()
	if t.state != Opened {
		t.mu.Unlock()
		return errNotOpened
	}
	if t.sent {
		t.mu.Unlock()
		return errAlreadySent
	}
	t.sent = true
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	req, err := t.toRequest(ctx, body)
	t.mu.Unlock()

	if err != nil {
		cancel()
		return err
	}

	go t.exchange(ctx, req)
	return nil
}

// toRequest must be called with the lock held.
func (t *httpTransport) toRequest(ctx context.Context, body []byte) (*http.Request, error) {
	var r io.Reader
	if len(body) > 0 {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, t.method, t.url.String(), r)
	if err != nil {
		return nil, err
	}
	req.Header = t.header.Clone()
	if t.compress && req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}
	return req, nil
}

func (t *httpTransport) exchange(ctx context.Context, req *http.Request) {
	resp, err := t.doer.Do(req)
	if err != nil {
		t.transition(Done)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	t.mu.Lock()
	t.status = resp.StatusCode
	t.responseHeader = resp.Header.Clone()
	t.mu.Unlock()
	t.transition(HeadersReceived)
	t.transition(Loading)

	b, decoded, err := readBody(resp)
	if ctx.Err() != nil {
		return
	}

	t.mu.Lock()
	t.text = string(b)
	if decoded {
		t.responseHeader.Del("Content-Encoding")
		t.responseHeader.Del("Content-Length")
	}
	if err != nil {
		// A broken body is a network error, just like in a browser.
		t.status = 0
	}
	t.mu.Unlock()
	t.transition(Done)
}

// readBody reads the whole response body, decoding it if the server
// applied a content encoding. The decoded return value reports whether
// such decoding took place.
func readBody(resp *http.Response) (b []byte, decoded bool, err error) {
	var r io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, false, err
		}
		defer gz.Close()
		r = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		r = fl
	case "br":
		r = brotli.NewReader(resp.Body)
	default:
		b, err = io.ReadAll(resp.Body)
		return b, false, err
	}
	b, err = io.ReadAll(r)
	return b, err == nil, err
}

func (t *httpTransport) transition(s ReadyState) {
	t.mu.Lock()
	if t.aborted {
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

func (t *httpTransport) Abort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.aborted {
		return
	}
	t.aborted = true
	if t.cancel != nil {
		t.cancel()
	}
	t.state = Unsent
	t.status = 0
}

func (t *httpTransport) OnReadyStateChange(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = f
}

func (t *httpTransport) ReadyState() ReadyState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *httpTransport) Status() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *httpTransport) ResponseText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

func (t *httpTransport) GetResponseHeader(name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.responseHeader == nil {
		return ""
	}
	return t.responseHeader.Get(name)
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
