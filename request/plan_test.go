// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	data := Fields{}.Add("foo", true).Add("bar", "test").Add("baz", 123)
	jsonHeader := map[string]string{ContentType: "application/json"}

	testCases := []struct {
		name   string
		method string
		url    string
		data   interface{}
		header map[string]string
		plan   *Plan
		err    string
	}{
		{
			name:   "empty method means GET",
			url:    "/x",
			plan:   &Plan{Method: "GET", URL: "/x", Header: map[string]string{ContentType: FormEncoded}},
			method: "",
		},
		{
			name:   "GET with data",
			method: "GET",
			url:    "http://example.com/",
			data:   data,
			plan: &Plan{
				Method: "GET",
				URL:    "http://example.com/?foo=true&bar=test&baz=123",
				Header: map[string]string{ContentType: FormEncoded},
			},
		},
		{
			name:   "GET with existing query",
			method: "GET",
			url:    "http://example.com/?foo=foo",
			data:   Fields{}.Add("bar", "test"),
			plan: &Plan{
				Method: "GET",
				URL:    "http://example.com/?foo=foo&bar=test",
				Header: map[string]string{ContentType: FormEncoded},
			},
		},
		{
			name:   "GET ignores JSON content type",
			method: "GET",
			url:    "/x",
			data:   Fields{}.Add("a", "b"),
			header: jsonHeader,
			plan: &Plan{
				Method: "GET",
				URL:    "/x?a=b",
				Header: map[string]string{ContentType: "application/json"},
			},
		},
		{
			name:   "POST form",
			method: "POST",
			url:    "/x",
			data:   data,
			plan: &Plan{
				Method: "POST",
				URL:    "/x",
				Header: map[string]string{ContentType: FormEncoded},
				Body:   []byte("foo=true&bar=test&baz=123"),
			},
		},
		{
			name:   "POST JSON",
			method: "POST",
			url:    "/x",
			data:   data,
			header: jsonHeader,
			plan: &Plan{
				Method: "POST",
				URL:    "/x",
				Header: map[string]string{ContentType: "application/json"},
				Body:   []byte(`{"foo":true,"bar":"test","baz":123}`),
			},
		},
		{
			name:   "PUT raw string",
			method: "PUT",
			url:    "/x",
			data:   "raw body",
			header: map[string]string{ContentType: "text/plain", "X-Foo": "bar"},
			plan: &Plan{
				Method: "PUT",
				URL:    "/x",
				Header: map[string]string{ContentType: "text/plain", "X-Foo": "bar"},
				Body:   []byte("raw body"),
			},
		},
		{
			name:   "DELETE no data",
			method: "DELETE",
			url:    "/x",
			plan:   &Plan{Method: "DELETE", URL: "/x", Header: map[string]string{ContentType: FormEncoded}},
		},
		{
			name:   "custom method",
			method: "PATCH",
			url:    "/x",
			data:   url.Values{"a": {"1", "2"}},
			plan: &Plan{
				Method: "PATCH",
				URL:    "/x",
				Header: map[string]string{ContentType: FormEncoded},
				Body:   []byte("a=1&a=2"),
			},
		},
		{
			name:   "invalid method",
			method: "GE T",
			url:    "/x",
			err:    `ajax/request: invalid method "GE T"`,
		},
		{
			name:   "invalid data",
			method: "POST",
			url:    "/x",
			data:   42,
			err:    badDataTypeMsg,
		},
		{
			name:   "invalid JSON data",
			method: "POST",
			url:    "/x",
			data:   map[string]interface{}{"ch": make(chan int)},
			header: jsonHeader,
			err:    "json: unsupported type: chan int",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			p, err := NewPlan(testCase.method, testCase.url, testCase.data, testCase.header)
			if testCase.err != "" {
				assert.Nil(t, p)
				assert.EqualError(t, err, testCase.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.plan, p)
		})
	}
}

func TestNewPlan_HeaderCopied(t *testing.T) {
	h := map[string]string{"X-Foo": "bar"}
	p, err := NewPlan("POST", "/x", nil, h)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-Foo": "bar"}, h)
	p.Header["X-Foo"] = "changed"
	assert.Equal(t, "bar", h["X-Foo"])
}

func TestPlan_HeaderNames(t *testing.T) {
	p := &Plan{Header: map[string]string{"b": "", "C": "", "a": "", ContentType: ""}}
	assert.Equal(t, []string{"C", ContentType, "a", "b"}, p.HeaderNames())
}

func TestPlan_WithTimeout(t *testing.T) {
	p, err := NewPlan("GET", "/x", nil, nil)
	require.NoError(t, err)
	p2 := p.WithTimeout(time.Second)
	assert.NotSame(t, p, p2)
	assert.Equal(t, time.Duration(0), p.Timeout)
	assert.Equal(t, time.Second, p2.Timeout)
	assert.Equal(t, p.URL, p2.URL)
}
