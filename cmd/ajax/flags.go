// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/config"
	"github.com/gogama/ajax/request"
)

func (f *flags) options(cfg config.Config) (*ajax.Options, error) {
	if f.raw != "" && len(f.data) > 0 {
		return nil, errors.New("--raw and --data are mutually exclusive")
	}

	header, err := parseHeaders(f.header)
	if err != nil {
		return nil, err
	}
	if f.json {
		header[request.ContentType] = "application/json"
	}

	opts := &ajax.Options{
		Header: cfg.MergeHeader(header),
	}
	if f.raw != "" {
		opts.Data = f.raw
	} else if len(f.data) > 0 {
		fields, err := parseData(f.data)
		if err != nil {
			return nil, err
		}
		opts.Data = fields
	}
	return opts, nil
}

// parseData turns key=value arguments into ordered fields. A pair
// without "=" gets an empty value.
func parseData(pairs []string) (request.Fields, error) {
	var f request.Fields
	for _, p := range pairs {
		k, v, _ := strings.Cut(p, "=")
		if k == "" {
			return nil, fmt.Errorf("invalid data pair %q: empty key", p)
		}
		f = f.Add(k, v)
	}
	return f, nil
}

// parseHeaders turns "Name: value" arguments into a header map, keeping
// each name exactly as written.
func parseHeaders(lines []string) (map[string]string, error) {
	h := make(map[string]string, len(lines))
	for _, l := range lines {
		k, v, ok := strings.Cut(l, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header %q: want 'Name: value'", l)
		}
		h[k] = strings.TrimSpace(v)
	}
	return h, nil
}
