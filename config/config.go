// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads ajax client settings from TOML or YAML files and
// from the environment, and builds clients from them.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/timeout"
	"github.com/gogama/ajax/xhr"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvTimeout  = "AJAX_TIMEOUT"
	EnvCompress = "AJAX_COMPRESS"
	EnvBaseURL  = "AJAX_BASE_URL"
)

// Config holds client settings.
type Config struct {
	// Timeout is the timeout armed on every request. Zero disables it.
	Timeout time.Duration `validate:"gte=0"`
	// Compress requests compressed responses.
	Compress bool
	// BaseURL, if set, is the URL relative request URLs are resolved
	// against.
	BaseURL string `validate:"omitempty,url"`
	// Header holds headers sent with every request, unless the request
	// sets a header with the same exact name.
	Header map[string]string `validate:"dive,keys,required,endkeys,printascii"`
}

// fileConfig mirrors Config but uses a string for the duration to make
// it TOML and YAML friendly.
type fileConfig struct {
	Timeout  string            `toml:"timeout" yaml:"timeout"`
	Compress *bool             `toml:"compress" yaml:"compress"`
	BaseURL  string            `toml:"base_url" yaml:"base_url"`
	Header   map[string]string `toml:"header" yaml:"header"`
}

// Load reads a configuration file. Files named *.yaml or *.yml are
// parsed as YAML; anything else is parsed as TOML.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(b)
	default:
		return ParseTOML(b)
	}
}

// ParseTOML parses a TOML configuration document.
func ParseTOML(b []byte) (Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return fc.toConfig()
}

// ParseYAML parses a YAML configuration document.
func ParseYAML(b []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return fc.toConfig()
}

func (fc fileConfig) toConfig() (Config, error) {
	var c Config
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("config: timeout: %w", err)
		}
		c.Timeout = d
	}
	if fc.Compress != nil {
		c.Compress = *fc.Compress
	}
	c.BaseURL = fc.BaseURL
	c.Header = fc.Header
	return c, nil
}

// ApplyEnv overrides c with any of the AJAX_* environment variables that
// lookup reports as set. Pass os.LookupEnv to read the process
// environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvCompress); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvCompress, err)
		}
		c.Compress = b
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

// NewClient builds a client from the configuration. The handlers
// parameter may be nil.
func (c Config) NewClient(handlers *ajax.HandlerGroup) *ajax.Client {
	return &ajax.Client{
		Transport:     &xhr.HTTPFactory{Compress: c.Compress},
		TimeoutPolicy: timeout.Fixed(c.Timeout),
		Handlers:      handlers,
	}
}

// MergeHeader returns a new map holding the configured headers
// overlaid with h. Entries in h win.
func (c Config) MergeHeader(h map[string]string) map[string]string {
	m := make(map[string]string, len(c.Header)+len(h))
	for k, v := range c.Header {
		m[k] = v
	}
	for k, v := range h {
		m[k] = v
	}
	return m
}

// ResolveURL resolves ref against BaseURL. If BaseURL is empty, ref is
// returned unchanged. A ref carrying a scheme or host, including a
// protocol-relative one, is resolved per RFC 3986. Any other ref is
// taken relative to the path of BaseURL, even when it starts with "/".
func (c Config) ResolveURL(ref string) string {
	if c.BaseURL == "" {
		return ref
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() || r.Host != "" {
		return base.ResolveReference(r).String()
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		base.RawPath = ""
	}
	r.Path = strings.TrimPrefix(r.Path, "/")
	r.RawPath = strings.TrimPrefix(r.RawPath, "/")
	return base.ResolveReference(r).String()
}
