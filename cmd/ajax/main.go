// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command ajax issues a single GET, POST, PUT or DELETE request and
// prints the response body.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/config"
	"github.com/gogama/ajax/plugin/logging"
	"github.com/gogama/ajax/request"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

var exampleUsage = strings.TrimSpace(`
  ajax get https://httpbin.org/get -d q=gophers -d page=2
  ajax post https://httpbin.org/post -d name=widget --json --query json.name
  ajax delete /items/7 --config $HOME/.ajax/config.toml --timeout 2s
`)

type flags struct {
	configPath string
	data       []string
	raw        string
	header     []string
	timeout    time.Duration
	compress   bool
	json       bool
	query      string
	verbose    bool
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "ajax",
		Short:         "Issue a single HTTP request with form-encoded data and JSON decoding",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (TOML, or YAML if named *.yaml)")
	pf.StringArrayVarP(&f.data, "data", "d", nil, "request data pair key=value (repeatable)")
	pf.StringVar(&f.raw, "raw", "", "pre-encoded request data, sent unmodified")
	pf.StringArrayVarP(&f.header, "header", "H", nil, "request header 'Name: value' (repeatable)")
	pf.DurationVar(&f.timeout, "timeout", 0, "abort the request after this long (0 disables)")
	pf.BoolVar(&f.compress, "compress", false, "request a compressed response")
	pf.BoolVar(&f.json, "json", false, "send data as JSON (sets Content-type: application/json)")
	pf.StringVarP(&f.query, "query", "q", "", "print only this gjson path of the response")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log request details to stderr")

	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		root.AddCommand(newMethodCmd(method, &f, stdout, stderr))
	}

	return root
}

func newMethodCmd(method string, f *flags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   strings.ToLower(method) + " URL",
		Short: "Issue a " + method + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(fl *pflag.Flag) { changed[fl.Name] = true })

			cfg, err := loadConfig(f, changed)
			if err != nil {
				return err
			}

			opts, err := f.options(cfg)
			if err != nil {
				return err
			}

			var handlers *ajax.HandlerGroup
			if f.verbose {
				handlers = &ajax.HandlerGroup{}
				logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
					With().Timestamp().Logger().Level(zerolog.DebugLevel)
				logging.Install(handlers, logger)
			}

			client := cfg.NewClient(handlers)
			p, err := request.NewPlan(method, cfg.ResolveURL(args[0]), opts.Data, opts.Header)
			if err != nil {
				return err
			}
			resp, err := client.Do(p)
			printResponse(stdout, stderr, resp, f.query)
			return err
		},
	}
}

func loadConfig(f *flags, changed map[string]bool) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if changed["timeout"] {
		cfg.Timeout = f.timeout
	}
	if changed["compress"] {
		cfg.Compress = f.compress
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func printResponse(stdout, stderr io.Writer, resp *request.Response, query string) {
	if resp == nil {
		return
	}

	c := color.New(color.FgGreen)
	if !request.StatusOK(resp.StatusCode) {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			c = color.New(color.FgYellow)
		} else {
			c = color.New(color.FgRed)
		}
	}
	_, _ = c.Fprintf(stderr, "%d %s\n", resp.StatusCode, resp.Header("Content-type"))

	if query != "" {
		_, _ = fmt.Fprintln(stdout, resp.Get(query).String())
		return
	}
	_, _ = io.WriteString(stdout, resp.Text)
	if !strings.HasSuffix(resp.Text, "\n") {
		_, _ = io.WriteString(stdout, "\n")
	}
}
