// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides ajax event handlers which write structured
// log entries using zerolog.
//
// Install the handlers into the handler group of a client:
//
//	handlers := &ajax.HandlerGroup{}
//	logging.Install(handlers, zerolog.New(os.Stderr).With().Timestamp().Logger())
//	client := &ajax.Client{Handlers: handlers}
package logging

import (
	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/rs/zerolog"
)

// Install adds logging handlers for the BeforeSend, AfterTimeout and
// AfterExecutionEnd events to the back of g's handler chains.
//
// Sends are logged at debug level, timeouts at warn level, and the end
// of each request at info level if it succeeded, warn level if it ended
// with an HTTPStatus error, and error level otherwise.
func Install(g *ajax.HandlerGroup, logger zerolog.Logger) {
	h := &handler{logger: logger}
	g.PushBack(ajax.BeforeSend, h)
	g.PushBack(ajax.AfterTimeout, h)
	g.PushBack(ajax.AfterExecutionEnd, h)
}

type handler struct {
	logger zerolog.Logger
}

func (h *handler) Handle(evt ajax.Event, e *request.Execution) {
	switch evt {
	case ajax.BeforeSend:
		h.with(h.logger.Debug(), e).
			Dur("timeout", e.Timeout).
			Int("body_bytes", len(e.Plan.Body)).
			Msg("sending request")
	case ajax.AfterTimeout:
		h.with(h.logger.Warn(), e).
			Dur("timeout", e.Timeout).
			Msg("request timed out")
	case ajax.AfterExecutionEnd:
		h.end(e)
	}
}

func (h *handler) end(e *request.Execution) {
	var event *zerolog.Event
	switch ajax.KindOf(e.Err) {
	case 0:
		event = h.logger.Info()
	case ajax.HTTPStatus:
		event = h.logger.Warn()
	default:
		event = h.logger.Error()
	}
	event = h.with(event, e).
		Int("status", e.StatusCode()).
		Dur("duration", e.Duration())
	if e.Err != nil {
		event = event.Err(e.Err).Str("kind", ajax.KindOf(e.Err).String())
	}
	event.Msg("request finished")
}

func (h *handler) with(event *zerolog.Event, e *request.Execution) *zerolog.Event {
	return event.
		Str("request_id", e.ID).
		Str("method", e.Plan.Method).
		Str("url", e.Plan.URL)
}
