// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"fmt"
	"testing"

	"github.com/gogama/ajax/request"
	"github.com/stretchr/testify/assert"
)

func TestHandlerGroup(t *testing.T) {
	var evts []string
	var execs []*request.Execution
	h1 := &testHandler{seq: 1, evts: &evts, execs: &execs}
	h2 := &testHandler{seq: 2, evts: &evts, execs: &execs}
	g := &HandlerGroup{}
	t.Run("PushBack", func(t *testing.T) {
		assert.PanicsWithValue(t, "ajax: nil handler", func() { g.PushBack(BeforeExecutionStart, nil) })
		assert.PanicsWithValue(t, "ajax: unknown event", func() { g.PushBack(Event(123), h1) })
		assert.PanicsWithValue(t, "ajax: unknown event", func() { g.PushBack(Event(-1), h1) })
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushBack(AfterResponse, h1)
	})
	t.Run("run", func(t *testing.T) {
		e1 := &request.Execution{ID: "1"}
		e2 := &request.Execution{ID: "2"}
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(AfterTimeout, e1)
		assert.Empty(t, evts)
		assert.Empty(t, execs)
		g.run(BeforeExecutionStart, e1)
		assert.Equal(t, []string{"1.BeforeExecutionStart", "2.BeforeExecutionStart"}, evts)
		assert.Equal(t, []*request.Execution{e1, e1}, execs)
		evts = evts[:0]
		execs = execs[:0]
		g.run(AfterResponse, e2)
		assert.Equal(t, []string{"1.AfterResponse"}, evts)
		assert.Equal(t, []*request.Execution{e2}, execs)
	})
	t.Run("zero value", func(t *testing.T) {
		var empty HandlerGroup
		assert.NotPanics(t, func() { empty.run(AfterExecutionEnd, &request.Execution{}) })
	})
}

type testHandler struct {
	seq   int
	evts  *[]string
	execs *[]*request.Execution
}

func (h *testHandler) Handle(evt Event, e *request.Execution) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.execs = append(*h.execs, e)
}

func TestHandlerFunc(t *testing.T) {
	var _evt Event
	var _e *request.Execution
	var f = func(evt Event, e *request.Execution) {
		_evt = evt
		_e = e
	}
	h := HandlerFunc(f)
	e := &request.Execution{}
	h.Handle(BeforeSend, e)

	assert.Equal(t, BeforeSend, _evt)
	assert.Same(t, e, _e)
}
