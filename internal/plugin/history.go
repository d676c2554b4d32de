package plugin

import (
	"sync"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

// historyDepth bounds the undo stack.
const historyDepth = 100

type history struct {
	mu      sync.Mutex
	undo    []*document.State
	redo    []*document.State
	canUndo bool
	canRedo bool
}

func (h *history) record(prev *document.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append(h.undo, prev)
	if len(h.undo) > historyDepth {
		h.undo = h.undo[len(h.undo)-historyDepth:]
	}
	h.redo = nil
}

// step pops one version from from and pushes current onto to.
func (h *history) step(from, to *[]*document.State, current *document.State) *document.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(*from) == 0 {
		return nil
	}
	target := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, current)
	return target
}

// changes reports availability flags that differ from the last reported ones.
func (h *history) changes() (undo, redo, undoChanged, redoChanged bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	undo, redo = len(h.undo) > 0, len(h.redo) > 0
	undoChanged, redoChanged = undo != h.canUndo, redo != h.canRedo
	h.canUndo, h.canRedo = undo, redo
	return undo, redo, undoChanged, redoChanged
}

func installHistory(s sdk.Surface, _ Env) []*sdk.Subscription {
	h := &history{}

	notify := func() {
		undo, redo, undoChanged, redoChanged := h.changes()
		if undoChanged {
			s.Dispatch(sdk.CommandCanUndo, undo)
		}
		if redoChanged {
			s.Dispatch(sdk.CommandCanRedo, redo)
		}
	}

	restore := func(from, to *[]*document.State) bool {
		var current *document.State
		s.Read(func(st *document.State) { current = st })
		target := h.step(from, to, current)
		if target == nil {
			return false
		}
		s.Update(func(st *document.State) { st.Replace(target) }, sdk.WithTag(sdk.TagHistoric))
		notify()
		return true
	}

	onUpdate := func(e sdk.UpdateEvent) {
		if !e.Dirty || e.HasTag(sdk.TagHistoric) {
			return
		}
		h.record(e.Previous)
		notify()
	}

	return []*sdk.Subscription{
		s.RegisterUpdateListener(onUpdate),
		s.RegisterCommand(sdk.CommandUndo, func(any, sdk.Surface) bool {
			return restore(&h.undo, &h.redo)
		}, sdk.PriorityEditor),
		s.RegisterCommand(sdk.CommandRedo, func(any, sdk.Surface) bool {
			return restore(&h.redo, &h.undo)
		}, sdk.PriorityEditor),
	}
}
