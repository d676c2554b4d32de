package state

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/felixgeelhaar/richfield/internal/editor/document"
	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
	"github.com/felixgeelhaar/richfield/internal/toolbar/deps"
)

// Phase is the synchronizer's position in its derivation cycle.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseComputing
	PhasePublished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseComputing:
		return "computing"
	case PhasePublished:
		return "published"
	}
	return "unknown"
}

// Transition is the outcome of one trigger.
type Transition int

const (
	// TransitionPublished replaced the current snapshot.
	TransitionPublished Transition = iota
	// TransitionSkipped kept the current snapshot because the selection has
	// a shape the toolbar does not derive from.
	TransitionSkipped
	// TransitionDiscarded dropped a derivation whose surface stopped being
	// the active one while it ran.
	TransitionDiscarded
)

func (t Transition) String() string {
	switch t {
	case TransitionPublished:
		return "published"
	case TransitionSkipped:
		return "skipped"
	case TransitionDiscarded:
		return "discarded"
	}
	return "unknown"
}

// Stats counts transitions since Start.
type Stats struct {
	Published uint64
	Skipped   uint64
	Discarded uint64
}

// Trigger names what caused a derivation. It is only used for logging.
type Trigger string

const (
	TriggerStart           Trigger = "start"
	TriggerSelectionChange Trigger = "selection-change"
	TriggerUpdate          Trigger = "update"
	TriggerEditable        Trigger = "editable"
	TriggerCanUndo         Trigger = "can-undo"
	TriggerCanRedo         Trigger = "can-redo"
	TriggerRefresh         Trigger = "refresh"
)

type observer struct {
	id uint64
	fn func(Snapshot)
}

// Synchronizer keeps the published Snapshot in step with the active editing
// surface.
//
// It registers on the top-level surface for selection changes and
// editability, and on the active surface for updates and history
// availability. When focus moves into or out of a nested surface the
// active-surface registrations are released and rebound.
type Synchronizer struct {
	deps   *deps.RenderDependencies
	logger *slog.Logger

	current    atomic.Pointer[Snapshot]
	phase      atomic.Int32
	generation atomic.Uint64

	published atomic.Uint64
	skipped   atomic.Uint64
	discarded atomic.Uint64

	mu           sync.Mutex
	started      bool
	editorSubs   sdk.Subscriptions
	surfaceSubs  sdk.Subscriptions
	nextObserver uint64
	observers    []observer
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynchronizer creates a synchronizer for the surfaces tracked by d. It
// publishes nothing until Start.
func NewSynchronizer(d *deps.RenderDependencies, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		deps:   d,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	initial := DefaultSnapshot()
	s.current.Store(&initial)
	return s
}

// Start registers the listeners and derives the first snapshot.
func (s *Synchronizer) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	top := s.deps.TopSurface()
	s.editorSubs.Add(
		top.RegisterCommand(sdk.CommandSelectionChange, s.onSelectionChange, sdk.PriorityCritical),
		top.RegisterEditableListener(s.onEditable),
	)
	s.mu.Unlock()

	s.bind(s.deps.ActiveSurface())
	s.recompute(TriggerStart)
}

// Stop releases every registration. The last snapshot stays readable.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	s.surfaceSubs.ReleaseAll()
	s.editorSubs.ReleaseAll()
}

// Snapshot returns the current snapshot.
func (s *Synchronizer) Snapshot() Snapshot { return *s.current.Load() }

// Phase returns the current phase.
func (s *Synchronizer) Phase() Phase { return Phase(s.phase.Load()) }

// Stats returns the transition counters.
func (s *Synchronizer) Stats() Stats {
	return Stats{
		Published: s.published.Load(),
		Skipped:   s.skipped.Load(),
		Discarded: s.discarded.Load(),
	}
}

// OnPublish registers fn to run after every published snapshot.
func (s *Synchronizer) OnPublish(fn func(Snapshot)) *sdk.Subscription {
	s.mu.Lock()
	s.nextObserver++
	id := s.nextObserver
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return sdk.NewSubscription(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	})
}

// Refresh derives a snapshot from the active surface now.
func (s *Synchronizer) Refresh() Transition {
	return s.recompute(TriggerRefresh)
}

func (s *Synchronizer) onSelectionChange(_ any, origin sdk.Surface) bool {
	if origin != nil && origin.ID() != s.deps.ActiveSurface().ID() {
		s.switchSurface(origin)
	}
	s.recompute(TriggerSelectionChange)
	// Other selection listeners must still run.
	return false
}

func (s *Synchronizer) onEditable(editable bool) {
	s.deps.SetEditable(editable)
	s.recompute(TriggerEditable)
}

func (s *Synchronizer) switchSurface(next sdk.Surface) {
	s.generation.Add(1)
	s.deps.SetActiveSurface(next)
	s.surfaceSubs.ReleaseAll()
	s.bind(next)
}

// bind registers the active-surface listeners.
func (s *Synchronizer) bind(surface sdk.Surface) {
	s.surfaceSubs.Add(
		surface.RegisterUpdateListener(func(sdk.UpdateEvent) {
			s.recompute(TriggerUpdate)
		}),
		surface.RegisterCommand(sdk.CommandCanUndo, func(payload any, _ sdk.Surface) bool {
			if v, ok := payload.(bool); ok {
				s.amend(TriggerCanUndo, func(snap *Snapshot) { snap.CanUndo = v })
			}
			return false
		}, sdk.PriorityCritical),
		surface.RegisterCommand(sdk.CommandCanRedo, func(payload any, _ sdk.Surface) bool {
			if v, ok := payload.(bool); ok {
				s.amend(TriggerCanRedo, func(snap *Snapshot) { snap.CanRedo = v })
			}
			return false
		}, sdk.PriorityCritical),
	)
}

func (s *Synchronizer) recompute(trigger Trigger) Transition {
	surface := s.deps.ActiveSurface()
	gen := s.generation.Load()
	before := s.phase.Swap(int32(PhaseComputing))
	prev := s.Snapshot()
	nested := surface.ID() != s.deps.TopSurface().ID() && surface.Nested()

	var (
		next Snapshot
		ok   bool
	)
	surface.Read(func(st *document.State) {
		next, ok = derive(st, prev, nested)
	})

	if s.generation.Load() != gen {
		s.phase.CompareAndSwap(int32(PhaseComputing), before)
		s.discarded.Add(1)
		s.logger.Debug("toolbar derivation discarded",
			"trigger", string(trigger),
			"surface_id", surface.ID(),
		)
		return TransitionDiscarded
	}
	if !ok {
		s.phase.CompareAndSwap(int32(PhaseComputing), before)
		s.skipped.Add(1)
		s.logger.Debug("toolbar derivation skipped",
			"trigger", string(trigger),
			"surface_id", surface.ID(),
		)
		return TransitionSkipped
	}

	s.publish(next)
	return TransitionPublished
}

// amend publishes a copy of the current snapshot changed by fn.
func (s *Synchronizer) amend(trigger Trigger, fn func(*Snapshot)) {
	s.phase.Store(int32(PhaseComputing))
	next := s.Snapshot()
	fn(&next)
	s.publish(next)
	s.logger.Debug("toolbar snapshot amended", "trigger", string(trigger))
}

func (s *Synchronizer) publish(next Snapshot) {
	s.current.Store(&next)
	s.phase.Store(int32(PhasePublished))
	s.published.Add(1)

	s.mu.Lock()
	observers := append([]observer(nil), s.observers...)
	s.mu.Unlock()
	for _, o := range observers {
		o.fn(next)
	}
}
