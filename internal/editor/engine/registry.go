package engine

import (
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

const priorityLevels = int(sdk.PriorityCritical) + 1

type handlerEntry struct {
	id      uint64
	handler sdk.CommandHandler
}

// CommandRegistry holds command handlers per command and priority.
type CommandRegistry struct {
	mu       sync.RWMutex
	handlers map[sdk.Command]*[priorityLevels][]handlerEntry
	nextID   uint64
	logger   *slog.Logger
}

// NewCommandRegistry creates an empty registry.
func NewCommandRegistry(logger *slog.Logger) *CommandRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandRegistry{
		handlers: make(map[sdk.Command]*[priorityLevels][]handlerEntry),
		logger:   logger,
	}
}

// Register adds a handler for cmd at priority p.
func (r *CommandRegistry) Register(cmd sdk.Command, h sdk.CommandHandler, p sdk.Priority) *sdk.Subscription {
	if p < sdk.PriorityEditor || p > sdk.PriorityCritical {
		p = sdk.PriorityEditor
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	levels, ok := r.handlers[cmd]
	if !ok {
		levels = &[priorityLevels][]handlerEntry{}
		r.handlers[cmd] = levels
	}
	levels[p] = append(levels[p], handlerEntry{id: id, handler: h})
	r.mu.Unlock()

	r.logger.Debug("registered command handler",
		"command", string(cmd),
		"priority", int(p),
	)

	return sdk.NewSubscription(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		levels, ok := r.handlers[cmd]
		if !ok {
			return
		}
		entries := levels[p]
		for i, e := range entries {
			if e.id == id {
				levels[p] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
	})
}

// Handlers returns a copy of the handlers registered for cmd at priority p,
// in registration order.
func (r *CommandRegistry) Handlers(cmd sdk.Command, p sdk.Priority) []sdk.CommandHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	levels, ok := r.handlers[cmd]
	if !ok {
		return nil
	}
	out := make([]sdk.CommandHandler, 0, len(levels[p]))
	for _, e := range levels[p] {
		out = append(out, e.handler)
	}
	return out
}

// HandlerCount returns the number of handlers registered for cmd.
func (r *CommandRegistry) HandlerCount(cmd sdk.Command) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	levels, ok := r.handlers[cmd]
	if !ok {
		return 0
	}
	count := 0
	for _, entries := range levels {
		count += len(entries)
	}
	return count
}
