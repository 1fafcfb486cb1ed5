// Package reorder validates and applies drag-and-drop section reordering.
package reorder

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/types"
)

// State is the drag state of a reorder surface.
type State int

// Drag states.
const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// ErrDragInProgress is returned by Begin when another drag session is active.
var ErrDragInProgress = errors.New("a drag session is already in progress")

// ErrNotDragging is returned by Drop when no drag session is active.
var ErrNotDragging = errors.New("no drag session in progress")

// GroupFunc reports the group of a section id ("" for ungrouped templates).
type GroupFunc func(id string) (string, error)

// Move relocates activeID to overID's index, shifting the elements in
// between. It returns the original order and false when the move is a no-op
// or rejected: overID empty or equal to activeID, either id absent from
// order, or the ids in different groups.
func Move(order []string, activeID, overID string, groupOf GroupFunc) ([]string, bool) {
	if overID == "" || overID == activeID {
		return order, false
	}
	from := slices.Index(order, activeID)
	to := slices.Index(order, overID)
	if from < 0 || to < 0 {
		return order, false
	}
	if groupOf != nil {
		ga, errA := groupOf(activeID)
		gb, errB := groupOf(overID)
		if errA != nil || errB != nil || ga != gb {
			return order, false
		}
	}

	out := make([]string, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)
	out = slices.Insert(out, to, activeID)
	return out, true
}

// Patcher applies a functional update to a template configuration.
type Patcher interface {
	Patch(ctx context.Context, v registry.Variant, updater func(types.TemplateConfig) types.TemplateConfig) (types.TemplateConfig, error)
}

// Controller drives one reorder surface of a template. Only one drag
// session may be active at a time.
type Controller struct {
	mu      sync.Mutex
	variant registry.Variant
	def     registry.TemplateDefinition
	patcher Patcher
	state   State
	active  string
}

// NewController creates a controller for variant v.
func NewController(v registry.Variant, patcher Patcher) (*Controller, error) {
	def, err := registry.Lookup(v)
	if err != nil {
		return nil, err
	}
	return &Controller{variant: v, def: def, patcher: patcher}, nil
}

// State returns the current drag state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active returns the id being dragged, or "" when idle.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Begin starts a drag session on a section handle.
func (c *Controller) Begin(activeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Dragging {
		return ErrDragInProgress
	}
	if !c.def.Has(activeID) {
		return &registry.UnknownSectionError{Variant: c.variant, Section: activeID}
	}
	c.state = Dragging
	c.active = activeID
	return nil
}

// Cancel ends the drag session without changes.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	c.active = ""
}

// Drop ends the drag session over overID and applies the move if it is
// accepted. It reports whether the order changed.
func (c *Controller) Drop(ctx context.Context, overID string) (bool, error) {
	c.mu.Lock()
	if c.state != Dragging {
		c.mu.Unlock()
		return false, ErrNotDragging
	}
	activeID := c.active
	c.state = Idle
	c.active = ""
	c.mu.Unlock()

	return c.Apply(ctx, activeID, overID)
}

// Apply validates and applies a complete (activeID, overID) request. Rejected
// moves leave the configuration untouched and are not errors.
func (c *Controller) Apply(ctx context.Context, activeID, overID string) (bool, error) {
	if overID == "" || overID == activeID {
		return false, nil
	}
	if !c.def.Has(activeID) || !c.def.Has(overID) {
		return false, nil
	}
	if c.def.Grouped() {
		ga, _ := c.def.GroupOf(activeID)
		gb, _ := c.def.GroupOf(overID)
		if ga != gb {
			return false, nil
		}
	}

	moved := false
	_, err := c.patcher.Patch(ctx, c.variant, func(prev types.TemplateConfig) types.TemplateConfig {
		next, ok := Move(prev.SectionOrder, activeID, overID, c.def.GroupOf)
		if ok {
			prev.SectionOrder = next
			moved = true
		}
		return prev
	})
	if err != nil {
		return false, err
	}
	return moved, nil
}
