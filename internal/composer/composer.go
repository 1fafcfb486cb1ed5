// Package composer orchestrates one template variant: it initializes the
// stored configuration, exposes the toolbar actions that mutate it, and
// assembles the visible, ordered section list for rendering and export.
package composer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/reorder"
	"github.com/jonathan/resume-studio/internal/style"
	"github.com/jonathan/resume-studio/internal/types"
)

// ConfigStore is the configuration source a composer reads and patches.
type ConfigStore interface {
	reorder.Patcher
	Load(ctx context.Context, v registry.Variant) (types.TemplateConfig, error)
	// Defaulted reports whether the loaded configuration of v is the
	// registry default that was never persisted.
	Defaulted(v registry.Variant) bool
}

// Printer turns a standalone HTML page into a PDF document.
type Printer interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Composer drives one template variant for one user.
type Composer struct {
	variant  registry.Variant
	def      registry.TemplateDefinition
	store    ConfigStore
	renderer *rendering.Renderer
	reorder  *reorder.Controller

	mu    sync.Mutex
	panel Panel
}

// New creates a composer for variant v backed by store.
func New(v registry.Variant, store ConfigStore) (*Composer, error) {
	def, err := registry.Lookup(v)
	if err != nil {
		return nil, err
	}
	ctrl, err := reorder.NewController(v, store)
	if err != nil {
		return nil, err
	}
	return &Composer{
		variant:  v,
		def:      def,
		store:    store,
		renderer: rendering.NewRenderer(),
		reorder:  ctrl,
	}, nil
}

// Variant returns the template variant.
func (c *Composer) Variant() registry.Variant {
	return c.variant
}

// Reorder returns the drag-and-drop controller of the section list.
func (c *Composer) Reorder() *reorder.Controller {
	return c.reorder
}

// Mount loads the configuration and initializes it with a single patch when
// nothing was stored yet or when its order or visibility is stale against the
// registry, so the initialization is persisted once.
func (c *Composer) Mount(ctx context.Context) (types.TemplateConfig, error) {
	cfg, err := c.store.Load(ctx, c.variant)
	if err != nil {
		return types.TemplateConfig{}, fmt.Errorf("failed to load %s configuration: %w", c.variant, err)
	}
	_, changed, err := registry.Normalize(c.variant, cfg)
	if err != nil {
		return cfg, err
	}
	if !changed && !c.store.Defaulted(c.variant) {
		return cfg, nil
	}

	log.Printf("[COMPOSER] initializing %s configuration", c.variant)
	return c.store.Patch(ctx, c.variant, func(prev types.TemplateConfig) types.TemplateConfig {
		next, _, _ := registry.Normalize(c.variant, prev)
		return next
	})
}

// Config returns the current configuration.
func (c *Composer) Config(ctx context.Context) (types.TemplateConfig, error) {
	return c.store.Load(ctx, c.variant)
}

// Resolver builds a style resolver over the current configuration.
func (c *Composer) Resolver(ctx context.Context) (*style.Resolver, error) {
	cfg, err := c.Config(ctx)
	if err != nil {
		return nil, err
	}
	return style.NewResolver(c.variant, cfg)
}

// Apply patches the configuration with an arbitrary updater. The toolbar
// actions are thin wrappers over it.
func (c *Composer) Apply(ctx context.Context, updater func(types.TemplateConfig) types.TemplateConfig) (types.TemplateConfig, error) {
	return c.patch(ctx, updater)
}

func (c *Composer) patch(ctx context.Context, updater func(types.TemplateConfig) types.TemplateConfig) (types.TemplateConfig, error) {
	return c.store.Patch(ctx, c.variant, updater)
}
