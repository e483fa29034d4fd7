// Package steplock wires the item store, resolver, and generation service
// into a single application facade consumed by commands and the TUI.
package steplock

import (
	"github.com/hay-kot/steplock/internal/core/config"
	"github.com/hay-kot/steplock/internal/core/eventbus"
	"github.com/hay-kot/steplock/internal/core/taskgen"
	"github.com/hay-kot/steplock/internal/data/stores"
)

// App is the central entry point for all steplock operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Items *stores.ItemStore
	Gen   *GenerateService

	Config *config.Config
	Bus    *eventbus.EventBus
}

// NewApp constructs an App from explicit dependencies. The generator may be
// nil, in which case generation commands report that no credential is set.
func NewApp(items *stores.ItemStore, gen taskgen.Generator, cfg *config.Config, bus *eventbus.EventBus) *App {
	return &App{
		Items:  items,
		Gen:    NewGenerateService(items, gen, cfg.Generator.MaxBatch),
		Config: cfg,
		Bus:    bus,
	}
}
