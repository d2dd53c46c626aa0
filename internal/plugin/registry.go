// Package plugin hosts the inspector's optional behaviors: marking
// persistence, gap auto-marking, and demo data generation. Plugins
// attach to the session model's hooks and never reach into the views;
// anything visual still flows through the model.
package plugin

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/config"
	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/internal/storage"
)

// Plugin is one attachable behavior. Attach subscribes to the model's
// hooks; Detach releases any resources the plugin holds. Hook
// subscriptions themselves live for the session.
type Plugin interface {
	Name() string
	Attach(m *session.Model) error
	Detach()
}

// Deps carries the shared dependencies plugins draw from.
type Deps struct {
	Cfg   config.Config
	Log   zerolog.Logger
	Store storage.Store
}

// Factory builds one plugin instance.
type Factory func(deps Deps) Plugin

// Builtins returns the registry of built-in plugins. The map is
// rebuilt on every call; callers must not mutate shared state through
// it.
func Builtins() map[string]Factory {
	return map[string]Factory{
		"markingsio": func(deps Deps) Plugin { return NewMarkingsIO(deps) },
		"randomgen":  func(deps Deps) Plugin { return NewRandomGen(deps) },
	}
}

// Manager owns the attached plugin instances.
type Manager struct {
	log     zerolog.Logger
	plugins []Plugin
	byName  map[string]Plugin
}

// NewManager returns an empty plugin manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log:    log.With().Str("component", "plugin").Logger(),
		byName: make(map[string]Plugin),
	}
}

// AttachAll builds and attaches every factory to the model.
func (mgr *Manager) AttachAll(m *session.Model, factories map[string]Factory, deps Deps) error {
	for name, factory := range factories {
		p := factory(deps)
		if err := p.Attach(m); err != nil {
			return fmt.Errorf("attaching plugin %s: %w", name, err)
		}
		mgr.plugins = append(mgr.plugins, p)
		mgr.byName[name] = p
		mgr.log.Debug().Str("plugin", name).Msg("plugin attached")
	}
	return nil
}

// Get returns an attached plugin by name, nil when absent.
func (mgr *Manager) Get(name string) Plugin { return mgr.byName[name] }

// DetachAll detaches every plugin in reverse attach order.
func (mgr *Manager) DetachAll() {
	for i := len(mgr.plugins) - 1; i >= 0; i-- {
		mgr.plugins[i].Detach()
	}
	mgr.plugins = nil
	mgr.byName = make(map[string]Plugin)
}
