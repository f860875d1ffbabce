// Package nativeapp maps public native-app aliases to the app records backing them.
//
// Native apps ship inside World App itself. They are published under a
// stable alias (for example WORLD_CHAT) while their metadata lives on a
// regular developer portal app.
package nativeapp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidEntry is returned when a registry file contains an unusable entry.
var ErrInvalidEntry = errors.New("invalid native app entry")

// App describes a native app alias.
type App struct {
	AppID          string `yaml:"app_id"`
	IntegrationURL string `yaml:"integration_url"`
}

// file is the on-disk layout: environment -> alias -> app.
type file map[string]map[string]App

// Registry resolves aliases for a single environment.
type Registry struct {
	apps map[string]App
}

// New builds a registry from an alias map.
func New(apps map[string]App) *Registry {
	r := &Registry{apps: make(map[string]App, len(apps))}
	for alias, app := range apps {
		r.apps[alias] = app
	}
	return r
}

// Empty returns a registry without aliases.
func Empty() *Registry {
	return New(nil)
}

// Load reads the registry file at path and keeps the entries of env.
// An empty path yields an empty registry.
func Load(path, env string) (*Registry, error) {
	if path == "" {
		return Empty(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read native apps file: %w", err)
	}

	return Parse(data, env)
}

// Parse decodes registry YAML and keeps the entries of env.
func Parse(data []byte, env string) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse native apps file: %w", err)
	}

	apps := f[env]
	for alias, app := range apps {
		if err := validate(alias, app); err != nil {
			return nil, err
		}
	}

	return New(apps), nil
}

func validate(alias string, app App) error {
	if strings.TrimSpace(alias) == "" {
		return fmt.Errorf("%w: empty alias", ErrInvalidEntry)
	}
	if !strings.HasPrefix(app.AppID, "app_") {
		return fmt.Errorf("%w: %s: app_id %q must start with app_", ErrInvalidEntry, alias, app.AppID)
	}
	if app.IntegrationURL == "" {
		return fmt.Errorf("%w: %s: integration_url is required", ErrInvalidEntry, alias)
	}
	return nil
}

// Lookup returns the native app registered under alias.
func (r *Registry) Lookup(alias string) (App, bool) {
	app, ok := r.apps[alias]
	return app, ok
}

// Aliases returns the registered aliases in sorted order.
func (r *Registry) Aliases() []string {
	aliases := make([]string, 0, len(r.apps))
	for alias := range r.apps {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Len returns the number of aliases.
func (r *Registry) Len() int {
	return len(r.apps)
}
