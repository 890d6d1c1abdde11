// Package modules holds the report modules a host can invoke by name.
package modules

import (
	"slices"
	"strings"

	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/core/ports"
)

// Registry is populated explicitly at startup. It is not safe for concurrent registration.
type Registry struct {
	modules map[string]ports.ReportModule
}

// NewRegistry creates a registry holding mods.
func NewRegistry(mods ...ports.ReportModule) (*Registry, error) {
	r := &Registry{modules: make(map[string]ports.ReportModule, len(mods))}
	for _, m := range mods {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds m. Names are compared case-insensitively.
func (r *Registry) Register(m ports.ReportModule) error {
	key := normalize(m.Name())
	if key == "" {
		return domain.ErrModuleNameRequired
	}
	if _, exists := r.modules[key]; exists {
		return domain.Annotate(domain.ErrModuleAlreadyRegistered, "module", m.Name())
	}
	r.modules[key] = m
	return nil
}

// Get returns the module registered under name.
func (r *Registry) Get(name string) (ports.ReportModule, error) {
	m, ok := r.modules[normalize(name)]
	if !ok {
		return nil, domain.Annotate(domain.ErrModuleNotFound, "module", name)
	}
	return m, nil
}

// List returns every module sorted by name.
func (r *Registry) List() []ports.ReportModule {
	out := make([]ports.ReportModule, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b ports.ReportModule) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
