// Package registry holds the static mapping from service names to embedding
// profiles. Profiles are assembled once at startup and never mutated after
// load, so lookups are safe for concurrent use without locking.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Ratio is an aspect ratio expressed as width over height.
type Ratio struct {
	W, H int
}

// DefaultRatio applies when a profile declares no aspect ratio.
var DefaultRatio = Ratio{4, 3}

// Height derives the embed height for a width, rounding to nearest.
func (r Ratio) Height(width int) int {
	if r.W <= 0 || r.H <= 0 {
		r = DefaultRatio
	}
	return (width*r.H + r.W/2) / r.W
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// Profile describes how to turn an identifier into embeddable markup for
// one external service.
//
// URLTemplate holds the playback URL with {id}, {width}, {height} and
// {url} placeholders. Extern, when set, is a full markup clause that
// replaces default element generation entirely; it may additionally use
// the {base} placeholder for the deployment's script root.
type Profile struct {
	Name         string `toml:"-"`
	URLTemplate  string `toml:"url"`
	Extern       string `toml:"extern"`
	DefaultWidth int    `toml:"width"`
	RatioW       int    `toml:"ratio_w"`
	RatioH       int    `toml:"ratio_h"`
}

// Ratio returns the profile's aspect ratio, or the default when unset.
func (p *Profile) Ratio() Ratio {
	if p.RatioW > 0 && p.RatioH > 0 {
		return Ratio{p.RatioW, p.RatioH}
	}
	return DefaultRatio
}

// Registry maps service names to profiles. Immutable after New.
type Registry struct {
	profiles map[string]*Profile
}

// New builds a registry from the built-in profiles, overlaid with custom
// profiles, filtered by the allowlist. An empty allowlist enables every
// profile. Custom profiles may redefine a builtin or add new services.
func New(custom map[string]Profile, allowlist []string) (*Registry, error) {
	merged := make(map[string]*Profile, len(builtins)+len(custom))

	for name, p := range builtins {
		cp := p
		cp.Name = name
		merged[name] = &cp
	}

	for name, p := range custom {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("custom service with empty name")
		}
		if p.URLTemplate == "" && p.Extern == "" {
			return nil, fmt.Errorf("service %q declares neither url nor extern", name)
		}
		cp := p
		cp.Name = name
		merged[name] = &cp
	}

	if len(allowlist) > 0 {
		allowed := make(map[string]bool, len(allowlist))
		for _, name := range allowlist {
			allowed[strings.ToLower(strings.TrimSpace(name))] = true
		}
		for name := range merged {
			if !allowed[name] {
				delete(merged, name)
			}
		}
	}

	return &Registry{profiles: merged}, nil
}

// Lookup returns the profile for a service name, or false when unknown.
// Names are matched case-insensitively.
func (r *Registry) Lookup(name string) (*Profile, bool) {
	p, ok := r.profiles[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns the registered service names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered services.
func (r *Registry) Len() int {
	return len(r.profiles)
}
