package profile

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentx-labs/sitefleet/internal/tree"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// ErrNotFound is returned by Registry.Get for an unregistered name.
var ErrNotFound = errors.New("profile not found")

// Profile is one named configuration fragment.
type Profile struct {
	Name        string
	Description string
	// Fragment is the partial configuration document. Callers must Clone it
	// before mutating.
	Fragment *tree.Value
}

// Title returns the display label used in menus, e.g. "Residential Template".
func (p *Profile) Title() string {
	return cases.Title(language.English).String(p.Name) + " Template"
}

// Registry is an immutable set of profiles keyed by name.
type Registry struct {
	byName map[string]*Profile
	names  []string
}

type profileFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Config      map[string]any `yaml:"config"`
}

// Load parses every embedded profile.
func Load() (*Registry, error) {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading embedded profiles: %w", err)
	}

	var profiles []*Profile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := profileFS.ReadFile(path.Join("profiles", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading profile %s: %w", e.Name(), err)
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", e.Name(), err)
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(e.Name(), ".yaml")
		}
		profiles = append(profiles, p)
	}
	return NewRegistry(profiles...)
}

// Parse decodes a single profile document.
func Parse(data []byte) (*Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if pf.Config == nil {
		pf.Config = map[string]any{}
	}
	frag, err := tree.FromAny(pf.Config)
	if err != nil {
		return nil, fmt.Errorf("converting config: %w", err)
	}
	return &Profile{Name: pf.Name, Description: pf.Description, Fragment: frag}, nil
}

// NewRegistry builds a registry from already parsed profiles. Duplicate
// names are rejected.
func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		r.byName[p.Name] = p
		r.names = append(r.names, p.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Get returns the named profile.
func (r *Registry) Get(name string) (*Profile, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrNotFound, name, strings.Join(r.names, ", "))
	}
	return p, nil
}

// List returns all profiles sorted by name.
func (r *Registry) List() []*Profile {
	out := make([]*Profile, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}
