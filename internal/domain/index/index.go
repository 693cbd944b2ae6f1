// Package index describes the searchable indexes and how their fields are compiled.
package index

import (
	"fmt"

	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
)

// DefaultTimeFields are assumed for indexes without a configured profile.
var DefaultTimeFields = []string{"createdAt", "updatedAt"}

// Profile is the per-index compilation configuration.
type Profile struct {
	name        string
	label       string
	timeFields  map[string]struct{}
	timeOrder   []string
	expiryField string
	hideExpired bool
}

// New validates and creates a Profile.
// Every time field must have a known shadow; hideExpired requires expiryField to be a time field.
func New(name, label string, timeFields []string, expiryField string, hideExpired bool) (Profile, error) {
	if name == "" {
		return Profile{}, fmt.Errorf("index name is required")
	}
	set := make(map[string]struct{}, len(timeFields))
	order := make([]string, 0, len(timeFields))
	for _, f := range timeFields {
		if !timefield.Known(f) {
			return Profile{}, fmt.Errorf("index %q: unknown time field %q", name, f)
		}
		if _, dup := set[f]; dup {
			continue
		}
		set[f] = struct{}{}
		order = append(order, f)
	}
	if hideExpired {
		if expiryField == "" {
			return Profile{}, fmt.Errorf("index %q: expiry field is required to hide expired records", name)
		}
		if _, ok := set[expiryField]; !ok {
			return Profile{}, fmt.Errorf("index %q: expiry field %q must be a time field", name, expiryField)
		}
	}
	if label == "" {
		label = DefaultLabel
	}
	return Profile{
		name:        name,
		label:       label,
		timeFields:  set,
		timeOrder:   order,
		expiryField: expiryField,
		hideExpired: hideExpired,
	}, nil
}

// DefaultLabel names the records of an index configured without a label.
const DefaultLabel = "记录"

// Default returns the profile used for an index that has no configuration.
func Default(name string) Profile {
	p, err := New(name, "", DefaultTimeFields, "", false)
	if err != nil {
		// DefaultTimeFields are static and known; only an empty name can fail.
		return Profile{name: name, label: DefaultLabel, timeFields: map[string]struct{}{}}
	}
	return p
}

// Name returns the engine index uid.
func (p Profile) Name() string { return p.name }

// Label returns the human-readable noun used in result messages.
func (p Profile) Label() string { return p.label }

// Message summarizes a result page of n hits, e.g. 找到3条政策信息.
func (p Profile) Message(n int) string {
	return fmt.Sprintf("找到%d条%s", n, p.label)
}

// TimeFields returns the logical time fields in configuration order.
func (p Profile) TimeFields() []string { return p.timeOrder }

// IsTimeField reports whether field is a logical time field of this index.
func (p Profile) IsTimeField(field string) bool {
	_, ok := p.timeFields[field]
	return ok
}

// ExpiryField returns the logical expiry field ("" when the index has none).
func (p Profile) ExpiryField() string { return p.expiryField }

// HidesExpired reports whether expired records are hidden unless the caller filters on expiry.
func (p Profile) HidesExpired() bool { return p.hideExpired }

// Registry resolves profiles by index name.
type Registry struct {
	profiles []Profile
	byName   map[string]int
}

// NewRegistry creates a Registry. Duplicate index names are rejected.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(profiles))}
	for _, p := range profiles {
		if _, dup := r.byName[p.name]; dup {
			return nil, fmt.Errorf("duplicate index profile %q", p.name)
		}
		r.byName[p.name] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

// Get returns the configured profile for name.
func (r *Registry) Get(name string) (Profile, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Profile{}, false
	}
	return r.profiles[i], true
}

// Resolve returns the configured profile or the default one.
func (r *Registry) Resolve(name string) Profile {
	if p, ok := r.Get(name); ok {
		return p
	}
	return Default(name)
}

// All returns the profiles in registration order.
func (r *Registry) All() []Profile { return r.profiles }
