// This file is part of arm7tdmi.
//
// arm7tdmi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// arm7tdmi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with arm7tdmi.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Registry associates preference values with key names.
type Registry struct {
	entries map[string]Pref
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Pref),
	}
}

// Add a preference value to the registry. Keys must be unique.
func (reg *Registry) Add(key string, p Pref) error {
	if _, ok := reg.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key (%s)", key)
	}
	reg.entries[key] = p
	return nil
}

// Get the preference value for key.
func (reg *Registry) Get(key string) (Value, bool) {
	p, ok := reg.entries[key]
	if !ok {
		return nil, false
	}
	return p.Get(), true
}

// Set the preference value for key.
func (reg *Registry) Set(key string, v Value) error {
	p, ok := reg.entries[key]
	if !ok {
		return fmt.Errorf("prefs: no such key (%s)", key)
	}
	return p.Set(v)
}

// Apply values from the most recent command line group to the preferences in
// the registry.
func (reg *Registry) Apply() error {
	for _, k := range reg.keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := reg.entries[k].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}
	return nil
}

// Reset all values in the registry.
func (reg *Registry) Reset() error {
	for _, k := range reg.keys() {
		if err := reg.entries[k].Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}

func (reg *Registry) keys() []string {
	keys := make([]string, 0, len(reg.entries))
	for k := range reg.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the registry as one key/value pair per line, sorted by key.
func (reg *Registry) String() string {
	s := strings.Builder{}
	for _, k := range reg.keys() {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, reg.entries[k]))
	}
	return s.String()
}
