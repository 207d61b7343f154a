// Package units holds the read-only table of departments whose announcement
// pages are watched.
package units

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"announcer/internal/domain"

	"gopkg.in/yaml.v3"
)

type Registry struct {
	units  []domain.Unit
	byName map[string]int
}

type file struct {
	Units []domain.Unit `yaml:"units"`
}

func New(units []domain.Unit) (*Registry, error) {
	r := &Registry{
		units:  make([]domain.Unit, 0, len(units)),
		byName: make(map[string]int, len(units)),
	}

	for _, u := range units {
		u.Name = strings.TrimSpace(u.Name)
		u.URL = strings.TrimSpace(u.URL)
		u.Faculty = strings.TrimSpace(u.Faculty)

		if u.Name == "" {
			return nil, errors.New("unit name is empty")
		}

		if _, ok := r.byName[u.Name]; ok {
			return nil, fmt.Errorf("duplicate unit %q", u.Name)
		}

		parsed, err := url.Parse(u.URL)
		if err != nil || !parsed.IsAbs() {
			return nil, fmt.Errorf("unit %q has invalid URL %q", u.Name, u.URL)
		}

		r.byName[u.Name] = len(r.units)
		r.units = append(r.units, u)
	}

	return r, nil
}

// Default returns the built-in department table.
func Default() *Registry {
	r, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin unit table is invalid: %v", err))
	}

	return r
}

// Load reads the registry from a YAML file when path is set and falls back to
// the built-in table otherwise.
func Load(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read units file: %w", err)
	}

	var f file
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode units file: %w", err)
	}

	if len(f.Units) == 0 {
		return nil, fmt.Errorf("units file %s defines no units", path)
	}

	return New(f.Units)
}

func (r *Registry) Units() []domain.Unit {
	out := make([]domain.Unit, len(r.units))
	copy(out, r.units)

	return out
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.units))
	for _, u := range r.units {
		names = append(names, u.Name)
	}

	return names
}

func (r *Registry) Unit(name string) (domain.Unit, bool) {
	i, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return domain.Unit{}, false
	}

	return r.units[i], true
}

func (r *Registry) URL(name string) (string, bool) {
	u, ok := r.Unit(name)
	if !ok {
		return "", false
	}

	return u.URL, true
}
