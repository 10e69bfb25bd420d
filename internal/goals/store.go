package goals

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"goalcal/internal/fsutil"
	appLog "goalcal/internal/log"
	"goalcal/internal/model"
)

// fileFormat is the on-disk layout of the goals file.
type fileFormat struct {
	Goals []*model.Goal `yaml:"goals"`
}

// Store persists the goal collection as YAML. The file order is the goal
// processing order, so it decides lane assignment and draw order.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads all goals. A missing file is an empty collection. Invalid
// entries are logged and skipped so one bad line does not hide the rest.
func (s *Store) Load() ([]*model.Goal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.Goal{}, nil
		}
		return nil, err
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("goals: parse %s: %w", s.path, err)
	}

	out := make([]*model.Goal, 0, len(f.Goals))
	for i, g := range f.Goals {
		if err := Validate(g); err != nil {
			appLog.Error("goals: skipping invalid entry", err, "path", s.path, "index", i)
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// Save validates and atomically writes the whole collection.
func (s *Store) Save(list []*model.Goal) error {
	for _, g := range list {
		if err := Validate(g); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(fileFormat{Goals: list})
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(s.path, data)
}

// Add appends a goal. Names are unique (case-insensitive) so the CLI can
// address goals by name.
func (s *Store) Add(g *model.Goal) error {
	if err := Validate(g); err != nil {
		return err
	}
	list, err := s.Load()
	if err != nil {
		return err
	}
	if _, _, ok := Find(list, g.Name); ok {
		return fmt.Errorf("%q: %w", g.Name, ErrDuplicate)
	}
	return s.Save(append(list, g))
}

// Update replaces the goal named name with g, keeping its position.
func (s *Store) Update(name string, g *model.Goal) error {
	if err := Validate(g); err != nil {
		return err
	}
	list, err := s.Load()
	if err != nil {
		return err
	}
	_, i, ok := Find(list, name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if other, j, dup := Find(list, g.Name); dup && j != i {
		return fmt.Errorf("%q: %w", other.Name, ErrDuplicate)
	}
	list[i] = g
	return s.Save(list)
}

// Remove deletes the goal named name.
func (s *Store) Remove(name string) error {
	list, err := s.Load()
	if err != nil {
		return err
	}
	_, i, ok := Find(list, name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return s.Save(append(list[:i], list[i+1:]...))
}
