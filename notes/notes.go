// Package notes loads the snapshot of notes and categories that searches
// run against. Snapshots are only read, never written back.
package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/noelzubin/notefind/search"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// File names used when the snapshot is a directory.
const (
	NotesFile      = "notes.json"
	CategoriesFile = "categories.json"
)

// Collection is an in-memory snapshot of notes and categories.
type Collection struct {
	Notes      []search.Note     `json:"notes" yaml:"notes"`
	Categories []search.Category `json:"categories" yaml:"categories"`
}

// Load reads a snapshot from path.
//
// A directory is expected to hold notes.json and optionally categories.json.
// A file holds both lists, as YAML when its extension is .yaml or .yml and
// as JSON otherwise.
func Load(path string) (*Collection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}

	var c Collection
	if info.IsDir() {
		err = loadDir(path, &c)
	} else {
		err = loadFile(path, &c)
	}
	if err != nil {
		return nil, err
	}

	if err := c.normalise(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func loadDir(dir string, c *Collection) error {
	if err := readJSON(filepath.Join(dir, NotesFile), &c.Notes); err != nil {
		return err
	}
	err := readJSON(filepath.Join(dir, CategoriesFile), &c.Categories)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func loadFile(path string, c *Collection) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// normalise gives every note an id and a known priority.
func (c *Collection) normalise() error {
	for i := range c.Notes {
		n := &c.Notes[i]
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.Priority == "" {
			n.Priority = search.PriorityMedium
			continue
		}
		p, err := search.ParsePriority(string(n.Priority))
		if err != nil {
			return fmt.Errorf("note %s: %w", n.ID, err)
		}
		n.Priority = p
	}
	return nil
}

// Category returns the category with the given id, if there is one.
func (c *Collection) Category(id string) (search.Category, bool) {
	if id == "" {
		return search.Category{}, false
	}
	return lo.Find(c.Categories, func(cat search.Category) bool {
		return cat.ID == id
	})
}

// CategoryByName returns the first category whose name equals name,
// ignoring case.
func (c *Collection) CategoryByName(name string) (search.Category, bool) {
	return lo.Find(c.Categories, func(cat search.Category) bool {
		return strings.EqualFold(cat.Name, name)
	})
}
