// Package nav derives sidebar state from the current route path: which
// leaf item is active and which top-level section is expanded.
package nav

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrEmptyTree = errors.New("nav: navigation tree is empty")

// Item is one sidebar entry. Leaves carry an Href; section headers
// carry a Section name and Children.
type Item struct {
	Label    string `yaml:"label"`
	Href     string `yaml:"href,omitempty"`
	Exact    bool   `yaml:"exact,omitempty"`
	Section  string `yaml:"section,omitempty"`
	Children []Item `yaml:"children,omitempty"`
}

// Rule maps a route-path prefix to the section that should auto-expand.
// Rules are checked in order; only the first match applies.
type Rule struct {
	Prefix  string `yaml:"prefix"`
	Section string `yaml:"section"`
}

// Model holds the static tree plus the per-section expansion flags,
// which mix route-driven auto-expansion with manual toggling.
type Model struct {
	items    []Item
	rules    []Rule
	expanded map[string]bool
}

func New(items []Item, rules []Rule) *Model {
	return &Model{
		items:    items,
		rules:    rules,
		expanded: make(map[string]bool),
	}
}

type document struct {
	Items  []Item `yaml:"items"`
	Expand []Rule `yaml:"expand"`
}

// Load reads a YAML navigation document ({items: [...], expand: [...]}).
func Load(r io.Reader) (*Model, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, ErrEmptyTree
	}
	return New(doc.Items, doc.Expand), nil
}

// Items returns the static tree.
func (m *Model) Items() []Item {
	return m.items
}

// ActiveHref resolves the active leaf for path: exact match for items
// flagged exact, prefix match otherwise, first match in tree order.
func (m *Model) ActiveHref(path string) string {
	return activeHref(m.items, path)
}

func activeHref(items []Item, path string) string {
	for _, item := range items {
		if item.Href != "" && matches(item, path) {
			return item.Href
		}
		if href := activeHref(item.Children, path); href != "" {
			return href
		}
	}
	return ""
}

func matches(item Item, path string) bool {
	if item.Exact {
		return path == item.Href
	}
	return strings.HasPrefix(path, item.Href)
}

// AutoExpand applies the route-change rule: exactly the first rule
// whose prefix matches path gets its section expanded. Sections the
// operator toggled open by hand are left alone. Returns the section
// that matched, or "".
func (m *Model) AutoExpand(path string) string {
	for _, rule := range m.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			m.expanded[rule.Section] = true
			return rule.Section
		}
	}
	return ""
}

// Toggle flips a section's expansion independent of the route.
func (m *Model) Toggle(section string) {
	m.expanded[section] = !m.expanded[section]
}

// Expanded reports whether a section is currently open.
func (m *Model) Expanded(section string) bool {
	return m.expanded[section]
}
