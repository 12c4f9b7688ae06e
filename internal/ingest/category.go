package ingest

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
)

//go:embed categories.yaml
var categoryRawData []byte

// tableFile is the top-level structure of the embedded YAML.
type tableFile struct {
	Fallback struct {
		Label string `yaml:"label"`
		Icon  string `yaml:"icon"`
	} `yaml:"fallback"`
	Categories map[string]string `yaml:"categories"` // label -> icon
	Keys       map[string]string `yaml:"keys"`       // file key -> label
}

// CategoryTable maps source-file keys to general category labels and holds
// the display descriptors for those categories. The embedded YAML is parsed
// lazily on first access.
type CategoryTable struct {
	once sync.Once
	file tableFile
	err  error
}

// NewCategoryTable creates a table that parses the embedded YAML on first use.
func NewCategoryTable() *CategoryTable {
	return &CategoryTable{}
}

// Label translates a source-file key into a general category label. Unmapped
// keys (and a broken embedded table) fall back to the catch-all label.
func (t *CategoryTable) Label(key string) string {
	t.once.Do(t.load)
	if t.err == nil {
		if label, ok := t.file.Keys[key]; ok {
			return label
		}
	}
	return t.fallbackLabel()
}

// Descriptors returns the display descriptors for every general category,
// fallback included, sorted by label.
func (t *CategoryTable) Descriptors() ([]catalog.CategoryDescriptor, error) {
	t.once.Do(t.load)
	if t.err != nil {
		return nil, t.err
	}

	descriptors := make([]catalog.CategoryDescriptor, 0, len(t.file.Categories)+1)
	for label, icon := range t.file.Categories {
		descriptors = append(descriptors, catalog.CategoryDescriptor{Label: label, Icon: icon})
	}
	descriptors = append(descriptors, catalog.CategoryDescriptor{
		Label: t.fallbackLabel(),
		Icon:  t.file.Fallback.Icon,
	})
	sort.Slice(descriptors, func(a, b int) bool {
		return descriptors[a].Label < descriptors[b].Label
	})
	return descriptors, nil
}

func (t *CategoryTable) fallbackLabel() string {
	if t.err == nil && t.file.Fallback.Label != "" {
		return t.file.Fallback.Label
	}
	return "Other"
}

// load parses the embedded YAML table.
func (t *CategoryTable) load() {
	if err := yaml.Unmarshal(categoryRawData, &t.file); err != nil {
		t.err = fmt.Errorf("ingest: parse category table: %w", err)
	}
}
