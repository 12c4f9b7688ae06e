// Package ingest loads product listings from directories of static JSON
// data files. One file per source category; every product in a file shares
// the file's freshness timestamp. Ingestion never propagates failures: a
// broken directory yields an empty catalog and the error is logged.
package ingest

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
)

// sourceFile is the shape of one data file.
type sourceFile struct {
	LastUpdatedTime string            `json:"last_updated_time"`
	Products        []catalog.Product `json:"products"`
}

// timestampLayouts are tried in order when parsing a file's freshness
// timestamp. Unparsable timestamps become the zero time (sorts oldest).
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Loader reads product data files and prepares them for the catalog:
// freshness stamping, category derivation, and hyperlink validation.
type Loader struct {
	categories *CategoryTable
	logger     *zap.Logger
}

// NewLoader creates a Loader using the given category table.
func NewLoader(categories *CategoryTable, logger *zap.Logger) *Loader {
	return &Loader{categories: categories, logger: logger}
}

// LoadDir ingests every .json file in dir and returns the combined product
// list, newest files first. Unreadable or malformed files are skipped and
// logged; a missing or unreadable directory yields an empty list.
func (l *Loader) LoadDir(dir string) []catalog.Product {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Error("failed to read data directory", zap.String("dir", dir), zap.Error(err))
		return []catalog.Product{}
	}

	products := []catalog.Product{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		products = append(products, l.loadFile(filepath.Join(dir, name))...)
	}

	// Newest files first; products within a file keep their order.
	sort.SliceStable(products, func(a, b int) bool {
		return products[a].LastUpdated.After(products[b].LastUpdated)
	})
	return products
}

// loadFile reads one data file. The file name (minus extension) is the
// category key; the file-level timestamp is stamped onto every product.
func (l *Loader) loadFile(path string) []catalog.Product {
	raw, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error("failed to read data file", zap.String("file", path), zap.Error(err))
		return nil
	}

	var file sourceFile
	if err := json.Unmarshal(raw, &file); err != nil {
		l.logger.Error("failed to parse data file", zap.String("file", path), zap.Error(err))
		return nil
	}

	key := strings.TrimSuffix(filepath.Base(path), ".json")
	category := l.categories.Label(key)
	updated := parseTimestamp(file.LastUpdatedTime)
	if updated.IsZero() && file.LastUpdatedTime != "" {
		l.logger.Warn("unparsable file timestamp",
			zap.String("file", path),
			zap.String("last_updated_time", file.LastUpdatedTime),
		)
	}

	products := make([]catalog.Product, 0, len(file.Products))
	for _, p := range file.Products {
		if !validHyperlink(p.Hyperlink) {
			l.logger.Warn("dropping product with invalid hyperlink",
				zap.String("file", path),
				zap.String("asin", p.ASIN),
				zap.String("hyperlink", p.Hyperlink),
			)
			continue
		}
		p.Category = category
		p.LastUpdated = updated
		products = append(products, p)
	}
	return products
}

// parseTimestamp tries the known layouts; anything unparsable is the zero
// time, which sorts as oldest.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// validHyperlink reports whether the link is an absolute http(s) URL. The
// render path assumes valid links, so anything else is rejected here.
func validHyperlink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
