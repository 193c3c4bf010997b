// Package tabular parses uploaded bank statements (CSV or Excel) into
// normalized rows.
package tabular

import (
	"io"
	"strings"
)

// Row is one normalized statement line. Date is YYYY-MM-DD; amounts are
// minor currency units, at most one of them positive.
type Row struct {
	Date        string
	Description string
	Income      int64
	Expense     int64
}

// Parser converts a statement byte stream into Rows, preserving file
// order. Rows without a usable date are skipped, not reported.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds parsers keyed by file extension.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser under the given extensions. Panics on duplicates.
func (r *Registry) Register(p Parser, exts ...string) {
	for _, ext := range exts {
		key := strings.ToLower(ext)
		if _, ok := r.parsers[key]; ok {
			panic("duplicate parser extension: " + key)
		}
		r.parsers[key] = p
	}
}

// Get returns the parser for a file extension, or nil.
func (r *Registry) Get(ext string) Parser {
	return r.parsers[strings.ToLower(ext)]
}

// DefaultRegistry returns a registry with the built-in parsers. The xls
// extension is accepted and routed to the spreadsheet parser.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{}, "csv")
	r.Register(&XLSXParser{}, "xlsx", "xls")
	return r
}
