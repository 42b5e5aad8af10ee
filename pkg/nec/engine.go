// Package nec implements the code-rule formula library: ampacity derating,
// voltage drop, equipment-grounding-conductor sizing, and raceway fill.
//
// All functions are stateless; table data comes from an injected
// tables.Provider rather than package-level caches.
package nec

import (
	"github.com/gridwright/oneline/pkg/tables"
)

// Engine evaluates code formulas against an injected table provider.
type Engine struct {
	tables *tables.Provider
}

// NewEngine returns an Engine over the given provider.
func NewEngine(provider *tables.Provider) *Engine {
	return &Engine{tables: provider}
}

// Tables exposes the underlying provider for callers that need raw lookups.
func (e *Engine) Tables() *tables.Provider {
	return e.tables
}
