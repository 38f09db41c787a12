// Package store provides persistence for named parameter sets.
package store

import "meridianlab.net/paramset/internal/eval"

// Document is the stored unit: a parameter dictionary plus its global
// constants, under a caller-chosen name.
type Document struct {
	Parameters map[string]*eval.Parameter `json:"parameters" yaml:"parameters"`
	Globals    map[string]any             `json:"globals,omitempty" yaml:"globals,omitempty"`
}

// Store is the interface for parameter-set persistence.
type Store interface {
	// Save stores a document by name, overwriting if it exists.
	Save(name string, doc *Document) error
	// Load retrieves a document by name. Returns nil if not found.
	Load(name string) (*Document, error)
	// List returns all stored document names, sorted.
	List() ([]string, error)
	// Delete removes a document by name.
	Delete(name string) error
	// Close releases resources.
	Close() error
}
