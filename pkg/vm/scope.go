package vm

import (
	"maps"
	"sync"

	"github.com/zurustar/pixelpen/pkg/compiler/ast"
)

// Scope is the variable store of a run. pixelpen has a single flat scope, so
// there is no parent lookup.
type Scope struct {
	variables map[string]Value
	mu        sync.RWMutex
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		variables: make(map[string]Value),
	}
}

// Get retrieves a variable value by name.
//
// Returns:
//   - Value: The variable value
//   - bool: true if the variable was found, false otherwise
func (s *Scope) Get(name string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.variables[name]
	return value, ok
}

// Set creates or overwrites a variable.
func (s *Scope) Set(name string, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[name] = value
}

// CategoryOf implements ast.Env.
func (s *Scope) CategoryOf(name string) (ast.Category, bool) {
	v, ok := s.Get(name)
	if !ok {
		return ast.Error, false
	}
	return v.Category(), true
}

// Clear removes every variable.
func (s *Scope) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.variables)
}

// Len returns the number of variables.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.variables)
}

// Snapshot returns a copy of all variables.
func (s *Scope) Snapshot() map[string]Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.variables)
}
