// Package builtins holds the immutable table of named functions callable from
// expressions, and dispatches calls to the engine with an arity check.
package builtins

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"athena/internal/engine"
)

// Descriptor describes one builtin. Arity is len(Params).
type Descriptor struct {
	Name   string
	Params []string
	Fn     engine.Func
}

func (d Descriptor) Arity() int { return len(d.Params) }

// String renders the signature, e.g. "deriv(f, x)".
func (d Descriptor) String() string {
	return d.Name + "(" + strings.Join(d.Params, ", ") + ")"
}

var (
	ErrDuplicate = errors.New("duplicate builtin")
	ErrInvalid   = errors.New("invalid builtin")
)

// Registry maps names to descriptors. It is read-only after New and safe to
// share across goroutines.
type Registry struct {
	byName      map[string]Descriptor
	names       []string
	fingerprint string
}

// New builds a registry from descs. It rejects duplicate or empty names and
// descriptors without a valid engine function.
func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]Descriptor, len(descs)),
		names:  make([]string, 0, len(descs)),
	}
	for _, d := range descs {
		if d.Name == "" || !d.Fn.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalid, d.String())
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, d.Name)
		}
		d.Params = slices.Clone(d.Params)
		r.byName[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	slices.Sort(r.names)

	h := sha256.New()
	for _, name := range r.names {
		d := r.byName[name]
		fmt.Fprintf(h, "%s=%s;", d.String(), d.Fn)
	}
	r.fingerprint = hex.EncodeToString(h.Sum(nil))
	return r, nil
}

// Default builds a new registry over the standard table.
func Default() *Registry {
	r, err := New(Standard()...)
	if err != nil {
		panic(fmt.Sprintf("builtins: standard table: %v", err))
	}
	return r
}

// Fingerprint identifies the table: registries with the same signatures
// bound to the same engine functions share it.
func (r *Registry) Fingerprint() string {
	if r == nil {
		return ""
	}
	return r.fingerprint
}

func (r *Registry) Lookup(name string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	d, ok := r.byName[name]
	return d, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Call applies d to args. An arity mismatch yields eng.Undef() without
// reaching the engine function.
func Call(eng engine.Engine, d Descriptor, args []engine.Value) engine.Value {
	if len(args) != len(d.Params) {
		return eng.Undef()
	}
	return eng.Apply(d.Fn, args)
}
