package telemetry

import (
	"cmp"
	"iter"
	"slices"

	"github.com/arloliu/irtelemetry/internal/hash"
)

// VarSet is the immutable catalog of variables published by one file or live session.
//
// Variables are ordered by record offset and indexed by name. When several descriptors share a
// name, the one with the lowest offset is kept. A catalog is never patched: when the set of
// variables changes a new VarSet is built.
type VarSet struct {
	vars   []VarHeader
	byName map[string]int
	fp     uint64
}

// NewVarSet builds a catalog from descriptors in any order. The slice is not retained.
func NewVarSet(vars []VarHeader) *VarSet {
	sorted := slices.Clone(vars)
	slices.SortStableFunc(sorted, func(a, b VarHeader) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	set := &VarSet{
		vars:   sorted[:0],
		byName: make(map[string]int, len(sorted)),
	}

	for _, v := range sorted {
		if _, dup := set.byName[v.Name]; dup {
			continue
		}
		set.byName[v.Name] = len(set.vars)
		set.vars = append(set.vars, v)
	}

	set.fp = fingerprint(set.vars)

	return set
}

func fingerprint(vars []VarHeader) uint64 {
	f := hash.NewFingerprint()
	for i := range vars {
		v := &vars[i]
		f.String(v.Name)
		f.String(v.Unit)
		f.Int(int64(v.Type))
		f.Int(int64(v.Offset))
		f.Int(int64(v.Count))
	}

	return f.Sum()
}

// Var looks up a variable by name.
func (s *VarSet) Var(name string) (*VarHeader, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}

	return &s.vars[i], true
}

// All returns an iterator over the variables in offset order. The iterator can be ranged over
// any number of times.
func (s *VarSet) All() iter.Seq[*VarHeader] {
	return func(yield func(*VarHeader) bool) {
		for i := range s.vars {
			if !yield(&s.vars[i]) {
				return
			}
		}
	}
}

// Len returns the number of variables.
func (s *VarSet) Len() int {
	return len(s.vars)
}

// Names returns the variable names in offset order.
func (s *VarSet) Names() []string {
	names := make([]string, len(s.vars))
	for i := range s.vars {
		names[i] = s.vars[i].Name
	}

	return names
}

// Fingerprint identifies the catalog contents. Two catalogs with the same names, units, types
// and layout in the same order have the same fingerprint.
func (s *VarSet) Fingerprint() uint64 {
	return s.fp
}
