// Package association synchronizes one side of a many-to-many relationship with
// a submitted selection.
package association

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Set is a membership set of identifiers.
type Set[ID comparable] map[ID]struct{}

func NewSet[ID comparable](ids ...ID) Set[ID] {
	s := make(Set[ID], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set[ID]) Add(id ID) { s[id] = struct{}{} }

func (s Set[ID]) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

func (s Set[ID]) Len() int { return len(s) }

// IDs returns the identifiers present in items.
func IDs[E any, ID comparable](items []E, key func(E) ID) Set[ID] {
	out := make(Set[ID], len(items))
	for _, it := range items {
		out.Add(key(it))
	}
	return out
}

// Delta is the explicit link change set produced by Reconcile.
type Delta[E any] struct {
	Added   []E
	Removed []E
}

func (d Delta[E]) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

// Reconcile makes the identifiers of *current equal desired, restricted to the
// members of universe. Iteration follows universe order: additions are appended
// in that order, removals drop the single matching member and keep the relative
// order of the rest. Identifiers in desired that universe does not contain are
// ignored. The returned delta lists exactly the links added and removed.
func Reconcile[E any, ID comparable](desired Set[ID], current *[]E, universe []E, key func(E) ID) Delta[E] {
	var delta Delta[E]
	if current == nil || key == nil {
		return delta
	}
	present := IDs(*current, key)
	for _, e := range universe {
		id := key(e)
		want := desired.Has(id)
		have := present.Has(id)
		switch {
		case want && !have:
			*current = append(*current, e)
			present.Add(id)
			delta.Added = append(delta.Added, e)
		case !want && have:
			idx := slices.IndexFunc(*current, func(c E) bool { return key(c) == id })
			if idx < 0 {
				continue
			}
			delta.Removed = append(delta.Removed, (*current)[idx])
			*current = slices.Delete(*current, idx, idx+1)
			delete(present, id)
		}
	}
	return delta
}

// ParseSelection converts a submitted list of numeric identifiers. A nil
// selection returns a nil set, meaning the caller should leave the collection
// untouched; an empty, non-nil selection clears it.
func ParseSelection(raw []string) (Set[int], error) {
	if raw == nil {
		return nil, nil
	}
	out := make(Set[int], len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		id, err := strconv.Atoi(r)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q: %w", r, err)
		}
		out.Add(id)
	}
	return out, nil
}
