package tournament

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedIdentity is returned when a persisted identity is not a
// 4-element list of strings.
var ErrMalformedIdentity = errors.New("malformed identity")

// MarshalJSON encodes the identity as ["club", "date", "time", "name"].
// Characters such as & < > are written as is.
func (id Identity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([4]string{id.Club, id.Date, id.Time, id.Name}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a 4-element list of strings.
func (id *Identity) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedIdentity, err)
	}
	if len(fields) != 4 {
		return fmt.Errorf("%w: got %d fields, want 4", ErrMalformedIdentity, len(fields))
	}
	*id = Identity{Club: fields[0], Date: fields[1], Time: fields[2], Name: fields[3]}
	return nil
}

// IdentitySet is the set of tournament identities seen so far.
type IdentitySet map[Identity]struct{}

// NewIdentitySet creates a set holding ids.
func NewIdentitySet(ids ...Identity) IdentitySet {
	s := make(IdentitySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// IdentitiesOf returns the identities of the given tournaments.
func IdentitiesOf(tournaments []*Tournament) IdentitySet {
	s := make(IdentitySet, len(tournaments))
	for _, t := range tournaments {
		s[t.Identity()] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s IdentitySet) Has(id Identity) bool {
	_, ok := s[id]
	return ok
}

// Union returns a new set with the members of s and other.
func (s IdentitySet) Union(other IdentitySet) IdentitySet {
	out := make(IdentitySet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Difference returns a new set with the members of s not in other.
func (s IdentitySet) Difference(other IdentitySet) IdentitySet {
	out := make(IdentitySet)
	for id := range s {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in canonical order.
func (s IdentitySet) Sorted() []Identity {
	ids := make([]Identity, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
	return ids
}

// DiffResult contains the result of comparing a batch against known identities.
type DiffResult struct {
	New     []*Tournament // batch records whose identity is unknown, batch order
	Current IdentitySet   // identities of the whole batch
}

// Diff compares the current batch against the previously seen identities and
// returns the new tournaments in batch order. A nil previous set is empty.
func Diff(previous IdentitySet, current []*Tournament) *DiffResult {
	result := &DiffResult{
		New:     make([]*Tournament, 0),
		Current: IdentitiesOf(current),
	}

	fresh := result.Current.Difference(previous)
	for _, t := range current {
		id := t.Identity()
		if _, ok := fresh[id]; ok {
			result.New = append(result.New, t)
			// a batch that was not deduped must still report each identity once
			delete(fresh, id)
		}
	}

	return result
}
