package logsource

import (
	"context"
	"sort"

	"github.com/mikey/gym-consistency/internal/core"
)

// MemorySource is an in-memory implementation of the EventSource
// interface, used in tests and for seeding ad-hoc environments.
type MemorySource struct {
	events []core.ScanEvent
}

// NewMemorySource creates an event source over a fixed set of events.
// Identifiers are normalized on construction.
func NewMemorySource(events []core.ScanEvent) *MemorySource {
	normalized := make([]core.ScanEvent, len(events))
	for i, e := range events {
		normalized[i] = core.ScanEvent{
			Identifier: core.NormalizeIdentifier(e.Identifier),
			Timestamp:  e.Timestamp,
		}
	}
	return &MemorySource{events: normalized}
}

// EventsFor returns all scan events for an identifier, matched case-insensitively
func (s *MemorySource) EventsFor(ctx context.Context, identifier string) ([]core.ScanEvent, error) {
	id := core.NormalizeIdentifier(identifier)
	matched := make([]core.ScanEvent, 0)
	for _, e := range s.events {
		if e.Identifier == id {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Members returns the distinct identifiers with their raw scan counts, sorted
func (s *MemorySource) Members(ctx context.Context) ([]core.MemberRecord, error) {
	counts := make(map[string]int)
	for _, e := range s.events {
		counts[e.Identifier]++
	}
	members := make([]core.MemberRecord, 0, len(counts))
	for id, n := range counts {
		members = append(members, core.MemberRecord{Identifier: id, Records: n})
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Identifier < members[j].Identifier
	})
	return members, nil
}

// Identifiers returns the distinct identifiers, sorted
func (s *MemorySource) Identifiers(ctx context.Context) ([]string, error) {
	members, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.Identifier
	}
	return ids, nil
}
