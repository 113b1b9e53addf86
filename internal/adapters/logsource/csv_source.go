package logsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mikey/gym-consistency/internal/core"
	"go.uber.org/zap"
)

// Column layout of the RFID log: Month, Week, Day, Date, Time, UID.
const (
	csvDateColumn = 3
	csvTimeColumn = 4
	csvUIDColumn  = 5
	csvColumns    = 6
)

const (
	csvDateLayout = "2006-01-02"
	csvTimeLayout = "15:04:05"
)

// CSVSource reads scan events from an RFID log CSV file. The file is
// re-read on every call, so each scoring request sees a consistent
// snapshot of whatever the badge reader has appended so far.
type CSVSource struct {
	path   string
	logger *zap.Logger
}

// NewCSVSource creates a new CSV-backed event source
func NewCSVSource(path string, logger *zap.Logger) *CSVSource {
	return &CSVSource{
		path:   path,
		logger: logger,
	}
}

// EventsFor returns all scan events for an identifier, matched case-insensitively
func (s *CSVSource) EventsFor(ctx context.Context, identifier string) ([]core.ScanEvent, error) {
	events, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	id := core.NormalizeIdentifier(identifier)
	matched := make([]core.ScanEvent, 0, len(events))
	for _, e := range events {
		if e.Identifier == id {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Members returns the distinct identifiers with their raw scan counts, sorted
func (s *CSVSource) Members(ctx context.Context) ([]core.MemberRecord, error) {
	events, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, e := range events {
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
func (s *CSVSource) Identifiers(ctx context.Context) ([]string, error) {
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

// load parses the whole log file. Malformed rows are skipped with a
// warning rather than failing the request; badge readers occasionally
// write truncated lines on power loss.
func (s *CSVSource) load(ctx context.Context) ([]core.ScanEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open RFID log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse RFID log: %w", err)
	}

	events := make([]core.ScanEvent, 0, len(records))
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == "Month" {
			continue // header row
		}
		if len(rec) < csvColumns {
			s.logger.Warn("Skipping malformed log row", zap.Int("row", i+1))
			continue
		}
		ts, err := time.ParseInLocation(
			csvDateLayout+" "+csvTimeLayout,
			rec[csvDateColumn]+" "+rec[csvTimeColumn],
			time.UTC,
		)
		if err != nil {
			s.logger.Warn("Skipping log row with bad timestamp",
				zap.Int("row", i+1), zap.Error(err))
			continue
		}
		events = append(events, core.ScanEvent{
			Identifier: core.NormalizeIdentifier(rec[csvUIDColumn]),
			Timestamp:  ts,
		})
	}
	return events, nil
}
