package logsource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/gym-consistency/internal/core"
	"go.uber.org/zap"
)

const mysqlTimeLayout = "2006-01-02 15:04:05"

// MySQLSource is a MySQL implementation of the EventSource interface
type MySQLSource struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLSource creates a new MySQL-backed event source
func NewMySQLSource(dsn string, logger *zap.Logger) (*MySQLSource, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_events (
			uid VARCHAR(64) NOT NULL,
			scanned_at DATETIME NOT NULL,
			INDEX idx_scan_events_uid (uid)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLSource{
		db:     db,
		logger: logger,
	}, nil
}

// Record inserts a scan event, normalizing the identifier on write
func (s *MySQLSource) Record(ctx context.Context, event core.ScanEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_events (uid, scanned_at) VALUES (?, ?)
	`, core.NormalizeIdentifier(event.Identifier), event.Timestamp.UTC().Format(mysqlTimeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert scan event: %w", err)
	}
	return nil
}

// EventsFor returns all scan events for an identifier, matched case-insensitively
func (s *MySQLSource) EventsFor(ctx context.Context, identifier string) ([]core.ScanEvent, error) {
	id := core.NormalizeIdentifier(identifier)
	rows, err := s.db.QueryContext(ctx, `
		SELECT scanned_at FROM scan_events
		WHERE UPPER(uid) = ?
		ORDER BY scanned_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan events: %w", err)
	}
	defer rows.Close()

	var events []core.ScanEvent
	for rows.Next() {
		var scannedAt []byte
		if err := rows.Scan(&scannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		ts, err := time.ParseInLocation(mysqlTimeLayout, string(scannedAt), time.UTC)
		if err != nil {
			s.logger.Warn("Skipping row with bad timestamp",
				zap.String("uid", id), zap.Error(err))
			continue
		}
		events = append(events, core.ScanEvent{Identifier: id, Timestamp: ts})
	}
	return events, rows.Err()
}

// Members returns the distinct identifiers with their raw scan counts, sorted
func (s *MySQLSource) Members(ctx context.Context) ([]core.MemberRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT UPPER(uid), COUNT(*) FROM scan_events
		GROUP BY UPPER(uid)
		ORDER BY UPPER(uid)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []core.MemberRecord
	for rows.Next() {
		var m core.MemberRecord
		if err := rows.Scan(&m.Identifier, &m.Records); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Identifiers returns the distinct identifiers, sorted
func (s *MySQLSource) Identifiers(ctx context.Context) ([]string, error) {
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

// Close closes the database connection
func (s *MySQLSource) Close() error {
	return s.db.Close()
}
