// Package storage persists the tool-execution audit log in a local sqlite
// database, so every action taken against a window can be reviewed later.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// AuditLog records every executed tool call.
type AuditLog struct {
	db *sql.DB
}

// ExecutionRecord is one audited tool call.
type ExecutionRecord struct {
	ID        string
	SessionID string
	Tool      string
	Arguments map[string]string
	Summary   string
	CreatedAt time.Time
}

// OpenAuditLog opens (and if needed creates) the audit database at path.
func OpenAuditLog(path string) (*AuditLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS tool_executions (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		tool TEXT NOT NULL,
		arguments TEXT NOT NULL,
		summary TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tool_executions_session
		ON tool_executions(session_id);
	CREATE INDEX IF NOT EXISTS idx_tool_executions_created
		ON tool_executions(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit schema: %w", err)
	}

	return &AuditLog{db: db}, nil
}

// RecordExecution appends one executed tool call to the log.
func (a *AuditLog) RecordExecution(sessionID, tool string, args map[string]string, summary string) error {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}

	_, err = a.db.Exec(
		`INSERT INTO tool_executions (id, session_id, tool, arguments, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, tool, string(argsJSON), summary, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record execution: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (a *AuditLog) Recent(limit int) ([]ExecutionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.Query(
		`SELECT id, session_id, tool, arguments, summary, created_at
		 FROM tool_executions ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var records []ExecutionRecord
	for rows.Next() {
		var rec ExecutionRecord
		var argsJSON string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Tool, &argsJSON, &rec.Summary, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &rec.Arguments); err != nil {
			rec.Arguments = map[string]string{}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (a *AuditLog) Close() error {
	return a.db.Close()
}
