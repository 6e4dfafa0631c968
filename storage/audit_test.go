package storage

import (
	"path/filepath"
	"testing"
)

func TestAuditLogRecordAndRecent(t *testing.T) {
	log, err := OpenAuditLog(filepath.Join(t.TempDir(), "automation.db"))
	if err != nil {
		t.Fatalf("OpenAuditLog() error = %v", err)
	}
	defer log.Close()

	records, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent() on empty log error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("fresh log has %d records", len(records))
	}

	executions := []struct {
		tool    string
		args    map[string]string
		summary string
	}{
		{"capture_screenshot", map[string]string{}, "Screenshot captured"},
		{"type_text", map[string]string{"text": "hello"}, "Typed 5 characters"},
		{"send_shortcut", map[string]string{"key": "s", "control": "true"}, "Sent shortcut control+s"},
	}
	for _, e := range executions {
		if err := log.RecordExecution("session-1", e.tool, e.args, e.summary); err != nil {
			t.Fatalf("RecordExecution(%s) error = %v", e.tool, err)
		}
	}

	records, err = log.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	for _, rec := range records {
		if rec.SessionID != "session-1" {
			t.Errorf("SessionID = %q", rec.SessionID)
		}
		if rec.ID == "" {
			t.Error("record is missing an ID")
		}
	}

	// Arguments survive the JSON round trip.
	var typed *ExecutionRecord
	for i := range records {
		if records[i].Tool == "type_text" {
			typed = &records[i]
		}
	}
	if typed == nil {
		t.Fatal("type_text record not found")
	}
	if typed.Arguments["text"] != "hello" {
		t.Errorf("Arguments = %v", typed.Arguments)
	}
}

func TestAuditLogRecentLimit(t *testing.T) {
	log, err := OpenAuditLog(filepath.Join(t.TempDir(), "automation.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	for i := 0; i < 5; i++ {
		if err := log.RecordExecution("s", "type_text", map[string]string{}, "x"); err != nil {
			t.Fatal(err)
		}
	}

	records, err := log.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}
}
