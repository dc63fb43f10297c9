package db

import (
	"context"
	"path/filepath"
	"testing"
)

// testSchema mirrors the production schema from
// migrations/000001_create_conversion_history.up.sql.
const testSchema = `
CREATE TABLE conversion_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    correlation_id TEXT NOT NULL,
    direction TEXT NOT NULL,
    input_path TEXT NOT NULL,
    output_path TEXT,
    output_width INTEGER DEFAULT 0,
    output_height INTEGER DEFAULT 0,
    font_fallback INTEGER DEFAULT 0,
    described INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,
    status TEXT NOT NULL,
    error_message TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	conn, err := OpenWithDefaults(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenWithDefaults() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec(testSchema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}
	return NewRepository(conn)
}

func sampleRecord(correlationID, direction, status string) ConversionRecord {
	return ConversionRecord{
		CorrelationID: correlationID,
		Direction:     direction,
		InputPath:     "art.txt",
		OutputPath:    "out.png",
		OutputWidth:   640,
		OutputHeight:  480,
		DurationMS:    12,
		Status:        status,
	}
}

func TestInsertAndQueryConversions(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id1, err := repo.InsertConversion(ctx, sampleRecord("aaaa1111", DirectionRasterize, StatusSuccess))
	if err != nil {
		t.Fatalf("InsertConversion() error: %v", err)
	}
	if id1 == 0 {
		t.Errorf("InsertConversion() id = 0, want non-zero")
	}

	rec2 := sampleRecord("bbbb2222", DirectionQuantize, StatusError)
	rec2.ErrorMessage = "cannot decode image"
	rec2.FontFallback = true
	if _, err := repo.InsertConversion(ctx, rec2); err != nil {
		t.Fatalf("InsertConversion() error: %v", err)
	}

	records, err := repo.RecentConversions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentConversions() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("RecentConversions() returned %d records, want 2", len(records))
	}

	// Newest first.
	if records[0].CorrelationID != "bbbb2222" {
		t.Errorf("RecentConversions()[0].CorrelationID = %q, want %q",
			records[0].CorrelationID, "bbbb2222")
	}
	if records[0].ErrorMessage != "cannot decode image" {
		t.Errorf("ErrorMessage = %q, want decode error", records[0].ErrorMessage)
	}
	if !records[0].FontFallback {
		t.Errorf("FontFallback = false, want true")
	}
	if records[0].CreatedAt.IsZero() {
		t.Errorf("CreatedAt is zero, want populated timestamp")
	}
}

func TestRecentConversionsLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.InsertConversion(ctx, sampleRecord("cccc3333", DirectionQuantize, StatusSuccess)); err != nil {
			t.Fatalf("InsertConversion() error: %v", err)
		}
	}

	records, err := repo.RecentConversions(ctx, 3)
	if err != nil {
		t.Fatalf("RecentConversions() error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("RecentConversions(limit=3) returned %d records", len(records))
	}
}

func TestCountByStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	repo.InsertConversion(ctx, sampleRecord("d1", DirectionRasterize, StatusSuccess))
	repo.InsertConversion(ctx, sampleRecord("d2", DirectionRasterize, StatusSuccess))
	repo.InsertConversion(ctx, sampleRecord("d3", DirectionQuantize, StatusError))

	succeeded, err := repo.CountByStatus(ctx, StatusSuccess)
	if err != nil {
		t.Fatalf("CountByStatus() error: %v", err)
	}
	if succeeded != 2 {
		t.Errorf("CountByStatus(success) = %d, want 2", succeeded)
	}

	failed, err := repo.CountByStatus(ctx, StatusError)
	if err != nil {
		t.Fatalf("CountByStatus() error: %v", err)
	}
	if failed != 1 {
		t.Errorf("CountByStatus(error) = %d, want 1", failed)
	}
}

func TestNilConnectionErrors(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	if _, err := repo.InsertConversion(ctx, ConversionRecord{}); err == nil {
		t.Errorf("InsertConversion() with nil connection succeeded")
	}
	if _, err := repo.RecentConversions(ctx, 5); err == nil {
		t.Errorf("RecentConversions() with nil connection succeeded")
	}
	if _, err := repo.CountByStatus(ctx, StatusSuccess); err == nil {
		t.Errorf("CountByStatus() with nil connection succeeded")
	}
}
