package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Conversion directions recorded in the history.
const (
	DirectionRasterize = "rasterize" // text -> image
	DirectionQuantize  = "quantize"  // image -> text
)

// Run statuses recorded in the history.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ConversionRecord is one row of the conversion_history table.
type ConversionRecord struct {
	ID            int64     // Auto-incremented primary key
	CorrelationID string    // Short ID tracing the run through the logs
	Direction     string    // DirectionRasterize or DirectionQuantize
	InputPath     string    // Source file path
	OutputPath    string    // Destination file path (empty for stdout)
	OutputWidth   int       // Output width: pixels for images, chars for text
	OutputHeight  int       // Output height: pixels for images, lines for text
	FontFallback  bool      // Whether the rasterizer fell back to the built-in font
	Described     bool      // Whether a description was generated
	DurationMS    int64     // Wall-clock conversion time in milliseconds
	Status        string    // StatusSuccess or StatusError
	ErrorMessage  string    // Error text when Status is StatusError
	CreatedAt     time.Time // Timestamp when the record was created
}

// Repository provides typed access to the conversion history.
type Repository struct {
	conn *sql.DB
}

// NewRepository creates a Repository over an open connection.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// InsertConversion records one conversion run and returns its row ID.
func (r *Repository) InsertConversion(ctx context.Context, record ConversionRecord) (int64, error) {
	if r.conn == nil {
		return 0, fmt.Errorf("db: connection is nil")
	}

	result, err := r.conn.ExecContext(ctx, `
		INSERT INTO conversion_history (
			correlation_id, direction, input_path, output_path,
			output_width, output_height, font_fallback, described,
			duration_ms, status, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.CorrelationID,
		record.Direction,
		record.InputPath,
		record.OutputPath,
		record.OutputWidth,
		record.OutputHeight,
		record.FontFallback,
		record.Described,
		record.DurationMS,
		record.Status,
		record.ErrorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("db: insert conversion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("db: last insert id: %w", err)
	}
	return id, nil
}

// RecentConversions returns the most recent runs, newest first.
func (r *Repository) RecentConversions(ctx context.Context, limit int) ([]ConversionRecord, error) {
	if r.conn == nil {
		return nil, fmt.Errorf("db: connection is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.conn.QueryContext(ctx, `
		SELECT id, correlation_id, direction, input_path, output_path,
		       output_width, output_height, font_fallback, described,
		       duration_ms, status, error_message, created_at
		FROM conversion_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("db: query conversions: %w", err)
	}
	defer rows.Close()

	var records []ConversionRecord
	for rows.Next() {
		var rec ConversionRecord
		if err := rows.Scan(
			&rec.ID, &rec.CorrelationID, &rec.Direction, &rec.InputPath,
			&rec.OutputPath, &rec.OutputWidth, &rec.OutputHeight,
			&rec.FontFallback, &rec.Described, &rec.DurationMS,
			&rec.Status, &rec.ErrorMessage, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db: scan conversion: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByStatus returns the number of runs with the given status.
func (r *Repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if r.conn == nil {
		return 0, fmt.Errorf("db: connection is nil")
	}

	var count int64
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM conversion_history WHERE status = ?`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("db: count conversions: %w", err)
	}
	return count, nil
}
