package database

import (
	"database/sql"
	"time"
)

// Document is a stored text awaiting or holding its normalised form.
type Document struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Source  string `db:"source"` // free-form origin label, e.g. a file name or "telegram"
	Content string `db:"content"`

	Normalized   sql.NullString `db:"normalized"`
	Pipeline     string         `db:"pipeline"` // name of the pipeline that produced Normalized
	NormalizedAt sql.NullTime   `db:"normalized_at"`
}

// Pending reports whether the document has not been normalised yet.
func (d *Document) Pending() bool {
	return !d.NormalizedAt.Valid
}

// NormalizedResult is the output of normalising one document.
type NormalizedResult struct {
	ID         int64
	Normalized string
}

// Stats summarises the document table.
type Stats struct {
	Total      int64 `db:"total"`
	Normalized int64 `db:"normalized"`
	Pending    int64 `db:"pending"`
}
