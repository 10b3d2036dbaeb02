package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrDocumentNotFound is returned when a document id does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// DefaultPendingLimit is used by GetPendingDocuments when limit is not positive.
const DefaultPendingLimit = 100

// Store defines the document store operations.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveDocument inserts doc and sets its ID and timestamps.
	SaveDocument(ctx context.Context, doc *Document) error

	// SaveDocuments inserts docs in a single transaction.
	SaveDocuments(ctx context.Context, docs []*Document) error

	// GetDocument returns the document with id or ErrDocumentNotFound.
	GetDocument(ctx context.Context, id int64) (*Document, error)

	// GetPendingDocuments returns up to limit documents not yet normalised, oldest first.
	GetPendingDocuments(ctx context.Context, limit int) ([]*Document, error)

	// SaveNormalized stores results produced by the named pipeline in a single transaction.
	SaveNormalized(ctx context.Context, results []NormalizedResult, pipeline string) error

	// CountDocuments returns document totals.
	CountDocuments(ctx context.Context) (Stats, error)

	// ResetNormalized marks every document as pending again.
	ResetNormalized(ctx context.Context) (int64, error)

	// DeleteAllDocuments removes every document.
	DeleteAllDocuments(ctx context.Context) (int64, error)

	// RunSQLMaintenance performs VACUUM and PRAGMA optimize.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const insertDocumentQuery = `
	INSERT INTO documents (source, content, pipeline, created_at, updated_at)
	VALUES (:source, :content, :pipeline, :created_at, :updated_at);
`

func validateDocument(doc *Document) error {
	if doc == nil {
		return errors.New("cannot save nil document")
	}
	if strings.TrimSpace(doc.Content) == "" {
		return errors.New("document must have non-empty content")
	}
	return nil
}

// SaveDocument inserts a new document.
func (s *sqlxStore) SaveDocument(ctx context.Context, doc *Document) error {
	return s.SaveDocuments(ctx, []*Document{doc})
}

// SaveDocuments inserts all docs or none of them.
func (s *sqlxStore) SaveDocuments(ctx context.Context, docs []*Document) error {
	if len(docs) == 0 {
		return nil
	}
	for i, doc := range docs {
		if err := validateDocument(doc); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, insertDocumentQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, doc := range docs {
			doc.CreatedAt = now
			doc.UpdatedAt = now
			result, err := stmt.ExecContext(ctx, doc)
			if err != nil {
				return fmt.Errorf("failed to save document (source %q): %w", doc.Source, err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read inserted document id: %w", err)
			}
			doc.ID = id
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving documents", "count", len(docs), "error", err)
		return err
	}

	s.logger.DebugContext(ctx, "Documents saved", "count", len(docs))
	return nil
}

// GetDocument retrieves a single document.
func (s *sqlxStore) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	query := `
		SELECT id, source, content, normalized, pipeline, created_at, updated_at, normalized_at
		FROM documents
		WHERE id = ?;
	`
	if err := s.db.GetContext(ctx, &doc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrDocumentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get document %d: %w", id, err)
	}
	return &doc, nil
}

// GetPendingDocuments retrieves documents that have not been normalised.
func (s *sqlxStore) GetPendingDocuments(ctx context.Context, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = DefaultPendingLimit
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var docs []*Document
	query := `
		SELECT id, source, content, normalized, pipeline, created_at, updated_at, normalized_at
		FROM documents
		WHERE normalized_at IS NULL
		ORDER BY id ASC
		LIMIT ?;
	`
	if err := s.db.SelectContext(ctx, &docs, query, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error fetching pending documents", "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to get pending documents: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched pending documents", "count", len(docs), "limit", limit)
	return docs, nil
}

// SaveNormalized writes normalised text back. A result for an unknown id
// rolls back the whole batch.
func (s *sqlxStore) SaveNormalized(ctx context.Context, results []NormalizedResult, pipeline string) error {
	if len(results) == 0 {
		return nil
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, `
			UPDATE documents
			SET normalized = ?, pipeline = ?, normalized_at = ?, updated_at = ?
			WHERE id = ?;
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare update: %w", err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, r := range results {
			result, err := stmt.ExecContext(ctx, r.Normalized, pipeline, now, now, r.ID)
			if err != nil {
				return fmt.Errorf("failed to save normalized document %d: %w", r.ID, err)
			}
			if affected, err := result.RowsAffected(); err == nil && affected == 0 {
				return fmt.Errorf("%w: id %d", ErrDocumentNotFound, r.ID)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving normalized documents", "count", len(results), "error", err)
		return err
	}

	s.logger.DebugContext(ctx, "Normalized documents saved", "count", len(results), "pipeline", pipeline)
	return nil
}

// CountDocuments returns document totals.
func (s *sqlxStore) CountDocuments(ctx context.Context) (Stats, error) {
	var stats Stats
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN normalized_at IS NOT NULL THEN 1 ELSE 0 END), 0) AS normalized,
			COALESCE(SUM(CASE WHEN normalized_at IS NULL THEN 1 ELSE 0 END), 0) AS pending
		FROM documents;
	`
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return Stats{}, fmt.Errorf("failed to count documents: %w", err)
	}
	return stats, nil
}

// ResetNormalized clears every normalised result.
func (s *sqlxStore) ResetNormalized(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET normalized = NULL, pipeline = '', normalized_at = NULL, updated_at = ?
		WHERE normalized_at IS NOT NULL;
	`, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error resetting normalized documents", "error", err)
		return 0, fmt.Errorf("failed to reset normalized documents: %w", err)
	}
	affected, _ := result.RowsAffected()
	s.logger.InfoContext(ctx, "Reset normalized documents", "count", affected)
	return affected, nil
}

// DeleteAllDocuments deletes every document.
func (s *sqlxStore) DeleteAllDocuments(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting all documents", "error", err)
		return 0, fmt.Errorf("failed to delete all documents: %w", err)
	}
	affected, _ := result.RowsAffected()
	s.logger.InfoContext(ctx, "Deleted all documents", "count", affected)
	return affected, nil
}

// RunSQLMaintenance executes VACUUM and PRAGMA optimize on the database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction.
	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		s.logger.WarnContext(ctx, "PRAGMA optimize failed", "error", err)
		return fmt.Errorf("failed to execute PRAGMA optimize: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed successfully")
	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func (s *sqlxStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
