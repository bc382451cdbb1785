package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tagx/internal/models"
	"github.com/desertthunder/tagx/internal/shared"
)

const editColumns = `id, sequence, session_id, path, tag, old_value, new_value, created_at`

// EditRepository implements models.Repository[*models.Edit] for the edit history.
//
// Edits are append-only; they are never updated, only soft-deleted.
type EditRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Edit] = (*EditRepository)(nil)

// NewEditRepository creates a new EditRepository with the given database connection
func NewEditRepository(db *sql.DB) *EditRepository {
	return &EditRepository{db: db}
}

// Create inserts a new [models.Edit] into the database with generated ID and sequence
func (r *EditRepository) Create(edit *models.Edit) error {
	if err := edit.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "edits")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	var old sql.NullString
	if v, ok := edit.OldValue(); ok {
		old = sql.NullString{String: v, Valid: true}
	}

	query := `
		INSERT INTO edits (id, sequence, session_id, path, tag, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		edit.SessionID(),
		edit.Path(),
		edit.Tag(),
		old,
		edit.NewValue(),
		edit.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert edit: %w", err)
	}

	edit.SetID(id)
	edit.SetSequence(sequence)
	return nil
}

// Get retrieves an edit by ID, excluding soft-deleted edits
func (r *EditRepository) Get(id string) (*models.Edit, error) {
	query := `SELECT ` + editColumns + ` FROM edits WHERE id = ? AND deleted_at IS NULL`

	edit, err := scanEdit(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrEditNotFound, id)
	}
	return edit, err
}

// Delete soft-deletes an edit by ID
func (r *EditRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE edits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete edit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrEditNotFound, id)
	}

	return nil
}

// List retrieves edits matching the given criteria, newest first, excluding soft-deleted edits.
//
// Supported criteria are "path" (string), "session_id" (string), "tag" (string) and "limit" (int).
func (r *EditRepository) List(criteria map[string]any) ([]*models.Edit, error) {
	query := `SELECT ` + editColumns + ` FROM edits WHERE deleted_at IS NULL`
	args := []any{}

	for _, key := range []string{"path", "session_id", "tag"} {
		if v, ok := criteria[key].(string); ok && v != "" {
			query += fmt.Sprintf(" AND %s = ?", key)
			args = append(args, v)
		}
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query edits: %w", err)
	}
	defer rows.Close()

	var edits []*models.Edit
	for rows.Next() {
		edit, err := scanEdit(rows)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return edits, nil
}

// ListRecent returns the newest edits, at most limit of them (all when limit <= 0).
func (r *EditRepository) ListRecent(limit int) ([]*models.Edit, error) {
	return r.List(map[string]any{"limit": limit})
}

// ListByPath returns the edits made to one file, newest first.
func (r *EditRepository) ListByPath(path string) ([]*models.Edit, error) {
	return r.List(map[string]any{"path": path})
}

// ListBySession returns the edits made in one session, newest first.
func (r *EditRepository) ListBySession(sessionID string) ([]*models.Edit, error) {
	return r.List(map[string]any{"session_id": sessionID})
}

type scanner interface {
	Scan(dest ...any) error
}

// scanEdit scans a [sql.Row] or the current row of [sql.Rows] into a [models.Edit]
func scanEdit(row scanner) (*models.Edit, error) {
	var (
		id        string
		sequence  int
		sessionID string
		path      string
		tag       string
		oldValue  sql.NullString
		newValue  string
		createdAt time.Time
	)

	err := row.Scan(&id, &sequence, &sessionID, &path, &tag, &oldValue, &newValue, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan edit: %w", err)
	}

	var old *string
	if oldValue.Valid {
		old = &oldValue.String
	}

	edit := models.NewEdit(sessionID, path, tag, old, newValue)
	edit.SetID(id)
	edit.SetSequence(sequence)
	edit.SetCreatedAt(createdAt)

	return edit, nil
}
