package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkulagin/notable/internal/model"
)

var _ model.NoteStore = (*NoteRepository)(nil)

type NoteRepository struct {
	db *Connection
}

func NewNoteRepository(db *Connection) *NoteRepository {
	return &NoteRepository{db: db}
}

// noteColumns joins the category so read paths return the nested category in
// one round trip.
const noteColumns = `
        n.id, n.user_id, n.category_id, n.title, n.content, n.created_at, n.updated_at,
        c.name, c.created_at, c.updated_at
`

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	const query = `
        INSERT INTO notes (id, user_id, category_id, title, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.OwnerID, note.CategoryID, note.Title, note.Content,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return r.GetByID(ctx, note.ID)
}

func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Note, error) {
	query := `
        SELECT ` + noteColumns + `
        FROM notes n
        LEFT JOIN categories c ON c.id = n.category_id
        WHERE n.id = $1
    `

	note, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to get note by id: %w", err)
	}

	return note, nil
}

func (r *NoteRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Note, error) {
	query := `
        SELECT ` + noteColumns + `
        FROM notes n
        LEFT JOIN categories c ON c.id = n.category_id
        WHERE n.user_id = $1
        ORDER BY n.created_at DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes by user id: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM notes WHERE user_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes by user id: %w", err)
	}

	return count, nil
}

func (r *NoteRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	const query = `
        UPDATE notes SET category_id = $2, title = $3, content = $4, updated_at = NOW()
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, note.ID, note.CategoryID, note.Title, note.Content)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return model.Note{}, model.ErrNotFound
	}

	return r.GetByID(ctx, note.ID)
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM notes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var (
		note         model.Note
		categoryID   uuid.NullUUID
		categoryName sql.NullString
		categoryCAt  sql.NullTime
		categoryUAt  sql.NullTime
	)

	err := row.Scan(
		&note.ID, &note.OwnerID, &categoryID, &note.Title, &note.Content,
		&note.CreatedAt, &note.UpdatedAt,
		&categoryName, &categoryCAt, &categoryUAt,
	)
	if err != nil {
		return model.Note{}, err
	}

	if categoryID.Valid {
		id := categoryID.UUID
		note.CategoryID = &id
		note.Category = &model.Category{
			ID:        id,
			Name:      categoryName.String,
			CreatedAt: categoryCAt.Time,
			UpdatedAt: categoryUAt.Time,
		}
	}

	return note, nil
}
