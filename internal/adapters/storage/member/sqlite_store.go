package member

import (
	"context"

	"mikrobot/internal/adapters/storage"
	domain "mikrobot/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = `id, name, role, description, photo, category`

// GetByID retrieves a member by ID.
// PRE: id > 0
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	var m domain.Member
	err := s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Role, &m.Description, &m.Photo, &m.Category)
	return m, err
}

// List returns the full roster ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Description, &m.Photo, &m.Category); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Create inserts a member.
// PRE: m has been validated
// POST: Returns m with the assigned id
func (s *SQLiteStore) Create(ctx context.Context, m domain.Member) (domain.Member, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO members (name, role, description, photo, category) VALUES (?, ?, ?, ?, ?)`,
		m.Name, m.Role, m.Description, m.Photo, m.Category)
	if err != nil {
		return domain.Member{}, err
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

// Update rewrites all mutable fields.
// PRE: m.ID refers to an existing row; m has been validated
func (s *SQLiteStore) Update(ctx context.Context, m domain.Member) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE members SET name = ?, role = ?, description = ?, photo = ?, category = ? WHERE id = ?`,
		m.Name, m.Role, m.Description, m.Photo, m.Category, m.ID)
	return err
}

// Delete removes a member.
// PRE: caller removes the photo file
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	return err
}
