package publication

import (
	"context"
	"fmt"

	"mikrobot/internal/adapters/storage"
	domain "mikrobot/internal/domain/publication"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a publication by ID.
// PRE: id > 0
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Publication, error) {
	var p domain.Publication
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, date FROM publications WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Date)
	return p, err
}

// List returns all publications, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Publication, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, date FROM publications ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Publication
	for rows.Next() {
		var p domain.Publication
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Date); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create inserts the publication and its image rows in one transaction.
// Stored filenames embed the row id, so attach runs after the insert and
// its error rolls the whole row back.
// PRE: p has been validated
// POST: Returns p with the assigned id; either everything is committed or nothing is
func (s *SQLiteStore) Create(ctx context.Context, p domain.Publication, attach func(id int64) ([]string, error)) (domain.Publication, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Publication{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO publications (title, description, date) VALUES (?, ?, ?)`,
		p.Title, p.Description, p.Date)
	if err != nil {
		return domain.Publication{}, fmt.Errorf("insert publication: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Publication{}, err
	}
	var imagePaths []string
	if attach != nil {
		if imagePaths, err = attach(p.ID); err != nil {
			return domain.Publication{}, err
		}
	}
	for _, path := range imagePaths {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO publication_images (publication_id, filename) VALUES (?, ?)`, p.ID, path); err != nil {
			return domain.Publication{}, fmt.Errorf("insert publication image: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Publication{}, err
	}
	return p, nil
}

// Update rewrites the fields and appends new image rows in one transaction.
// PRE: p.ID refers to an existing row; p has been validated
func (s *SQLiteStore) Update(ctx context.Context, p domain.Publication, newImagePaths []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE publications SET title = ?, description = ?, date = ? WHERE id = ?`,
		p.Title, p.Description, p.Date, p.ID); err != nil {
		return fmt.Errorf("update publication: %w", err)
	}
	for _, path := range newImagePaths {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO publication_images (publication_id, filename) VALUES (?, ?)`, p.ID, path); err != nil {
			return fmt.Errorf("insert publication image: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes the publication row; image rows cascade.
// PRE: caller has already enumerated and removed the physical files
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM publications WHERE id = ?`, id)
	return err
}

// Images returns the attachments of a publication ordered by id.
func (s *SQLiteStore) Images(ctx context.Context, publicationID int64) ([]domain.Image, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, publication_id, filename FROM publication_images WHERE publication_id = ? ORDER BY id`,
		publicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.PublicationID, &img.Path); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetImage retrieves a single attachment by its id.
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetImage(ctx context.Context, imageID int64) (domain.Image, error) {
	var img domain.Image
	err := s.db.QueryRowContext(ctx,
		`SELECT id, publication_id, filename FROM publication_images WHERE id = ?`, imageID).
		Scan(&img.ID, &img.PublicationID, &img.Path)
	return img, err
}

// DeleteImage removes a single attachment row.
// PRE: caller removes the physical file
func (s *SQLiteStore) DeleteImage(ctx context.Context, imageID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM publication_images WHERE id = ?`, imageID)
	return err
}
