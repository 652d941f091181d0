package achievement

import (
	"context"
	"fmt"

	"mikrobot/internal/adapters/storage"
	domain "mikrobot/internal/domain/achievement"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an achievement by ID.
// PRE: id > 0
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Achievement, error) {
	var a domain.Achievement
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, date FROM achievements WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Date)
	return a, err
}

// List returns all achievements, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, date FROM achievements ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Date); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Create inserts the achievement and its image rows in one transaction.
// Stored filenames embed the row id, so attach runs after the insert and
// its error rolls the whole row back.
// PRE: a has been validated
// POST: Returns a with the assigned id; either everything is committed or nothing is
func (s *SQLiteStore) Create(ctx context.Context, a domain.Achievement, attach func(id int64) ([]string, error)) (domain.Achievement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Achievement{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO achievements (title, description, date) VALUES (?, ?, ?)`,
		a.Title, a.Description, a.Date)
	if err != nil {
		return domain.Achievement{}, fmt.Errorf("insert achievement: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return domain.Achievement{}, err
	}
	var imagePaths []string
	if attach != nil {
		if imagePaths, err = attach(a.ID); err != nil {
			return domain.Achievement{}, err
		}
	}
	for _, p := range imagePaths {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO achievement_images (achievement_id, filename) VALUES (?, ?)`, a.ID, p); err != nil {
			return domain.Achievement{}, fmt.Errorf("insert achievement image: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Achievement{}, err
	}
	return a, nil
}

// Update rewrites the fields and appends new image rows in one transaction.
// PRE: a.ID refers to an existing row; a has been validated
func (s *SQLiteStore) Update(ctx context.Context, a domain.Achievement, newImagePaths []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE achievements SET title = ?, description = ?, date = ? WHERE id = ?`,
		a.Title, a.Description, a.Date, a.ID); err != nil {
		return fmt.Errorf("update achievement: %w", err)
	}
	for _, p := range newImagePaths {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO achievement_images (achievement_id, filename) VALUES (?, ?)`, a.ID, p); err != nil {
			return fmt.Errorf("insert achievement image: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes the achievement row; image rows cascade.
// PRE: caller has already enumerated and removed the physical files
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ?`, id)
	return err
}

// Images returns the attachments of an achievement ordered by id.
func (s *SQLiteStore) Images(ctx context.Context, achievementID int64) ([]domain.Image, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, achievement_id, filename FROM achievement_images WHERE achievement_id = ? ORDER BY id`,
		achievementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.AchievementID, &img.Path); err != nil {
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
		`SELECT id, achievement_id, filename FROM achievement_images WHERE id = ?`, imageID).
		Scan(&img.ID, &img.AchievementID, &img.Path)
	return img, err
}

// DeleteImage removes a single attachment row.
// PRE: caller removes the physical file
func (s *SQLiteStore) DeleteImage(ctx context.Context, imageID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM achievement_images WHERE id = ?`, imageID)
	return err
}
