package news

import (
	"context"
	"database/sql"
	"fmt"

	"mikrobot/internal/adapters/storage"
	domain "mikrobot/internal/domain/news"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const newsColumns = `id, title, content, date_posted, image`

// GetByID retrieves a news item by ID.
// PRE: id > 0
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.News, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	return scanNews(row)
}

// List returns news ordered newest first.
// PRE: none
// POST: Returns up to limit items (all when limit <= 0)
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news ORDER BY date_posted DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.News
	for rows.Next() {
		var n domain.News
		var thumb sql.NullString
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.DatePosted, &thumb); err != nil {
			return nil, err
		}
		n.Thumbnail = thumb.String
		list = append(list, n)
	}
	return list, rows.Err()
}

// Create inserts the news row and its image rows in one transaction.
// PRE: n has been validated; n.Thumbnail is already decided
// POST: Returns n with the assigned id; either everything is committed or nothing is
func (s *SQLiteStore) Create(ctx context.Context, n domain.News, imagePaths []string) (domain.News, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.News{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO news (title, content, date_posted, image) VALUES (?, ?, ?, ?)`,
		n.Title, n.Content, n.DatePosted, nullableString(n.Thumbnail))
	if err != nil {
		return domain.News{}, fmt.Errorf("insert news: %w", err)
	}
	n.ID, err = res.LastInsertId()
	if err != nil {
		return domain.News{}, err
	}
	for _, p := range imagePaths {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO news_images (news_id, filename) VALUES (?, ?)`, n.ID, p); err != nil {
			return domain.News{}, fmt.Errorf("insert news image: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.News{}, err
	}
	return n, nil
}

// Update rewrites the mutable fields and appends new image rows in one transaction.
// PRE: n.ID refers to an existing row; n has been validated
// POST: Row fields updated, one image row appended per path
func (s *SQLiteStore) Update(ctx context.Context, n domain.News, newImagePaths []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE news SET title = ?, content = ?, image = ? WHERE id = ?`,
		n.Title, n.Content, nullableString(n.Thumbnail), n.ID); err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	for _, p := range newImagePaths {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO news_images (news_id, filename) VALUES (?, ?)`, n.ID, p); err != nil {
			return fmt.Errorf("insert news image: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a news row; the image rows go with it via cascade.
// PRE: caller has already enumerated and removed the physical files
// POST: Row and child rows are gone
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	return err
}

// Images returns the attachments of a news item ordered by id.
func (s *SQLiteStore) Images(ctx context.Context, newsID int64) ([]domain.Image, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, news_id, filename FROM news_images WHERE news_id = ? ORDER BY id`, newsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanImages(rows)
}

// GetImage retrieves a single attachment by its id.
// POST: Returns the entity or sql.ErrNoRows if not found
func (s *SQLiteStore) GetImage(ctx context.Context, imageID int64) (domain.Image, error) {
	var img domain.Image
	err := s.db.QueryRowContext(ctx,
		`SELECT id, news_id, filename FROM news_images WHERE id = ?`, imageID).
		Scan(&img.ID, &img.NewsID, &img.Path)
	return img, err
}

// DeleteImage removes the attachment row and repoints the owning item's
// thumbnail when it pointed at the deleted file. Both happen in one
// transaction so no intermediate dangling-thumbnail state is observable.
// PRE: imageID refers to an existing attachment
// POST: Row gone; thumbnail is the lowest-id remaining attachment or NULL
func (s *SQLiteStore) DeleteImage(ctx context.Context, imageID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var img domain.Image
	if err := tx.QueryRowContext(ctx,
		`SELECT id, news_id, filename FROM news_images WHERE id = ?`, imageID).
		Scan(&img.ID, &img.NewsID, &img.Path); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM news_images WHERE id = ?`, imageID); err != nil {
		return fmt.Errorf("delete news image: %w", err)
	}

	var thumb sql.NullString
	if err := tx.QueryRowContext(ctx,
		`SELECT image FROM news WHERE id = ?`, img.NewsID).Scan(&thumb); err != nil {
		return err
	}
	if thumb.String == img.Path {
		rows, err := tx.QueryContext(ctx,
			`SELECT id, news_id, filename FROM news_images WHERE news_id = ? ORDER BY id`, img.NewsID)
		if err != nil {
			return err
		}
		remaining, err := scanImages(rows)
		rows.Close()
		if err != nil {
			return err
		}
		next := domain.NextThumbnail(thumb.String, img.Path, remaining)
		if _, err := tx.ExecContext(ctx,
			`UPDATE news SET image = ? WHERE id = ?`, nullableString(next), img.NewsID); err != nil {
			return fmt.Errorf("repoint thumbnail: %w", err)
		}
	}
	return tx.Commit()
}

// HasImagePath reports whether the path is recorded as an attachment of the
// news item.
func (s *SQLiteStore) HasImagePath(ctx context.Context, newsID int64, path string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM news_images WHERE news_id = ? AND filename = ?`, newsID, path).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanNews scans a single row into a News.
func scanNews(row *sql.Row) (domain.News, error) {
	var n domain.News
	var thumb sql.NullString
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.DatePosted, &thumb)
	if err != nil {
		return domain.News{}, err
	}
	n.Thumbnail = thumb.String
	return n, nil
}

// scanImages scans attachment rows.
func scanImages(rows *sql.Rows) ([]domain.Image, error) {
	var images []domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.NewsID, &img.Path); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
