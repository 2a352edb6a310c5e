package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"atlas/internal/config"
)

// Store manages catalogue persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalogue database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the backing database file.
func (s *Store) Path() string {
	return s.path
}

// Create inserts a new record. The id, timestamps, and placeholder image URL
// are assigned here; callers supply the content fields.
func (s *Store) Create(ctx context.Context, record Record) (*Record, error) {
	if strings.TrimSpace(record.Title) == "" {
		return nil, ErrTitleRequired
	}
	if _, ok := categorySet[record.Category]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, record.Category)
	}

	record.ID = uuid.NewString()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if strings.TrimSpace(record.ImageURL) == "" {
		record.ImageURL = PlaceholderImageURL
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (
            id, category, title, description, location, price, history,
            image_url, image_name, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Category,
		record.Title,
		nullableString(record.Description),
		nullableString(record.Location),
		nullableString(record.Price),
		nullableString(record.History),
		nullableString(record.ImageURL),
		nullableString(record.ImageName),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	return &record, nil
}

// GetByID fetches a record by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// List returns records in a category, newest first.
func (s *Store) List(ctx context.Context, category Category) ([]*Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+recordColumns+` FROM records WHERE category = ? ORDER BY created_at DESC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update persists changes to an existing record's content fields.
func (s *Store) Update(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	if strings.TrimSpace(record.Title) == "" {
		return ErrTitleRequired
	}
	record.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE records
         SET title = ?, description = ?, location = ?, price = ?, history = ?,
             image_url = ?, image_name = ?, updated_at = ?
         WHERE id = ?`,
		record.Title,
		nullableString(record.Description),
		nullableString(record.Location),
		nullableString(record.Price),
		nullableString(record.History),
		nullableString(record.ImageURL),
		nullableString(record.ImageName),
		record.UpdatedAt.Format(time.RFC3339Nano),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, record.ID)
	}
	return nil
}

// UpdateImage replaces a record's image reference. ErrNotFound is returned for
// unknown ids so bulk callers can record a per-item reason.
func (s *Store) UpdateImage(ctx context.Context, id, imageURL, imageName string) (*Record, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE records SET image_url = ?, image_name = ?, updated_at = ? WHERE id = ?`,
		nullableString(imageURL),
		nullableString(imageName),
		now.Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update record image: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a record by identifier.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Clear removes all records in a category and returns how many were deleted.
func (s *Store) Clear(ctx context.Context, category Category) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE category = ?`, category)
	if err != nil {
		return 0, fmt.Errorf("clear category: %w", err)
	}
	return res.RowsAffected()
}

// CountStats returns record counts grouped by category.
func (s *Store) CountStats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(1) FROM records GROUP BY category`)
	if err != nil {
		return Stats{}, fmt.Errorf("catalogue stats: %w", err)
	}
	defer rows.Close()

	stats := Stats{PerCategory: make(map[Category]int)}
	for rows.Next() {
		var category Category
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return Stats{}, err
		}
		stats.PerCategory[category] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

const recordColumns = "id, category, title, description, location, price, history, image_url, image_name, created_at, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id          string
		category    string
		title       string
		description sql.NullString
		location    sql.NullString
		price       sql.NullString
		history     sql.NullString
		imageURL    sql.NullString
		imageName   sql.NullString
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&category,
		&title,
		&description,
		&location,
		&price,
		&history,
		&imageURL,
		&imageName,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:          id,
		Category:    Category(category),
		Title:       title,
		Description: description.String,
		Location:    location.String,
		Price:       price.String,
		History:     history.String,
		ImageURL:    imageURL.String,
		ImageName:   imageName.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
