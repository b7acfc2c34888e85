package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const DefaultSQLiteURL = "./blog.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database and brings its schema up to date.
func NewSQLiteStore(ctx context.Context, dataSourceName string) (*SQLiteStore, error) {
	if dataSourceName == "" {
		dataSourceName = DefaultSQLiteURL
	}
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrateSQLite(db); err != nil {
		db.Close()
		return nil, err
	}
	// SQLite allows a single writer; one connection serialises requests
	// instead of failing them with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, p *domain.Post) error {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, "INSERT INTO posts (id, title, body, date) VALUES (?, ?, ?, ?)",
		id, p.Title, p.Body, p.Date.UTC())
	if err != nil {
		return fmt.Errorf("error inserting into table posts: %w", err)
	}
	p.ID = id
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Post{}, domain.ErrPostNotFound
	}
	row := s.db.QueryRowContext(ctx, "SELECT id, title, body, date FROM posts WHERE id = ?", id)
	p := domain.Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Body, &p.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, domain.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("error reading post %s: %w", id, err)
	}
	p.Date = p.Date.UTC()
	return p, nil
}

func (s *SQLiteStore) Update(ctx context.Context, p domain.Post) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, "UPDATE posts SET title = ?, body = ?, date = ? WHERE id = ?",
		p.Title, p.Body, p.Date.UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("error updating post %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id); err != nil {
		return fmt.Errorf("error deleting post %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, body, date FROM posts ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()
	posts := []domain.Post{}
	for rows.Next() {
		p := domain.Post{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Date); err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		p.Date = p.Date.UTC()
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}
