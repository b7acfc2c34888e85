package store

import (
	"context"
	"errors"
	"fmt"

	"blog/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore applies the migrations and opens a connection pool.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	if err := migratePostgres(url); err != nil {
		return nil, err
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, p *domain.Post) error {
	id := uuid.NewString()
	const q = `INSERT INTO posts (id, title, body, date) VALUES ($1, $2, $3, $4)`
	if _, err := s.pool.Exec(ctx, q, id, p.Title, p.Body, p.Date.UTC()); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	p.ID = id
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Post{}, domain.ErrPostNotFound
	}
	const q = `SELECT id::text, title, body, date FROM posts WHERE id = $1`
	var p domain.Post
	err := s.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Body, &p.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Post{}, domain.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	p.Date = p.Date.UTC()
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p domain.Post) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return nil
	}
	const q = `UPDATE posts SET title = $1, body = $2, date = $3 WHERE id = $4`
	if _, err := s.pool.Exec(ctx, q, p.Title, p.Body, p.Date.UTC(), p.ID); err != nil {
		return fmt.Errorf("update post %s: %w", p.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Post, error) {
	const q = `SELECT id::text, title, body, date FROM posts ORDER BY date DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Date); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		p.Date = p.Date.UTC()
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
