package repository

import (
	"context"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

func (s *Store) CreatePost(ctx context.Context, post model.Post) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO posts (id, title, description, type, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, post.ID, post.Title, post.Description, post.Type, post.CreatedBy, post.CreatedAt, post.UpdatedAt)
	return normalizeErr(err)
}

// ListPosts returns posts newest first, optionally filtered by type
// (notice or event).
func (s *Store) ListPosts(ctx context.Context, postType string) ([]model.Post, error) {
	query := `
		SELECT id, title, description, type, created_by, created_at, updated_at
		FROM posts
	`
	args := []interface{}{}
	if postType != "" {
		query += ` WHERE type = $1`
		args = append(args, postType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, normalizeErr(err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Description,
			&post.Type,
			&post.CreatedBy,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, normalizeErr(err)
		}
		posts = append(posts, post)
	}
	return posts, normalizeErr(rows.Err())
}

func (s *Store) GetPost(ctx context.Context, postID string) (model.Post, error) {
	var post model.Post
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, description, type, created_by, created_at, updated_at
		FROM posts
		WHERE id = $1
	`, postID)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Description,
		&post.Type,
		&post.CreatedBy,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	return post, normalizeErr(err)
}

func (s *Store) UpdatePost(ctx context.Context, post model.Post) (model.Post, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, description = $2, type = $3, updated_at = now()
		WHERE id = $4
	`, post.Title, post.Description, post.Type, post.ID)
	if err != nil {
		return model.Post{}, normalizeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Post{}, model.ErrNotFound
	}
	return s.GetPost(ctx, post.ID)
}

func (s *Store) DeletePost(ctx context.Context, postID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return normalizeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
