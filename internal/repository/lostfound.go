package repository

import (
	"context"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

func (s *Store) CreateLostFound(ctx context.Context, item model.LostFoundItem) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO lost_found_items (id, title, description, type, location, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, item.ID, item.Title, item.Description, item.Type, item.Location, item.Status, item.CreatedBy, item.CreatedAt, item.UpdatedAt)
	return normalizeErr(err)
}

func (s *Store) ListLostFound(ctx context.Context) ([]model.LostFoundItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, description, type, location, status, created_by, created_at, updated_at
		FROM lost_found_items
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, normalizeErr(err)
	}
	defer rows.Close()

	items := []model.LostFoundItem{}
	for rows.Next() {
		var item model.LostFoundItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Description,
			&item.Type,
			&item.Location,
			&item.Status,
			&item.CreatedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, normalizeErr(err)
		}
		items = append(items, item)
	}
	return items, normalizeErr(rows.Err())
}

func (s *Store) GetLostFound(ctx context.Context, itemID string) (model.LostFoundItem, error) {
	var item model.LostFoundItem
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, description, type, location, status, created_by, created_at, updated_at
		FROM lost_found_items
		WHERE id = $1
	`, itemID)
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Type,
		&item.Location,
		&item.Status,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, normalizeErr(err)
}

func (s *Store) UpdateLostFound(ctx context.Context, item model.LostFoundItem) (model.LostFoundItem, error) {
	_, err := s.pool.Exec(ctx, `
		UPDATE lost_found_items
		SET title = $1, description = $2, type = $3, location = $4, status = $5, updated_at = now()
		WHERE id = $6
	`, item.Title, item.Description, item.Type, item.Location, item.Status, item.ID)
	if err != nil {
		return model.LostFoundItem{}, normalizeErr(err)
	}
	return s.GetLostFound(ctx, item.ID)
}

func (s *Store) DeleteLostFound(ctx context.Context, itemID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM lost_found_items WHERE id = $1`, itemID)
	if err != nil {
		return normalizeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
