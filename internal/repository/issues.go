package repository

import (
	"context"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

func (s *Store) CreateIssue(ctx context.Context, issue model.Issue) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO issues (id, title, description, category, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, issue.ID, issue.Title, issue.Description, issue.Category, issue.Status, issue.CreatedBy, issue.CreatedAt, issue.UpdatedAt)
	return normalizeErr(err)
}

// ListIssues returns issues newest first with the creator's name and email
// joined in; callers decide how much of the creator to expose. When createdBy
// is non-empty only that user's issues are returned.
func (s *Store) ListIssues(ctx context.Context, createdBy string) ([]model.Issue, error) {
	query := `
		SELECT i.id, i.title, i.description, i.category, i.status, i.created_by,
		       i.created_at, i.updated_at, u.name, u.email
		FROM issues i
		JOIN users u ON u.id = i.created_by
	`
	args := []interface{}{}
	if createdBy != "" {
		query += ` WHERE i.created_by = $1`
		args = append(args, createdBy)
	}
	query += ` ORDER BY i.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, normalizeErr(err)
	}
	defer rows.Close()

	issues := []model.Issue{}
	for rows.Next() {
		var issue model.Issue
		if err := rows.Scan(
			&issue.ID,
			&issue.Title,
			&issue.Description,
			&issue.Category,
			&issue.Status,
			&issue.CreatedBy,
			&issue.CreatedAt,
			&issue.UpdatedAt,
			&issue.CreatorName,
			&issue.CreatorEmail,
		); err != nil {
			return nil, normalizeErr(err)
		}
		issues = append(issues, issue)
	}
	return issues, normalizeErr(rows.Err())
}

func (s *Store) GetIssue(ctx context.Context, issueID string) (model.Issue, error) {
	var issue model.Issue
	row := s.pool.QueryRow(ctx, `
		SELECT i.id, i.title, i.description, i.category, i.status, i.created_by,
		       i.created_at, i.updated_at, u.name, u.email
		FROM issues i
		JOIN users u ON u.id = i.created_by
		WHERE i.id = $1
	`, issueID)
	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Category,
		&issue.Status,
		&issue.CreatedBy,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&issue.CreatorName,
		&issue.CreatorEmail,
	)
	return issue, normalizeErr(err)
}

func (s *Store) UpdateIssueStatus(ctx context.Context, issueID, status string) (model.Issue, error) {
	_, err := s.pool.Exec(ctx, `
		UPDATE issues SET status = $1, updated_at = now() WHERE id = $2
	`, status, issueID)
	if err != nil {
		return model.Issue{}, normalizeErr(err)
	}
	return s.GetIssue(ctx, issueID)
}

func (s *Store) DeleteIssue(ctx context.Context, issueID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM issues WHERE id = $1`, issueID)
	if err != nil {
		return normalizeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
