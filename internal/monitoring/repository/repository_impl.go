package repository

import (
	"context"

	"github.com/handyheartslabs/handyhearts/internal/monitoring/domain"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, note *domain.Note) error {
	return db.WithContext(ctx).Create(note).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.NoteRow, error) {
	var rows []*domain.NoteRow

	query := db.WithContext(ctx).
		Model(&domain.Note{}).
		Select("admin_monitoring_notes.*, app_users.name AS author_name").
		Joins("LEFT JOIN app_users ON app_users.id = admin_monitoring_notes.author_id")

	// Cursor columns are qualified by hand since the join makes the
	// shared pagination scope ambiguous.
	if page.PageToken != "" {
		if cursor, err := pagination.DecodeCursor(page.PageToken); err == nil {
			query = query.Where(
				"(admin_monitoring_notes.created_at, admin_monitoring_notes.id) < (?, ?)",
				cursor.CreatedAt, cursor.ID)
		}
	}
	if page.PageSize > 0 {
		query = query.Limit(page.PageSize + 1)
	}

	err := query.
		Order("admin_monitoring_notes.created_at desc, admin_monitoring_notes.id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
