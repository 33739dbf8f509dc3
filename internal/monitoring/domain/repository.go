package domain

import (
	"context"

	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

// NoteRow is a note joined with its author's display name.
type NoteRow struct {
	Note
	AuthorName string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, note *Note) error
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*NoteRow, error)
}
