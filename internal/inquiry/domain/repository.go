package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	UserID     snowflake.ID
	ProviderID snowflake.ID
	Status     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, submission *Submission) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Submission, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Submission, error)
	Update(ctx context.Context, db *gorm.DB, submission *Submission) error
}
