package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, service *Service) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Service, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Service, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool, page pagination.Pagination) ([]*Service, error)
	Update(ctx context.Context, db *gorm.DB, service *Service) error
}
