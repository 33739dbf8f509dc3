package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Service, error) {
	var service domain.Service
	err := db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Service, error) {
	var service domain.Service
	err := db.WithContext(ctx).First(&service, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool, page pagination.Pagination) ([]*domain.Service, error) {
	var services []*domain.Service

	query := db.WithContext(ctx).Model(&domain.Service{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	query = query.Scopes(pagination.Apply(page)).Order("created_at desc, id desc")

	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, service *domain.Service) error {
	return db.WithContext(ctx).Save(service).Error
}
