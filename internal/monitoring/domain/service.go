package domain

import (
	"context"
	"errors"
	"time"

	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

type CreateRequest struct {
	Priority string `json:"priority"`
	Content  string `json:"content"`
}

type ListRequest struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type ListResponse struct {
	PageInfo pagination.PageInfo `json:"page_info"`
	Notes    []Response          `json:"notes"`
}

type Response struct {
	ID         string    `json:"id"`
	Priority   Priority  `json:"priority"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

var (
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrInvalidContent  = errors.New("invalid_content")
	ErrMissingActor    = errors.New("missing_actor")
)
