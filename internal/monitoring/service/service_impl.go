package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	"github.com/handyheartslabs/handyhearts/internal/clock"
	"github.com/handyheartslabs/handyhearts/internal/monitoring/domain"
	"github.com/handyheartslabs/handyhearts/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("monitoring.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	actor, ok := actorcontext.FromContext(ctx)
	if !ok {
		return nil, domain.ErrMissingActor
	}

	priority := domain.Priority(strings.ToUpper(strings.TrimSpace(req.Priority)))
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, domain.ErrInvalidContent
	}

	note := &domain.Note{
		ID:        s.genID.Generate(),
		Priority:  priority,
		Content:   content,
		AuthorID:  actor.UserID,
		CreatedAt: s.clock.Now(ctx),
	}
	if err := s.repo.Insert(ctx, s.db, note); err != nil {
		return nil, err
	}

	s.log.Info("monitoring note created",
		zap.String("note_id", note.ID.String()),
		zap.String("priority", string(priority)))

	return &domain.Response{
		ID:        note.ID.String(),
		Priority:  note.Priority,
		Content:   note.Content,
		AuthorID:  note.AuthorID.String(),
		CreatedAt: note.CreatedAt,
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.repo.List(ctx, s.db, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, pageSize, func(row *domain.NoteRow) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        row.ID.String(),
			CreatedAt: row.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(rows) > pageSize {
		rows = rows[:pageSize]
	}

	notes := make([]domain.Response, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, domain.Response{
			ID:         row.ID.String(),
			Priority:   row.Priority,
			Content:    row.Content,
			AuthorID:   row.AuthorID.String(),
			AuthorName: row.AuthorName,
			CreatedAt:  row.CreatedAt,
		})
	}

	out := domain.ListResponse{Notes: notes}
	if pageInfo != nil {
		out.PageInfo = *pageInfo
	}
	return out, nil
}
