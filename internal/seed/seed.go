package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	"github.com/handyheartslabs/handyhearts/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type catalogSeed struct {
	Name          string
	Description   string
	BaseRateCents int64
	MinHours      float64
}

var defaultServices = []catalogSeed{
	{
		Name:          "Tech Concierge",
		Description:   "Hands-on help with phones, tablets and video calls.",
		BaseRateCents: 4500,
		MinHours:      1,
	},
	{
		Name:          "Errand Runner",
		Description:   "Groceries, pharmacy pickups and small household errands.",
		BaseRateCents: 3500,
		MinHours:      2,
	},
	{
		Name:          "Companion Care",
		Description:   "Friendly in-home visits, conversation and light activities.",
		BaseRateCents: 5000,
		MinHours:      3,
	},
}

// Run provisions the first admin account and the starter catalog. It is
// idempotent and safe to invoke on every deploy.
func Run(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))
	password := cfg.Seed.AdminPassword
	if email == "" || password == "" {
		return errors.New("seed admin credentials are required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAdmin(ctx, tx, node, email, password); err != nil {
			return err
		}
		return ensureCatalog(ctx, tx, node)
	})
}

func ensureAdmin(ctx context.Context, tx *gorm.DB, node *snowflake.Node, email, password string) error {
	var existing accountdomain.User
	err := tx.WithContext(ctx).First(&existing, "lower(email) = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return tx.WithContext(ctx).Create(&accountdomain.User{
		ID:           node.Generate(),
		Email:        email,
		Name:         "HandyHearts Admin",
		PasswordHash: string(hash),
		Role:         accountdomain.RoleAdmin,
		IsApproved:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}

func ensureCatalog(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	for _, entry := range defaultServices {
		code := slug.Make(entry.Name)

		var existing catalogdomain.Service
		err := tx.WithContext(ctx).First(&existing, "code = ?", code).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		if err := tx.WithContext(ctx).Create(&catalogdomain.Service{
			ID:            node.Generate(),
			Code:          code,
			Name:          entry.Name,
			Description:   entry.Description,
			BaseRateCents: entry.BaseRateCents,
			MinHours:      entry.MinHours,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
