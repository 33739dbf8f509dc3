package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	accountrepo "github.com/handyheartslabs/handyhearts/internal/account/repository"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	"github.com/handyheartslabs/handyhearts/internal/inquiry/domain"
	"github.com/handyheartslabs/handyhearts/internal/inquiry/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.User{}, &domain.Submission{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fixedClock{now: testNow},
		Repo:     repository.Provide(),
		Accounts: accountrepo.Provide(),
	})
	return svc, db
}

func familyCtx(id int64) context.Context {
	return actorcontext.WithActor(context.Background(), actorcontext.Actor{
		UserID: snowflake.ID(id),
		Role:   string(accountdomain.RoleFamily),
	})
}

func providerCtx(id int64) context.Context {
	return actorcontext.WithActor(context.Background(), actorcontext.Actor{
		UserID: snowflake.ID(id),
		Role:   string(accountdomain.RoleProvider),
	})
}

func seedProvider(t *testing.T, db *gorm.DB, id int64, approved bool) {
	t.Helper()
	require.NoError(t, db.Create(&accountdomain.User{
		ID:           snowflake.ID(id),
		Email:        "provider@example.com",
		Name:         "Pat Okafor",
		PasswordHash: "x",
		Role:         accountdomain.RoleProvider,
		IsApproved:   approved,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}).Error)
}

func submitReq() domain.SubmitRequest {
	return domain.SubmitRequest{
		FullName:         "Martha Reyes",
		PhoneE164:        "+15551230000",
		Email:            "Martha@Example.com",
		ServiceRequested: "companion care",
		PreferredDate:    "2026-03-14T10:00:00Z",
		Notes:            "Prefers afternoon visits.",
	}
}

func TestSubmit(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Submit(familyCtx(1), submitReq())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNew, resp.Status)
	assert.Equal(t, "1", resp.UserID)
	assert.Equal(t, string(accountdomain.RoleFamily), resp.RoleSnapshot)
	assert.Equal(t, "martha@example.com", resp.Email)
	require.NotNil(t, resp.PreferredDate)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), *resp.PreferredDate)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := familyCtx(1)

	noName := submitReq()
	noName.FullName = "  "
	_, err := svc.Submit(ctx, noName)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	badPhone := submitReq()
	badPhone.PhoneE164 = "555-1230"
	_, err = svc.Submit(ctx, badPhone)
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	noService := submitReq()
	noService.ServiceRequested = ""
	_, err = svc.Submit(ctx, noService)
	assert.ErrorIs(t, err, domain.ErrInvalidService)

	badDate := submitReq()
	badDate.PreferredDate = "next tuesday"
	_, err = svc.Submit(ctx, badDate)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.Submit(context.Background(), submitReq())
	assert.ErrorIs(t, err, domain.ErrMissingActor)
}

func TestListMineScopesToActor(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Submit(familyCtx(1), submitReq())
	require.NoError(t, err)
	_, err = svc.Submit(familyCtx(1), submitReq())
	require.NoError(t, err)
	_, err = svc.Submit(familyCtx(2), submitReq())
	require.NoError(t, err)

	mine, err := svc.ListMine(familyCtx(1), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Inquiries, 2)

	all, err := svc.ListAll(context.Background(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Inquiries, 3)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := setupService(t)

	created, err := svc.Submit(familyCtx(1), submitReq())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, domain.StatusInReview)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInReview, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), created.ID, domain.Status("escalated"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "123456789", domain.StatusClosed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignProvider(t *testing.T) {
	svc, db := setupService(t)
	seedProvider(t, db, 77, true)

	created, err := svc.Submit(familyCtx(1), submitReq())
	require.NoError(t, err)

	assigned, err := svc.AssignProvider(context.Background(), created.ID, "77")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, assigned.Status)
	assert.Equal(t, "77", assigned.AssignedProviderUserID)

	// The provider sees it in their queue.
	queue, err := svc.ListAssigned(providerCtx(77), domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, queue.Inquiries, 1)
	assert.Equal(t, created.ID, queue.Inquiries[0].ID)
}

func TestAssignProviderRejectsIneligible(t *testing.T) {
	svc, db := setupService(t)
	seedProvider(t, db, 88, false)

	created, err := svc.Submit(familyCtx(1), submitReq())
	require.NoError(t, err)

	_, err = svc.AssignProvider(context.Background(), created.ID, "88")
	assert.ErrorIs(t, err, domain.ErrProviderNotEligible)

	_, err = svc.AssignProvider(context.Background(), created.ID, "404404")
	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}
