package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	accountrepo "github.com/handyheartslabs/handyhearts/internal/account/repository"
	"github.com/handyheartslabs/handyhearts/internal/actorcontext"
	"github.com/handyheartslabs/handyhearts/internal/booking/domain"
	"github.com/handyheartslabs/handyhearts/internal/booking/repository"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	catalogrepo "github.com/handyheartslabs/handyhearts/internal/catalog/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Monday morning, so weekend and same-day flags default to off.
var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.now }

func setupService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountdomain.User{}, &catalogdomain.Service{}))
	// sqlite has no text[]; accessibility_needs degrades to TEXT here.
	require.NoError(t, db.Exec(`CREATE TABLE bookings (
		id INTEGER PRIMARY KEY,
		family_id INTEGER NOT NULL,
		provider_id INTEGER,
		service_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		scheduled_at DATETIME NOT NULL,
		duration_hours REAL NOT NULL,
		weekend BOOLEAN NOT NULL DEFAULT FALSE,
		same_day BOOLEAN NOT NULL DEFAULT FALSE,
		address_text TEXT NOT NULL,
		notes TEXT,
		accessibility_needs TEXT,
		price_breakdown TEXT NOT NULL,
		total_amount_cents INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fixedClock{now: testNow},
		Repo:     repository.Provide(),
		Catalog:  catalogrepo.Provide(),
		Accounts: accountrepo.Provide(),
	})
	return svc, db
}

func seedCatalog(t *testing.T, db *gorm.DB, id int64, rateCents int64, minHours float64, active bool) {
	t.Helper()
	svc := &catalogdomain.Service{
		ID:            snowflake.ID(id),
		Code:          "errand-runner-" + strconv.FormatInt(id, 10),
		Name:          "Errand Runner",
		BaseRateCents: rateCents,
		MinHours:      minHours,
		Active:        active,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
	require.NoError(t, db.Create(svc).Error)
	// gorm substitutes the default:true tag for a zero-valued Active on
	// insert, so set the intended value with an update.
	require.NoError(t, db.Model(svc).Update("active", active).Error)
}

func seedProvider(t *testing.T, db *gorm.DB, id int64, approved, banned bool) {
	t.Helper()
	require.NoError(t, db.Create(&accountdomain.User{
		ID:           snowflake.ID(id),
		Email:        "provider@example.com",
		Name:         "Pat Okafor",
		PasswordHash: "x",
		Role:         accountdomain.RoleProvider,
		IsApproved:   approved,
		IsBanned:     banned,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}).Error)
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

func adminCtx() context.Context {
	return actorcontext.WithActor(context.Background(), actorcontext.Actor{
		UserID: snowflake.ID(999),
		Role:   string(accountdomain.RoleAdmin),
	})
}

func TestCreateFloorsToMinimumHours(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 2, true)

	resp, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-04T10:00:00Z", // Wednesday
		DurationHours: 1,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendingPayment, resp.Status)
	assert.Equal(t, int64(7000), resp.TotalAmountCents)
	require.Len(t, resp.PriceBreakdown.Items, 1)
	assert.Equal(t, int64(7000), resp.PriceBreakdown.Items[0].AmountCents)
	assert.False(t, resp.Weekend)
	assert.False(t, resp.SameDay)
}

func TestCreateDerivesWeekendFromSchedule(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)

	resp, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-07T10:00:00Z", // Saturday
		DurationHours: 3,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	assert.True(t, resp.Weekend)
	assert.Equal(t, int64(12075), resp.TotalAmountCents)
	require.Len(t, resp.PriceBreakdown.Items, 2)
	assert.Equal(t, int64(10500), resp.PriceBreakdown.Items[0].AmountCents)
	assert.Equal(t, int64(1575), resp.PriceBreakdown.Items[1].AmountCents)
}

func TestCreateDerivesSameDayFromSchedule(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)

	resp, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-02T17:00:00Z", // later the same Monday
		DurationHours: 2,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	assert.True(t, resp.SameDay)
	assert.Equal(t, int64(9500), resp.TotalAmountCents)
}

func TestCreateValidation(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)
	seedCatalog(t, db, 11, 3500, 1, false)
	ctx := familyCtx(1)

	base := domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-04T10:00:00Z",
		DurationHours: 2,
		AddressText:   "12 Maple Street",
	}

	past := base
	past.ScheduledAt = "2026-02-01T10:00:00Z"
	_, err := svc.Create(ctx, past)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	badDuration := base
	badDuration.DurationHours = 0
	_, err = svc.Create(ctx, badDuration)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	noAddress := base
	noAddress.AddressText = "  "
	_, err = svc.Create(ctx, noAddress)
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	unknownService := base
	unknownService.ServiceID = "404404"
	_, err = svc.Create(ctx, unknownService)
	assert.ErrorIs(t, err, domain.ErrInvalidService)

	archived := base
	archived.ServiceID = "11"
	_, err = svc.Create(ctx, archived)
	assert.ErrorIs(t, err, catalogdomain.ErrInactive)

	_, err = svc.Create(context.Background(), base)
	assert.ErrorIs(t, err, domain.ErrMissingActor)
}

func TestBookingLifecycle(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)
	seedProvider(t, db, 77, true, false)

	created, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-04T10:00:00Z",
		DurationHours: 2,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, paid.Status)

	assigned, err := svc.Assign(adminCtx(), created.ID, "77")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, assigned.Status)
	assert.Equal(t, "77", assigned.ProviderID)

	started, err := svc.Start(providerCtx(77), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, started.Status)

	completed, err := svc.Complete(providerCtx(77), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)

	// Terminal state: no further transitions.
	_, err = svc.Cancel(familyCtx(1), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionsAreOrdered(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)
	seedProvider(t, db, 77, true, false)

	created, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-04T10:00:00Z",
		DurationHours: 2,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	// Cannot assign or complete before payment.
	_, err = svc.Assign(adminCtx(), created.ID, "77")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Complete(adminCtx(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Replayed webhook delivery.
	_, err = svc.MarkPaid(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAssignRejectsIneligibleProviders(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)
	seedProvider(t, db, 88, false, false)

	created, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-04T10:00:00Z",
		DurationHours: 2,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Assign(adminCtx(), created.ID, "88")
	assert.ErrorIs(t, err, domain.ErrProviderNotEligible)

	_, err = svc.Assign(adminCtx(), created.ID, "404404")
	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}

func TestReadAuthorization(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)
	seedProvider(t, db, 77, true, false)

	created, err := svc.Create(familyCtx(1), domain.CreateRequest{
		ServiceID:     "10",
		ScheduledAt:   "2026-03-04T10:00:00Z",
		DurationHours: 2,
		AddressText:   "12 Maple Street",
	})
	require.NoError(t, err)

	// Owner, admin: allowed. Stranger: forbidden.
	_, err = svc.Get(familyCtx(1), created.ID)
	assert.NoError(t, err)
	_, err = svc.Get(adminCtx(), created.ID)
	assert.NoError(t, err)
	_, err = svc.Get(familyCtx(2), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Assigned provider gains read access.
	_, err = svc.MarkPaid(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = svc.Assign(adminCtx(), created.ID, "77")
	require.NoError(t, err)
	_, err = svc.Get(providerCtx(77), created.ID)
	assert.NoError(t, err)

	// Unassigned provider cannot start someone else's visit.
	_, err = svc.Start(providerCtx(66), created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListByFamilyScopesToActor(t *testing.T) {
	svc, db := setupService(t)
	seedCatalog(t, db, 10, 3500, 1, true)

	for _, familyID := range []int64{1, 1, 2} {
		_, err := svc.Create(familyCtx(familyID), domain.CreateRequest{
			ServiceID:     "10",
			ScheduledAt:   "2026-03-04T10:00:00Z",
			DurationHours: 2,
			AddressText:   "12 Maple Street",
		})
		require.NoError(t, err)
	}

	mine, err := svc.ListByFamily(familyCtx(1), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Bookings, 2)

	all, err := svc.ListAll(adminCtx(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 3)
}
