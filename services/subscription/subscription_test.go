package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltport/models"
)

type stubSubRepo struct {
	plans       map[string]*models.SubscriptionPlan
	active      *models.UserSubscription
	created     *models.UserSubscription
	deactivated bool
}

func (r *stubSubRepo) ListActivePlans() ([]models.SubscriptionPlan, error) { return nil, nil }
func (r *stubSubRepo) GetPlanByID(id string) (*models.SubscriptionPlan, error) {
	return r.plans[id], nil
}
func (r *stubSubRepo) CreatePlan(p *models.SubscriptionPlan) error { return nil }
func (r *stubSubRepo) GetActiveByUser(userID string) (*models.UserSubscription, error) {
	return r.active, nil
}
func (r *stubSubRepo) ListActiveByUser(userID string) ([]models.UserSubscription, error) {
	if r.active == nil {
		return nil, nil
	}
	return []models.UserSubscription{*r.active}, nil
}
func (r *stubSubRepo) CreateSubscription(s *models.UserSubscription) error {
	r.created = s
	return nil
}
func (r *stubSubRepo) DeactivateByUser(userID string) error {
	r.deactivated = true
	return nil
}
func (r *stubSubRepo) CountActiveByUser(userID string) (int64, error) { return 0, nil }
func (r *stubSubRepo) CountActive() (int64, error)                    { return 0, nil }

type stubUsageRepo struct {
	paidInWindow int64
}

func (r *stubUsageRepo) GetByID(id string) (*models.Booking, error)           { return nil, nil }
func (r *stubUsageRepo) ListByUser(userID string) ([]models.Booking, error)   { return nil, nil }
func (r *stubUsageRepo) ListAll() ([]models.Booking, error)                   { return nil, nil }
func (r *stubUsageRepo) ListPaidByPortWindow(portID string, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (r *stubUsageRepo) Create(b *models.Booking) error { return nil }
func (r *stubUsageRepo) Update(b *models.Booking) error { return nil }
func (r *stubUsageRepo) Delete(id string) error         { return nil }
func (r *stubUsageRepo) CountPaidOverlapping(portID string, start, end time.Time) (int64, error) {
	return 0, nil
}
func (r *stubUsageRepo) CountPaidByUserInWindow(userID string, from, to time.Time) (int64, error) {
	return r.paidInWindow, nil
}
func (r *stubUsageRepo) CountByUser(userID string) (int64, error) { return 0, nil }
func (r *stubUsageRepo) Count() (int64, error)                    { return 0, nil }
func (r *stubUsageRepo) CountStartingBetween(from, to time.Time) (int64, error) {
	return 0, nil
}

var testNow = time.Date(2026, 1, 26, 8, 0, 0, 0, time.UTC)

func newTestService(repo *stubSubRepo, bookings *stubUsageRepo) *DefaultSubscriptionService {
	return &DefaultSubscriptionService{
		Repo:        repo,
		BookingRepo: bookings,
		Now:         func() time.Time { return testNow },
	}
}

func TestCreatePlan_Validation(t *testing.T) {
	svc := newTestService(&stubSubRepo{}, &stubUsageRepo{})

	_, err := svc.CreatePlan(CreatePlanRequest{Name: "Bad", PlanType: "yearly", BookingLimit: 5, Price: 10})
	require.Error(t, err)

	_, err = svc.CreatePlan(CreatePlanRequest{Name: "Bad", PlanType: models.PlanWeekly, BookingLimit: 0, Price: 10})
	require.Error(t, err)

	plan, err := svc.CreatePlan(CreatePlanRequest{Name: "Weekly", PlanType: models.PlanWeekly, BookingLimit: 10, Price: 19.99})
	require.NoError(t, err)
	assert.True(t, plan.IsActive)
	assert.NotEmpty(t, plan.ID)
}

func TestSubscribe_WeeklyWindow(t *testing.T) {
	repo := &stubSubRepo{
		plans: map[string]*models.SubscriptionPlan{
			"plan-w": {ID: "plan-w", Name: "Weekly", PlanType: models.PlanWeekly, BookingLimit: 10, IsActive: true},
		},
	}
	svc := newTestService(repo, &stubUsageRepo{})

	view, err := svc.Subscribe("user-1", "plan-w")

	require.NoError(t, err)
	assert.True(t, repo.deactivated)
	require.NotNil(t, repo.created)
	assert.Equal(t, testNow, repo.created.StartDate)
	assert.Equal(t, testNow.Add(7*24*time.Hour), repo.created.EndDate)
	assert.Equal(t, int64(10), view.BookingsRemaining)
}

func TestSubscribe_MonthlyWindow(t *testing.T) {
	repo := &stubSubRepo{
		plans: map[string]*models.SubscriptionPlan{
			"plan-m": {ID: "plan-m", Name: "Monthly", PlanType: models.PlanMonthly, BookingLimit: 50, IsActive: true},
		},
	}
	svc := newTestService(repo, &stubUsageRepo{})

	_, err := svc.Subscribe("user-1", "plan-m")

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, testNow.Add(30*24*time.Hour), repo.created.EndDate)
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	svc := newTestService(&stubSubRepo{plans: map[string]*models.SubscriptionPlan{}}, &stubUsageRepo{})

	_, err := svc.Subscribe("user-1", "nope")
	require.Error(t, err)
}

func TestSubscribe_InactivePlan(t *testing.T) {
	repo := &stubSubRepo{
		plans: map[string]*models.SubscriptionPlan{
			"plan-w": {ID: "plan-w", Name: "Weekly", PlanType: models.PlanWeekly, IsActive: false},
		},
	}
	svc := newTestService(repo, &stubUsageRepo{})

	_, err := svc.Subscribe("user-1", "plan-w")
	require.Error(t, err)
}

func TestCheckLimit_NoSubscription(t *testing.T) {
	svc := newTestService(&stubSubRepo{}, &stubUsageRepo{})

	status, err := svc.CheckLimit("user-1")

	require.NoError(t, err)
	assert.False(t, status.HasSubscription)
	assert.False(t, status.CanBook)
}

func TestCheckLimit_WithQuotaRemaining(t *testing.T) {
	repo := &stubSubRepo{
		plans: map[string]*models.SubscriptionPlan{
			"plan-w": {ID: "plan-w", PlanType: models.PlanWeekly, BookingLimit: 10, IsActive: true},
		},
		active: &models.UserSubscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    "plan-w",
			StartDate: testNow.Add(-24 * time.Hour),
			EndDate:   testNow.Add(6 * 24 * time.Hour),
			IsActive:  true,
		},
	}
	svc := newTestService(repo, &stubUsageRepo{paidInWindow: 4})

	status, err := svc.CheckLimit("user-1")

	require.NoError(t, err)
	assert.True(t, status.HasSubscription)
	assert.True(t, status.CanBook)
	assert.Equal(t, int64(4), status.BookingsUsed)
	assert.Equal(t, int64(6), status.BookingsRemaining)
}

func TestCheckLimit_QuotaExhausted(t *testing.T) {
	repo := &stubSubRepo{
		plans: map[string]*models.SubscriptionPlan{
			"plan-w": {ID: "plan-w", PlanType: models.PlanWeekly, BookingLimit: 5, IsActive: true},
		},
		active: &models.UserSubscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    "plan-w",
			StartDate: testNow.Add(-24 * time.Hour),
			EndDate:   testNow.Add(6 * 24 * time.Hour),
			IsActive:  true,
		},
	}
	svc := newTestService(repo, &stubUsageRepo{paidInWindow: 5})

	status, err := svc.CheckLimit("user-1")

	require.NoError(t, err)
	assert.True(t, status.HasSubscription)
	assert.False(t, status.CanBook)
	assert.Equal(t, int64(0), status.BookingsRemaining)
}

func TestCheckLimit_ExpiredSubscription(t *testing.T) {
	repo := &stubSubRepo{
		plans: map[string]*models.SubscriptionPlan{
			"plan-w": {ID: "plan-w", PlanType: models.PlanWeekly, BookingLimit: 5, IsActive: true},
		},
		active: &models.UserSubscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    "plan-w",
			StartDate: testNow.Add(-14 * 24 * time.Hour),
			EndDate:   testNow.Add(-7 * 24 * time.Hour),
			IsActive:  true,
		},
	}
	svc := newTestService(repo, &stubUsageRepo{})

	status, err := svc.CheckLimit("user-1")

	require.NoError(t, err)
	assert.False(t, status.HasSubscription)
	assert.False(t, status.CanBook)
}
