package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltport/models"
)

type stubBookingRepo struct {
	byID         map[string]*models.Booking
	overlapping  int64
	paidInWindow int64
	created      *models.Booking
	updated      *models.Booking
	deletedID    string
}

func (r *stubBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.byID[id], nil
}
func (r *stubBookingRepo) ListByUser(userID string) ([]models.Booking, error) { return nil, nil }
func (r *stubBookingRepo) ListAll() ([]models.Booking, error)                 { return nil, nil }
func (r *stubBookingRepo) ListPaidByPortWindow(portID string, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (r *stubBookingRepo) Create(b *models.Booking) error { r.created = b; return nil }
func (r *stubBookingRepo) Update(b *models.Booking) error { r.updated = b; return nil }
func (r *stubBookingRepo) Delete(id string) error         { r.deletedID = id; return nil }
func (r *stubBookingRepo) CountPaidOverlapping(portID string, start, end time.Time) (int64, error) {
	return r.overlapping, nil
}
func (r *stubBookingRepo) CountPaidByUserInWindow(userID string, from, to time.Time) (int64, error) {
	return r.paidInWindow, nil
}
func (r *stubBookingRepo) CountByUser(userID string) (int64, error) { return 0, nil }
func (r *stubBookingRepo) Count() (int64, error)                    { return 0, nil }
func (r *stubBookingRepo) CountStartingBetween(from, to time.Time) (int64, error) {
	return 0, nil
}

type stubPortRepo struct {
	port *models.Port
}

func (r *stubPortRepo) GetByID(id string) (*models.Port, error) {
	if r.port != nil && r.port.ID == id {
		return r.port, nil
	}
	return nil, nil
}
func (r *stubPortRepo) GetAll(city string) ([]models.Port, error) { return nil, nil }
func (r *stubPortRepo) Create(p *models.Port) error               { return nil }
func (r *stubPortRepo) Update(p *models.Port) error               { return nil }
func (r *stubPortRepo) Delete(id string) error                    { return nil }
func (r *stubPortRepo) Count() (int64, error)                     { return 0, nil }
func (r *stubPortRepo) CountActive() (int64, error)               { return 0, nil }

type stubSubscriptionRepo struct {
	sub  *models.UserSubscription
	plan *models.SubscriptionPlan
}

func (r *stubSubscriptionRepo) ListActivePlans() ([]models.SubscriptionPlan, error) {
	return nil, nil
}
func (r *stubSubscriptionRepo) GetPlanByID(id string) (*models.SubscriptionPlan, error) {
	return r.plan, nil
}
func (r *stubSubscriptionRepo) CreatePlan(p *models.SubscriptionPlan) error { return nil }
func (r *stubSubscriptionRepo) GetActiveByUser(userID string) (*models.UserSubscription, error) {
	return r.sub, nil
}
func (r *stubSubscriptionRepo) ListActiveByUser(userID string) ([]models.UserSubscription, error) {
	return nil, nil
}
func (r *stubSubscriptionRepo) CreateSubscription(s *models.UserSubscription) error { return nil }
func (r *stubSubscriptionRepo) DeactivateByUser(userID string) error                { return nil }
func (r *stubSubscriptionRepo) CountActiveByUser(userID string) (int64, error)      { return 0, nil }
func (r *stubSubscriptionRepo) CountActive() (int64, error)                         { return 0, nil }

type stubLocker struct {
	acquired bool
	unlocked bool
}

func (l *stubLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return l.acquired, "lock-value", nil
}
func (l *stubLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.unlocked = true
	return nil
}

type stubPayments struct {
	paymentID string
	err       error
}

func (p *stubPayments) Charge(userID string, amount float64, method string) (string, error) {
	return p.paymentID, p.err
}

var testNow = time.Date(2026, 1, 26, 8, 0, 0, 0, time.UTC)

func newTestService(repo *stubBookingRepo, subs *stubSubscriptionRepo) (*DefaultBookingService, *stubLocker) {
	locker := &stubLocker{acquired: true}
	svc := &DefaultBookingService{
		Repo:             repo,
		PortRepo:         &stubPortRepo{port: &models.Port{ID: "port-1", Name: "Dock A"}},
		SubscriptionRepo: subs,
		Locker:           locker,
		Payments:         &stubPayments{paymentID: "pay-1"},
		Now:              func() time.Time { return testNow },
	}
	return svc, locker
}

func TestCreateBooking_RejectsInvertedInterval(t *testing.T) {
	svc, _ := newTestService(&stubBookingRepo{}, &stubSubscriptionRepo{})

	_, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(2 * time.Hour),
		EndTime:   testNow.Add(time.Hour),
	})

	var vErr *ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))
}

func TestCreateBooking_RejectsPastStart(t *testing.T) {
	svc, _ := newTestService(&stubBookingRepo{}, &stubSubscriptionRepo{})

	_, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(-time.Hour),
		EndTime:   testNow.Add(time.Hour),
	})

	var vErr *ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))
}

func TestCreateBooking_UnknownPort(t *testing.T) {
	svc, _ := newTestService(&stubBookingRepo{}, &stubSubscriptionRepo{})

	_, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "no-such-port",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
	})

	var nfErr *NotFoundError
	require.Error(t, err)
	assert.True(t, errors.As(err, &nfErr))
}

func TestCreateBooking_Conflict(t *testing.T) {
	svc, locker := newTestService(&stubBookingRepo{overlapping: 1}, &stubSubscriptionRepo{})

	_, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
	})

	var cErr *ConflictError
	require.Error(t, err)
	assert.True(t, errors.As(err, &cErr))
	assert.True(t, locker.unlocked)
}

func TestCreateBooking_LockContention(t *testing.T) {
	svc, locker := newTestService(&stubBookingRepo{}, &stubSubscriptionRepo{})
	locker.acquired = false

	_, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
	})

	var cErr *ConflictError
	require.Error(t, err)
	assert.True(t, errors.As(err, &cErr))
}

func TestCreateBooking_PayPerUsePending(t *testing.T) {
	repo := &stubBookingRepo{}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})

	bk, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(3 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, bk.PaymentStatus)
	assert.Equal(t, 10.0, bk.Amount)
	assert.NotEmpty(t, bk.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, bk.ID, repo.created.ID)
}

func TestCreateBooking_SubscriptionCovered(t *testing.T) {
	subs := &stubSubscriptionRepo{
		sub: &models.UserSubscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    "plan-1",
			StartDate: testNow.Add(-24 * time.Hour),
			EndDate:   testNow.Add(6 * 24 * time.Hour),
			IsActive:  true,
		},
		plan: &models.SubscriptionPlan{ID: "plan-1", BookingLimit: 10},
	}
	svc, _ := newTestService(&stubBookingRepo{paidInWindow: 3}, subs)

	bk, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, bk.PaymentStatus)
	assert.Equal(t, "subscription", bk.PaymentMethod)
	assert.Equal(t, 0.0, bk.Amount)
}

func TestCreateBooking_QuotaExhaustedFallsBackToPayPerUse(t *testing.T) {
	subs := &stubSubscriptionRepo{
		sub: &models.UserSubscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    "plan-1",
			StartDate: testNow.Add(-24 * time.Hour),
			EndDate:   testNow.Add(6 * 24 * time.Hour),
			IsActive:  true,
		},
		plan: &models.SubscriptionPlan{ID: "plan-1", BookingLimit: 5},
	}
	svc, _ := newTestService(&stubBookingRepo{paidInWindow: 5}, subs)

	bk, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, bk.PaymentStatus)
	assert.Equal(t, 5.0, bk.Amount)
}

func TestCreateBooking_ExpiredSubscriptionIgnored(t *testing.T) {
	subs := &stubSubscriptionRepo{
		sub: &models.UserSubscription{
			ID:        "sub-1",
			UserID:    "user-1",
			PlanID:    "plan-1",
			StartDate: testNow.Add(-14 * 24 * time.Hour),
			EndDate:   testNow.Add(-7 * 24 * time.Hour),
			IsActive:  true,
		},
		plan: &models.SubscriptionPlan{ID: "plan-1", BookingLimit: 10},
	}
	svc, _ := newTestService(&stubBookingRepo{}, subs)

	bk, err := svc.CreateBooking("user-1", CreateBookingRequest{
		PortID:    "port-1",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(2 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, bk.PaymentStatus)
	assert.Equal(t, 5.0, bk.Amount)
}

func TestProcessPayment_ChargesPendingBooking(t *testing.T) {
	repo := &stubBookingRepo{
		byID: map[string]*models.Booking{
			"bk-1": {
				ID:            "bk-1",
				UserID:        "user-1",
				PortID:        "port-1",
				Amount:        10.0,
				PaymentStatus: models.PaymentPending,
			},
		},
	}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})

	bk, err := svc.ProcessPayment("user-1", "bk-1", "card")

	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, bk.PaymentStatus)
	assert.Equal(t, "card", bk.PaymentMethod)
	assert.Equal(t, "pay-1", bk.PaymentID)
	require.NotNil(t, repo.updated)
}

func TestProcessPayment_AlreadyPaid(t *testing.T) {
	repo := &stubBookingRepo{
		byID: map[string]*models.Booking{
			"bk-1": {ID: "bk-1", UserID: "user-1", PaymentStatus: models.PaymentPaid},
		},
	}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})

	_, err := svc.ProcessPayment("user-1", "bk-1", "card")

	var vErr *ValidationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))
}

func TestProcessPayment_WrongUser(t *testing.T) {
	repo := &stubBookingRepo{
		byID: map[string]*models.Booking{
			"bk-1": {ID: "bk-1", UserID: "user-1", PaymentStatus: models.PaymentPending},
		},
	}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})

	_, err := svc.ProcessPayment("user-2", "bk-1", "card")

	var fErr *ForbiddenError
	require.Error(t, err)
	assert.True(t, errors.As(err, &fErr))
}

func TestProcessPayment_ChargeFailureMarksFailed(t *testing.T) {
	repo := &stubBookingRepo{
		byID: map[string]*models.Booking{
			"bk-1": {
				ID:            "bk-1",
				UserID:        "user-1",
				Amount:        5.0,
				PaymentStatus: models.PaymentPending,
			},
		},
	}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})
	svc.Payments = &stubPayments{err: errors.New("card declined")}

	_, err := svc.ProcessPayment("user-1", "bk-1", "card")

	require.Error(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, models.PaymentFailed, repo.updated.PaymentStatus)
}

func TestCancelBooking_PendingIsDeleted(t *testing.T) {
	repo := &stubBookingRepo{
		byID: map[string]*models.Booking{
			"bk-1": {ID: "bk-1", UserID: "user-1", PaymentStatus: models.PaymentPending},
		},
	}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})

	refunded, err := svc.CancelBooking("user-1", "bk-1")

	require.NoError(t, err)
	assert.False(t, refunded)
	assert.Equal(t, "bk-1", repo.deletedID)
}

func TestCancelBooking_PaidIsRefunded(t *testing.T) {
	repo := &stubBookingRepo{
		byID: map[string]*models.Booking{
			"bk-1": {ID: "bk-1", UserID: "user-1", PaymentStatus: models.PaymentPaid},
		},
	}
	svc, _ := newTestService(repo, &stubSubscriptionRepo{})

	refunded, err := svc.CancelBooking("user-1", "bk-1")

	require.NoError(t, err)
	assert.True(t, refunded)
	require.NotNil(t, repo.updated)
	assert.Equal(t, models.PaymentRefunded, repo.updated.PaymentStatus)
}

func TestAvailableSlots_UnknownPort(t *testing.T) {
	svc, _ := newTestService(&stubBookingRepo{}, &stubSubscriptionRepo{})

	_, err := svc.AvailableSlots("no-such-port")

	var nfErr *NotFoundError
	require.Error(t, err)
	assert.True(t, errors.As(err, &nfErr))
}
