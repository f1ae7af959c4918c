package booking

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"voltport/config"
	"voltport/models"
	"voltport/utils"
)

// PaymentProcessor charges a user for a booking and returns a payment reference.
type PaymentProcessor interface {
	Charge(userID string, amount float64, method string) (string, error)
}

// StripePaymentProcessor settles charges through Stripe payment intents. When
// no Stripe key is configured the charge is simulated, which keeps local and
// test environments free of external calls.
type StripePaymentProcessor struct{}

// NewPaymentProcessor returns the default Stripe-backed processor.
func NewPaymentProcessor() *StripePaymentProcessor {
	return &StripePaymentProcessor{}
}

// Charge creates and records a payment for the given amount.
func (p *StripePaymentProcessor) Charge(userID string, amount float64, method string) (string, error) {
	logger := utils.GetLogger().With(zap.String("service", "payment"))

	if amount <= 0 {
		return "", NewValidationError("payment amount must be positive")
	}

	if config.AppConfig.StripeKey == "" {
		ref := "sim_" + uuid.NewString()
		logger.Info("simulated payment",
			zap.String("userID", userID),
			zap.Float64("amount", amount),
			zap.String("method", method),
			zap.String("paymentID", ref))
		return ref, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(amount * 100))),
		Currency:           stripe.String(config.AppConfig.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Metadata: map[string]string{
			"user_id": userID,
			"method":  method,
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		logger.Error("stripe payment intent failed", zap.String("userID", userID), zap.Error(err))
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	logger.Info("payment intent created",
		zap.String("userID", userID),
		zap.Float64("amount", amount),
		zap.String("paymentID", pi.ID))
	return pi.ID, nil
}

// ProcessPayment settles a pending booking owned by the user. An active
// subscription with quota remaining covers the booking at no charge;
// otherwise the configured processor is charged the booking amount.
func (s *DefaultBookingService) ProcessPayment(userID, bookingID, method string) (*models.Booking, error) {
	logger := utils.GetLogger().With(zap.String("service", "booking"))

	bk, err := s.Repo.GetByID(bookingID)
	if err != nil {
		logger.Error("failed to fetch booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if bk == nil {
		return nil, NewNotFoundError("booking", bookingID)
	}
	if bk.UserID != userID {
		return nil, NewForbiddenError("booking does not belong to user")
	}
	if bk.PaymentStatus == models.PaymentPaid {
		return nil, NewValidationError("booking is already paid")
	}

	now := s.now()
	covered, err := s.subscriptionCovers(userID, now)
	if err != nil {
		return nil, err
	}

	if covered {
		bk.Amount = 0
		bk.PaymentStatus = models.PaymentPaid
		bk.PaymentMethod = "subscription"
		bk.PaymentID = ""
	} else {
		if method == "" {
			method = "card"
		}
		paymentID, err := s.Payments.Charge(userID, bk.Amount, method)
		if err != nil {
			bk.PaymentStatus = models.PaymentFailed
			if updateErr := s.Repo.Update(bk); updateErr != nil {
				logger.Error("failed to mark booking failed", zap.String("bookingID", bookingID), zap.Error(updateErr))
			}
			return nil, err
		}
		bk.PaymentStatus = models.PaymentPaid
		bk.PaymentMethod = method
		bk.PaymentID = paymentID
	}

	if err := s.Repo.Update(bk); err != nil {
		logger.Error("failed to update booking after payment", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if port, portErr := s.PortRepo.GetByID(bk.PortID); portErr == nil && port != nil {
		s.scheduleReminder(bk, port.Name)
	}

	logger.Info("booking paid",
		zap.String("bookingID", bk.ID),
		zap.String("paymentMethod", bk.PaymentMethod),
		zap.Float64("amount", bk.Amount))
	return bk, nil
}
