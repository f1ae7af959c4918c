package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"voltport/config"
	"voltport/models"
	"voltport/utils"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how long before a booking starts that the reminder fires.
const reminderLead = time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues booking reminders.
type Scheduler interface {
	ScheduleBookingReminder(booking models.Booking, portName string) error
}

// AsynqScheduler schedules reminders on the asynq queue.
type AsynqScheduler struct {
	client *asynq.Client
}

func NewAsynqScheduler() *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqScheduler{client: client}
}

// ScheduleBookingReminder enqueues a reminder one hour before the booking
// starts. Bookings starting sooner than that are skipped.
func (s *AsynqScheduler) ScheduleBookingReminder(booking models.Booking, portName string) error {
	fireAt := booking.StartTime.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		PortName:  portName,
		StartTime: booking.StartTime.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}

	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return err
	}

	utils.GetLogger().Info("booking reminder scheduled",
		zap.String("bookingID", booking.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// Close releases the underlying queue client.
func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
