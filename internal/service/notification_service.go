package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-booking-api/internal/domain/entity"
	"clinic-booking-api/internal/infrastructure/messaging"

	"github.com/sirupsen/logrus"
)

// Appointment event names consumed by the downstream email worker.
const (
	EventAppointmentCreated       = "appointment_created"
	EventAppointmentCancelled     = "appointment_cancelled"
	EventAppointmentStatusChanged = "appointment_status_changed"
)

const (
	publishAttempts = 3
	publishTimeout  = 5 * time.Second
	publishBackoff  = 500 * time.Millisecond
)

// AppointmentEvent is the queued notification payload.
type AppointmentEvent struct {
	Event               string    `json:"event"`
	AppointmentID       int       `json:"appointment_id"`
	PatientEmail        string    `json:"patient_email"`
	PatientName         string    `json:"patient_name"`
	DoctorName          string    `json:"doctor_name"`
	ProcedureName       string    `json:"procedure_name"`
	AppointmentDatetime time.Time `json:"appointment_datetime"`
	Status              string    `json:"status"`
}

// NotificationService publishes appointment lifecycle events to the queue.
// Publishing is fire-and-forget: it runs off the request goroutine, retries a
// bounded number of times and only logs failures. Booking success never
// depends on it.
type NotificationService struct {
	producer messaging.Producer
	log      *logrus.Logger
}

// NewNotificationService accepts a nil producer; events are then dropped with
// a log line, which keeps local setups without a broker working.
func NewNotificationService(producer messaging.Producer, log *logrus.Logger) *NotificationService {
	return &NotificationService{producer: producer, log: log}
}

func (s *NotificationService) AppointmentCreated(appointment *entity.Appointment) {
	s.dispatch(EventAppointmentCreated, appointment)
}

func (s *NotificationService) AppointmentCancelled(appointment *entity.Appointment) {
	s.dispatch(EventAppointmentCancelled, appointment)
}

func (s *NotificationService) AppointmentStatusChanged(appointment *entity.Appointment) {
	s.dispatch(EventAppointmentStatusChanged, appointment)
}

func (s *NotificationService) dispatch(event string, appointment *entity.Appointment) {
	payload := AppointmentEvent{
		Event:               event,
		AppointmentID:       appointment.ID,
		PatientEmail:        appointment.Patient.Email,
		PatientName:         appointment.Patient.FullName,
		DoctorName:          appointment.Doctor.FullName(),
		ProcedureName:       appointment.Procedure.Name,
		AppointmentDatetime: appointment.AppointmentDatetime,
		Status:              string(appointment.Status),
	}

	go s.publish(payload)
}

func (s *NotificationService) publish(event AppointmentEvent) {
	if s.producer == nil {
		s.log.Warnf("Notification producer not configured, dropping event %s for appointment %d", event.Event, event.AppointmentID)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		s.log.Errorf("Failed to marshal notification event: %+v", err)
		return
	}
	key := []byte(fmt.Sprintf("appointment:%d", event.AppointmentID))

	var lastErr error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		lastErr = s.producer.Publish(ctx, key, value)
		cancel()
		if lastErr == nil {
			return
		}
		time.Sleep(publishBackoff * time.Duration(attempt))
	}

	// Out of retries: drop the event, the booking itself already succeeded.
	s.log.Errorf("Failed to publish %s for appointment %d after %d attempts: %+v",
		event.Event, event.AppointmentID, publishAttempts, lastErr)
}
