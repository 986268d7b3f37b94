package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"clinic-booking-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type fakeProducer struct {
	mu       sync.Mutex
	failures int
	messages [][]byte
}

func (f *fakeProducer) Publish(_ context.Context, _, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("broker unavailable")
	}
	f.messages = append(f.messages, value)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func (f *fakeProducer) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func TestNotificationService_PublishRetriesThenSucceeds(t *testing.T) {
	producer := &fakeProducer{failures: 2}
	svc := NewNotificationService(producer, logrus.New())

	svc.publish(AppointmentEvent{Event: EventAppointmentCreated, AppointmentID: 1})

	if got := producer.published(); got != 1 {
		t.Fatalf("expected 1 published message after retries, got %d", got)
	}
}

func TestNotificationService_PublishGivesUpAfterBoundedRetries(t *testing.T) {
	producer := &fakeProducer{failures: publishAttempts + 1}
	svc := NewNotificationService(producer, logrus.New())

	// Must return without error and without publishing; failures are logged only.
	svc.publish(AppointmentEvent{Event: EventAppointmentCreated, AppointmentID: 2})

	if got := producer.published(); got != 0 {
		t.Fatalf("expected no published messages, got %d", got)
	}
}

func TestNotificationService_NilProducerDropsEvent(t *testing.T) {
	svc := NewNotificationService(nil, logrus.New())

	// Must not panic.
	svc.publish(AppointmentEvent{Event: EventAppointmentCancelled, AppointmentID: 3})
	svc.AppointmentCreated(&entity.Appointment{ID: 3})
}
