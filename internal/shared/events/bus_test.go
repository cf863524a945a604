package events

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func newObservedBus(t *testing.T) (*Bus, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewBus(zap.New(core)), logs
}

func TestBus_PublishDispatchesInOrder(t *testing.T) {
	bus, _ := newObservedBus(t)

	var got []string
	bus.Register(NewHandlerFunc([]string{UserRegisteredType}, func(e Event) error {
		got = append(got, "first")
		return nil
	}))
	bus.Register(NewHandlerFunc([]string{UserRegisteredType}, func(e Event) error {
		got = append(got, "second")
		return nil
	}))

	bus.Publish(NewUserRegisteredEvent(uuid.New(), "new@user.io"))

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus, logs := newObservedBus(t)

	var secondCalled bool
	bus.Register(NewHandlerFunc([]string{InvitationSentType}, func(e Event) error {
		return errors.New("reputation recalculation blew up")
	}))
	bus.Register(NewHandlerFunc([]string{InvitationSentType}, func(e Event) error {
		secondCalled = true
		return nil
	}))

	// Must not panic or propagate the handler error.
	bus.Publish(NewInvitationSentEvent(uuid.New(), "skills", uuid.New()))

	assert.True(t, secondCalled)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}

func TestBus_PublishWithoutHandlers(t *testing.T) {
	bus, logs := newObservedBus(t)

	bus.Publish(NewInvitationVerifiedEvent(uuid.New(), "employment", uuid.New(), uuid.New()))

	assert.Equal(t, 1, logs.FilterMessage("no handlers registered for event").Len())
}

func TestBus_HandlerReceivesEventPayload(t *testing.T) {
	bus, _ := newObservedBus(t)

	inviteID := uuid.New()
	inviter := uuid.New()

	var received *InvitationSentEvent
	bus.Register(NewHandlerFunc([]string{InvitationSentType}, func(e Event) error {
		received = e.(*InvitationSentEvent)
		return nil
	}))

	bus.Publish(NewInvitationSentEvent(inviteID, "team", inviter))

	assert.NotNil(t, received)
	assert.Equal(t, inviteID, received.InvitationID)
	assert.Equal(t, inviter, received.InviterID)
	assert.Equal(t, "team", received.Domain)
	assert.Equal(t, "Invitation", received.AggregateType())
}
