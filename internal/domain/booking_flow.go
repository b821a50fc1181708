package domain

import (
	"errors"
	"fmt"
)

// BookingStep is a step of the booking flow
type BookingStep string

const (
	StepSelect  BookingStep = "select"
	StepForm    BookingStep = "form"
	StepPayment BookingStep = "payment"
	StepConfirm BookingStep = "confirm"
)

// BookingEvent is a user or system action that moves the flow
type BookingEvent string

const (
	EventSlotPicked         BookingEvent = "slot_picked"
	EventBackToSelect       BookingEvent = "back_to_select"
	EventReservationCreated BookingEvent = "reservation_created"
	EventPaymentConfirmed   BookingEvent = "payment_confirmed"
)

// ErrInvalidTransition возвращается, если событие недопустимо в текущем шаге
var ErrInvalidTransition = errors.New("booking flow: invalid transition")

var flowTransitions = map[BookingStep]map[BookingEvent]BookingStep{
	StepSelect: {
		EventSlotPicked: StepForm,
	},
	StepForm: {
		EventBackToSelect:       StepSelect,
		EventReservationCreated: StepPayment,
	},
	StepPayment: {
		EventPaymentConfirmed: StepConfirm,
	},
}

// Next returns the step after applying the event
func (s BookingStep) Next(event BookingEvent) (BookingStep, error) {
	next, ok := flowTransitions[s][event]
	if !ok {
		return s, fmt.Errorf("%w: %s on step %s", ErrInvalidTransition, event, s)
	}
	return next, nil
}

// IsTerminal returns true for the last step
func (s BookingStep) IsTerminal() bool {
	return s == StepConfirm
}

// StepForStatus resolves the flow step of an existing reservation
// Для отмененного бронирования шаг не определен
func StepForStatus(status ReservationStatus) (BookingStep, bool) {
	switch status {
	case StatusHold, StatusPending:
		return StepPayment, true
	case StatusPaid:
		return StepConfirm, true
	default:
		return "", false
	}
}
