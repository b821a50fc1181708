package domain

import "time"

// Booking defaults
const (
	SlotDurationMinutes = 60
	DefaultHoldDuration = 10 * time.Minute
	DefaultTimezone     = "America/Santiago"
	DaysInWeek          = 7
)

// Validation limits
const (
	MaxCustomerNameLength = 120
	MaxPhoneLength        = 32
	MaxProofValueLength   = 2048
	MaxBlockReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookedStatuses статусы, занимающие слот независимо от срока удержания
var BookedStatuses = []ReservationStatus{
	StatusPending,
	StatusPaid,
}

// ActiveStatuses статусы, которые могут занимать слот
var ActiveStatuses = []ReservationStatus{
	StatusHold,
	StatusPending,
	StatusPaid,
}
