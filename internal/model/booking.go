package model

import "time"

// Booking status lifecycle: Upcoming -> Completed | Cancelled (terminal).
// No transition endpoints exist yet; new bookings always start Upcoming.
const (
	BookingStatusUpcoming  = "Upcoming"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

// Payment status values for a booking. New bookings always start Pending.
const (
	PaymentStatusPending       = "Pending"
	PaymentStatusPaid          = "Paid"
	PaymentStatusPartiallyPaid = "Partially Paid"
	PaymentStatusRefunded      = "Refunded"
)

// Booking records a client's reservation against an event. EventName,
// EventDate, Location and PlannerID are a snapshot of the event at
// booking time: editing the source event later must not change what
// the client agreed to book.
//
// Fields:
//  ID            – primary key identifier.
//  ClientID      – user who made the booking.
//  PlannerID     – planner copied from the event at booking time.
//  EventName     – snapshot of the event name.
//  EventDate     – snapshot of the event date (nullable).
//  Location      – snapshot of the event location (nullable).
//  Status        – Upcoming, Completed or Cancelled.
//  PaymentStatus – Pending, Paid, Partially Paid or Refunded.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            uint64     // bookings.id
	ClientID      uint64     // bookings.client_id
	PlannerID     uint64     // bookings.planner_id
	EventName     string     // bookings.event_name
	EventDate     *time.Time // bookings.event_date (nullable)
	Location      *string    // bookings.location (nullable)
	Status        string     // bookings.status
	PaymentStatus string     // bookings.payment_status
	CreatedAt     time.Time  // bookings.created_at
	UpdatedAt     time.Time  // bookings.updated_at
}
