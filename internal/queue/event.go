// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a client books an event. It
// carries the snapshot fields stored on the booking so downstream
// consumers can log or notify without querying the primary database.
type BookingCreatedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	ClientID      uint64 `json:"client_id"`
	PlannerID     uint64 `json:"planner_id"`
	EventID       uint64 `json:"event_id"`
	EventName     string `json:"event_name"`
	EventDate     string `json:"event_date,omitempty"`
	Location      string `json:"location,omitempty"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}
