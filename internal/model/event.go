package model

import "time"

// Event is an offering a planner can sell. Only events flagged as
// publicly bookable show up in the guest catalog. Events are created
// by planners and are never mutated through the API.
//
// Fields:
//  ID                 – primary key identifier.
//  PlannerID          – user ID of the owning planner.
//  EventName          – name of the offering (required).
//  Description        – optional free-form description.
//  EventDate          – optional scheduled date; nil means a general
//                       service without a fixed date.
//  Location           – optional venue or address.
//  Price              – optional non-negative price; nil means "on request".
//  IsPubliclyBookable – gates visibility in the public catalog.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Event struct {
	ID                 uint64     // events.id
	PlannerID          uint64     // events.planner_id
	EventName          string     // events.event_name
	Description        *string    // events.description (nullable)
	EventDate          *time.Time // events.event_date (nullable)
	Location           *string    // events.location (nullable)
	Price              *float64   // events.price (nullable)
	IsPubliclyBookable bool       // events.is_publicly_bookable
	CreatedAt          time.Time  // events.created_at
	UpdatedAt          time.Time  // events.updated_at
}
