// This file contains data access for the event catalog. Events are the
// offerings planners sell; only rows flagged is_publicly_bookable show
// up in the guest-facing listing.
package repository

import (
	"context"
	"database/sql"

	"github.com/planora/event-booking-api/internal/model"
)

// EventRepo manages persistence for events.
type EventRepo struct{ db *sql.DB }

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// EventWithPlanner is a catalog row annotated with the owning planner's
// display name for public listings.
type EventWithPlanner struct {
	model.Event
	PlannerName string
}

const eventColumns = `id, planner_id, event_name, description, event_date, location, price,
	is_publicly_bookable, created_at, updated_at`

// Create inserts a new event and populates the generated ID plus the
// DB-default fields (timestamps) on the given struct.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
		(planner_id, event_name, description, event_date, location, price, is_publicly_bookable)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.PlannerID, e.EventName, e.Description, e.EventDate, e.Location, e.Price, e.IsPubliclyBookable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	// Re-read the row so created_at/updated_at reflect the DB defaults.
	const sel = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	fresh, err := scanEvent(r.db.QueryRowContext(ctx, sel, e.ID))
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// GetByID retrieves an event by its ID. Returns ErrEventNotFound if
// there is no matching row.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ListPublic returns every publicly bookable event owned by a planner,
// annotated with the planner's display name. Soonest dates come first;
// undated general services sort last; ties break on newest creation.
func (r *EventRepo) ListPublic(ctx context.Context) ([]EventWithPlanner, error) {
	const q = `SELECT e.id, e.planner_id, e.event_name, e.description, e.event_date, e.location,
			e.price, e.is_publicly_bookable, e.created_at, e.updated_at, u.full_name
		FROM events e
		JOIN users u ON u.id = e.planner_id
		WHERE e.is_publicly_bookable = 1 AND u.role = 'planner'
		ORDER BY e.event_date IS NULL, e.event_date ASC, e.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EventWithPlanner, 0)
	for rows.Next() {
		var (
			ev    EventWithPlanner
			descr sql.NullString
			date  sql.NullTime
			loc   sql.NullString
			price sql.NullFloat64
		)
		if err := rows.Scan(&ev.ID, &ev.PlannerID, &ev.EventName, &descr, &date, &loc,
			&price, &ev.IsPubliclyBookable, &ev.CreatedAt, &ev.UpdatedAt, &ev.PlannerName); err != nil {
			return nil, err
		}
		applyEventNulls(&ev.Event, descr, date, loc, price)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// scanEvent reads one event row in the canonical column order.
func scanEvent(row *sql.Row) (*model.Event, error) {
	var (
		e     model.Event
		descr sql.NullString
		date  sql.NullTime
		loc   sql.NullString
		price sql.NullFloat64
	)
	err := row.Scan(&e.ID, &e.PlannerID, &e.EventName, &descr, &date, &loc,
		&price, &e.IsPubliclyBookable, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	applyEventNulls(&e, descr, date, loc, price)
	return &e, nil
}

// applyEventNulls copies nullable column values onto the model's
// pointer fields, leaving nil where the column was NULL.
func applyEventNulls(e *model.Event, descr sql.NullString, date sql.NullTime, loc sql.NullString, price sql.NullFloat64) {
	if descr.Valid {
		e.Description = &descr.String
	}
	if date.Valid {
		t := date.Time
		e.EventDate = &t
	}
	if loc.Valid {
		e.Location = &loc.String
	}
	if price.Valid {
		e.Price = &price.Float64
	}
}
