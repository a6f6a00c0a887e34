package repository

import (
	"context"
	"database/sql"

	"github.com/planora/event-booking-api/internal/model"
)

// BookingRepo manages persistence for bookings. A booking row carries a
// snapshot of the event fields taken at booking time; later edits to
// the source event never touch these columns.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingWithPlanner is a booking annotated with the planner's display
// name for client-facing listings. PlannerName may be empty when the
// planner account has since been removed.
type BookingWithPlanner struct {
	model.Booking
	PlannerName string
}

const bookingColumns = `id, client_id, planner_id, event_name, event_date, location,
	status, payment_status, created_at, updated_at`

// Create inserts a booking row and populates the generated ID plus the
// DB-default fields on the given struct. Status and PaymentStatus must
// be set by the caller (new bookings use Upcoming/Pending).
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(client_id, planner_id, event_name, event_date, location, status, payment_status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.ClientID, b.PlannerID, b.EventName, b.EventDate, b.Location, b.Status, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Return the full stored row so callers can respond without a
	// second fetch.
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	var (
		fresh model.Booking
		date  sql.NullTime
		loc   sql.NullString
	)
	err = r.db.QueryRowContext(ctx, sel, b.ID).Scan(
		&fresh.ID, &fresh.ClientID, &fresh.PlannerID, &fresh.EventName, &date, &loc,
		&fresh.Status, &fresh.PaymentStatus, &fresh.CreatedAt, &fresh.UpdatedAt)
	if err != nil {
		return err
	}
	applyBookingNulls(&fresh, date, loc)
	*b = fresh
	return nil
}

// ListByClient returns all bookings made by a client, newest event date
// first, each annotated with the planner's display name.
func (r *BookingRepo) ListByClient(ctx context.Context, clientID uint64) ([]BookingWithPlanner, error) {
	const q = `SELECT b.id, b.client_id, b.planner_id, b.event_name, b.event_date, b.location,
			b.status, b.payment_status, b.created_at, b.updated_at, p.full_name
		FROM bookings b
		LEFT JOIN users p ON p.id = b.planner_id
		WHERE b.client_id = ?
		ORDER BY b.event_date DESC`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingWithPlanner, 0)
	for rows.Next() {
		var (
			bk      BookingWithPlanner
			date    sql.NullTime
			loc     sql.NullString
			planner sql.NullString
		)
		if err := rows.Scan(&bk.ID, &bk.ClientID, &bk.PlannerID, &bk.EventName, &date, &loc,
			&bk.Status, &bk.PaymentStatus, &bk.CreatedAt, &bk.UpdatedAt, &planner); err != nil {
			return nil, err
		}
		applyBookingNulls(&bk.Booking, date, loc)
		if planner.Valid {
			bk.PlannerName = planner.String
		}
		out = append(out, bk)
	}
	return out, rows.Err()
}

func applyBookingNulls(b *model.Booking, date sql.NullTime, loc sql.NullString) {
	if date.Valid {
		t := date.Time
		b.EventDate = &t
	}
	if loc.Valid {
		b.Location = &loc.String
	}
}
