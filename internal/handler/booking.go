package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/model"
	"github.com/planora/event-booking-api/internal/queue"
	"github.com/planora/event-booking-api/internal/repository"
	queue_publisher "github.com/planora/event-booking-api/internal/service"
)

// BookingHandler serves the client-facing booking endpoints. Creation
// snapshots the event's fields into the booking row so the record stays
// historically accurate even if the planner later edits the event.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo

	// publish is swappable in tests; defaults to the RabbitMQ publisher.
	publish func(ctx context.Context, ev queue.BookingCreatedEvent) error
}

func NewBookingHandler(b *repository.BookingRepo, e *repository.EventRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Events: e, publish: queue_publisher.PublishBookingCreated}
}

type createBookingReq struct {
	EventID uint64 `json:"eventId"`
}

type bookingResp struct {
	ID            uint64     `json:"id"`
	ClientID      uint64     `json:"clientId"`
	PlannerID     uint64     `json:"plannerId"`
	EventName     string     `json:"eventName"`
	EventDate     *time.Time `json:"eventDate,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	PlannerName   string     `json:"plannerName,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func newBookingResp(b *model.Booking, plannerName string) bookingResp {
	return bookingResp{
		ID:            b.ID,
		ClientID:      b.ClientID,
		PlannerID:     b.PlannerID,
		EventName:     b.EventName,
		EventDate:     b.EventDate,
		Location:      b.Location,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		PlannerName:   plannerName,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// Create handles POST /api/bookings. Route middleware guarantees the
// caller is an authenticated client. The full booking row, including
// the snapshot fields, is returned so the dashboard can render it
// without a second fetch.
func (h *BookingHandler) Create(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId is required"})
	}

	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ev.IsPubliclyBookable {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "this event is not currently available for booking"})
	}

	// Snapshot the event fields at booking time.
	booking := &model.Booking{
		ClientID:      clientID,
		PlannerID:     ev.PlannerID,
		EventName:     ev.EventName,
		EventDate:     ev.EventDate,
		Location:      ev.Location,
		Status:        model.BookingStatusUpcoming,
		PaymentStatus: model.PaymentStatusPending,
	}
	if err := h.Bookings.Create(ctx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	// Best effort: a broker outage must not fail the booking.
	if err := h.publishCreated(ctx, booking, ev.ID); err != nil {
		log.Printf("booking: publish created event failed: %v", err)
	}

	return c.JSON(http.StatusCreated, newBookingResp(booking, ""))
}

// ListMy handles GET /api/bookings/my and returns the caller's
// bookings, newest event date first.
func (h *BookingHandler) ListMy(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookings, err := h.Bookings.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingResp, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingResp(&bookings[i].Booking, bookings[i].PlannerName))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) publishCreated(ctx context.Context, b *model.Booking, eventID uint64) error {
	msg := queue.BookingCreatedEvent{
		BookingID:     b.ID,
		ClientID:      b.ClientID,
		PlannerID:     b.PlannerID,
		EventID:       eventID,
		EventName:     b.EventName,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.EventDate != nil {
		msg.EventDate = b.EventDate.UTC().Format(time.RFC3339)
	}
	if b.Location != nil {
		msg.Location = *b.Location
	}
	return h.publish(ctx, msg)
}
