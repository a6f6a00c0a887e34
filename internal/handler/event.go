package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/model"
	"github.com/planora/event-booking-api/internal/repository"
)

// EventHandler serves the planner-facing event creation endpoint and
// the unauthenticated public catalog.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(e *repository.EventRepo) *EventHandler {
	return &EventHandler{Events: e}
}

type createEventReq struct {
	EventName          string   `json:"eventName"`
	Description        *string  `json:"description"`
	EventDate          *string  `json:"eventDate"`
	Location           *string  `json:"location"`
	Price              *float64 `json:"price"`
	IsPubliclyBookable *bool    `json:"isPubliclyBookable"`
}

type eventResp struct {
	ID                 uint64     `json:"id"`
	PlannerID          uint64     `json:"plannerId"`
	EventName          string     `json:"eventName"`
	Description        *string    `json:"description,omitempty"`
	EventDate          *time.Time `json:"eventDate,omitempty"`
	Location           *string    `json:"location,omitempty"`
	Price              *float64   `json:"price,omitempty"`
	IsPubliclyBookable bool       `json:"isPubliclyBookable"`
	PlannerName        string     `json:"plannerName,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func newEventResp(e *model.Event, plannerName string) eventResp {
	return eventResp{
		ID:                 e.ID,
		PlannerID:          e.PlannerID,
		EventName:          e.EventName,
		Description:        e.Description,
		EventDate:          e.EventDate,
		Location:           e.Location,
		Price:              e.Price,
		IsPubliclyBookable: e.IsPubliclyBookable,
		PlannerName:        plannerName,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// Create handles POST /api/events. Route middleware already guarantees
// the caller is an authenticated planner. eventName is required; price,
// when present, must be non-negative; isPubliclyBookable defaults to
// true when omitted.
func (h *EventHandler) Create(c echo.Context) error {
	plannerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.EventName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event name is required"})
	}
	if req.Price != nil && *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	var eventDate *time.Time
	if req.EventDate != nil && strings.TrimSpace(*req.EventDate) != "" {
		t, err := parseEventDate(strings.TrimSpace(*req.EventDate))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid eventDate format"})
		}
		eventDate = &t
	}
	bookable := true
	if req.IsPubliclyBookable != nil {
		bookable = *req.IsPubliclyBookable
	}

	ev := &model.Event{
		PlannerID:          plannerID,
		EventName:          name,
		Description:        trimOrNil(req.Description),
		EventDate:          eventDate,
		Location:           trimOrNil(req.Location),
		Price:              req.Price,
		IsPubliclyBookable: bookable,
	}
	if err := h.Events.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
	}
	return c.JSON(http.StatusCreated, newEventResp(ev, ""))
}

// ListPublic handles GET /api/events/public. No auth; the repository
// filters to publicly bookable events owned by planners.
func (h *EventHandler) ListPublic(c echo.Context) error {
	events, err := h.Events.ListPublic(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]eventResp, 0, len(events))
	for i := range events {
		out = append(out, newEventResp(&events[i].Event, events[i].PlannerName))
	}
	return c.JSON(http.StatusOK, out)
}

// parseEventDate accepts RFC3339 or a bare YYYY-MM-DD date. Stored
// values are normalized to UTC.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// trimOrNil trims an optional string field, mapping empty to nil so
// the column stores NULL instead of "".
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
