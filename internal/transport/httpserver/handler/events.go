package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	analyticsdomain "qd-calendar-go/internal/domain/analytics"
	eventdomain "qd-calendar-go/internal/domain/event"
)

type createEventRequest struct {
	Title                string  `json:"title" validate:"required,max=200"`
	Description          string  `json:"description"`
	EventDate            string  `json:"event_date" validate:"required"`
	StartTime            *string `json:"start_time"`
	EndTime              *string `json:"end_time"`
	BackgroundImage      string  `json:"background_image" validate:"required,max=500"`
	Priority             string  `json:"priority"`
	Status               string  `json:"status"`
	OrganizerDepartment  string  `json:"organizer_department" validate:"required,max=100"`
	ExpectedParticipants *int    `json:"expected_participants"`
	Location             string  `json:"location" validate:"required,max=200"`
	MemberIDs            []uint  `json:"member_ids"`
}

type updateEventRequest struct {
	Title                *string         `json:"title"`
	Description          *string         `json:"description"`
	EventDate            *string         `json:"event_date"`
	StartTime            *optionalString `json:"start_time"`
	EndTime              *optionalString `json:"end_time"`
	BackgroundImage      *string         `json:"background_image"`
	Priority             *string         `json:"priority"`
	Status               *string         `json:"status"`
	OrganizerDepartment  *string         `json:"organizer_department"`
	ExpectedParticipants *int            `json:"expected_participants"`
	Location             *string         `json:"location"`
	MemberIDs            *[]uint         `json:"member_ids"`
}

// optionalString tells a JSON null apart from an absent field, so a
// client can clear start_time without touching other fields.
type optionalString struct {
	value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		o.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.value = &s
	return nil
}

type eventResponse struct {
	ID                   uint                      `json:"id"`
	Title                string                    `json:"title"`
	Description          string                    `json:"description"`
	EventDate            string                    `json:"event_date"`
	StartTime            *string                   `json:"start_time"`
	EndTime              *string                   `json:"end_time"`
	BackgroundImage      *string                   `json:"background_image"`
	Priority             string                    `json:"priority"`
	Status               string                    `json:"status"`
	OrganizerDepartment  *string                   `json:"organizer_department"`
	ExpectedParticipants *int                      `json:"expected_participants"`
	Location             *string                   `json:"location"`
	CreatedBy            uint                      `json:"created_by"`
	CreatorName          *string                   `json:"creator_name,omitempty"`
	Participants         []eventdomain.Participant `json:"participants,omitempty"`
	ParticipantCount     int                       `json:"participant_count"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
}

type calendarDayResponse struct {
	Date   string          `json:"date"`
	Events []eventResponse `json:"events"`
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := parseDateParam(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	end, err := parseDateParam(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	filter := eventdomain.ListFilter{
		StartDate: start,
		EndDate:   end,
		Status:    strings.TrimSpace(query.Get("status")),
		Priority:  strings.TrimSpace(query.Get("priority")),
	}

	events, err := h.Events.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, eventdomain.ErrInvalidStatus) || errors.Is(err, eventdomain.ErrInvalidPriority) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("events.list: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": toEventResponses(events),
		"total":  len(events),
	})
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	details, err := h.Events.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, eventdomain.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return
		}
		h.log.InternalError("events.get: query failed", err, "event_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*details))
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid event_date")
		return
	}

	details, err := h.Events.Create(r.Context(), eventdomain.CreateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		EventDate:            eventDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		BackgroundImage:      req.BackgroundImage,
		Priority:             req.Priority,
		Status:               req.Status,
		OrganizerDepartment:  req.OrganizerDepartment,
		ExpectedParticipants: req.ExpectedParticipants,
		Location:             req.Location,
		CreatedBy:            userID,
		MemberIDs:            req.MemberIDs,
	})
	if err != nil {
		if errors.Is(err, eventdomain.ErrInvalidStatus) || errors.Is(err, eventdomain.ErrInvalidPriority) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("events.create: create failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(*details))
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input := eventdomain.UpdateEventInput{
		Title:                req.Title,
		Description:          req.Description,
		BackgroundImage:      req.BackgroundImage,
		Priority:             req.Priority,
		Status:               req.Status,
		OrganizerDepartment:  req.OrganizerDepartment,
		ExpectedParticipants: req.ExpectedParticipants,
		Location:             req.Location,
		MemberIDs:            req.MemberIDs,
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid event_date")
			return
		}
		input.EventDate = &eventDate
	}
	if req.StartTime != nil {
		input.StartTime = eventdomain.OptionalString{Set: true, Value: req.StartTime.value}
	}
	if req.EndTime != nil {
		input.EndTime = eventdomain.OptionalString{Set: true, Value: req.EndTime.value}
	}

	details, err := h.Events.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, eventdomain.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
		case errors.Is(err, eventdomain.ErrInvalidStatus), errors.Is(err, eventdomain.ErrInvalidPriority):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.InternalError("events.update: update failed", err, "event_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*details))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	deleted, err := h.Events.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, eventdomain.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "event_not_found", "event not found")
			return
		}
		h.log.InternalError("events.delete: delete failed", err, "event_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if deleted.BackgroundImage != nil {
		if err := h.uploads.Delete(*deleted.BackgroundImage); err != nil {
			h.log.Warn("events.delete: remove poster failed", "event_id", id, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

func (h *Handlers) Calendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	days, err := h.Events.Calendar(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, analyticsdomain.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid year or month")
			return
		}
		h.log.InternalError("events.calendar: query failed", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]calendarDayResponse, 0, len(days))
	for _, day := range days {
		events := make([]eventResponse, 0, len(day.Events))
		for _, record := range day.Events {
			events = append(events, toEventSummary(record))
		}
		result = append(result, calendarDayResponse{Date: day.Date, Events: events})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"days": result})
}

func (h *Handlers) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, from, to, err := h.Events.Upcoming(r.Context())
	if err != nil {
		h.log.InternalError("events.upcoming: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": toEventResponses(events),
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	})
}

func toEventSummary(record eventdomain.Event) eventResponse {
	return eventResponse{
		ID:                   record.ID,
		Title:                record.Title,
		Description:          record.Description,
		EventDate:            record.EventDate.Format("2006-01-02"),
		StartTime:            record.StartTime,
		EndTime:              record.EndTime,
		BackgroundImage:      record.BackgroundImage,
		Priority:             record.Priority,
		Status:               record.Status,
		OrganizerDepartment:  record.OrganizerDepartment,
		ExpectedParticipants: record.ExpectedParticipants,
		Location:             record.Location,
		CreatedBy:            record.CreatedBy,
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
}

func toEventResponse(details eventdomain.EventDetails) eventResponse {
	resp := toEventSummary(details.Event)
	resp.CreatorName = details.CreatorName
	resp.Participants = details.Participants
	resp.ParticipantCount = len(details.Participants)
	return resp
}

func toEventResponses(details []eventdomain.EventDetails) []eventResponse {
	result := make([]eventResponse, 0, len(details))
	for _, d := range details {
		result = append(result, toEventResponse(d))
	}
	return result
}
