package handler

import (
	"errors"
	"net/http"
	"time"

	memberdomain "qd-calendar-go/internal/domain/member"
)

type createMemberRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	IsActive   *bool   `json:"is_active"`
}

type updateMemberRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	IsActive   *bool   `json:"is_active"`
}

type memberResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Phone      *string   `json:"phone"`
	Email      *string   `json:"email"`
	Department *string   `json:"department"`
	Position   *string   `json:"position"`
	IsActive   bool      `json:"is_active"`
	EventCount *int64    `json:"event_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	isActive, err := parseBoolParam(query.Get("is_active"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid is_active")
		return
	}
	page, err := parseIntParam(query.Get("page"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid page")
		return
	}
	perPage, err := parseIntParam(query.Get("per_page"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid per_page")
		return
	}

	result, err := h.Members.List(r.Context(), memberdomain.ListFilter{
		IsActive: isActive,
		Search:   query.Get("search"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		h.log.InternalError("members.list: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	members := make([]memberResponse, 0, len(result.Members))
	for _, record := range result.Members {
		members = append(members, toMemberResponse(record, nil))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"members":      members,
		"total":        result.Total,
		"pages":        result.Pages,
		"current_page": result.CurrentPage,
	})
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	detail, err := h.Members.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.get: query failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(detail.Member, &detail.EventCount))
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	record, err := h.Members.Create(r.Context(), memberdomain.CreateMemberInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   req.IsActive,
	})
	if err != nil {
		h.log.InternalError("members.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(*record, nil))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	record, err := h.Members.Update(r.Context(), id, memberdomain.UpdateMemberInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		IsActive:   req.IsActive,
	})
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.update: update failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*record, nil))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	if err := h.Members.Delete(r.Context(), id); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.delete: delete failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "member deleted"})
}

func (h *Handlers) MemberStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Members.Stats(r.Context())
	if err != nil {
		h.log.InternalError("members.stats: query failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func toMemberResponse(record memberdomain.Member, eventCount *int64) memberResponse {
	return memberResponse{
		ID:         record.ID,
		Name:       record.Name,
		Phone:      record.Phone,
		Email:      record.Email,
		Department: record.Department,
		Position:   record.Position,
		IsActive:   record.IsActive,
		EventCount: eventCount,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}
