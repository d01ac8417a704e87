package handler

import (
	"errors"
	"net/http"

	analyticsdomain "qd-calendar-go/internal/domain/analytics"
)

func (h *Handlers) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	report, err := h.Analytics.Overview(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, analyticsdomain.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid year or month")
			return
		}
		h.log.InternalError("analytics.overview: build report failed", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) AnalyticsEvents(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	report, err := h.Analytics.Events(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, analyticsdomain.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid year or month")
			return
		}
		h.log.InternalError("analytics.events: build report failed", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) AnalyticsMembers(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	report, err := h.Analytics.Members(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, analyticsdomain.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid year or month")
			return
		}
		h.log.InternalError("analytics.members: build report failed", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
