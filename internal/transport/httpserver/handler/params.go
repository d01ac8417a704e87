package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func parseIDParam(r *http.Request, name string) (uint, error) {
	value := chi.URLParam(r, name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(parsed), nil
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// parseYearMonth reads optional year and month query params, zero meaning
// "default to the current date".
func parseYearMonth(r *http.Request) (int, int, error) {
	year, err := parseIntParam(r.URL.Query().Get("year"), 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year")
	}
	month, err := parseIntParam(r.URL.Query().Get("month"), 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month")
	}
	return year, month, nil
}

func parseBoolParam(value string) (*bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid bool")
	}
	return &parsed, nil
}
