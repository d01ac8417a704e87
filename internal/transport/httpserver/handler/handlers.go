package handler

import (
	"net/http"

	analyticsdomain "qd-calendar-go/internal/domain/analytics"
	eventdomain "qd-calendar-go/internal/domain/event"
	memberdomain "qd-calendar-go/internal/domain/member"
	userdomain "qd-calendar-go/internal/domain/user"
	"qd-calendar-go/internal/storage"
	"qd-calendar-go/internal/transport/httpserver/middleware"
	"qd-calendar-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Users     *userdomain.Service
	Members   *memberdomain.Service
	Events    *eventdomain.Service
	Analytics *analyticsdomain.Service

	tokens    *middleware.TokenManager
	uploads   *storage.Local
	maxUpload int64
	validate  *validator.Validate
	log       logger.Logger
}

func New(
	users *userdomain.Service,
	members *memberdomain.Service,
	events *eventdomain.Service,
	analytics *analyticsdomain.Service,
	tokens *middleware.TokenManager,
	uploads *storage.Local,
	maxUpload int64,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:     users,
		Members:   members,
		Events:    events,
		Analytics: analytics,
		tokens:    tokens,
		uploads:   uploads,
		maxUpload: maxUpload,
		validate:  validator.New(),
		log:       log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
