package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"woki/internal/reservations/service"
	apperrors "woki/pkg/errors"
	httputil "woki/pkg/http"
	"woki/pkg/logger"
	"woki/pkg/model"
)

const idempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/availability", h.GetAvailability)
	router.POST("/api/reservations", h.Create)
	router.DELETE("/api/reservations/:id", h.Cancel)
	router.GET("/api/reservations/day", h.ListDay)
}

// Create books a reservation. A cached idempotent replay answers 200, a
// fresh booking 201.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidBody("request body is not valid JSON", nil))
		return
	}

	result, err := h.service.Create(r.Context(), &req, r.Header.Get(idempotencyHeader))
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	status := http.StatusCreated
	if result.FromCache {
		status = http.StatusOK
	}
	if err := httputil.WriteJSON(w, status, result.Reservation); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Create", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	httputil.WriteNoContent(w)
}

type dayResponse struct {
	Date  string               `json:"date"`
	Items []*model.Reservation `json:"items"`
}

func (h *ReservationHandler) ListDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	restaurantID := query.Get("restaurantId")
	date := query.Get("date")
	sectorID := query.Get("sectorId")

	items, err := h.service.ListDay(r.Context(), restaurantID, date, sectorID)
	if err != nil {
		h.writeError(w, "ListDay", err)
		return
	}
	if items == nil {
		items = []*model.Reservation{}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, dayResponse{Date: date, Items: items}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ListDay", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.Kind == apperrors.KindInternal {
		h.log.Error("Request failed", "handler", handlerName, "error", err)
	}
	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
