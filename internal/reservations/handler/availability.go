package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"woki/internal/reservations/service"
	apperrors "woki/pkg/errors"
	httputil "woki/pkg/http"
)

func (h *ReservationHandler) GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	partySize := 0
	if s := query.Get("partySize"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, "GetAvailability", apperrors.MissingParams("partySize"))
			return
		}
		partySize = v
	}

	report, err := h.service.GetAvailability(r.Context(), service.AvailabilityRequest{
		RestaurantID: query.Get("restaurantId"),
		SectorID:     query.Get("sectorId"),
		Date:         query.Get("date"),
		PartySize:    partySize,
	})
	if err != nil {
		h.writeError(w, "GetAvailability", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, report); err != nil {
		h.log.Error("failed to write JSON response", "handler", "GetAvailability", "error", err)
	}
}
