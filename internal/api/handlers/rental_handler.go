package handlers

import (
	"context"
	"net/http"

	"github.com/yogeshtekawade0602/bicycle-project/internal/api/flash"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// RentalManager defines the rental operations used by the handler.
type RentalManager interface {
	Start(ctx context.Context, dwellerID, bicycleID, lat, lng string) (*entities.Rental, error)
	Stop(ctx context.Context, dwellerID, lat, lng string) (*entities.Rental, error)
}

// RentalHandler handles rental start/stop form submissions.
type RentalHandler struct {
	service RentalManager
	flash   *flash.Codec
}

// NewRentalHandler creates a new rental handler
func NewRentalHandler(service RentalManager, codec *flash.Codec) *RentalHandler {
	return &RentalHandler{
		service: service,
		flash:   codec,
	}
}

// ManageRental handles POST /manage_rental/{id}, dispatching on the
// submitted action field.
func (h *RentalHandler) ManageRental(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, h.flash, flash.LevelError, "invalid form submission")
		return
	}

	dwellerID := r.PathValue("id")
	lat := r.PostFormValue("lat")
	lng := r.PostFormValue("lng")

	switch r.PostFormValue("action") {
	case "start":
		bikeID := r.PostFormValue("bike_id")
		if _, err := h.service.Start(r.Context(), dwellerID, bikeID, lat, lng); err != nil {
			h.fail(w, r, err)
			return
		}
		redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "Rental started successfully!")

	case "end":
		if _, err := h.service.Stop(r.Context(), dwellerID, lat, lng); err != nil {
			h.fail(w, r, err)
			return
		}
		redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "Rental ended successfully!")

	default:
		redirectWithFlash(w, r, h.flash, flash.LevelError, "unknown action")
	}
}

func (h *RentalHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeBlocked, apperrors.ErrorTypeNotFound:
		logger.Warn().Err(err).Msg("rental request rejected")
	default:
		logger.Error().Err(err).Msg("rental request failed")
	}
	redirectWithFlash(w, r, h.flash, flash.LevelError, userMessage(err))
}
