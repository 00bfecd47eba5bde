package handlers

import (
	"context"
	"net/http"

	"github.com/yogeshtekawade0602/bicycle-project/internal/api/flash"
	"github.com/yogeshtekawade0602/bicycle-project/internal/application/forms"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	"github.com/yogeshtekawade0602/bicycle-project/internal/infrastructure/observability"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// DwellerService defines the resident operations used by the handler.
type DwellerService interface {
	ListActive(ctx context.Context) ([]*entities.Resident, error)
	Get(ctx context.Context, id string) (*entities.Resident, error)
	Register(ctx context.Context, form *forms.ResidentForm) (*entities.Resident, error)
	RegisterBasic(ctx context.Context, form *forms.ResidentForm) (*entities.Resident, error)
	Update(ctx context.Context, form *forms.ResidentForm) error
	Deactivate(ctx context.Context, id string) error
}

// DwellerHandler handles the resident listing and form submissions.
type DwellerHandler struct {
	service DwellerService
	flash   *flash.Codec
}

// NewDwellerHandler creates a new dweller handler
func NewDwellerHandler(service DwellerService, codec *flash.Codec) *DwellerHandler {
	return &DwellerHandler{
		service: service,
		flash:   codec,
	}
}

// Dashboard handles GET / and GET /dashboard.
//
// A store failure never fails the page: the listing renders empty with
// a user-visible error message.
func (h *DwellerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{}
	if msg, ok := h.flash.Pop(w, r); ok {
		payload["flash"] = msg
	}

	dwellers, err := h.service.ListActive(r.Context())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("failed to list city dwellers")
		payload["dwellers"] = []*entities.Resident{}
		payload["count"] = 0
		payload["error"] = userMessage(err)
		respondWithJSON(w, http.StatusOK, payload)
		return
	}

	if dwellers == nil {
		dwellers = []*entities.Resident{}
	}
	payload["dwellers"] = dwellers
	payload["count"] = len(dwellers)
	respondWithJSON(w, http.StatusOK, payload)
}

// ManageDweller handles POST /manage_dweller, dispatching on the
// submitted action field. Every outcome redirects to the listing with a
// flash message.
func (h *DwellerHandler) ManageDweller(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, h.flash, flash.LevelError, "invalid form submission")
		return
	}

	form := forms.ParseResidentForm(r.PostForm)
	action := forms.Action(r.PostFormValue("action"))

	switch action {
	case forms.ActionAdd:
		if _, err := h.service.Register(r.Context(), form); err != nil {
			h.failForm(w, r, err)
			return
		}
		redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "City dweller added successfully!")

	case forms.ActionEdit:
		err := h.service.Update(r.Context(), form)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			redirectWithFlash(w, r, h.flash, flash.LevelWarning, "No changes were made.")
			return
		}
		if err != nil {
			h.failForm(w, r, err)
			return
		}
		redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "City dweller updated successfully!")

	case forms.ActionDelete:
		if err := h.service.Deactivate(r.Context(), form.ID); err != nil {
			h.failForm(w, r, err)
			return
		}
		redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "City dweller removed successfully!")

	default:
		redirectWithFlash(w, r, h.flash, flash.LevelError, "unknown action")
	}
}

// AddForm handles GET /add, describing the standalone add form.
func (h *DwellerHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"fields": []string{"first_name", "last_name", "email", "phone_number", "registration_date"},
	})
}

// AddSubmit handles POST /add, the minimal standalone add form. Failure
// re-renders the form with an error instead of redirecting.
func (h *DwellerHandler) AddSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusOK, "invalid form submission")
		return
	}

	form := forms.ParseResidentForm(r.PostForm)
	if _, err := h.service.RegisterBasic(r.Context(), form); err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("add dweller failed")
		respondWithError(w, http.StatusOK, userMessage(err))
		return
	}

	redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "City dweller added successfully!")
}

// EditForm handles GET /edit/{id}, returning the resident with
// display-format dates for form prefill.
func (h *DwellerHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	dweller, err := h.service.Get(r.Context(), id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			redirectWithFlash(w, r, h.flash, flash.LevelError, "City dweller not found.")
			return
		}
		h.failForm(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"dweller": dweller})
}

// EditSubmit handles POST /edit/{id}.
func (h *DwellerHandler) EditSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, h.flash, flash.LevelError, "invalid form submission")
		return
	}

	form := forms.ParseResidentForm(r.PostForm)
	form.ID = r.PathValue("id")

	if err := h.service.Update(r.Context(), form); err != nil {
		h.failForm(w, r, err)
		return
	}

	redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "City dweller updated successfully!")
}

// Delete handles POST /delete/{id}, the standalone soft delete.
func (h *DwellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context(), r.PathValue("id")); err != nil {
		h.failForm(w, r, err)
		return
	}

	redirectWithFlash(w, r, h.flash, flash.LevelSuccess, "City dweller removed successfully!")
}

// failForm logs the failure and redirects back to the listing with
// user-safe text. Internal detail stays in the log.
func (h *DwellerHandler) failForm(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeBlocked, apperrors.ErrorTypeNotFound:
		logger.Warn().Err(err).Msg("dweller form rejected")
	default:
		logger.Error().Err(err).Msg("dweller form failed")
	}
	redirectWithFlash(w, r, h.flash, flash.LevelError, userMessage(err))
}
