package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yogeshtekawade0602/bicycle-project/internal/api/flash"
	"github.com/yogeshtekawade0602/bicycle-project/internal/api/handlers"
	"github.com/yogeshtekawade0602/bicycle-project/internal/application/forms"
	"github.com/yogeshtekawade0602/bicycle-project/internal/domain/entities"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

type stubDwellerService struct {
	listed  []*entities.Resident
	listErr error

	got    *entities.Resident
	getErr error

	registered  *forms.ResidentForm
	registerErr error

	updated   *forms.ResidentForm
	updateErr error

	deactivated string
	deactErr    error
}

func (s *stubDwellerService) ListActive(ctx context.Context) ([]*entities.Resident, error) {
	return s.listed, s.listErr
}

func (s *stubDwellerService) Get(ctx context.Context, id string) (*entities.Resident, error) {
	return s.got, s.getErr
}

func (s *stubDwellerService) Register(ctx context.Context, form *forms.ResidentForm) (*entities.Resident, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registered = form
	return &entities.Resident{ID: "generated-id"}, nil
}

func (s *stubDwellerService) RegisterBasic(ctx context.Context, form *forms.ResidentForm) (*entities.Resident, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registered = form
	return &entities.Resident{ID: "generated-id"}, nil
}

func (s *stubDwellerService) Update(ctx context.Context, form *forms.ResidentForm) error {
	s.updated = form
	return s.updateErr
}

func (s *stubDwellerService) Deactivate(ctx context.Context, id string) error {
	if s.deactErr != nil {
		return s.deactErr
	}
	s.deactivated = id
	return nil
}

var testCodec = flash.NewCodec("test-secret")

func postForm(path string, values url.Values) *http.Request {
	r := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// popFlash decodes the flash cookie set on a response.
func popFlash(t *testing.T, w *httptest.ResponseRecorder) flash.Message {
	t.Helper()

	r := httptest.NewRequest("GET", "/", nil)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "flash" && cookie.MaxAge >= 0 {
			r.AddCookie(cookie)
		}
	}

	msg, ok := testCodec.Pop(httptest.NewRecorder(), r)
	require.True(t, ok, "expected a flash cookie on the response")
	return msg
}

func TestDwellerHandler_Dashboard(t *testing.T) {
	service := &stubDwellerService{
		listed: []*entities.Resident{
			{ID: "dweller-1", FirstName: "Ada", RegistrationDate: "01/15/2024"},
		},
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.Dashboard(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Dwellers []map[string]interface{} `json:"dwellers"`
		Count    int                      `json:"count"`
		Error    string                   `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	assert.Equal(t, 1, payload.Count)
	require.Len(t, payload.Dwellers, 1)
	assert.Equal(t, "Ada", payload.Dwellers[0]["first_name"])
	assert.Empty(t, payload.Error)
}

func TestDwellerHandler_Dashboard_StoreFailureRendersEmpty(t *testing.T) {
	service := &stubDwellerService{
		listErr: apperrors.NewConnectivityError("store unreachable", nil),
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.Dashboard(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Dwellers []map[string]interface{} `json:"dwellers"`
		Count    int                      `json:"count"`
		Error    string                   `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	assert.Equal(t, 0, payload.Count)
	assert.Empty(t, payload.Dwellers)
	assert.Equal(t, "unable to reach the record store", payload.Error)
}

func TestDwellerHandler_Dashboard_ShowsFlash(t *testing.T) {
	handler := handlers.NewDwellerHandler(&stubDwellerService{}, testCodec)

	setW := httptest.NewRecorder()
	testCodec.Set(setW, flash.Message{Level: flash.LevelSuccess, Text: "City dweller added successfully!"})

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(setW.Result().Cookies()[0])
	w := httptest.NewRecorder()

	handler.Dashboard(w, r)

	var payload struct {
		Flash *flash.Message `json:"flash"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	require.NotNil(t, payload.Flash)
	assert.Equal(t, "City dweller added successfully!", payload.Flash.Text)
}

func TestDwellerHandler_ManageDweller_Add(t *testing.T) {
	service := &stubDwellerService{}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.ManageDweller(w, postForm("/manage_dweller", url.Values{
		"action":            {"add_dweller"},
		"first_name":        {"Ada"},
		"last_name":         {"Lovelace"},
		"email":             {"ada@example.com"},
		"password":          {"secret"},
		"date_of_birth":     {"12/10/1990"},
		"registration_date": {"01/15/2024"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.NotNil(t, service.registered)
	assert.Equal(t, "Ada", service.registered.FirstName)

	msg := popFlash(t, w)
	assert.Equal(t, flash.LevelSuccess, msg.Level)
	assert.Equal(t, "City dweller added successfully!", msg.Text)
}

func TestDwellerHandler_ManageDweller_AddValidationFailure(t *testing.T) {
	service := &stubDwellerService{
		registerErr: apperrors.NewValidationError("email is required"),
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.ManageDweller(w, postForm("/manage_dweller", url.Values{
		"action":     {"add_dweller"},
		"first_name": {"Ada"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)

	msg := popFlash(t, w)
	assert.Equal(t, flash.LevelError, msg.Level)
	assert.Equal(t, "email is required", msg.Text)
}

func TestDwellerHandler_ManageDweller_EditNoChanges(t *testing.T) {
	service := &stubDwellerService{
		updateErr: apperrors.NewNotFoundError("no changes were made"),
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.ManageDweller(w, postForm("/manage_dweller", url.Values{
		"action":  {"edit_dweller"},
		"user_id": {"missing"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)

	msg := popFlash(t, w)
	assert.Equal(t, flash.LevelWarning, msg.Level)
	assert.Equal(t, "No changes were made.", msg.Text)
}

func TestDwellerHandler_ManageDweller_Delete(t *testing.T) {
	service := &stubDwellerService{}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.ManageDweller(w, postForm("/manage_dweller", url.Values{
		"action":  {"delete_dweller"},
		"user_id": {"dweller-1"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "dweller-1", service.deactivated)

	msg := popFlash(t, w)
	assert.Equal(t, "City dweller removed successfully!", msg.Text)
}

func TestDwellerHandler_ManageDweller_DeleteBlocked(t *testing.T) {
	service := &stubDwellerService{
		deactErr: apperrors.NewBlockedError("cannot remove city dweller with active rentals"),
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.ManageDweller(w, postForm("/manage_dweller", url.Values{
		"action":  {"delete_dweller"},
		"user_id": {"dweller-1"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)

	msg := popFlash(t, w)
	assert.Equal(t, flash.LevelError, msg.Level)
	assert.Equal(t, "cannot remove city dweller with active rentals", msg.Text)
}

func TestDwellerHandler_ManageDweller_UnknownAction(t *testing.T) {
	handler := handlers.NewDwellerHandler(&stubDwellerService{}, testCodec)

	w := httptest.NewRecorder()
	handler.ManageDweller(w, postForm("/manage_dweller", url.Values{
		"action": {"promote_dweller"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)

	msg := popFlash(t, w)
	assert.Equal(t, flash.LevelError, msg.Level)
	assert.Equal(t, "unknown action", msg.Text)
}

func TestDwellerHandler_EditForm(t *testing.T) {
	service := &stubDwellerService{
		got: &entities.Resident{ID: "dweller-1", FirstName: "Ada", DateOfBirth: "12/10/1990"},
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	r := httptest.NewRequest("GET", "/edit/dweller-1", nil)
	r.SetPathValue("id", "dweller-1")
	w := httptest.NewRecorder()

	handler.EditForm(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Dweller map[string]interface{} `json:"dweller"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	assert.Equal(t, "12/10/1990", payload.Dweller["date_of_birth"])
}

func TestDwellerHandler_EditForm_NotFoundRedirects(t *testing.T) {
	service := &stubDwellerService{
		getErr: apperrors.NewNotFoundError("city dweller with id missing not found"),
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	r := httptest.NewRequest("GET", "/edit/missing", nil)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.EditForm(w, r)

	assert.Equal(t, http.StatusFound, w.Code)

	msg := popFlash(t, w)
	assert.Equal(t, "City dweller not found.", msg.Text)
}

func TestDwellerHandler_EditSubmit_UsesPathID(t *testing.T) {
	service := &stubDwellerService{}
	handler := handlers.NewDwellerHandler(service, testCodec)

	r := postForm("/edit/dweller-1", url.Values{
		"first_name":        {"Ada"},
		"last_name":         {"Lovelace"},
		"email":             {"ada@example.com"},
		"date_of_birth":     {"12/10/1990"},
		"registration_date": {"01/15/2024"},
	})
	r.SetPathValue("id", "dweller-1")
	w := httptest.NewRecorder()

	handler.EditSubmit(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	require.NotNil(t, service.updated)
	assert.Equal(t, "dweller-1", service.updated.ID)
}

func TestDwellerHandler_AddSubmit_FailureRendersError(t *testing.T) {
	service := &stubDwellerService{
		registerErr: apperrors.NewValidationError("registration_date is required"),
	}
	handler := handlers.NewDwellerHandler(service, testCodec)

	w := httptest.NewRecorder()
	handler.AddSubmit(w, postForm("/add", url.Values{
		"first_name": {"Ada"},
	}))

	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	assert.Equal(t, "registration_date is required", payload["error"])
}

func TestDwellerHandler_Delete(t *testing.T) {
	service := &stubDwellerService{}
	handler := handlers.NewDwellerHandler(service, testCodec)

	r := postForm("/delete/dweller-1", url.Values{})
	r.SetPathValue("id", "dweller-1")
	w := httptest.NewRecorder()

	handler.Delete(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "dweller-1", service.deactivated)
}
