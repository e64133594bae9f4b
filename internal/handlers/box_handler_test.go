package handlers

import (
	"MysteryBox/internal/apperror"
	"MysteryBox/internal/middleware"
	"MysteryBox/internal/models"
	"MysteryBox/internal/services"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, target string, body interface{}, userID uuid.UUID) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, userID.String())
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestBoxHandler_CreateBox(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	handler := NewBoxHandler(mockService)
	app.Post("/boxes", handler.CreateBox)

	seller := uuid.New()
	release := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	box := &models.Box{BaseModel: models.BaseModel{ID: 1}, SellerID: seller, Name: "Spring", Status: models.BoxStatusDraft, ReleaseDate: release}
	mockService.On("CreateBox", seller, "Spring", mock.MatchedBy(func(at time.Time) bool {
		return at.Equal(release)
	})).Return(box, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/boxes", map[string]interface{}{
		"name":         "Spring",
		"release_date": release.Format(time.RFC3339),
	}, seller))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "draft", body["status"])
	assert.Equal(t, "0.00", body["ultra_rare_probability"])
	mockService.AssertExpectations(t)
}

func TestBoxHandler_CreateBox_ValidationFails(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	app.Post("/boxes", NewBoxHandler(mockService).CreateBox)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/boxes", map[string]interface{}{"name": ""}, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "CreateBoxDTO.name")
	mockService.AssertNumberOfCalls(t, "CreateBox", 0)
}

func TestBoxHandler_GetBox(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	app.Get("/boxes/:id", NewBoxHandler(mockService).GetBox)

	box := &models.Box{BaseModel: models.BaseModel{ID: 7}, Name: "Winter", Status: models.BoxStatusApproved}
	mockService.On("GetBox", uint(7)).Return(box, nil)
	mockService.On("GetBox", uint(8)).Return(nil, services.ErrBoxNotFound)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/boxes/7", nil, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Winter", decode(t, resp)["name"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/boxes/8", nil, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(apperror.KindNotFound), decode(t, resp)["code"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/boxes/abc", nil, uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBoxHandler_Approve(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	app.Post("/boxes/:id/approve", NewBoxHandler(mockService).Approve)

	approver := uuid.New()
	box := &models.Box{BaseModel: models.BaseModel{ID: 3}, Status: models.BoxStatusApproved}
	mockService.On("Approve", uint(3), approver).Return(box, nil)
	mockService.On("Approve", uint(4), approver).Return(nil, services.ErrBoxNotReviewable)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/boxes/3/approve", nil, approver))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", decode(t, resp)["status"])

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/boxes/4/approve", nil, approver))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestBoxHandler_Reject(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	app.Post("/boxes/:id/reject", NewBoxHandler(mockService).Reject)

	approver := uuid.New()
	box := &models.Box{BaseModel: models.BaseModel{ID: 3}, Status: models.BoxStatusRejected, RejectReason: "blurry photos"}
	mockService.On("Reject", uint(3), approver, "blurry photos").Return(box, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/boxes/3/reject", map[string]string{"reason": "blurry photos"}, approver))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "blurry photos", decode(t, resp)["reject_reason"])

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/boxes/3/reject", map[string]string{}, approver))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockService.AssertNumberOfCalls(t, "Reject", 1)
}

func TestBoxHandler_SubmitForApproval_Forbidden(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	app.Post("/boxes/:id/submit", NewBoxHandler(mockService).SubmitForApproval)

	seller := uuid.New()
	mockService.On("SubmitForApproval", uint(2), seller).Return(nil, services.ErrNotBoxOwner)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/boxes/2/submit", nil, seller))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBoxHandler_ListOwnBoxes(t *testing.T) {
	app := newTestApp()
	mockService := new(MockBoxService)
	app.Get("/seller/boxes", NewBoxHandler(mockService).ListOwnBoxes)

	seller := uuid.New()
	mockService.On("GetSellerBoxes", seller).Return([]models.Box{{Name: "A"}, {Name: "B"}}, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/seller/boxes", nil, seller))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var boxes []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boxes))
	assert.Len(t, boxes, 2)
}
