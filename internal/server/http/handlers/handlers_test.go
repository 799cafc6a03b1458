package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/server/http/dto"
	"github.com/rvleeuwen/laadscan/internal/server/http/middleware"
	testhelpers "github.com/rvleeuwen/laadscan/internal/test"
	"github.com/rvleeuwen/laadscan/internal/worker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return performRouteRequest(t, method, path, path, handler, setup, body, headers)
}

func performRouteRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.LoginRequest{Login: login, Password: password})

	handler := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(ctx context.Context, gotLogin, gotPassword string) (*model.User, string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials passed to facade: %q %q", gotLogin, gotPassword)
		}
		return &model.User{ID: 1, Login: gotLogin, Role: model.RolePlanner}, "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}

	var payload dto.LoginResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Login != login || payload.Role != string(model.RolePlanner) {
		t.Fatalf("unexpected response payload: %+v", payload)
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}})
	body, _ := json.Marshal(dto.LoginRequest{Login: "jan", Password: "fout"})

	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginBadJSON(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAuthHandlerForgotAlwaysAccepted(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	body, _ := json.Marshal(dto.ForgotRequest{Login: "niemand"})

	resp := performRequest(t, http.MethodPost, "/forgot", handler.Forgot, nil, body, jsonHeaders())
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", resp.Code)
	}
}

func TestAuthHandlerResetUnknownToken(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{ResetFn: func(context.Context, string, string) error {
		return domainErrors.ErrNotFound
	}})
	body, _ := json.Marshal(dto.ResetRequest{Token: "verlopen", Password: "nieuw"})

	resp := performRequest(t, http.MethodPost, "/reset", handler.Reset, nil, body, jsonHeaders())
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAuthHandlerCreateUser(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	body, _ := json.Marshal(dto.CreateUserRequest{Login: "piet", Password: "geheim", Role: "planner"})

	resp := performRequest(t, http.MethodPost, "/users", handler.CreateUser, nil, body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var payload dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Login != "piet" || payload.Role != "planner" {
		t.Fatalf("unexpected response payload: %+v", payload)
	}
}

func TestAuthHandlerCreateUserErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{domainErrors.ErrInvalidArgument, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		handler := NewAuthHandler(testhelpers.AuthFacadeStub{CreateUserFn: func(context.Context, string, string, model.Role) (*model.User, error) {
			return nil, tc.err
		}})
		body, _ := json.Marshal(dto.CreateUserRequest{Login: "piet", Password: "geheim", Role: "planner"})
		resp := performRequest(t, http.MethodPost, "/users", handler.CreateUser, nil, body, jsonHeaders())
		if resp.Code != tc.code {
			t.Fatalf("error %v: expected status %d, got %d", tc.err, tc.code, resp.Code)
		}
	}
}

func TestScanHandlerProcess(t *testing.T) {
	handler := NewScanHandler(testhelpers.ScanFacadeStub{ProcessFn: func(ctx context.Context, lineNumber, vehicle string) (*model.ScanResult, error) {
		if lineNumber != "1001" || vehicle != "V1" {
			t.Fatalf("unexpected arguments: %q %q", lineNumber, vehicle)
		}
		return &model.ScanResult{LineNumber: lineNumber, Vehicle: vehicle, ScannedCount: 3, TargetQuantity: 3, OrderComplete: true}, nil
	}})
	body, _ := json.Marshal(dto.ScanRequest{LineNumber: "1001", Vehicle: "V1"})

	resp := performRequest(t, http.MethodPost, "/scans", handler.Process, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload dto.ScanResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.ScannedCount != 3 || !payload.OrderComplete {
		t.Fatalf("unexpected response payload: %+v", payload)
	}
}

func TestScanHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrInvalidArgument, http.StatusUnprocessableEntity},
		{domainErrors.ErrOverflow, http.StatusUnprocessableEntity},
		{domainErrors.ErrCapacityExceeded, http.StatusConflict},
		{domainErrors.ErrConflict, http.StatusConflict},
	}
	body, _ := json.Marshal(dto.ScanRequest{LineNumber: "1001", Vehicle: "V1"})
	for _, tc := range cases {
		handler := NewScanHandler(testhelpers.ScanFacadeStub{ProcessFn: func(context.Context, string, string) (*model.ScanResult, error) {
			return nil, tc.err
		}})
		resp := performRequest(t, http.MethodPost, "/scans", handler.Process, nil, body, jsonHeaders())
		if resp.Code != tc.code {
			t.Fatalf("error %v: expected status %d, got %d", tc.err, tc.code, resp.Code)
		}
	}
}

func TestScanHandlerMissingForwardsUser(t *testing.T) {
	handler := NewScanHandler(testhelpers.ScanFacadeStub{MissingFn: func(ctx context.Context, userID int64, lineNumber string, amount int, reason, comments string) (*model.ScanResult, error) {
		if userID != 42 {
			t.Fatalf("expected user 42, got %d", userID)
		}
		if lineNumber != "1001" || amount != 2 || reason != "breuk" || comments != "laatste pallet" {
			t.Fatalf("unexpected arguments: %q %d %q %q", lineNumber, amount, reason, comments)
		}
		return &model.ScanResult{LineNumber: lineNumber, ReportedMissing: amount}, nil
	}})
	body, _ := json.Marshal(dto.MissingRequest{LineNumber: "1001", Amount: 2, Reason: "breuk", Comments: "laatste pallet"})

	setup := func(c *gin.Context) { c.Set(middleware.UserIDContextKey, int64(42)) }
	resp := performRequest(t, http.MethodPost, "/scans/missing", handler.Missing, setup, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestVehicleHandlerListEmpty(t *testing.T) {
	handler := NewVehicleHandler(testhelpers.BoardFacadeStub{VehiclesFn: func(context.Context) ([]string, error) {
		return nil, nil
	}})
	resp := performRequest(t, http.MethodGet, "/vehicles", handler.List, nil, nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestVehicleHandlerBoard(t *testing.T) {
	handler := NewVehicleHandler(testhelpers.BoardFacadeStub{BoardFn: func(ctx context.Context, vehicle string) (*model.VehicleBoard, error) {
		return &model.VehicleBoard{
			Vehicle:      vehicle,
			Heavy:        []model.Order{{LineNumber: "1", ArticleDescription: "Betonplaat"}},
			Regular:      []model.Order{{LineNumber: "2"}},
			ScannedCount: 1,
			TotalCount:   2,
		}, nil
	}})

	resp := performRouteRequest(t, http.MethodGet, "/vehicles/:vehicle", "/vehicles/V1", handler.Board, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload dto.VehicleBoardResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Vehicle != "V1" || len(payload.Heavy) != 1 || len(payload.Regular) != 1 {
		t.Fatalf("unexpected response payload: %+v", payload)
	}
}

func TestVehicleHandlerMissingReportsEmpty(t *testing.T) {
	handler := NewVehicleHandler(testhelpers.BoardFacadeStub{})
	resp := performRouteRequest(t, http.MethodGet, "/vehicles/:vehicle/missing", "/vehicles/V1/missing", handler.MissingReports, nil, nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestHeavyHandlerCreate(t *testing.T) {
	handler := NewHeavyHandler(testhelpers.HeavyFacadeStub{})
	body, _ := json.Marshal(dto.HeavyProductRequest{Name: "beton"})

	resp := performRequest(t, http.MethodPost, "/heavy-products", handler.Create, nil, body, jsonHeaders())
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestHeavyHandlerDelete(t *testing.T) {
	handler := NewHeavyHandler(testhelpers.HeavyFacadeStub{})
	resp := performRouteRequest(t, http.MethodDelete, "/heavy-products/:id", "/heavy-products/3", handler.Delete, nil, nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	resp = performRouteRequest(t, http.MethodDelete, "/heavy-products/:id", "/heavy-products/abc", handler.Delete, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad id, got %d", resp.Code)
	}

	handler = NewHeavyHandler(testhelpers.HeavyFacadeStub{RemoveFn: func(context.Context, int64) error {
		return domainErrors.ErrNotFound
	}})
	resp = performRouteRequest(t, http.MethodDelete, "/heavy-products/:id", "/heavy-products/3", handler.Delete, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func multipartUpload(t *testing.T, field, filename string, content []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf.Bytes(), writer.FormDataContentType()
}

func TestImportHandlerSubmit(t *testing.T) {
	handler := NewImportHandler(testhelpers.ImportQueueStub{SubmitFn: func(filename string, data []byte) (string, error) {
		if filename != "plan.xlsx" || string(data) != "workbook-bytes" {
			t.Fatalf("unexpected upload: %q %q", filename, data)
		}
		return "imp-7", nil
	}})

	body, contentType := multipartUpload(t, "file", "plan.xlsx", []byte("workbook-bytes"))
	resp := performRequest(t, http.MethodPost, "/imports", handler.Submit, nil, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", resp.Code)
	}

	var payload dto.ImportSubmitResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.ID != "imp-7" {
		t.Fatalf("unexpected job id %q", payload.ID)
	}
}

func TestImportHandlerSubmitQueueFull(t *testing.T) {
	handler := NewImportHandler(testhelpers.ImportQueueStub{SubmitFn: func(string, []byte) (string, error) {
		return "", worker.ErrQueueFull
	}})

	body, contentType := multipartUpload(t, "file", "plan.xlsx", []byte("data"))
	resp := performRequest(t, http.MethodPost, "/imports", handler.Submit, nil, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestImportHandlerSubmitMissingFile(t *testing.T) {
	handler := NewImportHandler(testhelpers.ImportQueueStub{})
	resp := performRequest(t, http.MethodPost, "/imports", handler.Submit, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestImportHandlerStatus(t *testing.T) {
	handler := NewImportHandler(testhelpers.ImportQueueStub{StatusFn: func(id string) (*worker.JobStatus, bool) {
		if id != "imp-7" {
			return nil, false
		}
		return &worker.JobStatus{ID: id, State: worker.JobStateDone, Inserted: 12}, true
	}})

	resp := performRouteRequest(t, http.MethodGet, "/imports/:id", "/imports/imp-7", handler.Status, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.ImportStatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.State != string(worker.JobStateDone) || payload.Inserted != 12 {
		t.Fatalf("unexpected response payload: %+v", payload)
	}

	resp = performRouteRequest(t, http.MethodGet, "/imports/:id", "/imports/imp-404", handler.Status, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
