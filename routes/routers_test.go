package routes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homestay/repositories/memstore"
	"homestay/services"
	"homestay/services/storage"
	"homestay/validator"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Pagination *struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
	svc    *services.Services
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := validator.Register(); err != nil {
		t.Fatalf("register validator: %v", err)
	}
	svc := services.New(services.Options{
		Store:     memstore.New(),
		Storage:   storage.NewLocalStorage(t.TempDir(), ""),
		JWTSecret: []byte("routes-secret"),
	})
	if _, err := svc.Users.EnsureAdmin(context.Background(), "admin@homestay.vn", "admin-password"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	router := gin.New()
	SetupRoutes(router, RouterOptions{Services: svc})
	return &api{t: t, router: router, svc: svc}
}

func (a *api) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var res envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, res
}

// must gọi API, yêu cầu đúng status và giải mã data vào out
func (a *api) must(status int, method, path, token string, body, out interface{}) {
	a.t.Helper()
	code, res := a.do(method, path, token, body)
	if code != status {
		a.t.Fatalf("%s %s: status = %d, want %d (%+v)", method, path, code, status, res.Error)
	}
	if out != nil {
		if err := json.Unmarshal(res.Data, out); err != nil {
			a.t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	a.must(http.StatusOK, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password}, &out)
	if out.AccessToken == "" {
		a.t.Fatal("empty access token")
	}
	return out.AccessToken
}

func (a *api) expectError(status int, code, method, path, token string, body interface{}) {
	a.t.Helper()
	got, res := a.do(method, path, token, body)
	if got != status {
		a.t.Fatalf("%s %s: status = %d, want %d", method, path, got, status)
	}
	if res.Error == nil || res.Error.Code != code {
		a.t.Fatalf("%s %s: error = %+v, want %s", method, path, res.Error, code)
	}
}

type idOnly struct {
	ID uint `json:"id"`
}

func TestPing(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping = %d %q", w.Code, w.Body.String())
	}
}

func TestReservationFlowOverHTTP(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin@homestay.vn", "admin-password")

	a.must(http.StatusCreated, http.MethodPost, "/api/v1/users", admin, gin.H{
		"name": "Lan", "email": "agent@homestay.vn", "password": "agent-password", "role": "AGENT",
	}, nil)
	a.must(http.StatusCreated, http.MethodPost, "/api/v1/users", admin, gin.H{
		"name": "Hà", "email": "finance@homestay.vn", "password": "finance-password", "role": "FINANCE",
	}, nil)
	agent := a.login("agent@homestay.vn", "agent-password")
	finance := a.login("finance@homestay.vn", "finance-password")

	a.expectError(http.StatusForbidden, "FORBIDDEN", http.MethodGet, "/api/v1/users", agent, nil)
	a.expectError(http.StatusBadRequest, "VALIDATION_ERROR", http.MethodPost, "/api/v1/users", admin, gin.H{
		"name": "X", "email": "x@homestay.vn", "password": "short", "role": "OWNER",
	})

	var location idOnly
	a.must(http.StatusCreated, http.MethodPost, "/api/v1/locations", admin, gin.H{"name": "Hội An Riverside", "city": "Hội An"}, &location)
	var unit idOnly
	a.must(http.StatusCreated, http.MethodPost, "/api/v1/units", admin, gin.H{
		"code": "ha-201", "name": "Phòng 201", "locationId": location.ID, "capacity": 2,
	}, &unit)
	a.expectError(http.StatusForbidden, "FORBIDDEN", http.MethodPost, "/api/v1/units", agent, gin.H{"code": "x", "name": "x", "locationId": location.ID})

	var guest idOnly
	a.must(http.StatusCreated, http.MethodPost, "/api/v1/guests", agent, gin.H{"fullName": "Trần Thị Bình", "phoneNumber": "0912345678"}, &guest)

	var reservation struct {
		ID            uint   `json:"id"`
		Status        string `json:"status"`
		DepositStatus string `json:"depositStatus"`
	}
	a.must(http.StatusCreated, http.MethodPost, "/api/v1/reservations", agent, gin.H{
		"unitId": unit.ID, "guestId": guest.ID,
		"checkIn": "2030-05-01T14:00:00Z", "checkOut": "2030-05-03T12:00:00Z",
		"status": "CONFIRMED", "totalAmount": 2000000, "depositAmount": 500000,
	}, &reservation)
	if reservation.Status != "CONFIRMED" || reservation.DepositStatus != "PENDING" {
		t.Fatalf("reservation = %+v", reservation)
	}

	a.expectError(http.StatusBadRequest, "UNIT_NOT_AVAILABLE", http.MethodPost, "/api/v1/reservations", agent, gin.H{
		"unitId": unit.ID, "guestId": guest.ID,
		"checkIn": "2030-05-02T14:00:00Z", "checkOut": "2030-05-04T12:00:00Z",
		"status": "CONFIRMED",
	})

	var availability struct {
		Available bool `json:"available"`
	}
	a.must(http.StatusOK, http.MethodGet,
		fmt.Sprintf("/api/v1/units/%d/availability?checkIn=2030-05-03T12:00:00Z&checkOut=2030-05-05T12:00:00Z", unit.ID),
		agent, nil, &availability)
	if !availability.Available {
		t.Fatal("back-to-back stay should be available")
	}

	base := fmt.Sprintf("/api/v1/reservations/%d", reservation.ID)
	a.expectError(http.StatusBadRequest, "DEPOSIT_REQUIRED", http.MethodPost, base+"/check-in", agent, nil)

	deposits := fmt.Sprintf("/api/v1/deposits/reservations/%d", reservation.ID)
	a.expectError(http.StatusForbidden, "FORBIDDEN", http.MethodPost, deposits+"/collect", agent, gin.H{"method": "CASH"})
	a.must(http.StatusOK, http.MethodPost, deposits+"/collect", finance, gin.H{"method": "CASH"}, nil)

	a.must(http.StatusOK, http.MethodPost, base+"/check-in", agent, nil, &reservation)
	a.must(http.StatusOK, http.MethodPost, base+"/check-out", agent, nil, &reservation)
	if reservation.Status != "CHECKED_OUT" {
		t.Fatalf("status = %s", reservation.Status)
	}

	var events []struct {
		Type string `json:"type"`
	}
	a.must(http.StatusOK, http.MethodGet, deposits+"/events", finance, nil, &events)
	if len(events) != 2 || events[0].Type != "request" || events[1].Type != "collect" {
		t.Fatalf("events = %+v", events)
	}

	_, tasks := a.do(http.MethodGet, "/api/v1/cleaning-tasks", admin, nil)
	if !tasks.Success || tasks.Pagination == nil || tasks.Pagination.Total != 1 {
		t.Fatalf("cleaning tasks = %+v", tasks)
	}
	a.expectError(http.StatusForbidden, "FORBIDDEN", http.MethodGet, "/api/v1/cleaning-tasks", agent, nil)

	var summary struct {
		DepositsHeld int64 `json:"depositsHeld"`
	}
	a.must(http.StatusOK, http.MethodGet, "/api/v1/dashboard/summary?from=2030-05-01&to=2030-05-10", finance, nil, &summary)
	if summary.DepositsHeld != 500000 {
		t.Fatalf("depositsHeld = %d", summary.DepositsHeld)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin@homestay.vn", "admin-password")

	var me struct {
		Email string `json:"email"`
	}
	a.must(http.StatusOK, http.MethodGet, "/api/v1/auth/me", admin, nil, &me)
	if me.Email != "admin@homestay.vn" {
		t.Fatalf("me = %+v", me)
	}

	a.must(http.StatusOK, http.MethodPost, "/api/v1/auth/logout", admin, nil, nil)
	a.expectError(http.StatusUnauthorized, "INVALID_TOKEN", http.MethodGet, "/api/v1/auth/me", admin, nil)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newAPI(t)
	a.expectError(http.StatusUnauthorized, "INVALID_CREDENTIALS", http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"email": "admin@homestay.vn", "password": "wrong-password"})
	a.expectError(http.StatusBadRequest, "VALIDATION_ERROR", http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"email": "not-an-email"})
}

func TestInvalidIDParam(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin@homestay.vn", "admin-password")
	a.expectError(http.StatusBadRequest, "INVALID_FORMAT", http.MethodGet, "/api/v1/units/abc", admin, nil)
	a.expectError(http.StatusNotFound, "NOT_FOUND", http.MethodGet, "/api/v1/units/999", admin, nil)
}
