package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"eventpro-backend/clock"
	"eventpro-backend/config"
	"eventpro-backend/consumer"
	"eventpro-backend/controllers"
	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/testutil"
	"eventpro-backend/utils"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.NewTestDB(t)
	store := repository.New(db)
	clk := clock.NewFixed(time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC))
	home := services.NewHomeService(store, nil, time.Minute)
	activity := consumer.NewActivityConsumer(store, nil, home)

	h := controllers.NewHandler(controllers.Deps{
		Store:   store,
		Home:    home,
		Reports: services.NewReportService(store, clk),
		Feed:    services.NewActivityFeed(nil, activity.Handle, clk),
		Clock:   clk,
	})
	cfg := config.Config{JWTSecret: testSecret, CORSOrigins: []string{"http://localhost:3000"}}

	token, err := utils.GenerateToken(testSecret, "auth0|planner", "planner@example.com", "Pat Planner", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &apiClient{t: t, router: SetupRouter(cfg, h), token: token}
}

func (a *apiClient) do(method, path, contentType, body string) (int, map[string]any) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, out
}

func (a *apiClient) json(method, path, body string) (int, map[string]any) {
	a.t.Helper()
	return a.do(method, path, "application/json", body)
}

func (a *apiClient) get(path string) (int, map[string]any) {
	a.t.Helper()
	return a.do(http.MethodGet, path, "", "")
}

func mustStatus(t *testing.T, got, want int, body map[string]any) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d; body = %v", got, want, body)
	}
}

func TestPublicEndpoints(t *testing.T) {
	api := newAPI(t)
	api.token = ""

	code, body := api.get("/health")
	mustStatus(t, code, http.StatusOK, body)
	if body["database"] != "up" || body["cache"] != "disabled" {
		t.Fatalf("health = %v", body)
	}

	code, body = api.get("/home")
	mustStatus(t, code, http.StatusOK, body)

	code, body = api.get("/api/clients")
	mustStatus(t, code, http.StatusUnauthorized, body)
}

func TestInvalidTokenRejected(t *testing.T) {
	api := newAPI(t)
	token, err := utils.GenerateToken("other-secret", "x", "", "", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	api.token = token
	code, body := api.get("/api/me")
	mustStatus(t, code, http.StatusUnauthorized, body)
}

func TestMeSyncsIdentity(t *testing.T) {
	api := newAPI(t)

	code, body := api.get("/api/me")
	mustStatus(t, code, http.StatusOK, body)
	if body["subject"] != "auth0|planner" || body["name"] != "Pat Planner" {
		t.Fatalf("me = %v", body)
	}
}

func TestClientLifecycle(t *testing.T) {
	api := newAPI(t)

	code, body := api.json(http.MethodPost, "/api/clients", `{"first_name":"Anna","last_name":"Ivanova","email":"anna@example.com","phone":"+79990000000"}`)
	mustStatus(t, code, http.StatusCreated, body)
	if body["status"] != "new" {
		t.Fatalf("status = %v", body["status"])
	}
	clientID := body["id"].(string)

	form := url.Values{"first_name": {"John"}, "last_name": {"Smith"}, "email": {"john@acme.test"}, "phone": {"1"}, "company": {"Acme"}}
	code, body = api.do(http.MethodPost, "/api/clients", "application/x-www-form-urlencoded", form.Encode())
	mustStatus(t, code, http.StatusCreated, body)

	code, body = api.get("/api/clients?search=IVAN")
	mustStatus(t, code, http.StatusOK, body)
	if body["totalRows"].(float64) != 1 {
		t.Fatalf("search = %v", body)
	}

	code, body = api.get("/api/clients?page=2&pageSize=1")
	mustStatus(t, code, http.StatusOK, body)
	if body["totalPages"].(float64) != 2 || len(body["data"].([]any)) != 1 {
		t.Fatalf("paging = %v", body)
	}

	code, body = api.json(http.MethodPut, "/api/clients/"+clientID, `{"first_name":"Anna","last_name":"Petrova","email":"anna@example.com","phone":"1","status":"active"}`)
	mustStatus(t, code, http.StatusOK, body)
	if body["lastName"] != "Petrova" || body["status"] != "active" {
		t.Fatalf("update = %v", body)
	}

	code, body = api.get("/api/clients/" + clientID)
	mustStatus(t, code, http.StatusOK, body)
	if _, ok := body["events"].([]any); !ok {
		t.Fatalf("detail = %v", body)
	}

	code, body = api.get("/api/search/clients?q=petrova")
	if code != http.StatusOK {
		t.Fatalf("search status = %d", code)
	}

	code, body = api.do(http.MethodDelete, "/api/clients/"+clientID, "", "")
	mustStatus(t, code, http.StatusOK, body)
	code, body = api.get("/api/clients/" + clientID)
	mustStatus(t, code, http.StatusNotFound, body)
}

func TestValidationErrorsListEveryField(t *testing.T) {
	api := newAPI(t)

	code, body := api.json(http.MethodPost, "/api/clients", `{"email":"not-an-email","status":"vip"}`)
	mustStatus(t, code, http.StatusBadRequest, body)
	fields := body["fields"].(map[string]any)
	for _, f := range []string{"first_name", "last_name", "email", "phone", "status"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing error for %s: %v", f, fields)
		}
	}

	code, body = api.json(http.MethodPost, "/api/clients", `{"first_name": ["x"]}`)
	mustStatus(t, code, http.StatusBadRequest, body)
}

func TestEventBookingFlow(t *testing.T) {
	api := newAPI(t)

	_, client := api.json(http.MethodPost, "/api/clients", `{"first_name":"Anna","last_name":"Ivanova","email":"anna@example.com","phone":"1"}`)
	clientID := client["id"].(string)

	code, body := api.json(http.MethodPost, "/api/events", `{"client":"`+clientID+`","name":"Wedding","event_type":"wedding","date":"2030-06-01T15:00","location":"Hall","budget":"1500.50","guest_count":80}`)
	mustStatus(t, code, http.StatusCreated, body)
	if body["status"] != "planned" || body["budget"] != "1500.50" {
		t.Fatalf("event = %v", body)
	}
	eventID := body["id"].(string)

	code, body = api.json(http.MethodPost, "/api/events", `{"client":"00000000-0000-0000-0000-000000000001","name":"X","event_type":"wedding","date":"2030-06-01","location":"Hall","budget":"1","guest_count":1}`)
	mustStatus(t, code, http.StatusBadRequest, body)
	if _, ok := body["fields"].(map[string]any)["client"]; !ok {
		t.Fatalf("expected client field error: %v", body)
	}

	code, body = api.json(http.MethodPost, "/api/services", `{"name":"Catering","category":"wedding","description":"Food","price":"100"}`)
	mustStatus(t, code, http.StatusCreated, body)
	if body["isAvailable"] != true {
		t.Fatalf("availability default = %v", body["isAvailable"])
	}
	serviceID := body["id"].(string)

	code, body = api.json(http.MethodPost, "/api/events/"+eventID+"/services", `{"service":"`+serviceID+`","quantity":3}`)
	mustStatus(t, code, http.StatusCreated, body)
	if body["price"] != "100.00" || body["totalPrice"] != "300.00" {
		t.Fatalf("booking = %v", body)
	}
	bookingID := body["id"].(string)

	code, body = api.json(http.MethodPost, "/api/tasks", `{"event":"`+eventID+`","title":"Call florist","due_date":"2030-05-01"}`)
	mustStatus(t, code, http.StatusCreated, body)
	if body["priority"] != "medium" {
		t.Fatalf("task = %v", body)
	}
	taskID := body["id"].(string)

	code, body = api.do(http.MethodPost, "/api/tasks/"+taskID+"/complete", "", "")
	mustStatus(t, code, http.StatusOK, body)
	if body["isCompleted"] != true {
		t.Fatalf("complete = %v", body)
	}
	code, body = api.do(http.MethodPost, "/api/tasks/"+taskID+"/reopen", "", "")
	mustStatus(t, code, http.StatusOK, body)
	if body["isCompleted"] != false {
		t.Fatalf("reopen = %v", body)
	}
	code, body = api.do(http.MethodPost, "/api/tasks/"+taskID+"/complete", "", "")
	mustStatus(t, code, http.StatusOK, body)
	code, body = api.get("/api/tasks/" + taskID + "/reminders")
	mustStatus(t, code, http.StatusOK, body)

	code, body = api.get("/api/events/" + eventID)
	mustStatus(t, code, http.StatusOK, body)
	if body["servicesTotal"] != "300.00" || len(body["tasks"].([]any)) != 1 {
		t.Fatalf("detail = %v", body)
	}

	code, body = api.json(http.MethodPut, "/api/events/"+eventID+"/status", `{"status":"cancelled"}`)
	mustStatus(t, code, http.StatusOK, body)
	code, body = api.json(http.MethodPut, "/api/events/"+eventID+"/status", `{"status":"lost"}`)
	mustStatus(t, code, http.StatusBadRequest, body)
	code, body = api.json(http.MethodPut, "/api/events/"+eventID, `{"client":"`+clientID+`","name":"Wedding","event_type":"wedding","date":"2030-06-01T16:00","location":"Hall","budget":"1500.50","guest_count":90}`)
	mustStatus(t, code, http.StatusOK, body)
	if body["status"] != "cancelled" {
		t.Fatalf("edit without status reset it: %v", body)
	}

	code, body = api.get("/api/dashboard")
	mustStatus(t, code, http.StatusOK, body)
	if body["totalRevenue"] != "1500.50" || len(body["upcomingEvents"].([]any)) != 0 {
		t.Fatalf("dashboard = %v", body)
	}

	code, body = api.get("/api/reports")
	mustStatus(t, code, http.StatusOK, body)

	code, body = api.do(http.MethodDelete, "/api/events/"+eventID+"/services/"+bookingID, "", "")
	mustStatus(t, code, http.StatusOK, body)

	code, body = api.do(http.MethodDelete, "/api/events/"+eventID, "", "")
	mustStatus(t, code, http.StatusOK, body)
	code, body = api.get("/api/tasks/" + taskID)
	mustStatus(t, code, http.StatusNotFound, body)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/api/clients/nope", "/api/events/nope", "/api/services/nope", "/api/tasks/nope"} {
		code, body := api.get(path)
		mustStatus(t, code, http.StatusNotFound, body)
	}

	code, body := api.get("/api/events?client=nope")
	mustStatus(t, code, http.StatusOK, body)
	if body["totalRows"].(float64) != 0 {
		t.Fatalf("malformed filter matched rows: %v", body)
	}
}
