package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shiplane/carrier-gateway/internal/handlers"
	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/repos"
	"github.com/shiplane/carrier-gateway/internal/server"
	"github.com/shiplane/carrier-gateway/internal/services"
	"github.com/shiplane/carrier-gateway/internal/types"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&types.Merchant{}, &types.Shipment{}, &types.ShipmentEvent{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	merchantRepo := repos.NewMerchantRepo(db, log)
	shipmentRepo := repos.NewShipmentRepo(db, log)
	eventRepo := repos.NewShipmentEventRepo(db, log)
	merchantService := services.NewMerchantService(db, log, merchantRepo)
	shipmentService := services.NewShipmentService(db, log, merchantRepo, shipmentRepo, eventRepo)
	eventService := services.NewShipmentEventService(db, log, shipmentRepo, eventRepo)

	return server.NewRouter(server.RouterConfig{
		MerchantHandler:      handlers.NewMerchantHandler(merchantService),
		ShipmentHandler:      handlers.NewShipmentHandler(shipmentService),
		ShipmentEventHandler: handlers.NewShipmentEventHandler(eventService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func createMerchantHTTP(t *testing.T, router *gin.Engine, name string) types.Merchant {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/merchant", gin.H{"name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create merchant status: want=201 got=%d body=%s", rec.Code, rec.Body.String())
	}
	var merchant types.Merchant
	decodeBody(t, rec, &merchant)
	return merchant
}

func TestHealthcheck(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck status: want=200 got=%d", rec.Code)
	}
}

func TestMerchantEndpoints(t *testing.T) {
	router := newTestRouter(t)

	merchant := createMerchantHTTP(t, router, "Acme")
	if merchant.ID == uuid.Nil || merchant.Name != "Acme" {
		t.Fatalf("unexpected merchant payload: %+v", merchant)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/merchant", gin.H{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank merchant name status: want=400 got=%d", rec.Code)
	}
	var envelope handlers.ErrorEnvelope
	decodeBody(t, rec, &envelope)
	if envelope.Error.Message == "" {
		t.Fatalf("error envelope must carry a message")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/merchant", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list merchants status: want=200 got=%d", rec.Code)
	}
	var merchants []types.Merchant
	decodeBody(t, rec, &merchants)
	if len(merchants) != 1 {
		t.Fatalf("merchant list length: want=1 got=%d", len(merchants))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/merchant/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown merchant status: want=404 got=%d", rec.Code)
	}
}

func TestShipmentCreateIdempotentReplay(t *testing.T) {
	router := newTestRouter(t)
	merchant := createMerchantHTTP(t, router, "Acme")

	payload := gin.H{"merchant_id": merchant.ID, "name": "Order one", "external_reference": "order-1"}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/shipments", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("fresh create status: want=201 got=%d body=%s", rec.Code, rec.Body.String())
	}
	var first types.Shipment
	decodeBody(t, rec, &first)
	if first.Status != types.ShipmentStatusCreated {
		t.Fatalf("fresh create status field: want=created got=%s", first.Status)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/shipments", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("replay status: want=200 got=%d", rec.Code)
	}
	var replay types.Shipment
	decodeBody(t, rec, &replay)
	if replay.ID != first.ID {
		t.Fatalf("replay id: want=%s got=%s", first.ID, replay.ID)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/shipments", gin.H{
		"merchant_id": uuid.New(), "name": "Order", "external_reference": "order-2",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown merchant create status: want=404 got=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/shipments", gin.H{
		"merchant_id": merchant.ID, "name": "Order", "external_reference": "",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty reference create status: want=400 got=%d", rec.Code)
	}
}

func TestShipmentDetailAndListing(t *testing.T) {
	router := newTestRouter(t)
	merchant := createMerchantHTTP(t, router, "Acme")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/shipments", gin.H{
		"merchant_id": merchant.ID, "name": "Order", "external_reference": "order-1",
	})
	var shipment types.Shipment
	decodeBody(t, rec, &shipment)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/shipments/"+shipment.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status: want=200 got=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/shipments/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown detail status: want=404 got=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/shipments?merchant_id=%s&status=created", merchant.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list status: want=200 got=%d", rec.Code)
	}
	var listed []types.Shipment
	decodeBody(t, rec, &listed)
	if len(listed) != 1 {
		t.Fatalf("filtered list length: want=1 got=%d", len(listed))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/shipments?merchant_id=not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad merchant filter status: want=400 got=%d", rec.Code)
	}
}

func TestShipmentStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)
	merchant := createMerchantHTTP(t, router, "Acme")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/shipments", gin.H{
		"merchant_id": merchant.ID, "name": "Order", "external_reference": "order-1",
	})
	var shipment types.Shipment
	decodeBody(t, rec, &shipment)
	statusPath := "/api/v1/shipments/" + shipment.ID.String() + "/status"

	rec = doJSON(t, router, http.MethodPost, statusPath, gin.H{"status": "delivered"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("illegal transition status: want=409 got=%d body=%s", rec.Code, rec.Body.String())
	}
	var envelope handlers.ErrorEnvelope
	decodeBody(t, rec, &envelope)
	if envelope.Error.Code != "invalid_transition" {
		t.Fatalf("illegal transition code: want=invalid_transition got=%q", envelope.Error.Code)
	}

	rec = doJSON(t, router, http.MethodPost, statusPath, gin.H{"status": "in_transit"})
	if rec.Code != http.StatusOK {
		t.Fatalf("legal transition status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	var moved types.Shipment
	decodeBody(t, rec, &moved)
	if moved.Status != types.ShipmentStatusInTransit {
		t.Fatalf("transition result status: want=in_transit got=%s", moved.Status)
	}

	rec = doJSON(t, router, http.MethodPost, statusPath, gin.H{"status": "lost"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status value: want=400 got=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/shipments/"+uuid.NewString()+"/status", gin.H{"status": "in_transit"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown shipment transition: want=404 got=%d", rec.Code)
	}
}

func TestShipmentEventEndpoints(t *testing.T) {
	router := newTestRouter(t)
	merchant := createMerchantHTTP(t, router, "Acme")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/shipments", gin.H{
		"merchant_id": merchant.ID, "name": "Order", "external_reference": "order-1",
	})
	var shipment types.Shipment
	decodeBody(t, rec, &shipment)
	eventsPath := "/api/v1/shipments/" + shipment.ID.String() + "/events"

	rec = doJSON(t, router, http.MethodPost, eventsPath, gin.H{
		"type":   "picked_up",
		"source": "carrier",
		"reason": "first scan",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("append event status: want=201 got=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, eventsPath, gin.H{"type": "returned", "source": "carrier"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad event type status: want=400 got=%d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, eventsPath, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list events status: want=200 got=%d", rec.Code)
	}
	var events []types.ShipmentEvent
	decodeBody(t, rec, &events)
	if len(events) != 2 {
		t.Fatalf("event list length: want=2 got=%d", len(events))
	}
	if events[0].Type != types.ShipmentEventLabelCreated || events[1].Type != types.ShipmentEventPickedUp {
		t.Fatalf("event order: want=[label_created picked_up] got=[%s %s]", events[0].Type, events[1].Type)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/shipments/"+uuid.NewString()+"/events", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown shipment events status: want=404 got=%d", rec.Code)
	}
}
