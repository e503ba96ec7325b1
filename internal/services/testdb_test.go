package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/repos"
	"github.com/shiplane/carrier-gateway/internal/types"
)

// newTestDB opens an in-memory sqlite database with the same error
// translation the postgres service configures, capped at one open
// connection so concurrent test writers contend on the constraint, not
// on sqlite's file lock.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

type testStack struct {
	db        *gorm.DB
	merchants MerchantService
	shipments ShipmentService
	events    ShipmentEventService
	eventRepo repos.ShipmentEventRepo
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	db := newTestDB(t)
	merchantRepo := repos.NewMerchantRepo(db, log)
	shipmentRepo := repos.NewShipmentRepo(db, log)
	eventRepo := repos.NewShipmentEventRepo(db, log)
	return &testStack{
		db:        db,
		merchants: NewMerchantService(db, log, merchantRepo),
		shipments: NewShipmentService(db, log, merchantRepo, shipmentRepo, eventRepo),
		events:    NewShipmentEventService(db, log, shipmentRepo, eventRepo),
		eventRepo: eventRepo,
	}
}
