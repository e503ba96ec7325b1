package app

import (
	"gorm.io/gorm"

	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/services"
)

type Services struct {
	Merchant      services.MerchantService
	Shipment      services.ShipmentService
	ShipmentEvent services.ShipmentEventService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	return Services{
		Merchant:      services.NewMerchantService(db, log, reposet.Merchant),
		Shipment:      services.NewShipmentService(db, log, reposet.Merchant, reposet.Shipment, reposet.ShipmentEvent),
		ShipmentEvent: services.NewShipmentEventService(db, log, reposet.Shipment, reposet.ShipmentEvent),
	}
}
