package app

import (
	"gorm.io/gorm"

	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/repos"
)

type Repos struct {
	Merchant      repos.MerchantRepo
	Shipment      repos.ShipmentRepo
	ShipmentEvent repos.ShipmentEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Merchant:      repos.NewMerchantRepo(db, log),
		Shipment:      repos.NewShipmentRepo(db, log),
		ShipmentEvent: repos.NewShipmentEventRepo(db, log),
	}
}
