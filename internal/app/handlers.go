package app

import (
	"github.com/shiplane/carrier-gateway/internal/handlers"
	"github.com/shiplane/carrier-gateway/internal/server"
)

type Handlers struct {
	Merchant      *handlers.MerchantHandler
	Shipment      *handlers.ShipmentHandler
	ShipmentEvent *handlers.ShipmentEventHandler
}

func wireHandlers(serviceset Services) Handlers {
	return Handlers{
		Merchant:      handlers.NewMerchantHandler(serviceset.Merchant),
		Shipment:      handlers.NewShipmentHandler(serviceset.Shipment),
		ShipmentEvent: handlers.NewShipmentEventHandler(serviceset.ShipmentEvent),
	}
}

func wireRouter(handlerset Handlers) server.RouterConfig {
	return server.RouterConfig{
		MerchantHandler:      handlerset.Merchant,
		ShipmentHandler:      handlerset.Shipment,
		ShipmentEventHandler: handlerset.ShipmentEvent,
	}
}
