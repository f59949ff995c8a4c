package http

import (
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/queries"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
)

// Error is the JSON error body every failing endpoint returns.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductPayload is one product in a catalog initialization request.
type ProductPayload struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	UnitMassGrams int    `json:"unitMassGrams"`
}

// InitCatalogRequest carries the founding product list.
type InitCatalogRequest struct {
	Products []ProductPayload `json:"products"`
}

// ItemPayload is one product/quantity pair in an order or restock request.
type ItemPayload struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// OrderRequest carries one order submission.
type OrderRequest struct {
	OrderID int           `json:"orderId"`
	Items   []ItemPayload `json:"items"`
}

// RestockRequest carries one stock delivery.
type RestockRequest struct {
	Items []ItemPayload `json:"items"`
}

// OrderResponse is the JSON shape of one order's fulfillment progress.
type OrderResponse struct {
	OrderID        int           `json:"orderId"`
	Status         string        `json:"status"`
	ShipmentCount  int           `json:"shipmentCount"`
	RequestedItems []ItemPayload `json:"requestedItems"`
	ShippedItems   []ItemPayload `json:"shippedItems"`
	RemainingItems []ItemPayload `json:"remainingItems"`
}

// ShipmentResponse is the JSON shape of one committed shipment.
type ShipmentResponse struct {
	ShipmentID     string        `json:"shipmentId"`
	OrderID        int           `json:"orderId"`
	Lines          []ItemPayload `json:"lines"`
	TotalMassGrams int           `json:"totalMassGrams"`
	ShippedAt      time.Time     `json:"shippedAt"`
}

// StockResponse is the JSON shape of one product's stock level.
type StockResponse struct {
	ProductID       int    `json:"productId"`
	Name            string `json:"name"`
	UnitMassGrams   int    `json:"unitMassGrams"`
	QuantityInStock int    `json:"quantityInStock"`
}

// SystemStatusResponse is the JSON shape of the operational snapshot.
type SystemStatusResponse struct {
	Initialized           bool   `json:"initialized"`
	ProductCount          int64  `json:"productCount"`
	TotalUnitsInStock     int64  `json:"totalUnitsInStock"`
	OrderCount            int64  `json:"orderCount"`
	PendingOrders         int64  `json:"pendingOrders"`
	PartiallyFulfilled    int64  `json:"partiallyFulfilled"`
	FulfilledOrders       int64  `json:"fulfilledOrders"`
	ShipmentCount         int64  `json:"shipmentCount"`
	TotalShippedMassGrams int64  `json:"totalShippedMassGrams"`
	PackingStrategy       string `json:"packingStrategy"`
	MassCeilingGrams      int    `json:"massCeilingGrams"`
}

func itemViewsToPayload(items []queries.ItemView) []ItemPayload {
	payload := make([]ItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, ItemPayload{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return payload
}

func itemsToPayload(items []order.Item) []ItemPayload {
	payload := make([]ItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, ItemPayload{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}
	return payload
}

func orderViewToResponse(view queries.OrderStatusQueryResponse) OrderResponse {
	return OrderResponse{
		OrderID:        view.OrderID,
		Status:         view.Status,
		ShipmentCount:  view.ShipmentCount,
		RequestedItems: itemViewsToPayload(view.RequestedItems),
		ShippedItems:   itemViewsToPayload(view.ShippedItems),
		RemainingItems: itemViewsToPayload(view.RemainingItems),
	}
}

func orderToResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		OrderID:        o.ID(),
		Status:         o.Status().String(),
		ShipmentCount:  o.ShipmentCount(),
		RequestedItems: itemsToPayload(o.RequestedItems()),
		ShippedItems:   itemsToPayload(o.ShippedItems()),
		RemainingItems: itemsToPayload(o.RemainingItems()),
	}
}
