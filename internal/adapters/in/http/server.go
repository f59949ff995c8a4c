// Package http exposes the fulfillment operations over a JSON REST API
// using Echo. Handlers translate between wire payloads and the command and
// query layers; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"github.com/jpirumvaa/fulfillment-system/internal/core/application/catalog"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/commands"
	"github.com/jpirumvaa/fulfillment-system/internal/core/application/usecases/queries"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/order"
	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/product"
	"github.com/jpirumvaa/fulfillment-system/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	// Command handlers
	initCatalogHandler    commands.InitCatalogCommandHandler
	processOrderHandler   commands.ProcessOrderCommandHandler
	processRestockHandler commands.ProcessRestockCommandHandler
	resetCatalogHandler   commands.ResetCatalogCommandHandler

	// Query handlers
	orderStatusHandler    queries.OrderStatusQueryHandler
	orderShipmentsHandler queries.OrderShipmentsQueryHandler
	allOrdersHandler      queries.GetAllOrdersQueryHandler
	pendingQueueHandler   queries.PendingQueueQueryHandler
	allStockHandler       queries.GetAllStockQueryHandler
	productStockHandler   queries.ProductStockQueryHandler
	systemStatusHandler   queries.SystemStatusQueryHandler

	packingStrategy  string
	massCeilingGrams int
}

// NewServer creates an HTTP server with the required command and query
// handlers. Strategy name and mass ceiling appear in the status endpoint.
func NewServer(
	initCatalogHandler commands.InitCatalogCommandHandler,
	processOrderHandler commands.ProcessOrderCommandHandler,
	processRestockHandler commands.ProcessRestockCommandHandler,
	resetCatalogHandler commands.ResetCatalogCommandHandler,
	orderStatusHandler queries.OrderStatusQueryHandler,
	orderShipmentsHandler queries.OrderShipmentsQueryHandler,
	allOrdersHandler queries.GetAllOrdersQueryHandler,
	pendingQueueHandler queries.PendingQueueQueryHandler,
	allStockHandler queries.GetAllStockQueryHandler,
	productStockHandler queries.ProductStockQueryHandler,
	systemStatusHandler queries.SystemStatusQueryHandler,
	packingStrategy string,
	massCeilingGrams int,
) *Server {
	return &Server{
		initCatalogHandler:    initCatalogHandler,
		processOrderHandler:   processOrderHandler,
		processRestockHandler: processRestockHandler,
		resetCatalogHandler:   resetCatalogHandler,
		orderStatusHandler:    orderStatusHandler,
		orderShipmentsHandler: orderShipmentsHandler,
		allOrdersHandler:      allOrdersHandler,
		pendingQueueHandler:   pendingQueueHandler,
		allStockHandler:       allStockHandler,
		productStockHandler:   productStockHandler,
		systemStatusHandler:   systemStatusHandler,
		packingStrategy:       packingStrategy,
		massCeilingGrams:      massCeilingGrams,
	}
}

// RegisterRoutes attaches every endpoint to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/catalog", s.InitCatalog)
	api.DELETE("/catalog", s.ResetCatalog)
	api.POST("/orders", s.ProcessOrder)
	api.POST("/restocks", s.ProcessRestock)

	api.GET("/orders", s.GetAllOrders)
	api.GET("/orders/pending", s.GetPendingQueue)
	api.GET("/orders/:id", s.GetOrderStatus)
	api.GET("/orders/:id/shipments", s.GetOrderShipments)
	api.GET("/stock", s.GetAllStock)
	api.GET("/stock/:id", s.GetProductStock)
	api.GET("/status", s.GetSystemStatus)

	e.GET("/health", s.Health)
}

// InitCatalog handles POST /api/v1/catalog - loads the founding product list.
func (s *Server) InitCatalog(ctx echo.Context) error {
	var request InitCatalogRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	descriptors := make([]catalog.ProductDescriptor, 0, len(request.Products))
	for _, p := range request.Products {
		descriptors = append(descriptors, catalog.ProductDescriptor{
			ID:            p.ID,
			Name:          p.Name,
			UnitMassGrams: p.UnitMassGrams,
		})
	}

	cmd, err := commands.NewInitCatalogCommand(descriptors)
	if err != nil {
		return badRequest(ctx, "Invalid catalog data: "+err.Error())
	}

	if err := s.initCatalogHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ResetCatalog handles DELETE /api/v1/catalog - clears the catalog.
func (s *Server) ResetCatalog(ctx echo.Context) error {
	cmd := commands.NewResetCatalogCommand()
	if err := s.resetCatalogHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessOrder handles POST /api/v1/orders - admits an order and returns
// its state after the immediate fulfillment attempt.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	var request OrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, payload := range request.Items {
		item, err := order.NewItem(payload.ProductID, payload.Quantity)
		if err != nil {
			return badRequest(ctx, "Invalid item: "+err.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewProcessOrderCommand(request.OrderID, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	o, err := s.processOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(o))
}

// ProcessRestock handles POST /api/v1/restocks - applies a stock delivery.
func (s *Server) ProcessRestock(ctx echo.Context) error {
	var request RestockRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deltas := make([]catalog.StockDelta, 0, len(request.Items))
	for _, payload := range request.Items {
		deltas = append(deltas, catalog.StockDelta{
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
		})
	}

	cmd, err := commands.NewProcessRestockCommand(deltas)
	if err != nil {
		return badRequest(ctx, "Invalid restock data: "+err.Error())
	}

	if err := s.processRestockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// GetOrderStatus handles GET /api/v1/orders/:id.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewOrderStatusQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.orderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, orderViewToResponse(view))
}

// GetOrderShipments handles GET /api/v1/orders/:id/shipments.
func (s *Server) GetOrderShipments(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewOrderShipmentsQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	shipments, err := s.orderShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve shipments")
	}

	response := make([]ShipmentResponse, 0, len(shipments))
	for _, view := range shipments {
		response = append(response, ShipmentResponse{
			ShipmentID:     view.ShipmentID,
			OrderID:        view.OrderID,
			Lines:          itemViewsToPayload(view.Lines),
			TotalMassGrams: view.TotalMassGrams,
			ShippedAt:      view.ShippedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAllOrders handles GET /api/v1/orders.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	orders, err := s.allOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderViewsToResponse(orders))
}

// GetPendingQueue handles GET /api/v1/orders/pending.
func (s *Server) GetPendingQueue(ctx echo.Context) error {
	queue, err := s.pendingQueueHandler.Handle(ctx.Request().Context(), queries.NewPendingQueueQuery())
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve pending queue")
	}

	return ctx.JSON(http.StatusOK, orderViewsToResponse(queue))
}

// GetAllStock handles GET /api/v1/stock.
func (s *Server) GetAllStock(ctx echo.Context) error {
	stock, err := s.allStockHandler.Handle(ctx.Request().Context(), queries.NewGetAllStockQuery())
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve stock")
	}

	response := make([]StockResponse, 0, len(stock))
	for _, p := range stock {
		response = append(response, stockToResponse(p))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetProductStock handles GET /api/v1/stock/:id.
func (s *Server) GetProductStock(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	query, err := queries.NewProductStockQuery(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.productStockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve product")
	}

	return ctx.JSON(http.StatusOK, stockToResponse(view))
}

// GetSystemStatus handles GET /api/v1/status.
func (s *Server) GetSystemStatus(ctx echo.Context) error {
	view, err := s.systemStatusHandler.Handle(ctx.Request().Context(), queries.NewSystemStatusQuery())
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve system status")
	}

	return ctx.JSON(http.StatusOK, SystemStatusResponse{
		Initialized:           view.Initialized,
		ProductCount:          view.ProductCount,
		TotalUnitsInStock:     view.TotalUnitsInStock,
		OrderCount:            view.OrderCount,
		PendingOrders:         view.PendingOrders,
		PartiallyFulfilled:    view.PartiallyFulfilled,
		FulfilledOrders:       view.FulfilledOrders,
		ShipmentCount:         view.ShipmentCount,
		TotalShippedMassGrams: view.TotalShippedMassGrams,
		PackingStrategy:       s.packingStrategy,
		MassCeilingGrams:      s.massCeilingGrams,
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func orderViewsToResponse(views []queries.OrderStatusQueryResponse) []OrderResponse {
	response := make([]OrderResponse, 0, len(views))
	for _, view := range views {
		response = append(response, orderViewToResponse(view))
	}
	return response
}

func stockToResponse(view queries.ProductStockQueryResponse) StockResponse {
	return StockResponse{
		ProductID:       view.ProductID,
		Name:            view.Name,
		UnitMassGrams:   view.UnitMassGrams,
		QuantityInStock: view.QuantityInStock,
	}
}

func pathID(ctx echo.Context) (int, error) {
	var id int
	if err := echo.PathParamsBinder(ctx).Int("id", &id).BindError(); err != nil {
		return 0, err
	}
	return id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// commandError maps write-side failures onto HTTP statuses: conflicts for
// lifecycle violations, 404 for unknown ids, 400 for validation, 500
// otherwise.
func commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrAlreadyInitialized),
		errors.Is(err, catalog.ErrNotInitialized),
		errors.Is(err, order.ErrOrderHasShipments),
		errors.Is(err, order.ErrOrderAlreadyFulfilled):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, product.ErrInsufficientStock):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

func queryError(ctx echo.Context, err error, fallback string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: fallback,
	})
}
