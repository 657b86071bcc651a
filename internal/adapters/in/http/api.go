package http

import (
	"net/http"
	"time"

	"foodify/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// OrderItem is one line of an order on the wire.
type OrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// NewOrder is the body of POST /api/orders.
type NewOrder struct {
	Items        []OrderItem `json:"items"`
	CustomerName string      `json:"customerName"`
	Address      string      `json:"address"`
	Phone        string      `json:"phone"`
}

// Order is the full representation of a stored order.
type Order struct {
	ID           string       `json:"id"`
	Items        []OrderItem  `json:"items"`
	CustomerName string       `json:"customerName"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	Status       order.Status `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// StatusResponse is returned by the single-order endpoints.
type StatusResponse struct {
	Status order.Status `json:"status"`
}

// StatusBody is the body of PATCH /api/orders/{id}/status. The status is kept
// as a string so unknown names reach the handler instead of failing the bind.
type StatusBody struct {
	Status string `json:"status"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// StreamEventsParams holds the query parameters of GET /api/orders/events.
type StreamEventsParams struct {
	OrderID *string `json:"orderId,omitempty"`
}

// ServerInterface lists the order endpoints.
type ServerInterface interface {
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders/history/all)
	ListOrders(ctx echo.Context) error
	// (GET /api/orders/events)
	StreamEvents(ctx echo.Context, params StreamEventsParams) error
	// (GET /api/orders/{id})
	GetOrder(ctx echo.Context, id string) error
	// (DELETE /api/orders/{id})
	DeleteOrder(ctx echo.Context, id string) error
	// (PATCH /api/orders/{id}/status)
	SetStatus(ctx echo.Context, id string) error
	// (PATCH /api/orders/{id}/cancel)
	CancelOrder(ctx echo.Context, id string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	return w.Handler.ListOrders(ctx)
}

func (w *ServerInterfaceWrapper) StreamEvents(ctx echo.Context) error {
	var params StreamEventsParams

	err := runtime.BindQueryParameter("form", true, false, "orderId", ctx.QueryParams(), &params.OrderID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter orderId")
	}

	return w.Handler.StreamEvents(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) SetStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SetStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, id)
}

func bindID(ctx echo.Context) (string, error) {
	var id string

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every order route on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL mounts every order route under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/orders/history/all", wrapper.ListOrders)
	router.GET(baseURL+"/api/orders/events", wrapper.StreamEvents)
	router.GET(baseURL+"/api/orders/:id", wrapper.GetOrder)
	router.DELETE(baseURL+"/api/orders/:id", wrapper.DeleteOrder)
	router.PATCH(baseURL+"/api/orders/:id/status", wrapper.SetStatus)
	router.PATCH(baseURL+"/api/orders/:id/cancel", wrapper.CancelOrder)
}
