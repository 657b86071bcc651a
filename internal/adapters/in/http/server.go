package http

import (
	"context"
	"net/http"

	"foodify/internal/adapters/out/broadcast"
	"foodify/internal/core/application/usecases/commands"
	"foodify/internal/core/application/usecases/queries"
	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type OrderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
}

type OrderStatusSetter interface {
	Handle(ctx context.Context, cmd commands.ForceOrderStatusCommand) (*order.Order, error)
}

type OrderDeleter interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (bool, error)
}

type OrderGetter interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type OrderLister interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

// ProgressScheduler starts the automatic walk of a freshly created order.
type ProgressScheduler interface {
	Schedule(orderID kernel.UUID)
}

// EventSource hands out live subscriptions to status events.
type EventSource interface {
	Subscribe(buffer int) *broadcast.Subscription
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	// Command handlers
	CreateOrder OrderCreator
	CancelOrder OrderCanceller
	SetStatus   OrderStatusSetter
	DeleteOrder OrderDeleter

	// Query handlers
	GetOrder   OrderGetter
	ListOrders OrderLister

	Scheduler ProgressScheduler
	Events    EventSource
}

// Server implements ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers    Handlers
	eventBuffer int
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server. eventBuffer sizes each event stream's queue.
func NewServer(handlers Handlers, eventBuffer int) *Server {
	if eventBuffer < 1 {
		eventBuffer = 1
	}
	return &Server{handlers: handlers, eventBuffer: eventBuffer}
}

// CreateOrder handles POST /api/orders - places an order and starts its delivery walk.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	lines := make([]commands.OrderLine, len(body.Items))
	for i, item := range body.Items {
		lines[i] = commands.OrderLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity}
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.CustomerName, body.Address, body.Phone, lines)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.handlers.Scheduler.Schedule(created.ID())

	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrder handles GET /api/orders/{id} - returns the current status.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, StatusResponse{Status: view.Status})
}

// ListOrders handles GET /api/orders/history/all - returns every order, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	views, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return err
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetStatus handles PATCH /api/orders/{id}/status - the administrative override.
func (s *Server) SetStatus(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	var body StatusBody
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody)
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidStatus)
	}

	cmd, err := commands.NewForceOrderStatusCommand(orderID, status)
	if err != nil {
		return err
	}

	updated, err := s.handlers.SetStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, StatusResponse{Status: updated.Status()})
}

// CancelOrder handles PATCH /api/orders/{id}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return err
	}

	cancelled, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, StatusResponse{Status: cancelled.Status()})
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}

	removed, err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if !removed {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItem{MenuItemID: item.MenuItemID().String(), Quantity: item.Quantity()}
	}

	customer := o.Customer()
	return Order{
		ID:           o.ID().String(),
		Items:        items,
		CustomerName: customer.Name(),
		Address:      customer.Address(),
		Phone:        customer.Phone(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func orderFromView(view queries.OrderView) Order {
	items := make([]OrderItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = OrderItem{MenuItemID: item.MenuItemID.String(), Quantity: item.Quantity}
	}

	return Order{
		ID:           view.ID.String(),
		Items:        items,
		CustomerName: view.CustomerName,
		Address:      view.Address,
		Phone:        view.Phone,
		Status:       view.Status,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
}
