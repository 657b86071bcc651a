package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/ports"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EventName is the server-sent event type of status updates.
const EventName = "order-status-update"

// StreamEvents handles GET /api/orders/events - a server-sent event stream of
// status updates, optionally limited to one order. Only events published while
// the client is connected are delivered.
func (s *Server) StreamEvents(ctx echo.Context, params StreamEventsParams) error {
	var filter *kernel.UUID
	if params.OrderID != nil {
		orderID, err := kernel.UUIDFromString(*params.OrderID)
		if err != nil {
			return err
		}
		filter = &orderID
	}

	sub := s.handlers.Events.Subscribe(s.eventBuffer)
	defer func() {
		if dropped := sub.Dropped(); dropped > 0 {
			zap.L().Warn("event stream fell behind", zap.Uint64("dropped", dropped))
		}
		sub.Close()
	}()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if filter != nil && !event.OrderID.IsEqual(*filter) {
				continue
			}
			if err := writeEvent(res, event); err != nil {
				return nil //nolint:nilerr // client went away
			}
		}
	}
}

func writeEvent(res *echo.Response, event ports.OrderStatusEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", EventName, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
