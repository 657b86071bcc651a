package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "foodify/internal/adapters/in/http"
	"foodify/internal/adapters/out/broadcast"
	"foodify/internal/core/application/usecases/commands"
	"foodify/internal/core/application/usecases/queries"
	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if fn, ok := args.Get(0).(func(context.Context, commands.CreateOrderCommand) (*order.Order, error)); ok {
		return fn(ctx, cmd)
	}
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderCanceller struct{ mock.Mock }

func (m *MockOrderCanceller) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderStatusSetter struct{ mock.Mock }

func (m *MockOrderStatusSetter) Handle(ctx context.Context, cmd commands.ForceOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderDeleter struct{ mock.Mock }

func (m *MockOrderDeleter) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

type MockOrderGetter struct{ mock.Mock }

func (m *MockOrderGetter) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockOrderLister struct{ mock.Mock }

func (m *MockOrderLister) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.OrderView)
	return views, args.Error(1)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Schedule(orderID kernel.UUID) {
	m.Called(orderID)
}

type fixture struct {
	creator   *MockOrderCreator
	canceller *MockOrderCanceller
	setter    *MockOrderStatusSetter
	deleter   *MockOrderDeleter
	getter    *MockOrderGetter
	lister    *MockOrderLister
	scheduler *MockScheduler
	hub       *broadcast.Hub
	router    *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		creator:   &MockOrderCreator{},
		canceller: &MockOrderCanceller{},
		setter:    &MockOrderStatusSetter{},
		deleter:   &MockOrderDeleter{},
		getter:    &MockOrderGetter{},
		lister:    &MockOrderLister{},
		scheduler: &MockScheduler{},
		hub:       broadcast.NewHub(),
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder: f.creator,
		CancelOrder: f.canceller,
		SetStatus:   f.setter,
		DeleteOrder: f.deleter,
		GetOrder:    f.getter,
		ListOrders:  f.lister,
		Scheduler:   f.scheduler,
		Events:      f.hub,
	}, 4)

	doc, err := httpin.LoadOpenAPI(t.Context())
	require.NoError(t, err)

	f.router = httpin.NewRouter(server, doc, httpin.RouterConfig{QuietErrors: true})

	t.Cleanup(func() {
		f.creator.AssertExpectations(t)
		f.canceller.AssertExpectations(t)
		f.setter.AssertExpectations(t)
		f.deleter.AssertExpectations(t)
		f.getter.AssertExpectations(t)
		f.lister.AssertExpectations(t)
		f.scheduler.AssertExpectations(t)
	})

	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func storedOrder(t *testing.T, id kernel.UUID, status order.Status) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("John Doe", "123 Test St", "1234567890")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), 2)
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o, err := order.RestoreOrder(id, customer, []order.Item{item}, status, created, created)
	require.NoError(t, err)
	return o
}

const validOrderBody = `{
	"items": [{"menuItemId": "2b0f6a3e-5c1d-4a8e-9f57-0d3c1b2a4e6f", "quantity": 2}],
	"customerName": "John Doe",
	"address": "123 Test St",
	"phone": "1234567890"
}`

func TestServer_CreateOrder(t *testing.T) {
	t.Run("should store, schedule and return the order", func(t *testing.T) {
		f := newFixture(t)

		var created *order.Order
		f.creator.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateOrderCommand")).
			Return(func(_ context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
				o, err := order.NewOrder(cmd.OrderID(), cmd.Customer(), cmd.Items())
				created = o
				return o, err
			}, nil).Once()
		f.scheduler.On("Schedule", mock.AnythingOfType("kernel.UUID")).Once()

		rec := f.do(t, http.MethodPost, "/api/orders", validOrderBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, created.ID().String(), body["id"])
		assert.Equal(t, "ORDER_RECEIVED", body["status"])
		assert.Equal(t, "John Doe", body["customerName"])
		items := body["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "2b0f6a3e-5c1d-4a8e-9f57-0d3c1b2a4e6f", items[0].(map[string]any)["menuItemId"])
		assert.InDelta(t, 2, items[0].(map[string]any)["quantity"], 0)

		scheduled := f.scheduler.Calls[0].Arguments.Get(0).(kernel.UUID)
		assert.True(t, scheduled.IsEqual(created.ID()))
	})

	t.Run("should report field errors without touching the store", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/orders", `{"items": [], "customerName": "", "address": "x", "phone": "y"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[httpin.Error](t, rec)
		assert.Equal(t, "Validation error", body.Message)
		assert.Contains(t, body.Errors, "items")
		assert.Contains(t, body.Errors, "customerName")
		f.scheduler.AssertNotCalled(t, "Schedule", mock.Anything)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/orders", `{"items": "nope"`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decode[httpin.Error](t, rec).Message)
	})

	t.Run("should hide store failures", func(t *testing.T) {
		f := newFixture(t)
		f.creator.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		rec := f.do(t, http.MethodPost, "/api/orders", validOrderBody)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decode[httpin.Error](t, rec).Message)
	})
}

func TestServer_GetOrder(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should return current status", func(t *testing.T) {
		f := newFixture(t)
		f.getter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.OrderID().IsEqual(id)
		})).Return(queries.OrderView{ID: id, Status: order.Preparing}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/orders/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"PREPARING"}`, rec.Body.String())
	})

	t.Run("should reject malformed id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/orders/not-a-uuid", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid id", decode[httpin.Error](t, rec).Message)
	})

	t.Run("should report missing order", func(t *testing.T) {
		f := newFixture(t)
		f.getter.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderView{}, errs.NewObjectNotFoundError("id", id)).Once()

		rec := f.do(t, http.MethodGet, "/api/orders/"+id.String(), "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decode[httpin.Error](t, rec).Message)
	})
}

func TestServer_ListOrders(t *testing.T) {
	t.Run("should return full orders in store order", func(t *testing.T) {
		f := newFixture(t)
		newer, older := kernel.NewUUID(), kernel.NewUUID()
		f.lister.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderView{
			{ID: newer, Status: order.OrderReceived, CustomerName: "B",
				Items: []queries.OrderItemView{{MenuItemID: kernel.NewUUID(), Quantity: 1}}},
			{ID: older, Status: order.Delivered, CustomerName: "A"},
		}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/orders/history/all", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[[]httpin.Order](t, rec)
		require.Len(t, body, 2)
		assert.Equal(t, newer.String(), body[0].ID)
		assert.Len(t, body[0].Items, 1)
		assert.Equal(t, order.Delivered, body[1].Status)
	})

	t.Run("should return an empty array", func(t *testing.T) {
		f := newFixture(t)
		f.lister.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderView{}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/orders/history/all", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestServer_SetStatus(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should force any valid status", func(t *testing.T) {
		f := newFixture(t)
		f.setter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ForceOrderStatusCommand) bool {
			return cmd.OrderID().IsEqual(id) && cmd.Status() == order.OrderReceived
		})).Return(storedOrder(t, id, order.OrderReceived), nil).Once()

		rec := f.do(t, http.MethodPatch, "/api/orders/"+id.String()+"/status", `{"status":"ORDER_RECEIVED"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ORDER_RECEIVED"}`, rec.Body.String())
	})

	for _, body := range []string{`{"status":"SHIPPED"}`, `{"status":""}`, `{}`} {
		t.Run("should reject "+body, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPatch, "/api/orders/"+id.String()+"/status", body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid status", decode[httpin.Error](t, rec).Message)
		})
	}

	t.Run("should report missing order", func(t *testing.T) {
		f := newFixture(t)
		f.setter.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("id", id)).Once()

		rec := f.do(t, http.MethodPatch, "/api/orders/"+id.String()+"/status", `{"status":"DELIVERED"}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_CancelOrder(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should cancel", func(t *testing.T) {
		f := newFixture(t)
		f.canceller.On("Handle", mock.Anything, mock.Anything).Return(storedOrder(t, id, order.Cancelled), nil).Once()

		rec := f.do(t, http.MethodPatch, "/api/orders/"+id.String()+"/cancel", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"CANCELLED"}`, rec.Body.String())
	})

	t.Run("should conflict on delivered order", func(t *testing.T) {
		f := newFixture(t)
		f.canceller.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewConflictError("cannot cancel a delivered order")).Once()

		rec := f.do(t, http.MethodPatch, "/api/orders/"+id.String()+"/cancel", "")

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "cannot cancel a delivered order", decode[httpin.Error](t, rec).Message)
	})

	t.Run("should report missing order", func(t *testing.T) {
		f := newFixture(t)
		f.canceller.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("id", id)).Once()

		rec := f.do(t, http.MethodPatch, "/api/orders/"+id.String()+"/cancel", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_DeleteOrder(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("should delete", func(t *testing.T) {
		f := newFixture(t)
		f.deleter.On("Handle", mock.Anything, mock.Anything).Return(true, nil).Once()

		rec := f.do(t, http.MethodDelete, "/api/orders/"+id.String(), "")

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("should report missing order", func(t *testing.T) {
		f := newFixture(t)
		f.deleter.On("Handle", mock.Anything, mock.Anything).Return(false, nil).Once()

		rec := f.do(t, http.MethodDelete, "/api/orders/"+id.String(), "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decode[httpin.Error](t, rec).Message)
	})
}

func TestRouter_Infrastructure(t *testing.T) {
	f := newFixture(t)

	t.Run("health", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/openapi.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "3.0.3", body["openapi"])
		assert.Contains(t, body["paths"], "/api/orders/{id}/cancel")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/menu", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not Found", decode[httpin.Error](t, rec).Message)
	})
}

func TestRouter_CORS(t *testing.T) {
	const origin = "http://localhost:5173"

	preflight := func(router *echo.Echo, from string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set(echo.HeaderOrigin, from)
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("should allow any origin by default", func(t *testing.T) {
		f := newFixture(t)

		rec := preflight(f.router, origin)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPatch)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(echo.HeaderOrigin, origin)
		get := httptest.NewRecorder()
		f.router.ServeHTTP(get, req)

		require.Equal(t, http.StatusOK, get.Code)
		assert.Equal(t, "*", get.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("should honour configured origins", func(t *testing.T) {
		router := httpin.NewRouter(httpin.NewServer(httpin.Handlers{}, 1), nil, httpin.RouterConfig{
			QuietErrors:  true,
			AllowOrigins: []string{origin},
		})

		allowed := preflight(router, origin)
		assert.Equal(t, origin, allowed.Header().Get(echo.HeaderAccessControlAllowOrigin))

		denied := preflight(router, "http://evil.example")
		assert.Empty(t, denied.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}

func TestServer_CreateOrder_QuantityOutOfRange(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/orders", `{
		"items": [{"menuItemId": "2b0f6a3e-5c1d-4a8e-9f57-0d3c1b2a4e6f", "quantity": 1099511627776}],
		"customerName": "John Doe", "address": "123 Test St", "phone": "1234567890"
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[httpin.Error](t, rec)
	assert.Equal(t, "Validation error", body.Message)
	assert.Equal(t, "quantity must be at most 2147483647", body.Errors["items[0].quantity"])
}

func TestServer_DeleteOrder_NotFoundNamesTheOrder(t *testing.T) {
	deleter := &MockOrderDeleter{}
	deleter.On("Handle", mock.Anything, mock.Anything).Return(false, nil).Once()
	server := httpin.NewServer(httpin.Handlers{DeleteOrder: deleter}, 1)
	id := kernel.NewUUID()

	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/api/orders/"+id.String(), nil), httptest.NewRecorder())
	err := server.DeleteOrder(ctx, id.String())

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "order", notFound.ParamName)
	assert.Equal(t, id.String(), notFound.ID)
	deleter.AssertExpectations(t)
}
