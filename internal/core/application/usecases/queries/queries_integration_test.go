package queries_test

import (
	"context"
	"testing"
	"time"

	"foodify/internal/adapters/out/postgres"
	"foodify/internal/adapters/out/postgres/orderrepo"
	"foodify/internal/adapters/out/postgres/pgtest"
	"foodify/internal/core/application/usecases/queries"
	"foodify/internal/core/domain/model/kernel"
	"foodify/internal/core/domain/model/order"
	"foodify/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OrderQueriesTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.orderRepo = orderrepo.NewGormOrderRepository(database.DB)
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *OrderQueriesTestSuite) addOrder(name string, quantities ...int) *order.Order {
	customer, err := order.NewCustomer(name, "123 Test St", "1234567890")
	suite.Require().NoError(err)

	items := make([]order.Item, 0, len(quantities))
	for _, q := range quantities {
		item, itemErr := order.NewItem(kernel.NewUUID(), q)
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), customer, items)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *OrderQueriesTestSuite) TestGetOrder_ReturnsView() {
	o := suite.addOrder("John Doe", 2, 1)
	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.ID)
	suite.Equal("John Doe", view.CustomerName)
	suite.Equal(order.OrderReceived, view.Status)
	suite.Require().Len(view.Items, 2)
	suite.Equal(o.Items()[0].MenuItemID(), view.Items[0].MenuItemID)
	suite.Equal(2, view.Items[0].Quantity)
	suite.Equal(1, view.Items[1].Quantity)
	suite.False(view.CreatedAt.IsZero())
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotConstructed() {
	_, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), queries.GetOrderQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *OrderQueriesTestSuite) TestListOrders_EmptyStore() {
	views, err := queries.NewListOrdersQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.NewListOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(views)
	suite.Empty(views)
}

func (suite *OrderQueriesTestSuite) TestListOrders_NewestFirstWithItems() {
	first := suite.addOrder("First", 1)
	time.Sleep(10 * time.Millisecond)
	second := suite.addOrder("Second", 2, 3)
	time.Sleep(10 * time.Millisecond)
	third := suite.addOrder("Third", 4)

	views, err := queries.NewListOrdersQueryHandler(suite.database.DB).
		Handle(context.Background(), queries.NewListOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(views, 3)
	suite.Equal(third.ID(), views[0].ID)
	suite.Equal(second.ID(), views[1].ID)
	suite.Equal(first.ID(), views[2].ID)

	suite.Require().Len(views[1].Items, 2)
	suite.Equal(2, views[1].Items[0].Quantity)
	suite.Equal(3, views[1].Items[1].Quantity)
	suite.Require().Len(views[0].Items, 1)
	suite.Equal(4, views[0].Items[0].Quantity)
}

// deleteAfterOrdersRead opens a separate connection whose first read of the
// orders table is followed by a committed delete of victim, before the items are read.
func (suite *OrderQueriesTestSuite) deleteAfterOrdersRead(victim kernel.UUID) *gorm.DB {
	db, err := postgres.Open(suite.database.DSN)
	suite.Require().NoError(err)

	fired := false
	err = db.Callback().Query().After("gorm:query").Register("test:delete_between_reads", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "orders" {
			return
		}
		fired = true
		suite.Require().NoError(suite.database.DB.Exec("DELETE FROM orders WHERE id = ?", victim.Bytes()).Error)
	})
	suite.Require().NoError(err)

	suite.T().Cleanup(func() {
		suite.True(fired)
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func (suite *OrderQueriesTestSuite) TestListOrders_ConcurrentDeleteKeepsItems() {
	kept := suite.addOrder("Kept", 1)
	time.Sleep(10 * time.Millisecond)
	deleted := suite.addOrder("Deleted", 2, 3)
	db := suite.deleteAfterOrdersRead(deleted.ID())

	views, err := queries.NewListOrdersQueryHandler(db).Handle(context.Background(), queries.NewListOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(deleted.ID(), views[0].ID)
	suite.Len(views[0].Items, 2)
	suite.Equal(kept.ID(), views[1].ID)
	suite.Len(views[1].Items, 1)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_ConcurrentDeleteKeepsItems() {
	o := suite.addOrder("John Doe", 2, 1)
	db := suite.deleteAfterOrdersRead(o.ID())
	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(view.Items, 2)
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
