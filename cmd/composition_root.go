package cmd

import (
	"log/slog"

	httpin "foodify/internal/adapters/in/http"
	"foodify/internal/adapters/out/broadcast"
	"foodify/internal/adapters/out/postgres"
	"foodify/internal/adapters/out/redisbus"
	"foodify/internal/core/application/usecases/commands"
	"foodify/internal/core/application/usecases/queries"
	"foodify/internal/core/ports"
	"foodify/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and jobs together.
// Every Create* method builds a fresh instance; singletons live in the struct.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	redis      *redis.Client
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *broadcast.Hub
	logger     *slog.Logger

	orderProgressJob *jobs.OrderProgressJob
}

// NewCompositionRoot builds the root. rdb may be nil, in which case status
// events stay inside this process.
func NewCompositionRoot(config Config, gormDB *gorm.DB, rdb *redis.Client, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		redis:      rdb,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        broadcast.NewHub(),
		logger:     logger,
	}

	c.orderProgressJob = jobs.NewOrderProgressJob(
		c.CreateAdvanceOrderCommandHandler(),
		c.StatusPublisher(),
		config.OrderProgressInterval,
		logger,
	)

	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateForceOrderStatusCommandHandler() commands.ForceOrderStatusCommandHandler {
	return commands.NewForceOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

// Hub is the in-process fan-out that event streams subscribe to.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

// StatusPublisher is where the progress job sends events: Redis when
// configured, so every instance's hub sees them through its relay, otherwise
// the local hub.
func (c *CompositionRoot) StatusPublisher() ports.StatusPublisher {
	if c.redis != nil {
		return redisbus.NewPublisher(c.redis)
	}
	return c.hub
}

// CreateRedisRelay returns the relay feeding Redis events into the hub, or nil without Redis.
func (c *CompositionRoot) CreateRedisRelay() *redisbus.Relay {
	if c.redis == nil {
		return nil
	}
	return redisbus.NewRelay(c.redis, c.hub, c.logger)
}

func (c *CompositionRoot) OrderProgressJob() *jobs.OrderProgressJob {
	return c.orderProgressJob
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderProgressJob)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder: c.CreateCreateOrderCommandHandler(),
		CancelOrder: c.CreateCancelOrderCommandHandler(),
		SetStatus:   c.CreateForceOrderStatusCommandHandler(),
		DeleteOrder: c.CreateDeleteOrderCommandHandler(),
		GetOrder:    c.CreateGetOrderQueryHandler(),
		ListOrders:  c.CreateListOrdersQueryHandler(),
		Scheduler:   c.orderProgressJob,
		Events:      c.hub,
	}, c.config.EventBuffer)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
