package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpadapter "foodorders/internal/adapters/in/http"
	"foodorders/internal/adapters/out/eventbus"
	"foodorders/internal/adapters/out/kafka"
	"foodorders/internal/adapters/out/postgres"
	redisadapter "foodorders/internal/adapters/out/redis"
	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/ports"
	"foodorders/internal/jobs"
	"foodorders/internal/pkg/clock"
	"foodorders/internal/pkg/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot owns the long lived collaborators and builds every
// handler from them.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	clock       ports.Clock
	uowFactory  *postgres.GormUnitOfWorkFactory
	idempotency ports.IdempotencyStore

	kafkaPublisher *kafka.OrderEventPublisher
	redisClient    *redis.Client
	serverMetrics  *metrics.ServerMetrics
}

// NewCompositionRoot wires the adapters selected by cfg. Kafka publishing
// and idempotency keys are skipped when KAFKA_HOST or REDIS_ADDR are empty.
// Collectors are registered on reg; nil means the default registry.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	logger *slog.Logger,
	reg prometheus.Registerer,
) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &CompositionRoot{
		config:        cfg,
		gormDB:        gormDB,
		logger:        logger,
		clock:         clock.System(cfg.Timezone),
		serverMetrics: metrics.NewServerMetrics(reg, "api"),
	}

	publishers := []ports.OrderEventPublisher{metrics.NewOrderEvents(reg)}
	if cfg.KafkaHost != "" {
		publisher, err := kafka.NewOrderEventPublisher(cfg.KafkaHost, cfg.KafkaOrderChangedTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka publisher: %w", err)
		}
		c.kafkaPublisher = publisher
		publishers = append(publishers, publisher)
	}

	if cfg.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.idempotency = redisadapter.NewIdempotencyStore(c.redisClient, redisadapter.IdempotencyStoreConfig{
			TTL: cfg.IdempotencyTTL,
		})
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, eventbus.NewFanout(publishers...), logger)
	return c, nil
}

// Close releases the kafka writer and the redis client.
func (c *CompositionRoot) Close() error {
	var err error
	if c.kafkaPublisher != nil {
		err = errors.Join(err, c.kafkaPublisher.Close())
	}
	if c.redisClient != nil {
		err = errors.Join(err, c.redisClient.Close())
	}
	return err
}

func (c *CompositionRoot) ServerMetrics() *metrics.ServerMetrics {
	return c.serverMetrics
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.clock, c.idempotency)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateDestroyOrderCommandHandler() commands.DestroyOrderCommandHandler {
	return commands.NewDestroyOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateSendOrderCommandHandler() commands.SendOrderCommandHandler {
	return commands.NewSendOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateRecalculateServiceTimeCommandHandler() commands.RecalculateServiceTimeCommandHandler {
	return commands.NewRecalculateServiceTimeCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateReconcileServiceTimesCommandHandler() commands.ReconcileServiceTimesCommandHandler {
	return commands.NewReconcileServiceTimesCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantOrdersQueryHandler() queries.GetRestaurantOrdersQueryHandler {
	return queries.NewGetRestaurantOrdersQueryHandler(c.gormDB, c.config.Timezone)
}

func (c *CompositionRoot) CreateGetAnalyticsQueryHandler() queries.GetAnalyticsQueryHandler {
	return queries.NewGetAnalyticsQueryHandler(c.gormDB, c.clock, c.config.Timezone)
}

// HTTPHandlers collects the use cases served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateOrder := c.CreateUpdateOrderCommandHandler()
	destroyOrder := c.CreateDestroyOrderCommandHandler()
	confirmOrder := c.CreateConfirmOrderCommandHandler()
	sendOrder := c.CreateSendOrderCommandHandler()
	deliverOrder := c.CreateDeliverOrderCommandHandler()
	recalculate := c.CreateRecalculateServiceTimeCommandHandler()

	return httpadapter.Handlers{
		CreateOrder:            &createOrder,
		UpdateOrder:            &updateOrder,
		DestroyOrder:           &destroyOrder,
		ConfirmOrder:           &confirmOrder,
		SendOrder:              &sendOrder,
		DeliverOrder:           &deliverOrder,
		RecalculateServiceTime: &recalculate,

		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetCustomerOrders:   c.CreateGetCustomerOrdersQueryHandler(),
		GetRestaurantOrders: c.CreateGetRestaurantOrdersQueryHandler(),
		GetAnalytics:        c.CreateGetAnalyticsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reconciler := c.CreateReconcileServiceTimesCommandHandler()
	return jobs.NewJobManager(&reconciler, c.config.ServiceTimeReconcileSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
