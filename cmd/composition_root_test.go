package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/jobs"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		KafkaOrderChangedTopic:       "orders.changed",
		IdempotencyTTL:               time.Hour,
		ServiceTimeReconcileSchedule: jobs.DefaultReconciliationSchedule,
		Timezone:                     time.UTC,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompositionRoot_WiresEveryHTTPHandler(t *testing.T) {
	root, err := NewCompositionRoot(testConfig(), nil, discardLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, root.Close()) })

	handlers := root.HTTPHandlers()

	assert.NotNil(t, handlers.CreateOrder)
	assert.NotNil(t, handlers.UpdateOrder)
	assert.NotNil(t, handlers.DestroyOrder)
	assert.NotNil(t, handlers.ConfirmOrder)
	assert.NotNil(t, handlers.SendOrder)
	assert.NotNil(t, handlers.DeliverOrder)
	assert.NotNil(t, handlers.RecalculateServiceTime)
	assert.NotNil(t, handlers.GetOrder)
	assert.NotNil(t, handlers.GetCustomerOrders)
	assert.NotNil(t, handlers.GetRestaurantOrders)
	assert.NotNil(t, handlers.GetAnalytics)
	assert.NotNil(t, root.ServerMetrics())
	assert.NotNil(t, root.CreateJobManager())
}

func TestCompositionRoot_OptionalAdapters(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		root, err := NewCompositionRoot(testConfig(), nil, discardLogger(), prometheus.NewRegistry())
		require.NoError(t, err)

		assert.Nil(t, root.kafkaPublisher)
		assert.Nil(t, root.redisClient)
		assert.Nil(t, root.idempotency)
		assert.NoError(t, root.Close())
	})

	t.Run("enabled", func(t *testing.T) {
		redisServer := miniredis.RunT(t)
		cfg := testConfig()
		cfg.KafkaHost = "localhost:9092"
		cfg.RedisAddr = redisServer.Addr()

		root, err := NewCompositionRoot(cfg, nil, discardLogger(), prometheus.NewRegistry())
		require.NoError(t, err)

		require.NotNil(t, root.kafkaPublisher)
		require.NotNil(t, root.idempotency)

		ctx := context.Background()
		id := kernel.NewUUID()
		stored, err := root.idempotency.Remember(ctx, "key-1", id)
		require.NoError(t, err)
		assert.True(t, stored)
		assert.True(t, redisServer.Exists("foodorders:idempotency:key-1"))

		assert.NoError(t, root.Close())
	})

	t.Run("blank kafka host list", func(t *testing.T) {
		cfg := testConfig()
		cfg.KafkaHost = " , "

		_, err := NewCompositionRoot(cfg, nil, discardLogger(), prometheus.NewRegistry())

		assert.Error(t, err)
	})
}

func TestFuncUoWFactories(t *testing.T) {
	root, err := NewCompositionRoot(testConfig(), nil, discardLogger(), prometheus.NewRegistry())
	require.NoError(t, err)

	var uow commands.UoWFactory = root.uow()
	var orderUoW commands.OrderUoWFactory = root.orderUoW()

	first := uow.Create()
	second := uow.Create()
	assert.NotSame(t, first, second)
	assert.NotNil(t, first.CatalogRepository())
	assert.NotNil(t, orderUoW.Create().OrderRepository())
}
