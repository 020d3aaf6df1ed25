package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"foodorders/internal/adapters/out/eventbus"
	"foodorders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, events ...order.Event) error {
	return m.Called(ctx, events).Error(0)
}

func TestFanout_DeliversToEveryPublisher(t *testing.T) {
	first, second := new(mockPublisher), new(mockPublisher)
	events := []order.Event{{Type: order.EventCreated}}
	first.On("Publish", mock.Anything, events).Return(nil).Once()
	second.On("Publish", mock.Anything, events).Return(nil).Once()

	err := eventbus.NewFanout(first, nil, second).Publish(context.Background(), events...)

	assert.NoError(t, err)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestFanout_KeepsGoingAfterFailure(t *testing.T) {
	failing, healthy := new(mockPublisher), new(mockPublisher)
	broken := errors.New("broker down")
	failing.On("Publish", mock.Anything, mock.Anything).Return(broken)
	healthy.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	err := eventbus.NewFanout(failing, healthy).Publish(context.Background(), order.Event{Type: order.EventSent})

	assert.ErrorIs(t, err, broken)
	healthy.AssertExpectations(t)
}
