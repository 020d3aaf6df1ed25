package queries

import (
	"context"
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery lists the orders placed by one customer, newest first.
type GetCustomerOrdersQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetCustomerOrdersQuery(userID kernel.UUID) (GetCustomerOrdersQuery, error) {
	if userID.IsZero() {
		return GetCustomerOrdersQuery{}, errs.NewValueIsRequiredError("userId")
	}
	return GetCustomerOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerOrdersQuery) UserID() kernel.UUID { return q.userID }

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle returns the customer's orders sorted by createdAt descending. A
// customer without orders gets an empty slice.
func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := ordersSelect(ctx, h.db).
		Where("o.user_id = ?", query.userID.Bytes()).
		Order("o.created_at DESC, o.id")
	return fetchOrders(ctx, h.db, stmt)
}
