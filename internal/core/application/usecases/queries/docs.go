// Package queries implements the read side of order management. Handlers
// query the database directly through GORM and return read models; they
// never load aggregates.
//
// Available queries:
//   - GetOrderQuery: one order with its lines
//   - GetCustomerOrdersQuery: a customer's orders, newest first
//   - GetRestaurantOrdersQuery: a restaurant's orders filtered by status and creation date
//   - GetAnalyticsQuery: yesterday's order count, pending orders, today's deliveries and invoicing
package queries
