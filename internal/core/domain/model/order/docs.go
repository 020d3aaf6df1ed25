// Package order implements the Order aggregate of the food delivery platform.
//
// The package includes:
//   - Order: the aggregate root owning the delivery address, the line items,
//     the computed price and the lifecycle timestamps
//   - Line: a product, a quantity and the unit price captured when the line
//     was written
//   - Status: the lifecycle state, derived from the timestamps
//   - Event: facts recorded by the aggregate for publication after commit
//
// Key business rules:
//   - An order has at least one line and every quantity is positive
//   - Price always equals the sum of line subtotals plus shipping costs
//   - The lifecycle is Pending -> InProcess -> Sent -> Delivered, one way only
//   - Address and lines may change only while the order is Pending
//   - Only Pending orders may be destroyed
package order
