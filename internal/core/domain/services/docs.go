// Package services holds domain logic that spans the order aggregate and
// the restaurant catalog.
//
// The package includes:
//   - PricingCalculator: prices line items and applies the shipping-cost policy
//   - ServiceTimeCalculator: averages delivery durations for a restaurant
package services
