// Package catalog models the restaurant catalog as seen by order management.
// Restaurants and products are owned by another part of the platform; orders
// only read their prices, availability and shipping defaults. The single
// mutable datum is Restaurant.AverageServiceMinutes, maintained by delivery.
package catalog
