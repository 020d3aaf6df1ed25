// Package kernel holds the value objects shared by every aggregate of the
// order management domain. Today that is UUID, the identifier type used for
// orders, order lines, users, restaurants and products.
package kernel
