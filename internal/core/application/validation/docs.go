// Package validation is the order validator: a list of independent rules run
// before any persistence happens. Every rule is evaluated and every failure is
// reported, so a caller sees all violations of a request at once.
//
// Rules are plain values. Operation-specific pipelines (ForCreate, ForUpdate,
// ForDestroy, ForConfirm, ForSend, ForDeliver) assemble the rules that apply
// to each operation from an already loaded Snapshot of the catalog.
package validation
