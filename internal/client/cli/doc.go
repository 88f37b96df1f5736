// Package cli provides the interactive storefront command-line client.
//
// It drives the application services from a simple REPL: authentication,
// browsing the vehicle catalog, selecting add-on services, buying a vehicle
// through the purchase sequencer, sharing the receipt and reviewing the
// purchase history.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or ctx is cancelled. Every failed command prints one user-facing message
// (see userMessage) and leaves the prior screen state intact.
package cli
