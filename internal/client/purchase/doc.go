// Package purchase holds the client side of buying a vehicle: the set of
// selected add-on services, price totalling, the purchase sequencer and the
// receipt it produces.
//
// The sequencer drives a purchase through
//
//	Idle -> Confirming -> Reserving -> Recording -> Completed | Failed
//
// Reserving marks the vehicle as reserved on the backend; Recording submits
// the sale. The two calls are strictly ordered and never run concurrently. A
// failed reservation means no sale is submitted. A failed sale leaves the
// vehicle reserved unless compensation is enabled, in which case the
// vehicle's original status is restored on a best-effort basis.
package purchase
