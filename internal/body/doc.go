// Package body defines the body-set data model shared by the engine packages.
//
// A [Bodies] value holds masses, positions and momenta as parallel slices.
// The set is ordered but body identity is index-based only: a merge removes
// two bodies and appends their combination, and the surviving indices are
// reassigned. Invariants maintained across the engine:
//
//   - every mass is strictly positive
//   - the body count never increases over a run
//   - total momentum is preserved by forces and by merges
//
// Engine packages treat Bodies as value-in/value-out: steps and merges return
// fresh sets and never alias the input slices.
package body
