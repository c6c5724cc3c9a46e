// Package gravity implements the pairwise inverse-square force law and the
// mechanical-energy diagnostics for the body-set model. All functions take
// an explicit [Params] so tests can run with alternate constants.
package gravity
