// Package inference holds the boundary to the correction model.
//
// A Predictor takes one padded window of codes and returns the same number
// of predicted codes. Backends (identity, http, command) are built once by
// New and injected into the repair pipeline; Cached and Instrumented wrap
// any backend.
package inference
