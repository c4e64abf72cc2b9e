// Package pipeline repairs one sequence end to end: encode, plan windows,
// predict every window through an injected inference.Predictor (in
// parallel), then merge the trimmed predictions in window order and decode.
//
// Predictions may complete in any order; they are stored by window ordinal
// so the merge always sees ascending starts.
package pipeline
