// Package eval scores the repair pipeline against a labelled CSV dataset of
// damaged/clean sequence pairs and aggregates accuracy per damage type.
package eval
