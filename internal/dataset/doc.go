// Package dataset adapts raw numeric vectors into the column matrices consumed
// by network training: a generic ordered List, the Datapoint pair and the
// Dataset collection, plus a CSV loader.
package dataset
