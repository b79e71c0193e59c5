// Package layout groups positioned tokens into the transient structures the
// table pipeline consumes: lines (tokens sharing a vertical band), spans
// (proximity-merged token groups that are candidates for one cell), and
// repeating page banners detected across pages.
//
// Lines and spans exist only between grouping and column assignment; they
// are not retained after table assembly.
package layout
