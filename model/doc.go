// Package model provides the data structures shared by the reconstruction
// pipeline.
//
// This package defines the types that flow between the pipeline stages: the
// positioned [Token] values supplied by a token source, the calibrated
// [Column] layout derived per page, and the assembled [Table] and [TableSet]
// results handed to consumers. All stages ultimately produce these types,
// making them the primary API for consuming reconstructed tables.
//
// # Coordinate system
//
// All coordinates are top-left origin: X grows rightward, Y grows downward,
// matching the coordinate space most token sources (text layers, OCR word
// boxes) report natively. A [BBox] is stored as its four edges (X0, Y0) to
// (X1, Y1).
//
// # Tables
//
// A [Table] holds its calibrated columns and classified rows. Two views of
// the cell content are available: RawData (condensed strings) and the Rows
// themselves (cells with positions and column assignment). The two views
// always agree on row count, column count, and text content.
package model
