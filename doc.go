// Package gg holds the shared data model of the matrix-gg charting
// pipeline: layer specifications, the per-element render rows produced
// by the statistical transforms, and the enumerations naming geoms,
// stats and position adjustments.
//
// The pipeline is taken from the grammar of graphics. Each layer of a
// chart names a geometry, a statistical transform, a position
// adjustment and a mapping from table columns to aesthetics. Rendering
// a layer runs four stages:
//   - stat:     table rows -> render rows (LayerData)
//   - position: adjust overlapping rows (stack, fill, dodge, jitter)
//   - scale:    data values -> panel coordinates and colors
//   - geom:     render rows -> drawing primitives on a Surface
//
// The stages live in the stat, position, scale and geom subpackages;
// chart ties them together and draws panels, axes and legends.
//
// Aesthetic fields of a LayerData are float64 with NaN meaning "not
// set", so a row only carries the aesthetics its stat produced. Use
// Has to test for presence.
//
// Discrete values (factor levels) and continuous values travel through
// the pipeline as Value, a small tagged union. Scales decide how to
// place each kind on screen.
package gg
