// Package chart draws line charts of percentage series.
//
// Rendering is a pure function of a Model and a surface Size: Render returns
// the full list of drawing instructions for one frame, always starting with a
// clear of the whole surface. Nothing is diffed or cached between frames.
//
// A frame is laid out inside a fixed 40-unit inset. Values map linearly from
// 0 at the x axis to 100 at the top of the plot area and are not clamped.
// Instructions are emitted in a fixed order:
//
//	clear, axes, gridlines, per-dataset polyline and markers, x labels, legend
//
// Instructions can be replayed onto any Surface. Three are provided:
//
//   - Recorder keeps the instructions, for tests and snapshots
//   - Raster paints an image.RGBA that can be written as PNG
//   - Braille paints a terminal grid using 2x4 braille dots per cell
//
// Chart is the retained-mode wrapper used by the sync controller: it owns a
// Model that the caller mutates in place, and Update re-renders it.
package chart
