// Package detection turns color masks and images into the geometry of a
// cornhole frame: beanbag rectangles, the board rectangle and the hole circle,
// and classifies each beanbag against them.
//
// # Pipeline Pieces
//
//   - Contours: external boundaries of mask regions (ContourFinder, with the
//     pure-Go BorderTracer as default)
//   - Beanbags: bounding rectangles filtered by area, with oversized ones split
//     in two (LocateBeanbags, SplitBeanbag)
//   - Board: union of board-colored regions whose centroid lies inside the
//     trusted margins (LocateBoard)
//   - Cornhole: minimum enclosing circle of hole-colored regions, then a Hough
//     transform fallback (CornholeLocator)
//   - Classification: in, on, off or unknown for one beanbag (Classify)
//
// # Coordinate System
//
// All coordinates are 0-based pixels relative to the image's top-left corner:
//   - X increases rightward
//   - Y increases downward
//   - Rect is (X, Y, Width, Height) with (X, Y) the top-left corner
//
// # Detection Misses
//
// A missing board is reported with ok == false, a missing hole with a
// zero-radius Circle. Neither is an error. Every function is pure and safe to
// call concurrently.
package detection
