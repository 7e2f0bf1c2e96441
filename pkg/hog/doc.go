// Package hog computes Histogram-of-Oriented-Gradients descriptors over an
// integral histogram.
//
// The descriptor estimates per-pixel oriented-gradient votes, accumulates
// them into a dense (H+1, W+1, bins) prefix-sum volume, and synthesizes
// normalized block descriptors for any rectangular window by summing
// cell-sized rectangles straight out of that volume. Because votes live on
// the pixel grid, windows can be placed at arbitrary pixel offsets without
// recomputing anything.
//
//	desc, err := hog.New(hog.WithNumBins(9), hog.WithBlockNorm(hog.L2Hys))
//	if err != nil { ... }
//	if err := desc.Compute(image); err != nil { ... }
//	window, err := desc.Query(hog.Bounds{Y: 32, X: 16, Height: 128, Width: 64})
//
// Descriptors are not safe for concurrent use; independent descriptors do
// not share state.
package hog
