// Package postprocess provides detection post-processing primitives for
// scored axis-aligned bounding boxes, most notably greedy Non-Maximum
// Suppression (NMS).
//
// All functions are pure and allocate their working state per call, so they
// are safe for concurrent use on independent inputs.
package postprocess
