package postprocess

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/percept-vision/percept/internal/mempool"
)

// DefaultIoUThreshold is the conventional IoU cutoff used when a caller
// does not specify one.
const DefaultIoUThreshold float32 = 0.5

// NMS performs greedy Non-Maximum Suppression over scored boxes and returns
// the original indices of the boxes to keep, in acceptance order (descending
// score).
//
// Boxes are ranked by descending score and visited greedily: each box not yet
// suppressed is kept, and every lower-ranked box whose IoU with it is
// strictly greater than iouThreshold is suppressed. Boxes with equal scores
// are ordered arbitrarily (the sort is not stable), which determines which of
// two equal-score, mutually-overlapping boxes survives.
//
// Empty input, or mismatched boxes/scores lengths, yields an empty result;
// this is a defined edge case, not an error.
func NMS(boxes []Box, scores []float32, iouThreshold float32) []int {
	if len(boxes) == 0 || len(boxes) != len(scores) {
		return nil
	}

	// Permutation of input indices ordered by descending score.
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	suppressed := mempool.GetBool(len(boxes))
	defer mempool.PutBool(suppressed)
	keep := make([]int, 0, len(boxes))

	for i, idx := range order {
		if suppressed[idx] {
			continue
		}
		keep = append(keep, idx)

		for _, other := range order[i+1:] {
			if suppressed[other] {
				continue
			}
			if IoU(boxes[idx], boxes[other]) > iouThreshold {
				suppressed[other] = true
			}
		}
	}

	return keep
}

// NMSFlat is the flat-buffer form of NMS. coords holds N boxes as row-major
// corner quadruples (x1, y1, x2, y2), so len(coords) must equal 4*len(scores);
// any mismatch yields an empty result.
func NMSFlat(coords []float32, scores []float32, iouThreshold float32) []int {
	if len(scores) == 0 || len(coords) != 4*len(scores) {
		return nil
	}
	boxes := make([]Box, len(scores))
	for i := range boxes {
		boxes[i] = Box{
			X1: coords[4*i],
			Y1: coords[4*i+1],
			X2: coords[4*i+2],
			Y2: coords[4*i+3],
		}
	}
	return NMS(boxes, scores, iouThreshold)
}

// IoU computes the Intersection over Union of two boxes.
//
// The intersection is clamped to zero for disjoint boxes. A union of zero or
// less (both boxes degenerate, or negative areas from malformed input)
// returns 0 rather than dividing by zero.
func IoU(a, b Box) float32 {
	ix1 := math32.Max(a.X1, b.X1)
	iy1 := math32.Max(a.Y1, b.Y1)
	ix2 := math32.Min(a.X2, b.X2)
	iy2 := math32.Min(a.Y2, b.Y2)

	inter := math32.Max(0, ix2-ix1) * math32.Max(0, iy2-iy1)

	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
