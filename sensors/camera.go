// Package sensors provides camera sensor models and parsing of calibration
// data files.
package sensors

import (
	"fmt"

	"github.com/percept-vision/percept/linalg"
)

// Camera represents a pinhole camera with its intrinsics and pose.
//
// The pinhole convention is x right, y down, z forward. Angles are in
// degrees, focal lengths and principal point in pixels.
type Camera struct {
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
	Cx float64 `json:"cx"`
	Cy float64 `json:"cy"`

	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// K returns the 3x3 camera intrinsics matrix in row-major order, suitable
// for linalg.MatVec.
func (c Camera) K() []float32 {
	return []float32{
		float32(c.Fx), 0, float32(c.Cx),
		0, float32(c.Fy), float32(c.Cy),
		0, 0, 1,
	}
}

// Project maps a camera-space point to pixel coordinates using the pinhole
// model. Points on or behind the camera plane (z <= 0) cannot be projected.
func (c Camera) Project(x, y, z float64) (u, v float64, err error) {
	if z <= 0 {
		return 0, 0, fmt.Errorf("project: point is not in front of the camera (z=%v)", z)
	}

	p, err := linalg.MatVec(c.K(), 3, 3, []float32{float32(x), float32(y), float32(z)})
	if err != nil {
		return 0, 0, fmt.Errorf("project: %w", err)
	}

	w := float64(p[2])
	return float64(p[0]) / w, float64(p[1]) / w, nil
}
