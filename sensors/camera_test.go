package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraK(t *testing.T) {
	cam := Camera{Fx: 500, Fy: 510, Cx: 320, Cy: 240}

	k := cam.K()
	require.Len(t, k, 9)
	assert.Equal(t, float32(500), k[0])
	assert.Equal(t, float32(510), k[4])
	assert.Equal(t, float32(320), k[2])
	assert.Equal(t, float32(240), k[5])
	assert.Equal(t, float32(1), k[8])
}

func TestCameraProject(t *testing.T) {
	cam := Camera{Fx: 500, Fy: 500, Cx: 320, Cy: 240}

	// A point on the optical axis projects to the principal point.
	u, v, err := cam.Project(0, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 320, u, 1e-4)
	assert.InDelta(t, 240, v, 1e-4)

	// Projection is scale-invariant along the ray.
	u1, v1, err := cam.Project(1, 2, 10)
	require.NoError(t, err)
	u2, v2, err := cam.Project(2, 4, 20)
	require.NoError(t, err)
	assert.InDelta(t, u1, u2, 1e-3)
	assert.InDelta(t, v1, v2, 1e-3)

	// fx=500, x/z=0.1 -> 50 pixels right of the principal point.
	assert.InDelta(t, 370, u1, 1e-3)
	assert.InDelta(t, 340, v1, 1e-3)
}

func TestCameraProjectBehindCamera(t *testing.T) {
	cam := Camera{Fx: 500, Fy: 500, Cx: 320, Cy: 240}

	_, _, err := cam.Project(1, 1, 0)
	assert.Error(t, err)

	_, _, err = cam.Project(1, 1, -5)
	assert.Error(t, err)
}
