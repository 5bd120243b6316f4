// Package linalg provides dense linear-algebra helpers over flat row-major
// float32 buffers, delegating the kernels to gorgonia's tensor package.
package linalg

import (
	"fmt"

	"gorgonia.org/tensor"
)

// MatVec multiplies a rows x cols matrix (row-major) by a vector of length
// cols and returns the resulting vector of length rows.
//
// The inputs are not modified. A shape mismatch returns an error.
func MatVec(matrix []float32, rows, cols int, vec []float32) ([]float32, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matvec: invalid shape %dx%d", rows, cols)
	}
	if len(matrix) != rows*cols {
		return nil, fmt.Errorf("matvec: matrix has %d elements, want %dx%d = %d",
			len(matrix), rows, cols, rows*cols)
	}
	if len(vec) != cols {
		return nil, fmt.Errorf("matvec: shape mismatch: matrix is %dx%d, vector is %d",
			rows, cols, len(vec))
	}

	m := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(matrix))
	v := tensor.New(tensor.WithShape(cols), tensor.WithBacking(vec))

	out, err := tensor.MatVecMul(m, v)
	if err != nil {
		return nil, fmt.Errorf("matvec: %w", err)
	}

	switch data := out.Data().(type) {
	case []float32:
		return data, nil
	case float32:
		// A 1-element result is reported as a scalar.
		return []float32{data}, nil
	default:
		return nil, fmt.Errorf("matvec: unexpected result type %T", data)
	}
}
