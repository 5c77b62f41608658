// Package similarity precomputes the dense pairwise cosine matrix for
// the catalog. The matrix is the engine's heaviest computation and its
// primary memory cost (n² float64 cells); it is built once at startup
// and read-only afterwards.
package similarity

import (
	"fmt"

	"github.com/abhi017z/Movie-Recommender-System/internal/vectorspace"
)

// Matrix holds cosine similarity scores indexed [i][j] by catalog
// index. Symmetric with a unit diagonal for every non-degenerate row.
type Matrix struct {
	n     int
	cells []float64
}

// Build computes the full pairwise matrix from the fitted space.
func Build(space *vectorspace.Space) (*Matrix, error) {
	if space == nil || space.Len() == 0 {
		return nil, fmt.Errorf("vector space is empty")
	}

	n := space.Len()
	m := &Matrix{
		n:     n,
		cells: make([]float64, n*n),
	}

	for i := 0; i < n; i++ {
		vi := space.Vector(i)
		if len(vi) > 0 {
			// Exact self-similarity; the dot product of an
			// L2-normalized vector with itself only approximates 1.
			m.cells[i*n+i] = 1
		}
		for j := i + 1; j < n; j++ {
			score := vectorspace.Dot(vi, space.Vector(j))
			m.cells[i*n+j] = score
			m.cells[j*n+i] = score
		}
	}

	return m, nil
}

// Size returns the matrix dimension n.
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return m.n
}

// At returns the similarity of items i and j.
func (m *Matrix) At(i, j int) float64 {
	if m == nil || i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0
	}
	return m.cells[i*m.n+j]
}

// Row returns a copy of row i, so callers can sort without touching
// the shared matrix.
func (m *Matrix) Row(i int) []float64 {
	if m == nil || i < 0 || i >= m.n {
		return nil
	}
	row := make([]float64, m.n)
	copy(row, m.cells[i*m.n:(i+1)*m.n])
	return row
}
