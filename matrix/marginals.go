// SPDX-License-Identifier: MIT

package matrix

// RowSums returns Σ_j m[i,j] for every row i.
// A *Dense fast-path reads the flat buffer directly.
//
// Complexity: O(r*c).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	out := make([]float64, m.Rows())
	if d, ok := m.(*Dense); ok {
		var i, j int
		for i = 0; i < d.r; i++ {
			for j = 0; j < d.c; j++ {
				out[i] += d.data[i*d.c+j]
			}
		}

		return out, nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out[i] += v
		}
	}

	return out, nil
}

// ColSums returns Σ_i m[i,j] for every column j.
//
// Complexity: O(r*c).
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	out := make([]float64, m.Cols())

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out[j] += v
		}
	}

	return out, nil
}
