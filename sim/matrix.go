package sim

// Matrix is a binary [window][location] (or [day][location]) table.
type Matrix [][]int

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns, 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Column returns a copy of column col.
func (m Matrix) Column(col int) []int {
	out := make([]int, len(m))
	for i, row := range m {
		out[i] = row[col]
	}
	return out
}

// FirstFlare returns the first row of column col holding 1, or -1.
func (m Matrix) FirstFlare(col int) int {
	for i, row := range m {
		if row[col] == 1 {
			return i
		}
	}
	return -1
}

// Transpose returns the [col][row] view of m.
func (m Matrix) Transpose() Matrix {
	cols := m.Cols()
	out := make(Matrix, cols)
	for c := 0; c < cols; c++ {
		out[c] = m.Column(c)
	}
	return out
}
