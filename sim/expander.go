package sim

import "fmt"

// Expand turns a [window][location] prediction matrix into a [day][location]
// conflict table with windowSize rows per window.
//
// A 1 in window 0 has no preceding calm window and covers the whole window.
// Otherwise, in the first window a location reads 1, its onset day d is drawn uniformly
// from [0, windowSize]: days before d are 0 and days from d on are 1. d equal
// to windowSize leaves the whole window at 0. Every later window is all 1
// regardless of its own value, so the output never drops back to 0.
func Expand(predictions Matrix, windowSize int, src RandomSource) (Matrix, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	cols := predictions.Cols()
	days := make(Matrix, predictions.Rows()*windowSize)
	for i := range days {
		days[i] = make([]int, cols)
	}
	for col := 0; col < cols; col++ {
		flared := false
		for w, row := range predictions {
			if len(row) != cols {
				return nil, fmt.Errorf("window %d has %d columns, expected %d", w, len(row), cols)
			}
			onset := windowSize
			switch {
			case flared:
				onset = 0
			case row[col] == 1 && w == 0:
				onset = 0
				flared = true
			case row[col] == 1:
				onset = onsetDay(src, windowSize)
				flared = true
			}
			for d := onset; d < windowSize; d++ {
				days[w*windowSize+d][col] = 1
			}
		}
	}
	return days, nil
}

// onsetDay draws an integer uniformly from [0, windowSize].
func onsetDay(src RandomSource, windowSize int) int {
	d := int(src.Float64() * float64(windowSize+1))
	if d > windowSize {
		d = windowSize
	}
	return d
}
