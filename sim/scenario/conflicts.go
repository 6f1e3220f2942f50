package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jataware/flee-modeling/sim"
)

// DayColumn labels the day index column of a conflicts table.
const DayColumn = "#Days"

// WriteConflicts writes a [day][location] conflict table as CSV: a header of
// DayColumn followed by the location names, then one row per day led by its
// zero-based index.
func WriteConflicts(w io.Writer, names []string, days sim.Matrix) error {
	if days.Rows() > 0 && days.Cols() != len(names) {
		return fmt.Errorf("conflict table has %d columns, expected %d", days.Cols(), len(names))
	}
	writer := csv.NewWriter(w)

	header := append([]string{DayColumn}, names...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	row := make([]string, len(names)+1)
	for d, values := range days {
		row[0] = strconv.Itoa(d)
		for i, v := range values {
			row[i+1] = strconv.Itoa(v)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", d, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteConflictsFile writes the conflict table to path, replacing any file there.
func WriteConflictsFile(path string, names []string, days sim.Matrix) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating conflicts file: %w", err)
	}
	if err := WriteConflicts(file, names, days); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing conflicts file: %w", err)
	}
	logrus.Debugf("Successfully wrote %d days to '%s'", days.Rows(), path)
	return nil
}
