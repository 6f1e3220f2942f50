package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the date format of conflict_period.csv.
const DateLayout = "2006-01-02"

// Period is a scenario's conflict_period.csv: key/value rows with the
// simulation start date and its length in days.
type Period struct {
	StartDate time.Time
	Length    int
}

// EndDate is the last simulated day.
func (p Period) EndDate() time.Time {
	return p.StartDate.AddDate(0, 0, p.Length-1)
}

// LoadPeriod reads StartDate and Length from a key/value CSV.
func LoadPeriod(path string) (*Period, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) >= 2 {
			values[strings.TrimSpace(row[0])] = strings.TrimSpace(row[1])
		}
	}

	var p Period
	start, ok := values["StartDate"]
	if !ok {
		return nil, fmt.Errorf("%s: missing StartDate", path)
	}
	if p.StartDate, err = time.Parse(DateLayout, start); err != nil {
		return nil, fmt.Errorf("%s: parsing StartDate: %w", path, err)
	}
	length, ok := values["Length"]
	if !ok {
		return nil, fmt.Errorf("%s: missing Length", path)
	}
	if p.Length, err = strconv.Atoi(length); err != nil {
		return nil, fmt.Errorf("%s: parsing Length: %w", path, err)
	}
	if p.Length <= 0 {
		return nil, fmt.Errorf("%s: Length must be positive, got %d", path, p.Length)
	}
	return &p, nil
}
