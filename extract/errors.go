package extract

import "fmt"

// RowError reports a train row missing a required sub-element. A row
// that fails to extract signals an upstream page-format change, so the
// whole run is aborted rather than silently dropping data.
type RowError struct {
	TrainNumber string
	Field       string
	Err         error
}

func (e RowError) Error() string {
	if e.TrainNumber == "" {
		return fmt.Sprintf("extract: row missing %s", e.Field)
	}
	return fmt.Sprintf("extract: train %s: missing %s", e.TrainNumber, e.Field)
}

func (e RowError) Unwrap() error {
	return e.Err
}
