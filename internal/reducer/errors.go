package reducer

import "fmt"

// InsufficientDataError reports that a statistic was requested over fewer
// records than it is meaningful for. The statistic is skipped, not coerced
// to zero; independent statistics in the same run continue.
type InsufficientDataError struct {
	Statistic string
	Have      int
	Need      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: have %d records, need at least %d", e.Statistic, e.Have, e.Need)
}
