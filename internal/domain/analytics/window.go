package analytics

import "time"

// MonthWindow computes the half-open range [first day of month, first day of
// next month). The rollover relies on time.Date's month normalization, so
// December yields [Dec 1, Jan 1 of the next year) and leap years follow the
// calendar rules of the standard library.
func MonthWindow(year, month int) (Window, error) {
	if month < 1 || month > 12 || year < 1 {
		return Window{}, ErrInvalidWindow
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
}
