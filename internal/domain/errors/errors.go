package errors

import "errors"

// Parse errors are fatal for the load call that hit them: a malformed static
// timetable silently skipped would turn into systematically wrong "no scheduled
// flight" conclusions downstream.
var (
	ErrDateFormat     = errors.New("date string matches no supported format")
	ErrTimeFormat     = errors.New("time string matches no supported format")
	ErrUnknownWeekday = errors.New("unknown weekday token")
	ErrInvalidPrice   = errors.New("price is not a valid integer amount")

	ErrReportNotFound = errors.New("report not found")
	ErrBatchNotFound  = errors.New("observation batch not found")
)
