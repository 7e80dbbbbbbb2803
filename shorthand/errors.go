package shorthand

import "errors"

var (
	ErrInvalidTimeFormat    = errors.New("provided time format is invalid")
	ErrMissingField         = errors.New("event is missing a required field")
	ErrInvalidDate          = errors.New("event date is invalid")
	ErrFileLoad             = errors.New("there was an error loading the events file")
	ErrFileFormat           = errors.New("the provided events file was formatted incorrectly")
	ErrEventFormat          = errors.New("event is formatted incorrectly")
	ErrInvalidMonthOverride = errors.New("event contains an invalid month override")
)
