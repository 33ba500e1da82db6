package services

import (
	"errors"
	"fmt"
)

var (
	ErrRideNotFound       = errors.New("ride not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRideEventNotFound  = errors.New("ride event not found")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DatasetTooLargeError rejects a distance-sorted listing whose matching
// dataset exceeds the in-memory materialization cap. It carries enough
// context for the handler to build the advisory response body.
type DatasetTooLargeError struct {
	Count int64
	Limit int
}

func (e *DatasetTooLargeError) Error() string {
	return fmt.Sprintf("distance sorting is not available for result sets larger than %d (current: %d)", e.Limit, e.Count)
}

// AsDatasetTooLarge unwraps err into a *DatasetTooLargeError if it is one.
func AsDatasetTooLarge(err error) (*DatasetTooLargeError, bool) {
	var dtl *DatasetTooLargeError
	if errors.As(err, &dtl) {
		return dtl, true
	}
	return nil, false
}
