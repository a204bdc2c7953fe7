package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrLeadFormExists is returned when a second active lead form is created for the same target
	ErrLeadFormExists = errors.New("an active lead form already exists for this target")
)

// lookupErr maps gorm's not found error to ErrNotFound
func lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
