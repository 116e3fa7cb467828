package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// translateWriteError normalizes unique-constraint failures to gorm.ErrDuplicatedKey
// for drivers that do not translate them on their own.
func translateWriteError(err error) error {
	if err == nil || errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	message := err.Error()
	if strings.Contains(message, "UNIQUE constraint failed") || strings.Contains(message, "SQLSTATE 23505") {
		return errors.Join(gorm.ErrDuplicatedKey, err)
	}
	return err
}
