package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicate reports whether err is a unique-constraint violation.
// gorm's TranslateError covers the postgres driver, but the modernc
// sqlite driver used in development surfaces unique violations as plain
// sqlite errors, so the text check keeps both drivers in line.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
