package gormrepo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// mapNotFound swaps gorm's record-not-found for the aggregate's own sentinel.
func mapNotFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func likeLower(s string) string { return "%" + strings.ToLower(strings.TrimSpace(s)) + "%" }
