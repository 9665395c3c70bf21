package db

import (
	"errors"

	pkgerrors "github.com/museshop/backend/pkg/errors"
	"gorm.io/gorm"
)

// IsNotFound reports whether the error is GORM's missing-record sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Translate maps a raw persistence error onto the shared error taxonomy.
func Translate(err error, message string) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
