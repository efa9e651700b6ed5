package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn    = errors.New("missing column")
	ErrColumnExists     = errors.New("column already exists")
	ErrRowCountMismatch = errors.New("row count mismatch")
)

type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("input table must contain a %q column", e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

type ColumnExistsError struct {
	Column string
}

func (e *ColumnExistsError) Error() string {
	return fmt.Sprintf("column %q already present", e.Column)
}

func (e *ColumnExistsError) Unwrap() error {
	return ErrColumnExists
}

func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}
