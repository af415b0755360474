// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConnTimeout = errors.New("connection timeout")
	ErrNoRows      = errors.New("no rows")
)

type ErrRelationDoesNotExist struct {
	Details string
}

func (e *ErrRelationDoesNotExist) Error() string {
	return fmt.Sprintf("relation does not exist: %s", e.Details)
}

type ErrPermissionDenied struct {
	Details string
}

func (e *ErrPermissionDenied) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Details)
}

type ErrDataException struct {
	Details string
}

func (e *ErrDataException) Error() string {
	return fmt.Sprintf("data exception: %s", e.Details)
}

// MapError translates pgx/pgconn errors into the package errors so callers
// don't need to depend on the driver.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if pgconn.Timeout(err) {
		return ErrConnTimeout
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgerrcode.UndefinedTable,
		pgErr.Code == pgerrcode.UndefinedColumn:
		return &ErrRelationDoesNotExist{Details: pgErr.Message}
	case pgErr.Code == pgerrcode.InsufficientPrivilege:
		return &ErrPermissionDenied{Details: pgErr.Message}
	case pgerrcode.IsDataException(pgErr.Code):
		return &ErrDataException{Details: pgErr.Message}
	}

	return err
}
