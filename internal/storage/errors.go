// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// PostgreSQL error codes
const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeInvalidText         = "22P02"
)

// IsNoRows checks if the error reports an empty result set, from either database/sql or pgx.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}
	return false
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeForeignKeyViolation
	}
	return false
}

// IsInvalidText checks if the error is a PostgreSQL malformed input value, such as a non UUID id.
func IsInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeInvalidText
	}
	return false
}

// wrapWriteError maps constraint violations to the storage sentinels and wraps anything else.
func wrapWriteError(err error, op string) error {
	switch {
	case IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrForeignKeyViolation)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// wrapReadError maps an empty result or a malformed id to ErrNotFound and wraps anything else.
func wrapReadError(err error, op string) error {
	if IsNoRows(err) || IsInvalidText(err) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
