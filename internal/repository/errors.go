// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"blogly/internal/models"
	"blogly/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// mapError converts a driver error into an AppError. AppErrors pass through.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case isUniqueViolation(err):
		return models.NewConflictError("A record with the same value already exists", err)
	case isForeignKeyViolation(err):
		return models.NewConflictError("The change conflicts with related records", err)
	}
	return models.NewInternalError(err)
}

// notFoundOr maps gorm.ErrRecordNotFound to a NOT_FOUND AppError for resource/id.
func notFoundOr(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return mapError(err)
}

// traced runs fn inside a repository span and maps its error.
func traced(ctx context.Context, table, method string, fn func(ctx context.Context) error) error {
	ctx, span := observability.StartRepositorySpan(ctx, table, method)
	err := mapError(fn(ctx))
	observability.EndSpan(span, err)
	return err
}
