package infra

import (
	"context"
	"errors"
	"log/slog"

	"cancel-saga/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("cause", err.Error()))
	}

	if kind == KindNotFound {
		slogger.Debug("Repository miss: "+msg, logArgs...)
	} else {
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// ClassifyPgErr maps a pgx error onto a repository error kind.
func ClassifyPgErr(err error) RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return KindDuplicateKey
		case "23503":
			return KindForeignKeyViolated
		}
	}
	return KindDBFailure
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)

type UpstreamErrorKind string

// UpstreamError is returned by clients of the commerce and subscription platforms.
type UpstreamError struct {
	Kind     UpstreamErrorKind
	Platform string
	Op       string
	err      error
}

func (e UpstreamError) Error() string {
	msg := e.Platform + " " + e.Op + ": " + string(e.Kind)
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

func (e UpstreamError) Unwrap() error {
	return e.err
}

func NewUpstreamErr(platform, op string, kind UpstreamErrorKind, err error) error {
	if kind == "" {
		kind = classifyUpstream(err)
	}
	return UpstreamError{Kind: kind, Platform: platform, Op: op, err: err}
}

func IsUpstreamKind(err error, kind UpstreamErrorKind) bool {
	var e UpstreamError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classifyUpstream(err error) UpstreamErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindUpstreamTimeout
	}
	return KindUpstreamUnavailable
}

const (
	KindUpstreamTimeout     UpstreamErrorKind = "TIMEOUT"
	KindUpstreamUnavailable UpstreamErrorKind = "UNAVAILABLE"
	KindUpstreamRejected    UpstreamErrorKind = "REJECTED"
	KindUpstreamNotFound    UpstreamErrorKind = "NOT_FOUND"
)
