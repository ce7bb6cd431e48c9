package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cancel-saga/internal/infra"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/pkg/otp"
	"cancel-saga/internal/pkg/pgconv"
	"cancel-saga/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Gate checks one-time codes issued by the verification step that precedes cancellation.
// Codes are stored as bcrypt hashes keyed by (shop_alias, email).
type Gate struct {
	db     DBTX
	clock  clock.Clock
	logger *slog.Logger
}

func NewGate(db DBTX, clk clock.Clock, logger *slog.Logger) *Gate {
	return &Gate{db: db, clock: clk, logger: logger.With(slog.String("component", "identity_gate"))}
}

const selectVerificationCode = `
SELECT code_hash, subscription, cancel_session_id, expires_at
FROM verification_codes
WHERE shop_alias = $1 AND email = $2`

func (g *Gate) Verify(ctx context.Context, store, email, code string) (commands.Verification, error) {
	if !otp.WellFormed(code) {
		return commands.Verification{}, nil
	}

	var (
		codeHash     string
		subscription pgtype.Text
		sessionID    pgtype.Text
		expiresAt    pgtype.Timestamptz
	)
	err := g.db.QueryRow(ctx, selectVerificationCode, store, normalizeEmail(email)).
		Scan(&codeHash, &subscription, &sessionID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commands.Verification{}, nil
		}
		return commands.Verification{}, infra.WrapRepoErr(g.logger, infra.ClassifyPgErr(err), "failed to load verification code", err)
	}

	if !g.clock.Now().Before(pgconv.TimeFromPgtype(expiresAt)) {
		g.logger.Debug("verification code expired", "store", store)
		return commands.Verification{}, nil
	}

	if err := otp.Compare(codeHash, code); err != nil {
		if errors.Is(err, otp.ErrCodeMismatch) || errors.Is(err, otp.ErrInvalidCodeForm) {
			return commands.Verification{}, nil
		}
		return commands.Verification{}, err
	}

	return commands.Verification{
		Valid:            true,
		SubscriptionRef:  pgconv.StringFromPgtype(subscription),
		CancelSessionRef: pgconv.StringFromPgtype(sessionID),
	}, nil
}

const deleteVerificationCode = `DELETE FROM verification_codes WHERE shop_alias = $1 AND email = $2`

func (g *Gate) Consume(ctx context.Context, store, email string) error {
	if _, err := g.db.Exec(ctx, deleteVerificationCode, store, normalizeEmail(email)); err != nil {
		return infra.WrapRepoErr(g.logger, infra.KindDBFailure, "failed to delete verification code", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
