//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cancel-saga/internal/pkg/otp"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedVerificationCode stores the bcrypt hash of code the way the issuing service does.
func SeedVerificationCode(t *testing.T, db DBLike, store, email, code, subscription, session string, expiresAt time.Time) {
	t.Helper()

	hash, err := otp.Hash(code)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO verification_codes (shop_alias, email, code_hash, subscription, cancel_session_id, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop_alias, email) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
		    subscription = EXCLUDED.subscription,
		    cancel_session_id = EXCLUDED.cancel_session_id,
		    expires_at = EXCLUDED.expires_at`,
		store, strings.ToLower(email), hash, subscription, session, expiresAt)
	require.NoError(t, err)
}

func CountDraftOrders(t *testing.T, db DBLike, store, subscription string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM draft_orders WHERE shop_alias = $1 AND subscription = $2", store, subscription).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
