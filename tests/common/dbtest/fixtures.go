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

	"cardshop/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type InventoryRow struct {
	Stock    int
	Status   string
	IsActive bool
}

type OrderRow struct {
	ID            uuid.UUID
	Status        string
	TotalCents    int64
	RefundedCents int64
}

func InsertInventory(t *testing.T, db DBLike, b *builder.InventoryBuilder) uuid.UUID {
	t.Helper()

	row := b.BuildInfra()
	_, err := db.Exec(context.Background(), `
		INSERT INTO inventory_records (id, kind, name, price_cents, stock, status, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		row.ID, row.Kind, row.Name, row.PriceCents, row.Stock, row.Status, row.IsActive)
	require.NoError(t, err)

	return row.ID
}

func GetInventory(t *testing.T, db DBLike, id uuid.UUID) InventoryRow {
	t.Helper()

	var r InventoryRow
	err := db.QueryRow(context.Background(),
		"SELECT stock, status, is_active FROM inventory_records WHERE id = $1", id).
		Scan(&r.Stock, &r.Status, &r.IsActive)
	require.NoError(t, err)
	return r
}

func GetReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM reservations WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// ExpireReservation moves the hold's deadline into the past so the sweeper
// and availability reads treat it as lapsed.
func ExpireReservation(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE reservations SET expires_at = now() - interval '1 minute' WHERE id = $1", id)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

func GetOrderBySession(t *testing.T, db DBLike, sessionID string) OrderRow {
	t.Helper()

	var r OrderRow
	err := db.QueryRow(context.Background(),
		"SELECT id, status, total_cents, refunded_cents FROM orders WHERE payment_session_id = $1", sessionID).
		Scan(&r.ID, &r.Status, &r.TotalCents, &r.RefundedCents)
	require.NoError(t, err)
	return r
}

func GetOrder(t *testing.T, db DBLike, id uuid.UUID) OrderRow {
	t.Helper()

	var r OrderRow
	err := db.QueryRow(context.Background(),
		"SELECT id, status, total_cents, refunded_cents FROM orders WHERE id = $1", id).
		Scan(&r.ID, &r.Status, &r.TotalCents, &r.RefundedCents)
	require.NoError(t, err)
	return r
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration ledger
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
