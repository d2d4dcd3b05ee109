package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		name TEXT,
		password_hash TEXT,
		role TEXT,
		is_verified BOOLEAN,
		verification_status TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_number TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		currency TEXT NOT NULL,
		wallet_type TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSavingsPlanTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE savings_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		goal_amount INTEGER NOT NULL,
		current_amount INTEGER NOT NULL DEFAULT 0,
		target_date DATETIME NOT NULL,
		status TEXT NOT NULL,
		category TEXT,
		priority TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		receiver_id TEXT NOT NULL,
		sender_wallet_id TEXT NOT NULL,
		receiver_wallet_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT,
		created_at DATETIME,
		completed_at DATETIME
	);`)
}

func createTopupRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE topup_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		payment_method TEXT NOT NULL,
		status TEXT NOT NULL,
		settled_by TEXT,
		settled_at DATETIME,
		created_at DATETIME
	);`)
}

func createLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE logs (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		action TEXT NOT NULL,
		entity TEXT NOT NULL,
		details TEXT,
		level TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createLedgerTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createWalletTable(t, db)
	createSavingsPlanTable(t, db)
	createTransactionTable(t, db)
	createTopupRequestTable(t, db)
	createLogTable(t, db)
}
