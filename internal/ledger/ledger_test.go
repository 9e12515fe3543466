package ledger

import (
	"testing"
	"time"

	"clicker_wallet/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testWalletID = "3f2a8c1e-9b4d-4e6f-8a21-5c7d9e0b1a23"

// newMockDB opens gorm over a sqlmock connection so ledger transactions can
// be driven without a real MySQL server.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

// fixNow pins the ledger clock for the duration of one test.
func fixNow(t *testing.T, now time.Time) {
	t.Helper()
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })
}

func walletRows(balance int64, createdAt, lastUpdate time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"wallet_id", "coin_balance", "created_at", "last_passive_update"}).
		AddRow(testWalletID, balance, createdAt, lastUpdate)
}

func effectRows(values ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"effect_value"})
	for _, v := range values {
		rows.AddRow(v)
	}
	return rows
}

func TestAccrueAddsEarnedCoins(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(0, now.Add(-time.Hour), now.Add(-10*time.Second)))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows("2.5"))
	// Earnings and accrual clock persist together
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var balance int64
	err := gdb.Transaction(func(tx *gorm.DB) error {
		b, err := Accrue(tx, testWalletID)
		balance = b
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccrueNothingEarnedStillAdvancesClock(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(40, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows("2.5"))
	// Zero elapsed time: balance untouched, only the clock moves
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var balance int64
	err := gdb.Transaction(func(tx *gorm.DB) error {
		b, err := Accrue(tx, testWalletID)
		balance = b
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccrueWalletNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"wallet_id", "coin_balance", "created_at", "last_passive_update"}))
	mock.ExpectRollback()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		_, err := Accrue(tx, testWalletID)
		return err
	})
	assert.ErrorIs(t, err, ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClickAddsBestMultiplier(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(5, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows()) // no passive upgrades
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows("2")) // best click multiplier
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := Click(gdb, testWalletID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClickDefaultsToOne(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(0, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows()) // no multipliers owned
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := Click(gdb, testWalletID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func upgradeRows(id uint, cost int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"upgrade_id", "name", "description", "cost", "effect_type", "effect_value"}).
		AddRow(id, "Coin Factory", "Earns 2.5 coins per second.", cost, domain.EffectPassiveRatePerSecond, "2.5")
}

func TestPurchaseSpendsExactBalance(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(100, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` WHERE upgrade_id").
		WillReturnRows(upgradeRows(4, 100))
	mock.ExpectQuery("SELECT count(.+) FROM `wallet_upgrades`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `wallet_upgrades`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	balance, err := Purchase(gdb, testWalletID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseAlreadyOwnedRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(500, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` WHERE upgrade_id").
		WillReturnRows(upgradeRows(4, 100))
	mock.ExpectQuery("SELECT count(.+) FROM `wallet_upgrades`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := Purchase(gdb, testWalletID, 4)
	assert.ErrorIs(t, err, ErrAlreadyOwned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseInsufficientFundsRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(10, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` WHERE upgrade_id").
		WillReturnRows(upgradeRows(4, 100))
	mock.ExpectQuery("SELECT count(.+) FROM `wallet_upgrades`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := Purchase(gdb, testWalletID, 4)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseUnknownUpgradeRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(10, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` WHERE upgrade_id").
		WillReturnRows(sqlmock.NewRows([]string{"upgrade_id", "name", "description", "cost", "effect_type", "effect_value"}))
	mock.ExpectRollback()

	_, err := Purchase(gdb, testWalletID, 99)
	assert.ErrorIs(t, err, ErrUpgradeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCashoutZeroesWalletAndRecordsRequest(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(40, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `payout_requests`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	request, err := Cashout(gdb, testWalletID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), request.ID)
	assert.Equal(t, int64(40), request.CoinAmount)
	assert.Equal(t, "40", request.DollarValue.String())
	assert.Equal(t, domain.PayoutPending, request.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCashoutEmptyWalletRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `wallets` WHERE wallet_id = (.+) FOR UPDATE").
		WillReturnRows(walletRows(0, now.Add(-time.Hour), now))
	mock.ExpectQuery("SELECT (.+) FROM `upgrades` JOIN wallet_upgrades").
		WillReturnRows(effectRows())
	mock.ExpectExec("UPDATE `wallets` SET (.+)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	_, err := Cashout(gdb, testWalletID)
	assert.ErrorIs(t, err, ErrNothingToCashOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWalletStartsEmpty(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `wallets`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wallet, err := CreateWallet(gdb)
	require.NoError(t, err)
	_, err = uuid.Parse(wallet.ID)
	assert.NoError(t, err, "wallet id must be a well-formed UUID")
	assert.Equal(t, int64(0), wallet.CoinBalance)
	assert.Equal(t, now, wallet.LastPassiveUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
