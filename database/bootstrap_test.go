package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrimitra/entities"
	"agrimitra/pkg/apperr"
)

func TestOpenSQLiteMigratesAllTables(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "agrimitra.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, table := range []string{"users", "crops", "orders", "equipment", "rentals", "market_prices"} {
		assert.True(t, db.Migrator().HasTable(table), "table %s", table)
	}
}

func TestOpenSQLiteKeepsDataAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrimitra.db")

	db, err := OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: entities.RoleFarmer}).Error)
	require.NoError(t, Close(db))

	db, err = OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var n int64
	require.NoError(t, db.Model(&entities.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", dsn("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", dsn("a.db?mode=rwc"))
}

func TestForeignKeysAreEnforced(t *testing.T) {
	db := OpenTest(t)
	farmer := entities.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: entities.RoleFarmer}
	require.NoError(t, db.Create(&farmer).Error)

	err := db.Create(&entities.Crop{FarmerID: 99, CropName: "Rice", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}).Error
	assert.ErrorIs(t, apperr.FromStore(err), apperr.ErrConflict, "crop with unknown farmer")

	crop := entities.Crop{FarmerID: farmer.ID, CropName: "Rice", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}
	require.NoError(t, db.Create(&crop).Error)

	err = db.Create(&entities.Order{CropID: crop.ID, BuyerID: 42, Status: entities.OrderPending}).Error
	assert.ErrorIs(t, apperr.FromStore(err), apperr.ErrConflict, "order with unknown buyer")

	err = db.Create(&entities.Rental{EquipmentID: 5, UserID: farmer.ID, StartDate: "2024-06-01", EndDate: "2024-06-02"}).Error
	assert.ErrorIs(t, apperr.FromStore(err), apperr.ErrConflict, "rental of unknown equipment")

	err = db.Delete(&entities.User{}, farmer.ID).Error
	assert.ErrorIs(t, apperr.FromStore(err), apperr.ErrConflict, "farmer still has a crop")
}

func TestOpenSQLiteBackfillsMatchKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agrimitra.db")

	db, err := OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	farmer := entities.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x", Role: entities.RoleFarmer}
	require.NoError(t, db.Create(&farmer).Error)
	require.NoError(t, db.Create(&entities.Crop{FarmerID: farmer.ID, CropName: "Épeautre", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}).Error)
	require.NoError(t, db.Create(&entities.MarketPrice{CropName: "Épeautre", Region: "Île-de-France", Unit: "kg"}).Error)
	require.NoError(t, db.Exec("UPDATE crops SET name_key = ''").Error)
	require.NoError(t, db.Exec("UPDATE market_prices SET crop_key = '', region_key = ''").Error)
	require.NoError(t, Close(db))

	db, err = OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var mp entities.MarketPrice
	require.NoError(t, db.First(&mp).Error)
	assert.Equal(t, "épeautre", mp.CropKey)
	assert.Equal(t, "île-de-france", mp.RegionKey)

	var c entities.Crop
	require.NoError(t, db.First(&c).Error)
	assert.Equal(t, "épeautre", c.NameKey)
}
