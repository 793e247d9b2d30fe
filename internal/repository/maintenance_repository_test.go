package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/garagetrack/internal/domain"
)

var maintenanceTestColumns = []string{"id", "tenant_id", "vehicle_id", "maint_date", "maint_type", "odometer_km", "description", "cost"}

func TestMaintenanceListByVehicleOrdersByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(maintenanceTestColumns).
		AddRow(int64(2), int64(7), int64(3), newer, "Yağ değişimi", 46000, "Filtre dahil", "1500.00").
		AddRow(int64(1), int64(7), int64(3), older, "Fren bakımı", 40000, nil, "2750.50")
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY maint_date DESC, id DESC`)).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(rows)

	repo := NewPostgresMaintenanceRepository(db, nil)
	out, err := repo.ListByVehicle(7, 3)
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Equal(t, "Yağ değişimi", out[0].Type)
	require.NotNil(t, out[0].Description)
	require.True(t, out[0].Cost.Equal(decimal.RequireFromString("1500.00")))

	require.Nil(t, out[1].Description)
	require.True(t, out[1].Cost.Equal(decimal.RequireFromString("2750.50")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceListAllTreatsNullCostAsZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(maintenanceTestColumns).
		AddRow(int64(1), int64(7), int64(3), date, "Lastik rotasyonu", 46000, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM maintenance`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := NewPostgresMaintenanceRepository(db, nil)
	out, err := repo.ListAll(7)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].Cost.Equal(decimal.Zero))
}

func TestMaintenanceInsertReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cost := decimal.RequireFromString("1500.00")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO maintenance`)).
		WithArgs(int64(7), int64(3), date, "Yağ değişimi", 46000, nil, cost).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := NewPostgresMaintenanceRepository(db, nil)
	m := &domain.Maintenance{VehicleID: 3, Date: date, Type: "Yağ değişimi", OdometerKM: 46000, Cost: cost}
	id, err := repo.Insert(7, m)
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
	require.Equal(t, int64(7), m.TenantID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceUpdateZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE maintenance`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresMaintenanceRepository(db, nil)
	m := &domain.Maintenance{ID: 99, VehicleID: 3, Date: time.Now(), Type: "Fren bakımı"}
	err = repo.Update(7, m)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMaintenanceDeleteZeroRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM maintenance WHERE tenant_id = $1 AND id = $2`)).
		WithArgs(int64(7), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresMaintenanceRepository(db, nil)
	err = repo.Delete(7, 99)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
