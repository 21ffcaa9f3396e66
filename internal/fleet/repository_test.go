package fleet

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gormDB), mock
}

func busRows(buses ...Bus) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "registration_number", "total_seats",
		"amenities", "status", "created_by", "created_at", "updated_at",
	})
	for _, b := range buses {
		rows.AddRow(b.ID, b.Name, b.RegistrationNumber, b.TotalSeats,
			`["AC"]`, b.Status, b.CreatedBy, b.CreatedAt, b.UpdatedAt)
	}
	return rows
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepository(t)

	bus := Bus{
		ID:                 uuid.New(),
		Name:               "Mumbai Express Sleeper",
		RegistrationNumber: "MH12AB1234",
		TotalSeats:         36,
		Status:             BusStatusActive,
		CreatedBy:          uuid.New(),
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	mock.ExpectQuery(`SELECT \* FROM "buses" WHERE id =`).
		WillReturnRows(busRows(bus))

	got, err := repo.GetByID(bus.ID)
	require.NoError(t, err)
	assert.Equal(t, bus.ID, got.ID)
	assert.Equal(t, "MH12AB1234", got.RegistrationNumber)
	assert.Equal(t, 36, got.TotalSeats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "buses" WHERE id =`).
		WillReturnRows(busRows())

	_, err := repo.GetByID(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryRegistrationExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buses" WHERE registration_number =`).
		WithArgs("MH12AB1234").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.RegistrationExists("MH12AB1234")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buses" WHERE registration_number =`).
		WithArgs("MH99ZZ9999").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err = repo.RegistrationExists("MH99ZZ9999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryGetAllFiltersByStatus(t *testing.T) {
	repo, mock := newMockRepository(t)

	bus := Bus{
		ID:                 uuid.New(),
		Name:               "Pune Night Rider",
		RegistrationNumber: "MH14CD5678",
		TotalSeats:         30,
		Status:             BusStatusActive,
		CreatedBy:          uuid.New(),
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "buses" WHERE status =`).
		WithArgs("ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "buses" WHERE status =`).
		WillReturnRows(busRows(bus))

	buses, total, err := repo.GetAll(BusListQuery{Status: "ACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, buses, 1)
	assert.Equal(t, "Pune Night Rider", buses[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDelete(t *testing.T) {
	repo, mock := newMockRepository(t)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "buses" WHERE id =`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
