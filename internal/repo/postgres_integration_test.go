package repo_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/yard-tracker/internal/db"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/repo"
)

// openTestDB connects to YARD_TEST_DATABASE_URL, migrates and empties every
// table. Tests using it are skipped when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("YARD_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("YARD_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(ctx, database))

	truncate(t, database)
	t.Cleanup(func() { truncate(t, database) })
	return database
}

func truncate(t *testing.T, database *sql.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx,
		"TRUNCATE TABLE parking, tracking, boxes, zones, yards, vehicles, clients, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func TestPostgresClientRepository(t *testing.T) {
	r := repo.NewPostgresClientRepository(openTestDB(t))

	for _, c := range []models.Client{
		{Name: "Ana", Surname: "Souza", CPF: "11122233344", BirthDate: "1990-01-10", Address: models.Address{City: "Recife"}},
		{Name: "Bruno", Surname: "Lima", CPF: "22233344455", BirthDate: "1985-06-02", Address: models.Address{City: "Campinas"}},
		{Name: "Ana", Surname: "Paula", CPF: "33344455566", BirthDate: "2000-12-30", Address: models.Address{City: "Campinas"}},
	} {
		_, err := r.Create(c)
		require.NoError(t, err)
	}

	t.Run("Duplicated CPF is rejected", func(t *testing.T) {
		_, err := r.Create(models.Client{Name: "Eva", CPF: "11122233344"})
		assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)
	})

	t.Run("Get by CPF", func(t *testing.T) {
		c, err := r.GetByCPF("22233344455")
		require.NoError(t, err)
		assert.Equal(t, "Bruno", c.Name)

		_, err = r.GetByCPF("00000000000")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("Filter pages and sorts", func(t *testing.T) {
		offset, limit := 0, 1
		rows, total, err := r.Filter(repo.ClientFilter{Name: "ana", SortField: "id", SortDesc: true, Offset: &offset, Limit: &limit})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, rows, 1)
		assert.Equal(t, 3, rows[0].ID)
	})

	t.Run("Filter by birth range", func(t *testing.T) {
		rows, total, err := r.Filter(repo.ClientFilter{BirthFrom: "1985-01-01", BirthTo: "1995-12-31"})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, rows, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, r.Delete(2))
		assert.ErrorIs(t, r.Delete(2), repo.ErrNotFound)
	})
}

func TestPostgresBoxAndYardRepositories(t *testing.T) {
	database := openTestDB(t)
	boxes := repo.NewPostgresBoxRepository(database)
	yards := repo.NewPostgresYardRepository(database)

	_, err := boxes.Create(models.Box{Name: "B-01", Active: true, EntryDate: "2024-01-01", ExitDate: "2024-01-31"})
	require.NoError(t, err)
	_, err = boxes.Create(models.Box{Name: "B-02", EntryDate: "2024-02-01", ExitDate: "2024-02-28"})
	require.NoError(t, err)

	active, err := boxes.GetByStatus(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "B-01", active[0].Name)

	_, err = yards.Create(models.Yard{Name: "North", EntryDate: "2024-03-01", ExitDate: "2024-03-10"})
	require.NoError(t, err)

	got, err := yards.GetByDate("2024-03-01", repo.DateEntry)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = yards.GetByDate("2024-03-01", repo.DateExit)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPostgresUserRepository(t *testing.T) {
	users := repo.NewPostgresUserRepository(openTestDB(t))

	u, err := users.CreateUser(models.User{Username: "admin", PasswordHash: "hash", Role: "admin"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = users.CreateUser(models.User{Username: "admin", PasswordHash: "other", Role: "user"})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	got, err := users.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)

	_, err = users.GetByUsername("nobody")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestPostgresParkingRepository(t *testing.T) {
	database := openTestDB(t)
	boxes := repo.NewPostgresBoxRepository(database)
	vehicles := repo.NewPostgresVehicleRepository(database)
	parking := repo.NewPostgresParkingRepository(database)

	box, err := boxes.Create(models.Box{Name: "B-01", Active: true, EntryDate: "2024-01-01", ExitDate: "2024-01-31"})
	require.NoError(t, err)
	first, err := vehicles.Create(models.Vehicle{Plate: "ABC1D23", Model: "Mottu Sport"})
	require.NoError(t, err)
	second, err := vehicles.Create(models.Vehicle{Plate: "DEF4567", Model: "Mottu E"})
	require.NoError(t, err)

	parked, err := parking.Park(models.Parking{BoxID: box.ID, VehicleID: first.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, parked.ParkedAt)

	_, err = parking.Park(models.Parking{BoxID: box.ID, VehicleID: second.ID})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	got, err := parking.GetByVehicle(first.ID)
	require.NoError(t, err)
	assert.Equal(t, box.ID, got.BoxID)

	require.NoError(t, vehicles.Delete(first.ID))
	_, err = parking.GetByBox(box.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, parking.Release(box.ID), repo.ErrNotFound)
}
