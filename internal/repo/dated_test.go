package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/repo"
)

func TestParseDateKind(t *testing.T) {
	tests := []struct {
		in      string
		want    repo.DateKind
		wantErr bool
	}{
		{"entry", repo.DateEntry, false},
		{"entrada", repo.DateEntry, false},
		{"exit", repo.DateExit, false},
		{"saida", repo.DateExit, false},
		{"both", "", true},
	}
	for _, tt := range tests {
		got, err := repo.ParseDateKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestInMemoryYardAndZoneLookups(t *testing.T) {
	yards := repo.NewInMemoryYardRepository()
	for _, y := range []models.Yard{
		{Name: "Pátio Norte", EntryDate: "2024-01-01", ExitDate: "2024-02-01"},
		{Name: "Pátio Sul", EntryDate: "2024-02-01", ExitDate: "2024-03-01"},
	} {
		_, err := yards.Create(y)
		require.NoError(t, err)
	}

	t.Run("Search by name", func(t *testing.T) {
		got, err := yards.SearchByName("norte")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})

	t.Run("By date distinguishes entry and exit", func(t *testing.T) {
		entry, err := yards.GetByDate("2024-02-01", repo.DateEntry)
		require.NoError(t, err)
		require.Len(t, entry, 1)
		assert.Equal(t, "Pátio Sul", entry[0].Name)

		exit, err := yards.GetByDate("2024-02-01", repo.DateExit)
		require.NoError(t, err)
		require.Len(t, exit, 1)
		assert.Equal(t, "Pátio Norte", exit[0].Name)
	})

	t.Run("Zones share the same lookups", func(t *testing.T) {
		zones := repo.NewInMemoryZoneRepository()
		z, err := zones.Create(models.Zone{Name: "Zona A", EntryDate: "2024-05-05", ExitDate: "2024-06-06"})
		require.NoError(t, err)

		got, err := zones.GetByDate("2024-06-06", repo.DateExit)
		require.NoError(t, err)
		assert.Equal(t, []models.Zone{z}, got)

		require.NoError(t, zones.Delete(z.ID))
		_, err = zones.GetByID(z.ID)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestInMemoryBoxRepository(t *testing.T) {
	boxes := repo.NewInMemoryBoxRepository()
	_, _ = boxes.Create(models.Box{Name: "Box 1", Active: true})
	_, _ = boxes.Create(models.Box{Name: "Box 2"})
	_, _ = boxes.Create(models.Box{Name: "Vaga 3", Active: true})

	active, err := boxes.GetByStatus(true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	inactive, err := boxes.GetByStatus(false)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "I", inactive[0].Status())

	byName, err := boxes.SearchByName("box")
	require.NoError(t, err)
	assert.Len(t, byName, 2)
}
