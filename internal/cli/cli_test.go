package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/yard-tracker/internal/auth"
	handler "github.com/rogerio-castellano/yard-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/yard-tracker/internal/http/router"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/repo"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
)

// startAPI runs the real router over in-memory repositories.
func startAPI(t *testing.T) (string, *repo.InMemoryBoxRepository) {
	t.Helper()
	boxes := repo.NewInMemoryBoxRepository()
	users := repo.NewInMemoryUserRepository()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	_, err = users.CreateUser(models.User{Username: "admin", PasswordHash: hash, Role: "admin"})
	require.NoError(t, err)

	handler.SetBoxRepo(boxes)
	handler.SetUserRepo(users)
	handler.SetCache(nil)
	tokens := auth.NewTokenService("cli-secret", time.Hour)
	handler.SetTokenService(tokens)

	srv := httptest.NewServer(router.NewRouter(router.Options{Tokens: tokens}))
	t.Cleanup(srv.Close)

	for _, name := range []string{"B-01", "B-02", "B-03"} {
		_, err := boxes.Create(models.Box{Name: name, Active: true, EntryDate: "2024-01-01", ExitDate: "2024-01-31"})
		require.NoError(t, err)
	}
	return srv.URL, boxes
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBoxesSearchText(t *testing.T) {
	api, _ := startAPI(t)

	output, err := run(t, "--api", api, "boxes", "search", "--status", "a", "--size", "2")
	require.NoError(t, err)
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "B-01")
	assert.Contains(t, output, "B-02")
	assert.NotContains(t, output, "B-03")
	assert.Contains(t, output, "page 1 of 2 (3 total)")
}

func TestBoxesSearchJSON(t *testing.T) {
	api, _ := startAPI(t)

	output, err := run(t, "--api", api, "-o", "json", "boxes", "search", "--name", "B-0", "--status", "I")
	require.NoError(t, err)

	var got stateJSON[models.Box]
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "mismatch", got.Outcome)
	assert.Equal(t, "box found by name, but status does not match", got.Message)
}

func login(t *testing.T, api string) string {
	t.Helper()
	output, err := run(t, "--api", api, "login", "--username", "admin", "--password", "secret", "-o", "json")
	require.NoError(t, err)
	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDeleteMovesBackFromEmptiedPage(t *testing.T) {
	api, boxes := startAPI(t)
	token := login(t, api)

	output, err := run(t, "--api", api, "--token", token, "-o", "json", "boxes", "delete", "3", "--size", "2", "--page", "1")
	require.NoError(t, err)

	var got stateJSON[models.Box]
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, 0, got.Page.Number)
	assert.Len(t, got.Page.Content, 2)

	all, _ := boxes.GetAll()
	assert.Len(t, all, 2)
}

func TestCreateAndUpdateRefreshThePage(t *testing.T) {
	api, boxes := startAPI(t)
	token := login(t, api)

	t.Run("Create shows the new row in the refreshed search", func(t *testing.T) {
		file := writeFile(t, `{"name":"B-04","active":true,"entry_date":"2024-02-01","exit_date":"2024-02-10"}`)
		output, err := run(t, "--api", api, "--token", token, "-o", "json", "boxes", "create", "--file", file, "--status", "A")
		require.NoError(t, err)

		var got stateJSON[models.Box]
		require.NoError(t, json.Unmarshal([]byte(output), &got))
		require.NotNil(t, got.Item)
		assert.Equal(t, 4, got.Item.ID)
		assert.Equal(t, 4, got.Page.TotalElements)
	})

	t.Run("Update only changes the fields in the file", func(t *testing.T) {
		file := writeFile(t, `{"name":"B-10"}`)
		output, err := run(t, "--api", api, "--token", token, "boxes", "update", "1", "--file", file)
		require.NoError(t, err)
		assert.Contains(t, output, "updated 1")
		assert.Contains(t, output, "B-10")

		b, err := boxes.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, "B-10", b.Name)
		assert.Equal(t, "2024-01-01", b.EntryDate)
		assert.True(t, b.Active)
	})

	t.Run("Rejected create reports the validation message", func(t *testing.T) {
		file := writeFile(t, `{"name":"","entry_date":"2024-02-01","exit_date":"2024-02-10"}`)
		_, err := run(t, "--api", api, "--token", token, "boxes", "create", "--file", file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("Update of a missing record", func(t *testing.T) {
		file := writeFile(t, `{"name":"X"}`)
		_, err := run(t, "--api", api, "--token", token, "boxes", "update", "99", "--file", file)
		assert.ErrorContains(t, err, "not found")
	})
}

func TestCommandErrors(t *testing.T) {
	api, _ := startAPI(t)

	t.Run("Invalid date is rejected before any request", func(t *testing.T) {
		_, err := run(t, "--api", "http://127.0.0.1:1", "yards", "search", "--entry-from", "01/01/2024")
		require.Error(t, err)
		assert.Equal(t, "entry_from must be a date formatted as YYYY-MM-DD", err.Error())
	})

	t.Run("Delete without a token", func(t *testing.T) {
		_, err := run(t, "--api", api, "boxes", "delete", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token")
	})

	t.Run("Bad output format", func(t *testing.T) {
		_, err := run(t, "--api", api, "-o", "yaml", "boxes", "search")
		assert.ErrorContains(t, err, "invalid output format")
	})

	t.Run("Bad sort direction", func(t *testing.T) {
		_, err := run(t, "--api", api, "boxes", "search", "--sort", "id,sideways")
		assert.ErrorContains(t, err, "sort direction")
	})
}

func TestParseSort(t *testing.T) {
	s, err := parseSort("name,DESC")
	require.NoError(t, err)
	assert.Equal(t, resolver.Sort{Field: "name", Desc: true}, s)

	s, err = parseSort("id")
	require.NoError(t, err)
	assert.Equal(t, resolver.Sort{Field: "id"}, s)
}

func TestParkingCommands(t *testing.T) {
	api, _ := startAPI(t)
	vehicles := repo.NewInMemoryVehicleRepository()
	handler.SetVehicleRepo(vehicles)
	handler.SetParkingRepo(repo.NewInMemoryParkingRepository())
	for _, plate := range []string{"ABC1D23", "DEF4567"} {
		_, err := vehicles.Create(models.Vehicle{Plate: plate, Model: "Mottu Sport"})
		require.NoError(t, err)
	}
	token := login(t, api)

	t.Run("Park in the first free box and in a chosen one", func(t *testing.T) {
		output, err := run(t, "--api", api, "--token", token, "parking", "park", "abc1d23")
		require.NoError(t, err)
		assert.Contains(t, output, "ABC1D23 is in box 1 (B-01)")

		output, err = run(t, "--api", api, "--token", token, "-o", "json", "parking", "park", "DEF4567", "--box", "3")
		require.NoError(t, err)
		var p models.Parking
		require.NoError(t, json.Unmarshal([]byte(output), &p))
		assert.Equal(t, 3, p.BoxID)
	})

	t.Run("Occupied box reports the API message", func(t *testing.T) {
		_, err := run(t, "--api", api, "--token", token, "parking", "park", "DEF4567")
		require.Error(t, err)
		assert.Equal(t, "vehicle DEF4567 is already parked in box 3", err.Error())
	})

	t.Run("Map and where", func(t *testing.T) {
		output, err := run(t, "--api", api, "parking", "map")
		require.NoError(t, err)
		assert.Contains(t, output, "B-01 ABC1D23")
		assert.Contains(t, output, "B-02 -")
		assert.Contains(t, output, "1 of 3 boxes free")

		output, err = run(t, "--api", api, "parking", "where", "DEF4567")
		require.NoError(t, err)
		assert.Contains(t, output, "box 3 (B-03)")
	})

	t.Run("Release", func(t *testing.T) {
		output, err := run(t, "--api", api, "--token", token, "parking", "release", "1")
		require.NoError(t, err)
		assert.Equal(t, "box 1 released\n", output)

		_, err = run(t, "--api", api, "--token", token, "parking", "release", "1")
		assert.EqualError(t, err, "box 1 is not occupied")

		_, err = run(t, "--api", api, "parking", "release", "x")
		assert.EqualError(t, err, `invalid box id "x"`)
	})
}
