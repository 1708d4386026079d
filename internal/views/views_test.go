package views_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/yard-tracker/internal/auth"
	"github.com/rogerio-castellano/yard-tracker/internal/cache"
	"github.com/rogerio-castellano/yard-tracker/internal/client"
	handler "github.com/rogerio-castellano/yard-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/yard-tracker/internal/http/router"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/repo"
	"github.com/rogerio-castellano/yard-tracker/internal/resolver"
	"github.com/rogerio-castellano/yard-tracker/internal/views"
)

type backend struct {
	clients  *repo.InMemoryClientRepository
	vehicles *repo.InMemoryVehicleRepository
	yards    *repo.InMemoryYardRepository
	zones    *repo.InMemoryZoneRepository
	boxes    *repo.InMemoryBoxRepository
	api      *client.Client
}

// startAPI serves the real router over in-memory repositories and returns
// a logged-in client.
func startAPI(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		clients:  repo.NewInMemoryClientRepository(),
		vehicles: repo.NewInMemoryVehicleRepository(),
		yards:    repo.NewInMemoryYardRepository(),
		zones:    repo.NewInMemoryZoneRepository(),
		boxes:    repo.NewInMemoryBoxRepository(),
	}
	users := repo.NewInMemoryUserRepository()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	_, err = users.CreateUser(models.User{Username: "admin", PasswordHash: hash, Role: "admin"})
	require.NoError(t, err)

	handler.SetClientRepo(b.clients)
	handler.SetVehicleRepo(b.vehicles)
	handler.SetYardRepo(b.yards)
	handler.SetZoneRepo(b.zones)
	handler.SetBoxRepo(b.boxes)
	handler.SetUserRepo(users)
	handler.SetCache(cache.NewMemory(time.Minute))

	tokens := auth.NewTokenService("views-secret", time.Hour)
	handler.SetTokenService(tokens)
	srv := httptest.NewServer(router.NewRouter(router.Options{Tokens: tokens}))
	t.Cleanup(srv.Close)

	b.api = client.New(srv.URL, "", 5*time.Second, nil)
	token, err := b.api.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	b.api.SetToken(token)
	return b
}

func clientIDs(p models.Page[models.Client]) []int {
	out := []int{}
	for _, c := range p.Content {
		out = append(out, c.ID)
	}
	return out
}

func seedClients(t *testing.T, b *backend) {
	t.Helper()
	for _, c := range []models.Client{
		{Name: "Ana", Surname: "Souza", CPF: "11122233344", BirthDate: "1990-01-10", Address: models.Address{City: "Recife"}},
		{Name: "Bruno", Surname: "Lima", CPF: "22233344455", BirthDate: "1985-06-02", Address: models.Address{City: "Campinas"}},
		{Name: "Ana", Surname: "Paula", CPF: "33344455566", BirthDate: "2000-12-30", Address: models.Address{City: "Campinas"}},
		{Name: "Carla", Surname: "Dias", CPF: "44455566677", BirthDate: "1979-03-15", Address: models.Address{City: "Natal"}},
		{Name: "Davi", Surname: "Reis", CPF: "55566677788", BirthDate: "1995-07-21", Address: models.Address{City: "Natal"}},
	} {
		_, err := b.clients.Create(c)
		require.NoError(t, err)
	}
}

func TestClientSearchPagesThroughTheAPI(t *testing.T) {
	b := startAPI(t)
	seedClients(t, b)
	ctx := context.Background()

	v := views.ClientSearch(b.api, views.Options{PageSize: 2})

	st, err := v.Submit(ctx, resolver.FilterSet{"city": "campinas"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, clientIDs(st.Page))
	assert.True(t, st.Page.Last)

	st, err = v.Submit(ctx, resolver.FilterSet{})
	require.NoError(t, err)
	assert.Equal(t, 3, st.Page.TotalPages)

	st, err = v.GoToPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, clientIDs(st.Page))

	st, err = v.Delete(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Page.Number)
	assert.Equal(t, []int{3, 4}, clientIDs(st.Page))

	t.Run("Rejected date never reaches the API", func(t *testing.T) {
		st, err := v.Submit(ctx, resolver.FilterSet{"birth_from": "1990/01/01"})
		require.Error(t, err)
		assert.Equal(t, resolver.StatusError, st.Status)
		assert.Equal(t, "birth_from must be a date formatted as YYYY-MM-DD", st.Message)
	})

	t.Run("Sorted descending by the API", func(t *testing.T) {
		desc := views.ClientSearch(b.api, views.Options{PageSize: 10, Sort: resolver.Sort{Field: "name", Desc: true}})
		st, err := desc.Submit(ctx, resolver.FilterSet{})
		require.NoError(t, err)
		assert.Equal(t, []int{4, 2, 3, 1}, clientIDs(st.Page))
	})
}

func TestClientLookupStrategies(t *testing.T) {
	b := startAPI(t)
	seedClients(t, b)
	ctx := context.Background()
	v := views.ClientLookup(b.api, views.Options{PageSize: 10})

	t.Run("Masked CPF", func(t *testing.T) {
		st, err := v.Submit(ctx, resolver.FilterSet{"cpf": "333.444.555-66"})
		require.NoError(t, err)
		assert.Equal(t, []int{3}, clientIDs(st.Page))
	})

	t.Run("Unknown CPF is empty", func(t *testing.T) {
		st, err := v.Submit(ctx, resolver.FilterSet{"cpf": "999.999.999-99"})
		require.NoError(t, err)
		assert.Equal(t, resolver.OutcomeEmpty, st.Outcome)
	})

	t.Run("Name narrowed by CPF", func(t *testing.T) {
		st, err := v.Submit(ctx, resolver.FilterSet{"name": "ana", "cpf": "33344455566"})
		require.NoError(t, err)
		assert.Equal(t, []int{3}, clientIDs(st.Page))
	})

	t.Run("Name found but CPF does not match", func(t *testing.T) {
		st, err := v.Submit(ctx, resolver.FilterSet{"name": "ana", "cpf": "22233344455"})
		require.NoError(t, err)
		assert.Equal(t, resolver.OutcomeMismatch, st.Outcome)
		assert.Equal(t, "client found by name, but cpf does not match", st.Message)
	})

	t.Run("Get all with post-filter", func(t *testing.T) {
		st, err := v.Submit(ctx, resolver.FilterSet{"city": "natal", "birth_from": "1990-01-01"})
		require.NoError(t, err)
		assert.Equal(t, []int{5}, clientIDs(st.Page))
	})
}

func TestVehiclesView(t *testing.T) {
	b := startAPI(t)
	for _, v := range []models.Vehicle{
		{Plate: "ABC1D23", Model: "CG 160", Manufacturer: "Honda", Year: 2022, Fuel: "Gasolina"},
		{Plate: "XYZ9876", Model: "Mottu Sport", Manufacturer: "Mottu", Year: 2023, Fuel: "Flex"},
		{Plate: "QWE4R56", Model: "Mottu Sport", Manufacturer: "Mottu", Year: 2021, Fuel: "Flex"},
	} {
		_, err := b.vehicles.Create(v)
		require.NoError(t, err)
	}
	ctx := context.Background()
	v := views.Vehicles(b.api, views.Options{PageSize: 10})

	st, err := v.Submit(ctx, resolver.FilterSet{"plate": "abc1d23"})
	require.NoError(t, err)
	require.Len(t, st.Page.Content, 1)
	assert.Equal(t, "ABC1D23", st.Page.Content[0].Plate)

	st, err = v.Submit(ctx, resolver.FilterSet{"model": "sport", "year": "2021"})
	require.NoError(t, err)
	require.Len(t, st.Page.Content, 1)
	assert.Equal(t, 3, st.Page.Content[0].ID)

	st, err = v.Submit(ctx, resolver.FilterSet{"plate": "ABC1D23", "manufacturer": "Mottu"})
	require.NoError(t, err)
	assert.Equal(t, resolver.OutcomeMismatch, st.Outcome)

	st, err = v.Submit(ctx, resolver.FilterSet{"fuel": "flex"})
	require.NoError(t, err)
	assert.Len(t, st.Page.Content, 2)
}

func TestYardsAndZonesViews(t *testing.T) {
	b := startAPI(t)
	for _, y := range []models.Yard{
		{Name: "Pátio Norte", EntryDate: "2024-01-10", ExitDate: "2024-02-01"},
		{Name: "Pátio Sul", EntryDate: "2024-01-10", ExitDate: "2024-03-01"},
		{Name: "Galpão", EntryDate: "2024-02-15", ExitDate: "2024-03-01"},
	} {
		_, err := b.yards.Create(y)
		require.NoError(t, err)
	}
	ctx := context.Background()
	yards := views.Yards(b.api, views.Options{PageSize: 10})

	t.Run("Single entry day uses by-date", func(t *testing.T) {
		st, err := yards.Submit(ctx, resolver.FilterSet{"entry_from": "2024-01-10", "exit_to": "2024-02-28"})
		require.NoError(t, err)
		require.Len(t, st.Page.Content, 1)
		assert.Equal(t, "Pátio Norte", st.Page.Content[0].Name)
	})

	t.Run("Range falls back to get all", func(t *testing.T) {
		st, err := yards.Submit(ctx, resolver.FilterSet{"entry_from": "2024-01-01", "entry_to": "2024-01-31"})
		require.NoError(t, err)
		assert.Len(t, st.Page.Content, 2)
	})

	t.Run("Exit day", func(t *testing.T) {
		st, err := yards.Submit(ctx, resolver.FilterSet{"exit_from": "2024-03-01"})
		require.NoError(t, err)
		assert.Len(t, st.Page.Content, 2)
	})

	t.Run("Create refreshes the view", func(t *testing.T) {
		_, err := yards.Submit(ctx, resolver.FilterSet{"name": "pátio"})
		require.NoError(t, err)

		created, st, err := yards.Create(ctx, models.Yard{Name: "Pátio Leste", EntryDate: "2024-04-01", ExitDate: "2024-04-02"})
		require.NoError(t, err)
		assert.Equal(t, 4, created.ID)
		assert.Len(t, st.Page.Content, 3)
	})

	t.Run("Validation errors are displayed", func(t *testing.T) {
		_, st, err := yards.Create(ctx, models.Yard{EntryDate: "2024-04-01", ExitDate: "2024-04-02"})
		require.Error(t, err)
		assert.Equal(t, "One or more validation errors occurred.: name Name is required", st.Message)
	})

	zones := views.Zones(b.api, views.Options{PageSize: 10})
	st, err := zones.Submit(ctx, resolver.FilterSet{"name": "A"})
	require.NoError(t, err)
	assert.Equal(t, resolver.OutcomeEmpty, st.Outcome)
}

func TestBoxesView(t *testing.T) {
	b := startAPI(t)
	for _, box := range []models.Box{
		{Name: "B-01", Active: true, EntryDate: "2024-01-01", ExitDate: "2024-01-02"},
		{Name: "B-02", Active: false, EntryDate: "2024-01-01", ExitDate: "2024-01-02"},
		{Name: "C-01", Active: true, EntryDate: "2024-05-01", ExitDate: "2024-05-02"},
	} {
		_, err := b.boxes.Create(box)
		require.NoError(t, err)
	}
	ctx := context.Background()
	v := views.Boxes(b.api, views.Options{PageSize: 1})

	st, err := v.Submit(ctx, resolver.FilterSet{"status": "a"})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Page.TotalElements)
	assert.Equal(t, 1, st.Page.Content[0].ID)

	st, err = v.GoToPage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Page.Content[0].ID)
	assert.True(t, st.Page.Last)

	st, err = v.Submit(ctx, resolver.FilterSet{"name": "B-0", "status": "I"})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Page.Content[0].ID)

	st, err = v.Submit(ctx, resolver.FilterSet{"name": "C", "status": "I"})
	require.NoError(t, err)
	assert.Equal(t, resolver.OutcomeMismatch, st.Outcome)
}

func TestUnauthorizedMutationIsReported(t *testing.T) {
	b := startAPI(t)
	b.api.SetToken("")
	v := views.Boxes(b.api, views.Options{})

	_, err := v.Delete(context.Background(), 1)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.NotEmpty(t, v.State().Message)
}
