package handlers_test

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/rogerio-castellano/yard-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

func createVehicle(t *testing.T, plate, model string) models.Vehicle {
	t.Helper()
	w := do(http.MethodPost, "/vehicles", models.Vehicle{Plate: plate, Model: model, Manufacturer: "Mottu", Year: 2023, Fuel: "Gasolina"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Vehicle](w)
}

func TestVehicleHandlers(t *testing.T) {
	resetRepos()
	createVehicle(t, "abc1d23", "Mottu Sport")
	createVehicle(t, "DEF4567", "Honda Pop 110i")

	t.Run("Plate is normalized to upper case", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ABC1D23", decode[models.Vehicle](w).Plate)
	})

	t.Run("Get all", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]models.Vehicle](w), 2)
	})

	t.Run("By plate and by model", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/by-plate/def4567", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, decode[models.Vehicle](w).ID)

		w = do(http.MethodGet, "/vehicles/search-by-model?model=sport", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		found := decode[[]models.Vehicle](w)
		require.Len(t, found, 1)
		assert.Equal(t, "ABC1D23", found[0].Plate)

		w = do(http.MethodGet, "/vehicles/by-plate/ZZZ9Z99", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid vehicle", func(t *testing.T) {
		w := do(http.MethodPost, "/vehicles", models.Vehicle{Plate: "12", Fuel: "Vapor"}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[handler.ValidationErrorResponse](w)
		assert.Contains(t, resp.Errors, "plate")
		assert.Contains(t, resp.Errors, "model")
		assert.Contains(t, resp.Errors, "fuel")
	})

	t.Run("Duplicate plate", func(t *testing.T) {
		w := do(http.MethodPost, "/vehicles", models.Vehicle{Plate: "ABC1D23", Model: "Other"}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTrackingHandlers(t *testing.T) {
	resetRepos()
	v := createVehicle(t, "GHI7J89", "Mottu E")

	t.Run("Location without tracking", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1/location", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		loc := decode[models.VehicleLocation](w)
		assert.Equal(t, v.Plate, loc.Plate)
		assert.Nil(t, loc.LastTracking)
	})

	for _, ts := range []string{"2024-03-01T10:00:00Z", "2024-03-02T10:00:00Z", "2024-03-03T10:00:00Z"} {
		w := do(http.MethodPost, "/vehicles/1/tracking", models.Tracking{Latitude: -23.5, Longitude: -46.6, CreatedAt: ts}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	t.Run("Invalid reading", func(t *testing.T) {
		w := do(http.MethodPost, "/vehicles/1/tracking", models.Tracking{Latitude: 120}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(http.MethodPost, "/vehicles/99/tracking", models.Tracking{}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("History is paged newest first", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1/tracking?limit=2", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[handler.TrackingSearchResult](w)
		assert.Equal(t, 3, resp.Meta.TotalCount)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "2024-03-03T10:00:00Z", resp.Data[0].CreatedAt)
	})

	t.Run("History with timezone offset", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1/tracking?since=2024-03-02T07:00:00+03:00", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, decode[handler.TrackingSearchResult](w).Meta.TotalCount)

		w = do(http.MethodGet, "/vehicles/1/tracking?limit=0", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Location uses the latest reading", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1/location", nil, "")
		loc := decode[models.VehicleLocation](w)
		require.NotNil(t, loc.LastTracking)
		assert.Equal(t, "2024-03-03T10:00:00Z", loc.LastTracking.CreatedAt)
	})

	t.Run("Export CSV", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1/tracking/export?format=csv", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

		records, err := csv.NewReader(w.Body).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 4)
		assert.Equal(t, "vehicle_id", records[0][1])
	})

	t.Run("Export rejects unknown format", func(t *testing.T) {
		w := do(http.MethodGet, "/vehicles/1/tracking/export?format=xml", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestImportVehiclesHandler(t *testing.T) {
	resetRepos()

	importCSV := func(content, mode string) handler.ImportVehiclesResult {
		body, contentType := multipartCSV(content, "vehicles.csv")
		req := httptest.NewRequest(http.MethodPost, "/vehicles/import?mode="+mode, body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[handler.ImportVehiclesResult](w)
	}

	t.Run("Valid rows and one invalid", func(t *testing.T) {
		resp := importCSV(`plate,model,manufacturer,year,fuel
ABC1D23,Mottu Sport,Mottu,2023,Gasolina
BAD,Pop,Honda,2020,Flex
XYZ9K88,Mottu E,Mottu,2024,Elétrico`, "")

		assert.Equal(t, 2, resp.ImportedVehiclesCount)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, 3, resp.Errors[0].Row)
		assert.True(t, strings.Contains(resp.Errors[0].Description, "invalid values"))
	})

	t.Run("Skip mode reports existing plates", func(t *testing.T) {
		resp := importCSV("plate,model\nABC1D23,Mottu Sport 2\n", "skip")
		assert.Equal(t, 0, resp.ImportedVehiclesCount)
		require.Len(t, resp.Errors, 1)
		assert.Contains(t, resp.Errors[0].Description, "already exists")
	})

	t.Run("Update mode overwrites", func(t *testing.T) {
		resp := importCSV("plate,model\nabc1d23,Mottu Sport 2\n", "update")
		assert.Equal(t, 1, resp.ImportedVehiclesCount)

		w := do(http.MethodGet, "/vehicles/by-plate/ABC1D23", nil, "")
		assert.Equal(t, "Mottu Sport 2", decode[models.Vehicle](w).Model)
	})

	t.Run("Missing model column", func(t *testing.T) {
		body, contentType := multipartCSV("plate\nABC1D23\n", "vehicles.csv")
		req := httptest.NewRequest(http.MethodPost, "/vehicles/import", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
