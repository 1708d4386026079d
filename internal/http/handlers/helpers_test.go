package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/yard-tracker/internal/auth"
	"github.com/rogerio-castellano/yard-tracker/internal/cache"
	handler "github.com/rogerio-castellano/yard-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/yard-tracker/internal/http/router"
	"github.com/rogerio-castellano/yard-tracker/internal/models"
	"github.com/rogerio-castellano/yard-tracker/internal/repo"
)

var (
	token        string
	userToken    string
	r            http.Handler
	clientRepo   *repo.InMemoryClientRepository
	vehicleRepo  *repo.InMemoryVehicleRepository
	yardRepo     *repo.InMemoryYardRepository
	zoneRepo     *repo.InMemoryZoneRepository
	boxRepo      *repo.InMemoryBoxRepository
	trackingRepo *repo.InMemoryTrackingRepository
)

func init() {
	setupTestRepos("secret")
	tokens := auth.NewTokenService("test-secret", time.Hour)
	handler.SetTokenService(tokens)
	handler.SetCache(cache.NewMemory(time.Minute))
	r = router.NewRouter(router.Options{Tokens: tokens})

	var err error
	token, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	userToken, err = generateToken(r, "operator", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	resetRepos()

	userRepo := repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := auth.HashPassword(password)
	userRepo.CreateUser(models.User{Username: "admin", PasswordHash: hash, Role: "admin"})
	userRepo.CreateUser(models.User{Username: "operator", PasswordHash: hash, Role: "user"})
}

// resetRepos swaps in fresh repositories; ids restart from 1.
func resetRepos() {
	clientRepo = repo.NewInMemoryClientRepository()
	vehicleRepo = repo.NewInMemoryVehicleRepository()
	yardRepo = repo.NewInMemoryYardRepository()
	zoneRepo = repo.NewInMemoryZoneRepository()
	boxRepo = repo.NewInMemoryBoxRepository()
	trackingRepo = repo.NewInMemoryTrackingRepository()

	handler.SetClientRepo(clientRepo)
	handler.SetVehicleRepo(vehicleRepo)
	handler.SetYardRepo(yardRepo)
	handler.SetZoneRepo(zoneRepo)
	handler.SetBoxRepo(boxRepo)
	handler.SetTrackingRepo(trackingRepo)
	handler.SetParkingRepo(repo.NewInMemoryParkingRepository())

	metricsRepo := repo.NewInMemoryMetricsRepository()
	metricsRepo.SetRepositories(clientRepo, vehicleRepo, yardRepo, zoneRepo, boxRepo, trackingRepo)
	handler.SetMetricsRepo(metricsRepo)

	handler.SetCache(cache.NewMemory(time.Minute))
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func do(method, target string, body any, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var out T
	_ = json.NewDecoder(w.Body).Decode(&out)
	return out
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func newClient(name, surname, cpf string) models.Client {
	return models.Client{
		Name:          name,
		Surname:       surname,
		Sex:           "F",
		BirthDate:     "1990-05-20",
		CPF:           cpf,
		Profession:    "Engenheira",
		MaritalStatus: "Solteiro",
		Address:       models.Address{ZipCode: "01310100", Street: "Av. Paulista", Number: 1000, City: "São Paulo", State: "SP", Country: "Brasil"},
		Contact:       models.Contact{Email: name + "@example.com", DDD: 11, DDI: 55, Mobile: "11987654321"},
	}
}
