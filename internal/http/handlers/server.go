package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/yard-tracker/internal/auth"
	"github.com/rogerio-castellano/yard-tracker/internal/cache"
	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

var (
	clientRepo   repo.ClientRepository
	vehicleRepo  repo.VehicleRepository
	yardRepo     repo.YardRepository
	zoneRepo     repo.ZoneRepository
	boxRepo      repo.BoxRepository
	trackingRepo repo.TrackingRepository
	metricsRepo  repo.MetricsRepository
	userRepo     repo.UserRepository
	parkingRepo  repo.ParkingRepository = repo.NewInMemoryParkingRepository()

	tokens    *auth.TokenService
	pageCache cache.Cache = cache.Nop{}
	logger                = zap.NewNop()
)

func SetClientRepo(r repo.ClientRepository) {
	clientRepo = r
}

func SetVehicleRepo(r repo.VehicleRepository) {
	vehicleRepo = r
}

func SetYardRepo(r repo.YardRepository) {
	yardRepo = r
}

func SetZoneRepo(r repo.ZoneRepository) {
	zoneRepo = r
}

func SetBoxRepo(r repo.BoxRepository) {
	boxRepo = r
}

func SetTrackingRepo(r repo.TrackingRepository) {
	trackingRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetParkingRepo(r repo.ParkingRepository) {
	parkingRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetTokenService(s *auth.TokenService) {
	tokens = s
}

// SetCache installs the list cache. nil restores the no-op cache.
func SetCache(c cache.Cache) {
	if c == nil {
		c = cache.Nop{}
	}
	pageCache = c
}

func SetLogger(l *zap.Logger) {
	logger = l
}
