package repo

type InMemoryMetricsRepository struct {
	clients  *InMemoryClientRepository
	vehicles VehicleRepository
	yards    YardRepository
	zones    ZoneRepository
	boxes    BoxRepository
	tracking *InMemoryTrackingRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(
	clients *InMemoryClientRepository,
	vehicles VehicleRepository,
	yards YardRepository,
	zones ZoneRepository,
	boxes BoxRepository,
	tracking *InMemoryTrackingRepository,
) {
	i.clients = clients
	i.vehicles = vehicles
	i.yards = yards
	i.zones = zones
	i.boxes = boxes
	i.tracking = tracking
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	if i.clients != nil {
		m.TotalClients = i.clients.Count()
	}

	if i.vehicles != nil {
		vehicles, err := i.vehicles.GetAll()
		if err != nil {
			return m, err
		}
		m.TotalVehicles = len(vehicles)

		if i.tracking != nil {
			m.TotalTrackings = i.tracking.Count()
			counts := i.tracking.CountByVehicle()
			for _, v := range vehicles {
				if counts[v.ID] > m.MostTrackedVehicle.TrackingCount {
					m.MostTrackedVehicle.Plate = v.Plate
					m.MostTrackedVehicle.TrackingCount = counts[v.ID]
				}
			}
		}
	}

	if i.yards != nil {
		yards, err := i.yards.GetAll()
		if err != nil {
			return m, err
		}
		m.TotalYards = len(yards)
	}

	if i.zones != nil {
		zones, err := i.zones.GetAll()
		if err != nil {
			return m, err
		}
		m.TotalZones = len(zones)
	}

	if i.boxes != nil {
		boxes, err := i.boxes.GetAll()
		if err != nil {
			return m, err
		}
		m.TotalBoxes = len(boxes)
		for _, b := range boxes {
			if b.Active {
				m.ActiveBoxes++
			}
		}
	}

	return m, nil
}
