package repo

type MostTrackedVehicle struct {
	Plate         string `json:"plate"`
	TrackingCount int    `json:"tracking_count"`
}

type Metrics struct {
	TotalClients       int                `json:"total_clients"`
	TotalVehicles      int                `json:"total_vehicles"`
	TotalYards         int                `json:"total_yards"`
	TotalZones         int                `json:"total_zones"`
	TotalBoxes         int                `json:"total_boxes"`
	ActiveBoxes        int                `json:"active_boxes"`
	TotalTrackings     int                `json:"total_trackings"`
	MostTrackedVehicle MostTrackedVehicle `json:"most_tracked_vehicle"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
