package repo

import "time"

type TrackingFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
