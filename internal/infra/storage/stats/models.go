package stats

import "github.com/m04kA/SMC-ShopAdmin/internal/domain"

type serviceUsageRow struct {
	ServiceID int64  `db:"service_id"`
	Name      string `db:"name"`
	Count     int64  `db:"bookings_count"`
}

func (r serviceUsageRow) toDomain() domain.ServiceUsage {
	return domain.ServiceUsage{
		ServiceID: r.ServiceID,
		Name:      r.Name,
		Count:     r.Count,
	}
}

type statusCountRow struct {
	Status string `db:"status"`
	Count  int64  `db:"bookings_count"`
}
