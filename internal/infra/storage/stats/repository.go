package stats

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopAdmin/pkg/psqlbuilder"
)

// Repository агрегирующие запросы для дашборда (только чтение).
// Запросы идут через DBExecutor (метрики dbmetrics), строки раскладываются в структуры через sqlx.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает репозиторий статистики
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountBookingsByStatus количество бронирований в статусе
func (r *Repository) CountBookingsByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	return r.count(ctx, "CountBookingsByStatus",
		psqlbuilder.Select("COUNT(*)").From("bookings").Where(squirrel.Eq{"status": status}))
}

// CountActiveServices количество активных услуг
func (r *Repository) CountActiveServices(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountActiveServices",
		psqlbuilder.Select("COUNT(*)").From("services").Where(squirrel.Eq{"is_active": true}))
}

// CountCustomers количество клиентов (не администраторов)
func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountCustomers",
		psqlbuilder.Select("COUNT(*)").From("users").Where(squirrel.Eq{"is_admin": false}))
}

// CountByStatuses количество бронирований по каждому статусу. Отсутствующие статусы получают 0.
func (r *Repository) CountByStatuses(ctx context.Context, statuses []domain.BookingStatus) (map[domain.BookingStatus]int64, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("status", "COUNT(*) AS bookings_count").
		From("bookings").
		Where(squirrel.Eq{"status": raw}).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatuses - build select query: %v", ErrBuildQuery, err)
	}

	var rows []statusCountRow
	if err := r.selectAll(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CountByStatuses - select: %v", ErrExecQuery, err)
	}

	counts := make(map[domain.BookingStatus]int64, len(statuses))
	for _, s := range statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[domain.BookingStatus(row.Status)] = row.Count
	}

	return counts, nil
}

// TopServices услуги с наибольшим количеством завершенных бронирований
func (r *Repository) TopServices(ctx context.Context, limit int) ([]domain.ServiceUsage, error) {
	query, args, err := topServicesQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TopServices - build select query: %v", ErrBuildQuery, err)
	}

	var rows []serviceUsageRow
	if err := r.selectAll(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: TopServices - select: %v", ErrExecQuery, err)
	}

	result := make([]domain.ServiceUsage, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}

	return result, nil
}

// MostPopularService услуга с наибольшим количеством завершенных бронирований
func (r *Repository) MostPopularService(ctx context.Context) (*domain.ServiceUsage, error) {
	query, args, err := topServicesQuery(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MostPopularService - build select query: %v", ErrBuildQuery, err)
	}

	var rows []serviceUsageRow
	if err := r.selectAll(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%w: MostPopularService - select: %v", ErrExecQuery, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	usage := rows[0].toDomain()
	return &usage, nil
}

func (r *Repository) count(ctx context.Context, op string, sb squirrel.SelectBuilder) (int64, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var totals []int64
	if err := r.selectAll(ctx, &totals, query, args...); err != nil {
		return 0, fmt.Errorf("%w: %s - select: %v", ErrExecQuery, op, err)
	}
	if len(totals) == 0 {
		return 0, nil
	}

	return totals[0], nil
}

// selectAll выполняет запрос и сканирует все строки в dest (указатель на слайс)
func (r *Repository) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	return sqlx.StructScan(rows, dest)
}

func topServicesQuery(limit int) squirrel.SelectBuilder {
	return psqlbuilder.Select("s.id AS service_id", "s.name", "COUNT(b.id) AS bookings_count").
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.status": domain.StatusCompleted}).
		GroupBy("s.id", "s.name").
		OrderBy("bookings_count DESC", "s.name ASC").
		Limit(uint64(limit))
}
