package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
	"github.com/m04kA/SMC-ShopAdmin/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopAdmin/pkg/pgerr"
	"github.com/m04kA/SMC-ShopAdmin/pkg/psqlbuilder"
)

const (
	tableName = "bookings"

	// numberConstraint уникальный индекс номера бронирования
	numberConstraint = "bookings_booking_number_key"
)

var bookingColumns = []string{
	"b.id",
	"b.booking_number",
	"b.user_id",
	"b.service_id",
	"b.scheduled_at",
	"b.status",
	"b.notes",
	"b.total_amount",
	"b.created_at",
	"b.updated_at",
}

var detailsColumns = append(append([]string{}, bookingColumns...),
	"u.name",
	"u.email",
	"u.phone",
	"s.name",
	"s.price",
)

// searchColumns колонки для поиска в админском списке
var searchColumns = []string{
	"CAST(b.booking_number AS TEXT)",
	"b.status",
	"s.name",
	"u.name",
	"u.email",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если номер бронирования уже занят, строка не вставляется и возвращается ErrDuplicateNumber.
// Конфликт номера не прерывает внешнюю транзакцию (ON CONFLICT DO NOTHING),
// поэтому вызывающий код может повторить вставку с другим номером в той же транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"booking_number",
			"user_id",
			"service_id",
			"scheduled_at",
			"status",
			"notes",
			"total_amount",
		).
		Values(
			booking.BookingNumber,
			booking.UserID,
			booking.ServiceID,
			booking.ScheduledAt,
			booking.Status,
			booking.Notes,
			booking.TotalAmount,
		).
		Suffix("ON CONFLICT (booking_number) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateNumber
	}
	if pgerr.IsForeignKeyViolation(err) {
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// ExistsByNumber проверяет, занят ли номер бронирования
func (r *Repository) ExistsByNumber(ctx context.Context, number int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableName).
		Where(squirrel.Eq{"booking_number": number}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByNumber - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByNumber - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableName + " b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetDetailsByID получает бронирование вместе с клиентом и услугой
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan booking: %v", ErrScanRow, err)
	}

	return details, nil
}

// GetAll получает бронирования по фильтру без пагинации.
// Используется агрегатором дашборда: одним запросом за всё окно.
func (r *Repository) GetAll(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(bookingColumns...).From(tableName+" b"),
		filter,
		false,
	)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetDetails получает бронирования с клиентом и услугой по фильтру без пагинации
func (r *Repository) GetDetails(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(detailsSelect(), filter, true).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// List получает страницу бронирований с клиентом и услугой и общее количество по фильтру
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter, page domain.Page) ([]*domain.BookingDetails, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyWhere(
		psqlbuilder.Select("COUNT(*)").
			From(tableName+" b").
			Join("users u ON u.id = b.user_id").
			Join("services s ON s.id = b.service_id"),
		filter,
		true,
	).ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := applyFilter(detailsSelect(), filter, true).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanDetailsRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Update обновляет все изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("booking_number", booking.BookingNumber).
		Set("user_id", booking.UserID).
		Set("service_id", booking.ServiceID).
		Set("scheduled_at", booking.ScheduledAt).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("total_amount", booking.TotalAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err, numberConstraint) {
		return ErrDuplicateNumber
	}
	if pgerr.IsForeignKeyViolation(err) {
		return ErrReferenceNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// Delete удаляет бронирование (физическое удаление, оплаты удаляются каскадно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From(tableName + " b").
		Join("users u ON u.id = b.user_id").
		Join("services s ON s.id = b.service_id")
}

// applyFilter добавляет условия фильтра и сортировку
func applyFilter(sb squirrel.SelectBuilder, filter domain.BookingFilter, joined bool) squirrel.SelectBuilder {
	sb = applyWhere(sb, filter, joined)

	if filter.NewestFirst {
		return sb.OrderBy("b.scheduled_at DESC", "b.id DESC")
	}
	return sb.OrderBy("b.created_at DESC", "b.id DESC")
}

// applyWhere добавляет условия фильтра. Поиск требует join с users и services (joined = true).
func applyWhere(sb squirrel.SelectBuilder, filter domain.BookingFilter, joined bool) squirrel.SelectBuilder {
	if filter.UserID != nil {
		sb = sb.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		sb = sb.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.ScheduledFrom != nil {
		sb = sb.Where(squirrel.GtOrEq{"b.scheduled_at": *filter.ScheduledFrom})
	}
	if filter.ScheduledUntil != nil {
		sb = sb.Where(squirrel.Lt{"b.scheduled_at": *filter.ScheduledUntil})
	}
	if joined && filter.Search != "" {
		sb = sb.Where(psqlbuilder.ILike(filter.Search, searchColumns...))
	}

	return sb
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.UserID,
		&booking.ServiceID,
		&booking.ScheduledAt,
		&booking.Status,
		&booking.Notes,
		&booking.TotalAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanDetails(row rowScanner) (*domain.BookingDetails, error) {
	var details domain.BookingDetails
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&details.ID,
		&details.BookingNumber,
		&details.UserID,
		&details.ServiceID,
		&details.ScheduledAt,
		&details.Status,
		&details.Notes,
		&details.TotalAmount,
		&createdAt,
		&updatedAt,
		&details.UserName,
		&details.UserEmail,
		&details.UserPhone,
		&details.ServiceName,
		&details.ServicePrice,
	)
	if err != nil {
		return nil, err
	}

	details.CreatedAt = createdAt.Time
	details.UpdatedAt = updatedAt.Time

	return &details, nil
}

// scanDetailsRows сканирует результаты запроса в слайс бронирований
func scanDetailsRows(rows *sql.Rows) ([]*domain.BookingDetails, error) {
	bookings := make([]*domain.BookingDetails, 0)

	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
