package payment

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

const tableName = "payments"

var detailsColumns = []string{
	"p.id",
	"p.user_id",
	"p.booking_id",
	"p.amount",
	"p.reference_number",
	"p.payment_proof",
	"p.status",
	"p.created_at",
	"p.updated_at",
	"b.booking_number",
	"u.name",
	"u.email",
}

var searchColumns = []string{
	"p.reference_number",
	"CAST(b.booking_number AS TEXT)",
	"u.name",
	"u.email",
}

// Repository репозиторий оплат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оплат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает оплату
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("user_id", "booking_id", "amount", "reference_number", "payment_proof", "status").
		Values(payment.UserID, payment.BookingID, payment.Amount, payment.ReferenceNumber, payment.PaymentProof, payment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if pgerr.IsForeignKeyViolation(err) {
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает оплату с номером бронирования и клиентом
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PaymentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"p.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// List получает страницу оплат и общее количество по фильтру
func (r *Repository) List(ctx context.Context, filter domain.PaymentFilter, page domain.Page) ([]*domain.PaymentDetails, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyWhere(
		psqlbuilder.Select("COUNT(*)").
			From(tableName+" p").
			Join("bookings b ON b.id = p.booking_id").
			Join("users u ON u.id = p.user_id"),
		filter,
	).ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := applyWhere(detailsSelect(), filter).
		OrderBy("p.created_at DESC", "p.id DESC").
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

	payments := make([]*domain.PaymentDetails, 0)
	for rows.Next() {
		payment, err := scanDetails(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return payments, total, nil
}

// Update обновляет номер референса, сумму и статус оплаты
func (r *Repository) Update(ctx context.Context, payment *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("reference_number", payment.ReferenceNumber).
		Set("amount", payment.Amount).
		Set("status", payment.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": payment.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err) {
		return ErrDuplicateReference
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// Delete удаляет оплату
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
		From(tableName + " p").
		Join("bookings b ON b.id = p.booking_id").
		Join("users u ON u.id = p.user_id")
}

func applyWhere(sb squirrel.SelectBuilder, filter domain.PaymentFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		sb = sb.Where(psqlbuilder.ILike(filter.Search, searchColumns...))
	}
	return sb
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row rowScanner) (*domain.PaymentDetails, error) {
	var payment domain.PaymentDetails
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.BookingID,
		&payment.Amount,
		&payment.ReferenceNumber,
		&payment.PaymentProof,
		&payment.Status,
		&createdAt,
		&updatedAt,
		&payment.BookingNumber,
		&payment.UserName,
		&payment.UserEmail,
	)
	if err != nil {
		return nil, err
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
