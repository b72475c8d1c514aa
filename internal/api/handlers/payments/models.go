package payments

import "github.com/m04kA/SMC-ShopAdmin/internal/service/payments/models"

// CreatePaymentRequest HTTP запрос на регистрацию оплаты
type CreatePaymentRequest struct {
	BookingID       int64   `json:"bookingId" validate:"required,gt=0"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	ReferenceNumber string  `json:"referenceNumber" validate:"required,max=255"`
	PaymentProof    *string `json:"paymentProof" validate:"omitempty,max=255"`
}

func (r *CreatePaymentRequest) toServiceRequest() *models.CreatePaymentRequest {
	return &models.CreatePaymentRequest{
		BookingID:       r.BookingID,
		Amount:          r.Amount,
		ReferenceNumber: r.ReferenceNumber,
		PaymentProof:    r.PaymentProof,
	}
}

// UpdatePaymentRequest HTTP запрос на изменение оплаты
type UpdatePaymentRequest struct {
	ReferenceNumber string  `json:"referenceNumber" validate:"required,max=255"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Status          string  `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (r *UpdatePaymentRequest) toServiceRequest() *models.UpdatePaymentRequest {
	return &models.UpdatePaymentRequest{
		ReferenceNumber: r.ReferenceNumber,
		Amount:          r.Amount,
		Status:          r.Status,
	}
}
