package models

import (
	"time"

	"github.com/m04kA/SMC-ShopAdmin/internal/domain"
)

// CreatePaymentRequest данные новой оплаты
type CreatePaymentRequest struct {
	BookingID       int64
	Amount          float64
	ReferenceNumber string
	PaymentProof    *string // Путь к файлу чека
}

// UpdatePaymentRequest данные для изменения оплаты
type UpdatePaymentRequest struct {
	ReferenceNumber string
	Amount          float64
	Status          string
}

// PaymentResponse данные оплаты
type PaymentResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	BookingID       int64     `json:"bookingId"`
	BookingNumber   int64     `json:"bookingNumber"`
	UserName        string    `json:"userName"`
	UserEmail       string    `json:"userEmail"`
	Amount          float64   `json:"amount"`
	FormattedAmount string    `json:"formattedAmount"`
	ReferenceNumber string    `json:"referenceNumber"`
	PaymentProof    *string   `json:"paymentProof,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PaymentListResponse страница оплат
type PaymentListResponse struct {
	Payments   []PaymentResponse
	Pagination domain.PageInfo
}

// FromDomainPaymentDetails конвертирует domain модель в DTO
func FromDomainPaymentDetails(p *domain.PaymentDetails) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		BookingID:       p.BookingID,
		BookingNumber:   p.BookingNumber,
		UserName:        p.UserName,
		UserEmail:       p.UserEmail,
		Amount:          p.Amount,
		FormattedAmount: domain.FormatPeso(p.Amount),
		ReferenceNumber: p.ReferenceNumber,
		PaymentProof:    p.PaymentProof,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainPaymentDetailsList конвертирует список domain моделей в DTO
func FromDomainPaymentDetailsList(payments []*domain.PaymentDetails) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		if dto := FromDomainPaymentDetails(p); dto != nil {
			resp = append(resp, *dto)
		}
	}
	return resp
}
