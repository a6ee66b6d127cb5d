package model

type Payment struct {
	ID            string   `json:"id" validate:"omitempty"`
	StudentID     string   `json:"studentId" validate:"required"`
	StudentName   string   `json:"studentName,omitempty" validate:"omitempty"`
	ScheduleIDs   []string `json:"scheduleIds" validate:"omitempty,dive,required"`
	Amount        float64  `json:"amount" validate:"min=0"`
	PaymentDate   string   `json:"paymentDate" validate:"required,course_date"`
	PaymentMethod string   `json:"paymentMethod" validate:"omitempty,max=50"`
	Status        string   `json:"status" validate:"required,oneof=paid pending refunded"`
	CreateTime    string   `json:"createTime" validate:"omitempty"`
}

func (p Payment) EntityID() string { return p.ID }

type PaymentUpdate struct {
	StudentID     *string   `json:"studentId,omitempty" validate:"omitempty"`
	StudentName   *string   `json:"studentName,omitempty" validate:"omitempty"`
	ScheduleIDs   *[]string `json:"scheduleIds,omitempty" validate:"omitempty,dive,required"`
	Amount        *float64  `json:"amount,omitempty" validate:"omitempty,min=0"`
	PaymentDate   *string   `json:"paymentDate,omitempty" validate:"omitempty,course_date"`
	PaymentMethod *string   `json:"paymentMethod,omitempty" validate:"omitempty,max=50"`
	Status        *string   `json:"status,omitempty" validate:"omitempty,oneof=paid pending refunded"`
}

// PaymentStatistics aggregates payment amounts by status.
type PaymentStatistics struct {
	TotalAmount    float64 `json:"totalAmount"`
	PaidAmount     float64 `json:"paidAmount"`
	PendingAmount  float64 `json:"pendingAmount"`
	RefundedAmount float64 `json:"refundedAmount"`
}
