package model

// PlanPrice is a seeded price row for a subscription plan.
type PlanPrice struct {
	BaseModel
	Plan     UserPlan `gorm:"size:20;unique;not null" json:"plan"`
	Amount   int      `gorm:"not null" json:"amount"` // smallest currency unit
	Currency string   `gorm:"size:10;default:'INR'" json:"currency"`
}

func (PlanPrice) TableName() string {
	return "plan_prices"
}

type OrderStatus string

const (
	OrderCreated OrderStatus = "created"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// PaymentOrder tracks one checkout with the external gateway. The
// gateway callback confirms it by receipt id plus HMAC signature.
type PaymentOrder struct {
	UUIDBase
	UserID   uint        `gorm:"index;not null" json:"userId"`
	Plan     UserPlan    `gorm:"size:20;not null" json:"plan"`
	Amount   int         `gorm:"not null" json:"amount"`
	Currency string      `gorm:"size:10;default:'INR'" json:"currency"`
	Receipt  string      `gorm:"size:64;uniqueIndex" json:"receipt"`
	Status   OrderStatus `gorm:"size:20;default:'created'" json:"status"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
