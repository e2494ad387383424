package repository

import (
	"kidsphere_backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) FindPlanPrice(plan model.UserPlan) (*model.PlanPrice, error) {
	var p model.PlanPrice
	err := r.DB.Where("plan = ?", plan).First(&p).Error
	return &p, err
}

func (r *PaymentRepository) ListPlanPrices() ([]model.PlanPrice, error) {
	var prices []model.PlanPrice
	err := r.DB.Order("amount asc").Find(&prices).Error
	return prices, err
}

func (r *PaymentRepository) CreateOrder(order *model.PaymentOrder) error {
	return r.DB.Create(order).Error
}

func (r *PaymentRepository) FindOrderByReceipt(receipt string) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	err := r.DB.Where("receipt = ?", receipt).First(&o).Error
	return &o, err
}

// UpdateOrderStatus transitions an order out of created exactly once.
func (r *PaymentRepository) UpdateOrderStatus(id string, status model.OrderStatus) (bool, error) {
	res := r.DB.Model(&model.PaymentOrder{}).
		Where("id = ? AND status = ?", id, model.OrderCreated).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepository) ListOrdersByUser(userID uint) ([]model.PaymentOrder, error) {
	var orders []model.PaymentOrder
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error
	return orders, err
}
