package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"
	"kidsphere_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	UserRepo    *repository.UserRepository
	Cfg         *config.Config
}

func NewPaymentService(paymentRepo *repository.PaymentRepository, userRepo *repository.UserRepository, cfg *config.Config) *PaymentService {
	return &PaymentService{
		PaymentRepo: paymentRepo,
		UserRepo:    userRepo,
		Cfg:         cfg,
	}
}

type CreateOrderRequest struct {
	Plan string `json:"plan" binding:"required,oneof=premium"`
}

type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Receipt  string `json:"receipt"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

type ConfirmPaymentRequest struct {
	Receipt   string `json:"receipt" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func (s *PaymentService) ListPlans() ([]model.PlanPrice, error) {
	return s.PaymentRepo.ListPlanPrices()
}

// CreateOrder opens a checkout for a plan upgrade and hands the client
// the receipt id plus public key the gateway widget needs.
func (s *PaymentService) CreateOrder(userID uint, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	price, err := s.PaymentRepo.FindPlanPrice(model.UserPlan(req.Plan))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order := &model.PaymentOrder{
		UserID:   userID,
		Plan:     price.Plan,
		Amount:   price.Amount,
		Currency: price.Currency,
		Receipt:  uuid.NewString(),
		Status:   model.OrderCreated,
	}
	if err := s.PaymentRepo.CreateOrder(order); err != nil {
		return nil, err
	}

	return &CreateOrderResponse{
		OrderID:  order.ID,
		Receipt:  order.Receipt,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.Cfg.Payment.KeyID,
	}, nil
}

// Confirm verifies the gateway's HMAC over "receipt|paymentId", marks
// the order paid and upgrades the user's plan. A replayed confirmation
// of an already paid order is accepted without effect.
func (s *PaymentService) Confirm(req *ConfirmPaymentRequest) (*model.PaymentOrder, error) {
	order, err := s.PaymentRepo.FindOrderByReceipt(req.Receipt)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !VerifySignature(req.Receipt, req.PaymentID, req.Signature, s.Cfg.Payment.KeySecret) {
		return nil, util.ErrBadSignature
	}

	transitioned, err := s.PaymentRepo.UpdateOrderStatus(order.ID, model.OrderPaid)
	if err != nil {
		return nil, err
	}
	if transitioned {
		if err := s.UserRepo.UpdatePlan(order.UserID, order.Plan); err != nil {
			return nil, err
		}
		logger.Log.Info("plan upgraded",
			zap.Uint("userId", order.UserID),
			zap.String("plan", string(order.Plan)),
			zap.String("receipt", order.Receipt))
	}

	order.Status = model.OrderPaid
	return order, nil
}

// VerifySignature checks the gateway HMAC-SHA256 over "receipt|paymentId".
func VerifySignature(receipt, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(receipt + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *PaymentService) ListOrders(userID uint) ([]model.PaymentOrder, error) {
	return s.PaymentRepo.ListOrdersByUser(userID)
}
