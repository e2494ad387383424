package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/internal/model"
	"kidsphere_backend/internal/repository"
	"kidsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testKeySecret = "test-secret"

func newPaymentService(db *gorm.DB) *PaymentService {
	cfg := &config.Config{}
	cfg.Payment.KeyID = "key_test"
	cfg.Payment.KeySecret = testKeySecret
	return NewPaymentService(repository.NewPaymentRepository(db), repository.NewUserRepository(db), cfg)
}

func sign(receipt, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(receipt + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	sig := sign("rcpt_1", "pay_1")
	assert.True(t, VerifySignature("rcpt_1", "pay_1", sig, testKeySecret))
	assert.False(t, VerifySignature("rcpt_1", "pay_2", sig, testKeySecret))
	assert.False(t, VerifySignature("rcpt_1", "pay_1", sig, "wrong-secret"))
	assert.False(t, VerifySignature("rcpt_1", "pay_1", "", testKeySecret))
}

func TestCreateOrderUsesPlanPrice(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newPaymentService(db)

	resp, err := svc.CreateOrder(user.ID, &CreateOrderRequest{Plan: "premium"})
	require.NoError(t, err)
	assert.Equal(t, 29900, resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "key_test", resp.KeyID)
	assert.NotEmpty(t, resp.OrderID)
	assert.NotEmpty(t, resp.Receipt)
}

func TestConfirmUpgradesPlanOnce(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newPaymentService(db)

	resp, err := svc.CreateOrder(user.ID, &CreateOrderRequest{Plan: "premium"})
	require.NoError(t, err)

	req := &ConfirmPaymentRequest{
		Receipt:   resp.Receipt,
		PaymentID: "pay_1",
		Signature: sign(resp.Receipt, "pay_1"),
	}
	order, err := svc.Confirm(req)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPaid, order.Status)

	var upgraded model.User
	require.NoError(t, db.First(&upgraded, user.ID).Error)
	assert.Equal(t, model.PlanPremium, upgraded.Plan)

	// Replayed confirmation is accepted without another transition.
	order, err = svc.Confirm(req)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPaid, order.Status)
}

func TestConfirmRejectsBadSignature(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserWithChild(t, db, time.Now().AddDate(-8, 0, 0))
	svc := newPaymentService(db)

	resp, err := svc.CreateOrder(user.ID, &CreateOrderRequest{Plan: "premium"})
	require.NoError(t, err)

	_, err = svc.Confirm(&ConfirmPaymentRequest{
		Receipt:   resp.Receipt,
		PaymentID: "pay_1",
		Signature: "deadbeef",
	})
	assert.ErrorIs(t, err, util.ErrBadSignature)

	var order model.PaymentOrder
	require.NoError(t, db.Where("receipt = ?", resp.Receipt).First(&order).Error)
	assert.Equal(t, model.OrderCreated, order.Status)
}

func TestConfirmUnknownReceipt(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db)

	_, err := svc.Confirm(&ConfirmPaymentRequest{
		Receipt:   "missing",
		PaymentID: "pay_1",
		Signature: sign("missing", "pay_1"),
	})
	assert.ErrorIs(t, err, util.ErrOrderNotFound)
}
