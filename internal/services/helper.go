package services

import (
	"encoding/json"
	"errors"

	"booking-service/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient coin balance")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidState        = errors.New("transaction is not in a valid state for this operation")
	ErrSlotUnavailable     = errors.New("slot is not available")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
)

type HelperService struct {
	DB *gorm.DB
}

func NewHelperService(db *gorm.DB) *HelperService {
	return &HelperService{DB: db}
}

// CreditCoins atomically increments a user's coin balance. The db handle may
// be a transaction so the credit commits together with the caller's writes.
func (s *HelperService) CreditCoins(db *gorm.DB, userId int, amount float64) error {
	if db == nil {
		db = s.DB
	}
	return db.Model(&models.User{}).
		Where("id = ?", userId).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", amount)).Error
}

// DebitCoins atomically decrements a user's coin balance. The guard on the
// current balance is part of the UPDATE itself, never a separate read, so a
// concurrent debit can not take the balance negative. Returns
// ErrInsufficientBalance when the guard rejects the update.
func (s *HelperService) DebitCoins(db *gorm.DB, userId int, amount float64) error {
	if db == nil {
		db = s.DB
	}
	res := db.Model(&models.User{}).
		Where("id = ? AND coin_balance >= ?", userId, amount).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (s *HelperService) LogCallback(request string, response interface{}, status int, trxId, method string) {
	respBytes, _ := json.Marshal(response)
	entry := models.CallbackLog{
		Request:       request,
		Response:      string(respBytes),
		Status:        status,
		RequestType:   "Webhook",
		TransactionId: trxId,
		PaymentMethod: method,
	}
	s.DB.Create(&entry)
}
