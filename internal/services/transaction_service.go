package services

import (
	"encoding/json"
	"fmt"
	"time"

	"booking-service/internal/models"
	"booking-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefundWindow is how long an initiated hybrid transaction may wait for a
// gateway callback before the reconciliation sweep force-refunds it.
const RefundWindow = 15 * time.Minute

// TransactionService owns the transaction state machine. Every mutating
// operation runs its wallet mutation and status write in one DB transaction,
// so a crash in between can not create free money or stuck balances.
type TransactionService struct {
	DB       *gorm.DB
	Helper   *HelperService
	Gateway  PaymentGateway
	Notifier *NotificationService
}

func NewTransactionService(db *gorm.DB, helper *HelperService, gateway PaymentGateway, notifier *NotificationService) *TransactionService {
	return &TransactionService{
		DB:       db,
		Helper:   helper,
		Gateway:  gateway,
		Notifier: notifier,
	}
}

type CreatePaymentDTO struct {
	TrxType       string
	PayerId       int
	ReceiverId    int
	Amount        float64
	ContactNumber string
	ReferenceId   string
	Description   string
	Metadata      map[string]interface{}
}

type PaymentResult struct {
	Success                bool    `json:"success"`
	Message                string  `json:"message"`
	TransactionId          int     `json:"transactionId"`
	TransactionNo          string  `json:"transactionNo"`
	PaymentMode            string  `json:"paymentMode"`
	CoinAmount             float64 `json:"coinAmount"`
	ExternalAmount         float64 `json:"externalAmount"`
	ExternalPaymentMessage string  `json:"externalPaymentMessage,omitempty"`
}

func marshalMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	b, _ := json.Marshal(metadata)
	return string(b)
}

// CreateHybridTransaction splits a payment between the payer's coin balance
// and the external gateway. If the balance covers the full amount the payment
// is pure-coin and escrows immediately as pending; otherwise the available
// coins are reserved, the remainder is requested from the gateway and the
// transaction starts as initiated with a refund deadline. A gateway rejection
// rolls back everything, including the coin debit.
func (s *TransactionService) CreateHybridTransaction(data CreatePaymentDTO) (PaymentResult, error) {
	if data.Amount <= 0 {
		return PaymentResult{}, ErrInvalidAmount
	}

	var result PaymentResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var payer models.User
		if err := tx.First(&payer, data.PayerId).Error; err != nil {
			return fmt.Errorf("payer not found: %w", err)
		}

		contact := data.ContactNumber
		if contact == "" {
			contact = payer.ContactNumber
		}

		if payer.CoinBalance >= data.Amount {
			// Coins cover everything; escrow now.
			if err := s.Helper.DebitCoins(tx, data.PayerId, data.Amount); err != nil {
				return err
			}

			trx := models.Transaction{
				TransactionNo: common.GenerateTrxNo(),
				TrxType:       data.TrxType,
				PayerId:       data.PayerId,
				ReceiverId:    data.ReceiverId,
				Amount:        data.Amount,
				CoinAmount:    data.Amount,
				PaymentMode:   models.ModeCoin,
				Status:        models.StatusPending,
				Description:   data.Description,
				Metadata:      marshalMetadata(data.Metadata),
			}
			if err := tx.Create(&trx).Error; err != nil {
				return err
			}

			result = PaymentResult{
				Success:       true,
				Message:       "Payment escrowed from coin balance",
				TransactionId: trx.ID,
				TransactionNo: trx.TransactionNo,
				PaymentMode:   models.ModeCoin,
				CoinAmount:    data.Amount,
			}
			return nil
		}

		coinAmount := payer.CoinBalance
		externalAmount := data.Amount - coinAmount

		if coinAmount > 0 {
			// Reserve whatever coins are there; the guard catches a
			// concurrent spend between the read above and this debit.
			if err := s.Helper.DebitCoins(tx, data.PayerId, coinAmount); err != nil {
				return err
			}
		}

		referenceId := data.ReferenceId
		if referenceId == "" {
			referenceId = uuid.New().String()
		}

		gw, err := s.Gateway.InitiatePayment(InitiatePaymentDTO{
			ReferenceId:      referenceId,
			ContactNumber:    contact,
			Amount:           externalAmount,
			ReasonCode:       MapReasonCode(data.TrxType),
			CounterpartyName: payer.Username,
		})
		if err != nil {
			return err
		}
		if !gw.Success {
			return fmt.Errorf("payment initiation failed: %s", gw.Message)
		}

		// The reference we sent is the correlation key: callbacks echo it
		// back as utilityref and slot locks carry it too. The gateway's own
		// transaction id only matters for support lookups.
		externalId := referenceId
		deadline := time.Now().Add(RefundWindow)
		trx := models.Transaction{
			TransactionNo:     common.GenerateTrxNo(),
			TrxType:           data.TrxType,
			PayerId:           data.PayerId,
			ReceiverId:        data.ReceiverId,
			Amount:            data.Amount,
			CoinAmount:        coinAmount,
			ExternalAmount:    externalAmount,
			PaymentMode:       models.ModeHybrid,
			Status:            models.StatusInitiated,
			ExternalPaymentId: &externalId,
			RefundTimer:       &deadline,
			Description:       data.Description,
			Metadata:          marshalMetadata(data.Metadata),
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		result = PaymentResult{
			Success:                true,
			Message:                "Payment initiated",
			TransactionId:          trx.ID,
			TransactionNo:          trx.TransactionNo,
			PaymentMode:            models.ModeHybrid,
			CoinAmount:             coinAmount,
			ExternalAmount:         externalAmount,
			ExternalPaymentMessage: gw.Message,
		}
		return nil
	})
	if err != nil {
		return PaymentResult{}, err
	}

	// Coin-only payments get their notification here; hybrid ones notify
	// once the gateway confirms, in the callback processor.
	if result.PaymentMode == models.ModeCoin {
		s.Notifier.Notify(data.PayerId, "payment-escrowed", result.TransactionNo)
	}

	return result, nil
}

// CreateTransaction is the simple path without the auto-split: pure coin
// (debits immediately, rejects on insufficient balance) or pure external (the
// caller settles the money elsewhere).
func (s *TransactionService) CreateTransaction(data CreatePaymentDTO, paymentMode string) (PaymentResult, error) {
	if data.Amount <= 0 {
		return PaymentResult{}, ErrInvalidAmount
	}
	if paymentMode != models.ModeCoin && paymentMode != models.ModeExternal {
		return PaymentResult{}, fmt.Errorf("unsupported payment mode: %q", paymentMode)
	}

	var result PaymentResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		trx := models.Transaction{
			TransactionNo: common.GenerateTrxNo(),
			TrxType:       data.TrxType,
			PayerId:       data.PayerId,
			ReceiverId:    data.ReceiverId,
			Amount:        data.Amount,
			PaymentMode:   paymentMode,
			Status:        models.StatusPending,
			Description:   data.Description,
			Metadata:      marshalMetadata(data.Metadata),
		}

		if paymentMode == models.ModeCoin {
			if err := s.Helper.DebitCoins(tx, data.PayerId, data.Amount); err != nil {
				return err
			}
			trx.CoinAmount = data.Amount
		} else {
			trx.ExternalAmount = data.Amount
		}

		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		result = PaymentResult{
			Success:        true,
			Message:        "Transaction created",
			TransactionId:  trx.ID,
			TransactionNo:  trx.TransactionNo,
			PaymentMode:    paymentMode,
			CoinAmount:     trx.CoinAmount,
			ExternalAmount: trx.ExternalAmount,
		}
		return nil
	})
	if err != nil {
		return PaymentResult{}, err
	}
	return result, nil
}

// transition writes the status change with a guard on the prior status, so a
// concurrent writer that already moved the record causes a no-op here.
func transition(tx *gorm.DB, trxId int, from, to string, updates map[string]interface{}) error {
	if !models.CanTransition(from, to) {
		return ErrInvalidState
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to
	res := tx.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", trxId, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}

// CompleteTransaction releases escrowed funds to the receiver. Valid only
// from pending; a second call is rejected without a double credit.
func (s *TransactionService) CompleteTransaction(transactionId int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.First(&trx, transactionId).Error; err != nil {
			return ErrTransactionNotFound
		}
		if trx.Status != models.StatusPending {
			return ErrInvalidState
		}

		if err := transition(tx, trx.ID, models.StatusPending, models.StatusCompleted,
			map[string]interface{}{"refund_timer": nil}); err != nil {
			return err
		}

		return s.Helper.CreditCoins(tx, trx.ReceiverId, trx.Amount)
	})
}

// CancelTransaction returns escrowed value to the payer as coins. The
// external portion of a hybrid payment is also returned as coins; the
// gateway charge is never reversed directly.
func (s *TransactionService) CancelTransaction(transactionId int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.First(&trx, transactionId).Error; err != nil {
			return ErrTransactionNotFound
		}
		if trx.Status != models.StatusPending {
			return ErrInvalidState
		}

		if err := transition(tx, trx.ID, models.StatusPending, models.StatusCancelled, nil); err != nil {
			return err
		}

		return s.Helper.CreditCoins(tx, trx.PayerId, trx.Amount)
	})
}

// RefundTransaction is the admin reversal of an already completed payment:
// the receiver is debited and the payer credited. This is the only edge out
// of completed.
func (s *TransactionService) RefundTransaction(transactionId int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.First(&trx, transactionId).Error; err != nil {
			return ErrTransactionNotFound
		}
		if trx.Status != models.StatusCompleted {
			return ErrInvalidState
		}

		if err := transition(tx, trx.ID, models.StatusCompleted, models.StatusRefunded, nil); err != nil {
			return err
		}

		if err := s.Helper.DebitCoins(tx, trx.ReceiverId, trx.Amount); err != nil {
			return err
		}
		return s.Helper.CreditCoins(tx, trx.PayerId, trx.Amount)
	})
}

// AdminAdjustWallet records a direct admin credit or debit as a completed
// transaction so the audit trail stays complete.
func (s *TransactionService) AdminAdjustWallet(userId int, amount float64, trxType, description string) (PaymentResult, error) {
	if amount <= 0 {
		return PaymentResult{}, ErrInvalidAmount
	}
	if trxType != models.TrxAdminCredit && trxType != models.TrxAdminDebit {
		return PaymentResult{}, fmt.Errorf("unsupported adjustment type: %q", trxType)
	}

	var result PaymentResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		trx := models.Transaction{
			TransactionNo: common.GenerateTrxNo(),
			TrxType:       trxType,
			Amount:        amount,
			CoinAmount:    amount,
			PaymentMode:   models.ModeCoin,
			Status:        models.StatusCompleted,
			Description:   description,
		}

		if trxType == models.TrxAdminCredit {
			trx.ReceiverId = userId
			if err := s.Helper.CreditCoins(tx, userId, amount); err != nil {
				return err
			}
		} else {
			trx.PayerId = userId
			if err := s.Helper.DebitCoins(tx, userId, amount); err != nil {
				return err
			}
		}

		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		result = PaymentResult{
			Success:       true,
			Message:       "Wallet adjusted",
			TransactionId: trx.ID,
			TransactionNo: trx.TransactionNo,
			PaymentMode:   models.ModeCoin,
			CoinAmount:    amount,
		}
		return nil
	})
	if err != nil {
		return PaymentResult{}, err
	}
	return result, nil
}

type ListTransactionsDTO struct {
	UserId    int
	TrxType   string
	Status    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// ListTransactions is the read-only collection scan consumed by dashboards.
func (s *TransactionService) ListTransactions(data ListTransactionsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{})
	if data.UserId != 0 {
		query = query.Where("payer_id = ? OR receiver_id = ?", data.UserId, data.UserId)
	}
	if data.TrxType != "" {
		query = query.Where("transaction_type = ?", data.TrxType)
	}
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.StartDate != "" {
		query = query.Where("DATE(created_at) >= ?", data.StartDate)
	}
	if data.EndDate != "" {
		query = query.Where("DATE(created_at) <= ?", data.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, "Transactions fetched"), nil
}
