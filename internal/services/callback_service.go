package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"booking-service/internal/models"
	"booking-service/pkg/common"
	"booking-service/pkg/lock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PaymentCallbackService consumes asynchronous gateway callbacks and
// converges transaction state plus every domain entity that depends on it.
// The same refund-and-cascade path also serves the timeout sweep, so an
// abandoned payment and an explicit failure callback end up identical.
type PaymentCallbackService struct {
	DB       *gorm.DB
	Helper   *HelperService
	Gateway  PaymentGateway
	Notifier *NotificationService
	Redis    *redis.Client
}

func NewPaymentCallbackService(db *gorm.DB, helper *HelperService, gateway PaymentGateway, notifier *NotificationService, rdb *redis.Client) *PaymentCallbackService {
	return &PaymentCallbackService{
		DB:       db,
		Helper:   helper,
		Gateway:  gateway,
		Notifier: notifier,
		Redis:    rdb,
	}
}

func confirmedEvent(trxType string) string {
	switch trxType {
	case models.TrxAppointment:
		return "appointment-payment-confirmed"
	case models.TrxDedication:
		return "dedication-payment-confirmed"
	case models.TrxLiveShowAttend:
		return "liveshow-ticket-confirmed"
	case models.TrxLiveShowHost:
		return "liveshow-hosting-confirmed"
	case models.TrxBecomeStar:
		return "star-promotion-completed"
	default:
		return "payment-confirmed"
	}
}

// ProcessPaymentCallback handles one inbound gateway callback. Redelivery is
// safe: a transaction already past initiated/pending is a success no-op, and
// the status write itself is conditional on the prior state.
func (s *PaymentCallbackService) ProcessPaymentCallback(raw map[string]interface{}) (common.SuccessResponse, error) {
	rawBytes, _ := json.Marshal(raw)

	data, err := s.Gateway.ValidateCallbackData(raw)
	if err != nil {
		s.Helper.LogCallback(string(rawBytes), err.Error(), 0, "", "AzamPay")
		return common.SuccessResponse{}, fmt.Errorf("invalid callback payload: %w", err)
	}

	var trx models.Transaction
	if err := s.DB.Where("external_payment_id = ?", data.TransactionId).First(&trx).Error; err != nil {
		s.Helper.LogCallback(string(rawBytes), "Transaction not found", 0, data.TransactionId, "AzamPay")
		return common.SuccessResponse{}, ErrTransactionNotFound
	}

	// Serialize processing per transaction. The conditional updates below
	// remain the correctness guarantee; the lock avoids duplicate work when
	// the gateway redelivers concurrently.
	if s.Redis != nil {
		ctx := context.Background()
		l := lock.NewTransactionLock(s.Redis, trx.TransactionNo, uuid.New().String())
		if err := l.Lock(ctx, 200*time.Millisecond, 25); err != nil {
			return common.SuccessResponse{}, fmt.Errorf("callback for %s is already being processed: %w", trx.TransactionNo, err)
		}
		defer l.Unlock(ctx)

		// Re-read after acquiring the lock; another delivery may have won.
		if err := s.DB.First(&trx, trx.ID).Error; err != nil {
			return common.SuccessResponse{}, err
		}
	}

	if trx.Status == models.StatusCompleted {
		s.Helper.LogCallback(string(rawBytes), "Transaction already completed", 1, data.TransactionId, "AzamPay")
		return common.NewSuccessResponse(nil, "Transaction already processed"), nil
	}
	if trx.Status != models.StatusInitiated && trx.Status != models.StatusPending {
		s.Helper.LogCallback(string(rawBytes), "Transaction in terminal state "+trx.Status, 1, data.TransactionId, "AzamPay")
		return common.NewSuccessResponse(nil, "Transaction already resolved"), nil
	}

	if data.Status == CallbackSuccess {
		if err := s.completeFromCallback(&trx); err != nil {
			s.Helper.LogCallback(string(rawBytes), err.Error(), 0, data.TransactionId, "AzamPay")
			return common.SuccessResponse{}, err
		}
		s.Helper.LogCallback(string(rawBytes), "Completed", 1, data.TransactionId, "AzamPay")

		s.Notifier.Notify(trx.PayerId, "payment-confirmed", trx.TransactionNo)
		s.Notifier.Notify(trx.ReceiverId, confirmedEvent(trx.TrxType), trx.TransactionNo)
		return common.NewSuccessResponse(nil, "Transaction completed"), nil
	}

	if err := s.RefundAndCascade(&trx); err != nil {
		s.Helper.LogCallback(string(rawBytes), err.Error(), 0, data.TransactionId, "AzamPay")
		return common.SuccessResponse{}, err
	}
	s.Helper.LogCallback(string(rawBytes), "Failed and refunded", 1, data.TransactionId, "AzamPay")

	s.Notifier.Notify(trx.PayerId, "payment-refunded", trx.TransactionNo)
	return common.NewSuccessResponse(nil, "Transaction failed and refunded"), nil
}

// completeFromCallback credits the receiver the full amount, marks the
// transaction completed and flips every dependent entity to the escrowed
// payment state. Entity "pending" means escrowed awaiting service delivery,
// not the transaction's own pending.
func (s *PaymentCallbackService) completeFromCallback(trx *models.Transaction) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status IN ?", trx.ID, []string{models.StatusInitiated, models.StatusPending}).
			Updates(map[string]interface{}{
				"status":       models.StatusCompleted,
				"refund_timer": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race; the winner already converged.
			return nil
		}

		if err := s.Helper.CreditCoins(tx, trx.ReceiverId, trx.Amount); err != nil {
			return err
		}

		entityUpdates := map[string]interface{}{"payment_status": models.PayPending}
		if err := tx.Model(&models.Appointment{}).Where("transaction_id = ?", trx.ID).Updates(entityUpdates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DedicationRequest{}).Where("transaction_id = ?", trx.ID).Updates(entityUpdates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LiveShow{}).Where("transaction_id = ?", trx.ID).Updates(entityUpdates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LiveShowAttendance{}).Where("transaction_id = ?", trx.ID).Updates(entityUpdates).Error; err != nil {
			return err
		}

		if trx.TrxType == models.TrxBecomeStar {
			return s.promoteToStar(tx, trx.PayerId)
		}
		return nil
	})
}

// promoteToStar flips the payer's role, assigns a star identifier and seeds a
// default rating row.
func (s *PaymentCallbackService) promoteToStar(tx *gorm.DB, userId int) error {
	starId := fmt.Sprintf("STAR-%s", uuid.New().String()[:8])
	if err := tx.Model(&models.User{}).Where("id = ?", userId).Updates(map[string]interface{}{
		"role":    models.RoleStar,
		"star_id": starId,
	}).Error; err != nil {
		return err
	}

	var rating models.Rating
	return tx.Where(models.Rating{StarId: userId}).FirstOrCreate(&rating).Error
}

// RefundAndCascade is the shared failure path used by both an explicit
// failure callback and the timeout sweep: the coin portion goes back to the
// payer, the transaction fails, every dependent entity is cancelled and any
// reserved slot is released.
func (s *PaymentCallbackService) RefundAndCascade(trx *models.Transaction) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status IN ?", trx.ID, []string{models.StatusInitiated, models.StatusPending}).
			Updates(map[string]interface{}{
				"status":       models.StatusFailed,
				"refund_timer": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if trx.CoinAmount > 0 {
			if err := s.Helper.CreditCoins(tx, trx.PayerId, trx.CoinAmount); err != nil {
				return err
			}
		}

		cancelUpdates := map[string]interface{}{
			"status":         models.EntityCancelled,
			"payment_status": models.PayRefunded,
		}
		if err := tx.Model(&models.Appointment{}).Where("transaction_id = ?", trx.ID).Updates(cancelUpdates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DedicationRequest{}).Where("transaction_id = ?", trx.ID).Updates(cancelUpdates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LiveShow{}).Where("transaction_id = ?", trx.ID).Updates(cancelUpdates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LiveShowAttendance{}).Where("transaction_id = ?", trx.ID).Updates(cancelUpdates).Error; err != nil {
			return err
		}

		// Reopen any slot still reserved for this payment.
		if trx.ExternalPaymentId != nil {
			if err := tx.Model(&models.TimeSlot{}).
				Where("payment_reference_id = ? AND status = ?", *trx.ExternalPaymentId, models.SlotLocked).
				Updates(map[string]interface{}{
					"status":               models.SlotAvailable,
					"payment_reference_id": nil,
					"locked_at":            nil,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReconcileStuckTransactions force-refunds hybrid transactions abandoned in
// initiated past their refund deadline. This is the backstop for a gateway
// that never calls back.
func (s *PaymentCallbackService) ReconcileStuckTransactions() error {
	var stuck []models.Transaction
	if err := s.DB.
		Where("status = ? AND refund_timer IS NOT NULL AND refund_timer <= ?", models.StatusInitiated, time.Now()).
		Find(&stuck).Error; err != nil {
		return err
	}

	for i := range stuck {
		trx := stuck[i]
		if err := s.RefundAndCascade(&trx); err != nil {
			log.Printf("Failed to reconcile transaction %s: %v", trx.TransactionNo, err)
			continue
		}
		log.Printf("Refunded stuck transaction %s (coin portion %.2f)", trx.TransactionNo, trx.CoinAmount)
		s.Notifier.Notify(trx.PayerId, "payment-refunded", trx.TransactionNo)
	}
	return nil
}

// StartScheduler runs the stuck-transaction sweep every 5 minutes.
func (s *PaymentCallbackService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("*/5 * * * *", func() {
		if err := s.ReconcileStuckTransactions(); err != nil {
			log.Printf("Error in ReconcileStuckTransactions: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling ReconcileStuckTransactions: %v", err)
		return
	}
	c.Start()
	log.Println("Transaction reconciliation scheduler started (every 5 minutes)")
}
