package services

import (
	"log"
	"time"

	"booking-service/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SlotLockWindow is deliberately shorter than RefundWindow so a booking slot
// frees up before its payment is declared failed. Keep it that way.
const SlotLockWindow = 10 * time.Minute

// AvailabilityService owns booking-slot reservations. Slot locking is a
// resource-reservation concern separate from money movement, with its own
// reconciliation loop.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// LockSlot reserves an available slot for an in-flight payment. The guard is
// in the UPDATE itself, so two concurrent bookings of the same slot can not
// both succeed.
func (s *AvailabilityService) LockSlot(slotId int, paymentReferenceId string) error {
	now := time.Now()
	res := s.DB.Model(&models.TimeSlot{}).
		Where("id = ? AND status = ?", slotId, models.SlotAvailable).
		Updates(map[string]interface{}{
			"status":               models.SlotLocked,
			"payment_reference_id": paymentReferenceId,
			"locked_at":            now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

// ReleaseSlot reopens a locked slot and clears the lock fields.
func (s *AvailabilityService) ReleaseSlot(slotId int) error {
	return s.DB.Model(&models.TimeSlot{}).
		Where("id = ? AND status = ?", slotId, models.SlotLocked).
		Updates(map[string]interface{}{
			"status":               models.SlotAvailable,
			"payment_reference_id": nil,
			"locked_at":            nil,
		}).Error
}

// CommitSlot marks a locked slot as booked.
func (s *AvailabilityService) CommitSlot(slotId int) error {
	return s.DB.Model(&models.TimeSlot{}).
		Where("id = ? AND status IN ?", slotId, []string{models.SlotLocked, models.SlotAvailable}).
		Update("status", models.SlotUnavailable).Error
}

// ReconcileSlotLocks resolves every locked slot: committed when a completed
// transaction exists for its payment reference, released when the lock has
// outlived its window with no resolving transaction. A slot must never stay
// locked indefinitely.
func (s *AvailabilityService) ReconcileSlotLocks() error {
	var slots []models.TimeSlot
	if err := s.DB.
		Where("status = ? AND payment_reference_id IS NOT NULL", models.SlotLocked).
		Find(&slots).Error; err != nil {
		return err
	}

	cutoff := time.Now().Add(-SlotLockWindow)

	for _, slot := range slots {
		var count int64
		if err := s.DB.Model(&models.Transaction{}).
			Where("external_payment_id = ? AND status = ?", *slot.PaymentReferenceId, models.StatusCompleted).
			Count(&count).Error; err != nil {
			log.Printf("Slot %d reconciliation lookup failed: %v", slot.ID, err)
			continue
		}

		if count > 0 {
			if err := s.DB.Model(&models.TimeSlot{}).
				Where("id = ? AND status = ?", slot.ID, models.SlotLocked).
				Update("status", models.SlotUnavailable).Error; err != nil {
				log.Printf("Failed to commit slot %d: %v", slot.ID, err)
			}
			continue
		}

		if slot.LockedAt != nil && slot.LockedAt.Before(cutoff) {
			if err := s.ReleaseSlot(slot.ID); err != nil {
				log.Printf("Failed to release slot %d: %v", slot.ID, err)
			} else {
				log.Printf("Released abandoned slot lock %d (reference %s)", slot.ID, *slot.PaymentReferenceId)
			}
		}
	}
	return nil
}

// StartScheduler runs the slot-lock sweep every minute.
func (s *AvailabilityService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() {
		if err := s.ReconcileSlotLocks(); err != nil {
			log.Printf("Error in ReconcileSlotLocks: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling ReconcileSlotLocks: %v", err)
		return
	}
	c.Start()
	log.Println("Slot-lock reconciliation scheduler started (every minute)")
}
