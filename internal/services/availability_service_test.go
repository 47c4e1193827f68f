package services

import (
	"testing"
	"time"

	"booking-service/internal/models"
)

func TestLockSlot_Conflict(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	slot := models.TimeSlot{AvailabilityId: 1, StartTime: "09:00", EndTime: "09:30", Status: models.SlotAvailable}
	testDB.Create(&slot)

	svc := NewAvailabilityService(testDB)

	if err := svc.LockSlot(slot.ID, "ref-a"); err != nil {
		t.Fatalf("First lock failed: %v", err)
	}
	if err := svc.LockSlot(slot.ID, "ref-b"); err != ErrSlotUnavailable {
		t.Fatalf("Expected ErrSlotUnavailable on second lock, got %v", err)
	}

	var got models.TimeSlot
	testDB.First(&got, slot.ID)
	if got.PaymentReferenceId == nil || *got.PaymentReferenceId != "ref-a" {
		t.Errorf("Slot must keep the winning reference, got %v", got.PaymentReferenceId)
	}
}

func TestReleaseSlot(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	ref := "ref-release"
	now := time.Now()
	slot := models.TimeSlot{
		AvailabilityId: 1, StartTime: "11:00", EndTime: "11:30",
		Status: models.SlotLocked, PaymentReferenceId: &ref, LockedAt: &now,
	}
	testDB.Create(&slot)

	svc := NewAvailabilityService(testDB)
	if err := svc.ReleaseSlot(slot.ID); err != nil {
		t.Fatalf("ReleaseSlot failed: %v", err)
	}

	var got models.TimeSlot
	testDB.First(&got, slot.ID)
	if got.Status != models.SlotAvailable {
		t.Errorf("Expected available, got %s", got.Status)
	}
	if got.PaymentReferenceId != nil || got.LockedAt != nil {
		t.Errorf("Expected lock fields cleared")
	}
}

func TestReconcileSlotLocks(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewAvailabilityService(testDB)
	now := time.Now()
	stale := now.Add(-SlotLockWindow - time.Minute)

	// Slot whose payment completed: must become unavailable.
	paidRef := "ref-paid"
	paidSlot := models.TimeSlot{
		AvailabilityId: 1, StartTime: "12:00", EndTime: "12:30",
		Status: models.SlotLocked, PaymentReferenceId: &paidRef, LockedAt: &now,
	}
	testDB.Create(&paidSlot)
	testDB.Create(&models.Transaction{
		TransactionNo: "TRXPAID", TrxType: models.TrxAppointment,
		PayerId: 301, ReceiverId: 302, Amount: 50.00,
		PaymentMode: models.ModeHybrid, Status: models.StatusCompleted,
		ExternalPaymentId: &paidRef,
	})

	// Slot locked past its window with no resolving payment: released.
	abandonedRef := "ref-abandoned"
	abandonedSlot := models.TimeSlot{
		AvailabilityId: 1, StartTime: "13:00", EndTime: "13:30",
		Status: models.SlotLocked, PaymentReferenceId: &abandonedRef, LockedAt: &stale,
	}
	testDB.Create(&abandonedSlot)

	// Fresh lock with a payment still in flight: untouched.
	freshRef := "ref-fresh"
	freshSlot := models.TimeSlot{
		AvailabilityId: 1, StartTime: "14:00", EndTime: "14:30",
		Status: models.SlotLocked, PaymentReferenceId: &freshRef, LockedAt: &now,
	}
	testDB.Create(&freshSlot)

	if err := svc.ReconcileSlotLocks(); err != nil {
		t.Fatalf("ReconcileSlotLocks failed: %v", err)
	}

	var got models.TimeSlot
	testDB.First(&got, paidSlot.ID)
	if got.Status != models.SlotUnavailable {
		t.Errorf("Paid slot: expected unavailable, got %s", got.Status)
	}

	testDB.First(&got, abandonedSlot.ID)
	if got.Status != models.SlotAvailable {
		t.Errorf("Abandoned slot: expected available, got %s", got.Status)
	}

	testDB.First(&got, freshSlot.ID)
	if got.Status != models.SlotLocked {
		t.Errorf("Fresh slot: expected still locked, got %s", got.Status)
	}
}
