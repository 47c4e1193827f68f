package services

import (
	"testing"

	"booking-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMapReasonCode(t *testing.T) {
	assert.Equal(t, "APPOINTMENT", MapReasonCode(models.TrxAppointment))
	assert.Equal(t, "DEDICATION", MapReasonCode(models.TrxDedication))
	assert.Equal(t, "LIVESHOW_TICKET", MapReasonCode(models.TrxLiveShowAttend))
	assert.Equal(t, "LIVESHOW_HOSTING", MapReasonCode(models.TrxLiveShowHost))
	assert.Equal(t, "STAR_SUBSCRIPTION", MapReasonCode(models.TrxBecomeStar))
	assert.Equal(t, "OTHER", MapReasonCode("something-else"))
}

func TestValidateCallbackData(t *testing.T) {
	var svc AzamPayService

	data, err := svc.ValidateCallbackData(map[string]interface{}{
		"utilityref":        "ref-123",
		"transactionstatus": "Success",
		"amount":            "70.50",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ref-123", data.TransactionId)
	assert.Equal(t, CallbackSuccess, data.Status)
	assert.InDelta(t, 70.50, data.Amount, 0.001)

	// Alternate field spellings some gateway versions use.
	data, err = svc.ValidateCallbackData(map[string]interface{}{
		"transactionId": "ref-456",
		"status":        "FAILED",
		"amount":        25.0,
	})
	assert.NoError(t, err)
	assert.Equal(t, "ref-456", data.TransactionId)
	assert.Equal(t, CallbackFailure, data.Status)
	assert.InDelta(t, 25.0, data.Amount, 0.001)
}

func TestValidateCallbackData_Rejections(t *testing.T) {
	var svc AzamPayService

	_, err := svc.ValidateCallbackData(map[string]interface{}{
		"transactionstatus": "success",
	})
	assert.Error(t, err, "missing reference must be rejected")

	_, err = svc.ValidateCallbackData(map[string]interface{}{
		"utilityref":        "ref-789",
		"transactionstatus": "in-progress",
	})
	assert.Error(t, err, "unknown status must be rejected")
}
