package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"booking-service/internal/models"
	"booking-service/pkg/common"

	"gorm.io/gorm"
)

// PaymentGateway is the contract the transaction engine and the callback
// processor depend on. AzamPayService is the production implementation.
type PaymentGateway interface {
	InitiatePayment(data InitiatePaymentDTO) (InitiatePaymentResult, error)
	ValidateCallbackData(raw map[string]interface{}) (CallbackData, error)
}

type InitiatePaymentDTO struct {
	ReferenceId      string
	ContactNumber    string
	Amount           float64
	ReasonCode       string
	CounterpartyName string
}

type InitiatePaymentResult struct {
	Success       bool
	TransactionId string
	Message       string
}

// CallbackData is the normalized form of an inbound gateway callback.
type CallbackData struct {
	TransactionId string
	Status        string
	ReasonCode    string
	Amount        float64
}

// Normalized callback statuses.
const (
	CallbackSuccess = "success"
	CallbackFailure = "failure"
)

type AzamPayService struct {
	DB            *gorm.DB
	HelperService *HelperService
}

func NewAzamPayService(db *gorm.DB, helper *HelperService) *AzamPayService {
	return &AzamPayService{
		DB:            db,
		HelperService: helper,
	}
}

func (s *AzamPayService) azampaySettings() (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	err := s.DB.Where("provider = ? AND status = ?", "azampay", 1).First(&pm).Error
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

// MapReasonCode translates a transaction type into the reason code AzamPay
// expects on checkout requests. Pure mapping, no I/O.
func MapReasonCode(trxType string) string {
	switch trxType {
	case models.TrxAppointment:
		return "APPOINTMENT"
	case models.TrxDedication:
		return "DEDICATION"
	case models.TrxLiveShowAttend:
		return "LIVESHOW_TICKET"
	case models.TrxLiveShowHost:
		return "LIVESHOW_HOSTING"
	case models.TrxBecomeStar:
		return "STAR_SUBSCRIPTION"
	default:
		return "OTHER"
	}
}

// InitiatePayment asks AzamPay to push a payment request to the payer's
// phone. A non-success result means the gateway rejected the request and the
// caller must abort the whole hybrid creation.
func (s *AzamPayService) InitiatePayment(data InitiatePaymentDTO) (InitiatePaymentResult, error) {
	settings, err := s.azampaySettings()
	if err != nil {
		return InitiatePaymentResult{}, fmt.Errorf("azampay has not been configured: %w", err)
	}

	phone := strings.TrimSpace(data.ContactNumber)
	if phone == "" {
		return InitiatePaymentResult{Success: false, Message: "Contact number is required"}, nil
	}
	if !strings.HasPrefix(phone, "255") {
		phone = "255" + strings.TrimLeft(phone, "0+")
	}

	payload := map[string]interface{}{
		"accountNumber": phone,
		"amount":        fmt.Sprintf("%v", data.Amount),
		"currency":      "TZS",
		"externalId":    data.ReferenceId,
		"provider":      "Mpesa",
		"additionalProperties": map[string]interface{}{
			"reason":       data.ReasonCode,
			"counterparty": data.CounterpartyName,
		},
	}

	headers := map[string]string{
		"Authorization": "Bearer " + settings.SecretKey,
		"X-API-Key":     settings.ClientKey,
		"Content-Type":  "application/json",
	}

	res, err := common.Post(fmt.Sprintf("%s/azampay/mno/checkout", settings.BaseUrl), payload, headers)
	if err != nil {
		log.Printf("AzamPay checkout error: %v", err)
		return InitiatePaymentResult{}, fmt.Errorf("payment initiation failed: %w", err)
	}

	resMap, ok := res.(map[string]interface{})
	if !ok {
		return InitiatePaymentResult{Success: false, Message: "Unexpected gateway response"}, nil
	}

	success, _ := resMap["success"].(bool)
	message, _ := resMap["message"].(string)
	if !success {
		if message == "" {
			message = "Payment request was rejected"
		}
		return InitiatePaymentResult{Success: false, Message: message}, nil
	}

	trxId, _ := resMap["transactionId"].(string)
	if trxId == "" {
		trxId = data.ReferenceId
	}
	if message == "" {
		message = "Confirm the payment request on your phone to complete"
	}

	return InitiatePaymentResult{Success: true, TransactionId: trxId, Message: message}, nil
}

// ValidateCallbackData checks an inbound webhook payload and normalizes it.
// The callback processor never proceeds on a payload this rejects.
func (s *AzamPayService) ValidateCallbackData(raw map[string]interface{}) (CallbackData, error) {
	ref, _ := raw["utilityref"].(string)
	if ref == "" {
		ref, _ = raw["transactionId"].(string)
	}
	if ref == "" {
		return CallbackData{}, fmt.Errorf("callback payload is missing a transaction reference")
	}

	statusRaw, _ := raw["transactionstatus"].(string)
	if statusRaw == "" {
		statusRaw, _ = raw["status"].(string)
	}

	var status string
	switch strings.ToLower(statusRaw) {
	case "success", "completed":
		status = CallbackSuccess
	case "failure", "failed", "cancelled", "rejected":
		status = CallbackFailure
	default:
		return CallbackData{}, fmt.Errorf("unrecognized callback status: %q", statusRaw)
	}

	reason, _ := raw["reason"].(string)

	var amount float64
	switch v := raw["amount"].(type) {
	case float64:
		amount = v
	case string:
		amount, _ = strconv.ParseFloat(v, 64)
	}

	return CallbackData{
		TransactionId: ref,
		Status:        status,
		ReasonCode:    reason,
		Amount:        amount,
	}, nil
}
