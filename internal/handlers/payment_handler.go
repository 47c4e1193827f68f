package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"booking-service/internal/models"
	"booking-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentHandler exposes the booking-payment intents. Handlers stay thin:
// bind, delegate to the engine, translate errors to HTTP statuses. The
// engine owns all money movement.
type PaymentHandler struct {
	DB           *gorm.DB
	Transactions *services.TransactionService
	Callbacks    *services.PaymentCallbackService
	Availability *services.AvailabilityService
}

func NewPaymentHandler(db *gorm.DB, trx *services.TransactionService, cb *services.PaymentCallbackService, avail *services.AvailabilityService) *PaymentHandler {
	return &PaymentHandler{
		DB:           db,
		Transactions: trx,
		Callbacks:    cb,
		Availability: avail,
	}
}

func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrSlotUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type AppointmentPaymentRequest struct {
	FanId         int     `json:"fan_id" binding:"required"`
	StarId        int     `json:"star_id" binding:"required"`
	SlotId        int     `json:"slot_id" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	StartTime     string  `json:"start_time" binding:"required"`
	EndTime       string  `json:"end_time" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	ContactNumber string  `json:"contact_number"`
}

func (h *PaymentHandler) CreateAppointmentPayment(c *gin.Context) {
	var req AppointmentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reserve the slot before any money moves; the reference ties the lock
	// to the payment so the sweeps can resolve it either way.
	referenceId := uuid.New().String()
	if err := h.Availability.LockSlot(req.SlotId, referenceId); err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": "Slot is no longer available"})
		return
	}

	result, err := h.Transactions.CreateHybridTransaction(services.CreatePaymentDTO{
		TrxType:       models.TrxAppointment,
		PayerId:       req.FanId,
		ReceiverId:    req.StarId,
		Amount:        req.Amount,
		ContactNumber: req.ContactNumber,
		ReferenceId:   referenceId,
		Description:   "Appointment booking payment",
	})
	if err != nil {
		h.Availability.ReleaseSlot(req.SlotId)
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	appointment := models.Appointment{
		FanId:         req.FanId,
		StarId:        req.StarId,
		TransactionId: result.TransactionId,
		SlotId:        req.SlotId,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        models.EntityPending,
		PaymentStatus: models.PayInitiated,
	}
	if result.PaymentMode == models.ModeCoin {
		// Coins covered everything; the booking is paid up front.
		appointment.PaymentStatus = models.PayPending
		h.Availability.CommitSlot(req.SlotId)
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": appointment,
		"payment":     result,
	})
}

type DedicationPaymentRequest struct {
	FanId         int     `json:"fan_id" binding:"required"`
	StarId        int     `json:"star_id" binding:"required"`
	Occasion      string  `json:"occasion"`
	Instructions  string  `json:"instructions"`
	Amount        float64 `json:"amount" binding:"required"`
	ContactNumber string  `json:"contact_number"`
}

func (h *PaymentHandler) CreateDedicationPayment(c *gin.Context) {
	var req DedicationPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Transactions.CreateHybridTransaction(services.CreatePaymentDTO{
		TrxType:       models.TrxDedication,
		PayerId:       req.FanId,
		ReceiverId:    req.StarId,
		Amount:        req.Amount,
		ContactNumber: req.ContactNumber,
		Description:   "Dedication video payment",
	})
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	dedication := models.DedicationRequest{
		FanId:         req.FanId,
		StarId:        req.StarId,
		TransactionId: result.TransactionId,
		Occasion:      req.Occasion,
		Instructions:  req.Instructions,
		Status:        models.EntityPending,
		PaymentStatus: models.PayInitiated,
	}
	if result.PaymentMode == models.ModeCoin {
		dedication.PaymentStatus = models.PayPending
	}

	if err := h.DB.Create(&dedication).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"dedication": dedication,
		"payment":    result,
	})
}

type LiveShowHostingRequest struct {
	HostId        int     `json:"host_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	TicketPrice   float64 `json:"ticket_price"`
	Amount        float64 `json:"amount" binding:"required"`
	ContactNumber string  `json:"contact_number"`
}

func (h *PaymentHandler) CreateLiveShowHosting(c *gin.Context) {
	var req LiveShowHostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Transactions.CreateHybridTransaction(services.CreatePaymentDTO{
		TrxType:       models.TrxLiveShowHost,
		PayerId:       req.HostId,
		Amount:        req.Amount,
		ContactNumber: req.ContactNumber,
		Description:   "Live show hosting fee",
	})
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	show := models.LiveShow{
		HostId:        req.HostId,
		TransactionId: result.TransactionId,
		Title:         req.Title,
		TicketPrice:   req.TicketPrice,
		Status:        models.EntityPending,
		PaymentStatus: models.PayInitiated,
	}
	if result.PaymentMode == models.ModeCoin {
		show.PaymentStatus = models.PayPending
	}

	if err := h.DB.Create(&show).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"live_show": show,
		"payment":   result,
	})
}

type LiveShowAttendanceRequest struct {
	UserId        int    `json:"user_id" binding:"required"`
	ContactNumber string `json:"contact_number"`
}

func (h *PaymentHandler) CreateLiveShowAttendance(c *gin.Context) {
	showId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid show id"})
		return
	}

	var req LiveShowAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var show models.LiveShow
	if err := h.DB.First(&show, showId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Live show not found"})
		return
	}

	result, err := h.Transactions.CreateHybridTransaction(services.CreatePaymentDTO{
		TrxType:       models.TrxLiveShowAttend,
		PayerId:       req.UserId,
		ReceiverId:    show.HostId,
		Amount:        show.TicketPrice,
		ContactNumber: req.ContactNumber,
		Description:   "Live show ticket",
	})
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	attendance := models.LiveShowAttendance{
		ShowId:        showId,
		UserId:        req.UserId,
		TransactionId: result.TransactionId,
		Status:        models.EntityPending,
		PaymentStatus: models.PayInitiated,
	}
	if result.PaymentMode == models.ModeCoin {
		attendance.PaymentStatus = models.PayPending
	}

	if err := h.DB.Create(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"attendance": attendance,
		"payment":    result,
	})
}

type BecomeStarRequest struct {
	UserId        int     `json:"user_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	ContactNumber string  `json:"contact_number"`
}

func (h *PaymentHandler) CreateBecomeStarPayment(c *gin.Context) {
	var req BecomeStarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Transactions.CreateHybridTransaction(services.CreatePaymentDTO{
		TrxType:       models.TrxBecomeStar,
		PayerId:       req.UserId,
		Amount:        req.Amount,
		ContactNumber: req.ContactNumber,
		Description:   "Star subscription payment",
	})
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": result})
}

func (h *PaymentHandler) CompleteTransaction(c *gin.Context) {
	h.runTransition(c, h.Transactions.CompleteTransaction, "Transaction completed")
}

func (h *PaymentHandler) CancelTransaction(c *gin.Context) {
	h.runTransition(c, h.Transactions.CancelTransaction, "Transaction cancelled")
}

func (h *PaymentHandler) RefundTransaction(c *gin.Context) {
	h.runTransition(c, h.Transactions.RefundTransaction, "Transaction refunded")
}

func (h *PaymentHandler) runTransition(c *gin.Context, op func(int) error, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}
	if err := op(id); err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// GatewayCallback is the inbound webhook. It stays thin: the raw payload
// goes straight into the callback processor untouched.
func (h *PaymentHandler) GatewayCallback(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	res, err := h.Callbacks.ProcessPaymentCallback(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
