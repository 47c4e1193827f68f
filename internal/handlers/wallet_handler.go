package handlers

import (
	"net/http"
	"strconv"

	"booking-service/internal/models"
	"booking-service/internal/services"
	"booking-service/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WalletHandler struct {
	DB           *gorm.DB
	Transactions *services.TransactionService
}

func NewWalletHandler(db *gorm.DB, trx *services.TransactionService) *WalletHandler {
	return &WalletHandler{DB: db, Transactions: trx}
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	userId, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, userId).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      user.ID,
		"coin_balance": user.CoinBalance,
		"role":         user.Role,
	})
}

type AdminAdjustRequest struct {
	UserId      int     `json:"user_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Action      string  `json:"action" binding:"required,oneof=credit debit"`
	Description string  `json:"description"`
}

func (h *WalletHandler) AdminAdjustWallet(c *gin.Context) {
	var req AdminAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trxType := models.TrxAdminCredit
	if req.Action == "debit" {
		trxType = models.TrxAdminDebit
	}

	result, err := h.Transactions.AdminAdjustWallet(req.UserId, req.Amount, trxType, req.Description)
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userId, _ := strconv.Atoi(c.Query("user_id"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.Transactions.ListTransactions(services.ListTransactionsDTO{
		UserId:  userId,
		Status:  c.Query("status"),
		TrxType: c.Query("type"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result, "Transactions retrieved"))
}
