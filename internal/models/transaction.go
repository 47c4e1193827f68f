package models

import (
	"time"
)

// Transaction types
const (
	TrxAppointment    = "appointment-payment"
	TrxDedication     = "dedication-payment"
	TrxLiveShowAttend = "liveshow-attendance-payment"
	TrxLiveShowHost   = "liveshow-hosting-payment"
	TrxBecomeStar     = "become-star-payment"
	TrxRefund         = "refund"
	TrxAdminCredit    = "admin-credit"
	TrxAdminDebit     = "admin-debit"
)

// Payment modes
const (
	ModeCoin     = "coin"
	ModeExternal = "external"
	ModeHybrid   = "hybrid"
)

// Transaction statuses
const (
	StatusInitiated = "initiated"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
	StatusFailed    = "failed"
)

type Transaction struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNo     string     `gorm:"column:transaction_no;size:255;not null;index" json:"transaction_no"`
	TrxType           string     `gorm:"column:transaction_type;size:50;not null;index" json:"transaction_type"`
	PayerId           int        `gorm:"column:payer_id;not null;index" json:"payer_id"`
	ReceiverId        int        `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	Amount            float64    `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	CoinAmount        float64    `gorm:"column:coin_amount;type:decimal(20,2);default:0.00" json:"coin_amount"`
	ExternalAmount    float64    `gorm:"column:external_amount;type:decimal(20,2);default:0.00" json:"external_amount"`
	PaymentMode       string     `gorm:"column:payment_mode;size:20;not null" json:"payment_mode"`
	Status            string     `gorm:"column:status;size:20;not null;index:idx_trx_status_timer" json:"status"`
	ExternalPaymentId *string    `gorm:"column:external_payment_id;size:255;index" json:"external_payment_id"`
	RefundTimer       *time.Time `gorm:"column:refund_timer;index:idx_trx_status_timer" json:"refund_timer"`
	Description       string     `gorm:"column:description;type:text" json:"description"`
	Metadata          string     `gorm:"column:metadata;type:text" json:"metadata"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// legalTransitions is the single source of truth for transaction status
// changes. The engine and the callback processor both check CanTransition,
// and every status write is additionally guarded by a conditional update on
// the prior status so the loser of a race no-ops instead of overwriting.
var legalTransitions = map[string][]string{
	StatusInitiated: {StatusPending, StatusCompleted, StatusFailed},
	StatusPending:   {StatusCompleted, StatusCancelled, StatusFailed},
	StatusCompleted: {StatusRefunded},
}

func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible. Completed is
// not terminal here: an admin reversal can still move it to refunded.
func IsTerminal(status string) bool {
	return len(legalTransitions[status]) == 0
}
