package services

import (
	"log"
	"math"
	"os"
	"testing"

	"booking-service/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NOTE: These tests require a running MySQL instance.
// For this environment, we will write them to be ready for integration testing.
// In a real CI, we would spin up a container or use sqlite (if models are compatible).

var testDB *gorm.DB

func setup() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		return
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	// Migrate schemas
	testDB.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Appointment{},
		&models.DedicationRequest{},
		&models.LiveShow{},
		&models.LiveShowAttendance{},
		&models.Availability{},
		&models.TimeSlot{},
		&models.Rating{},
		&models.PaymentMethod{},
		&models.CallbackLog{},
	)
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM transactions")
		testDB.Exec("DELETE FROM users")
		testDB.Exec("DELETE FROM appointments")
		testDB.Exec("DELETE FROM dedication_requests")
		testDB.Exec("DELETE FROM live_shows")
		testDB.Exec("DELETE FROM live_show_attendances")
		testDB.Exec("DELETE FROM time_slots")
		testDB.Exec("DELETE FROM ratings")
		testDB.Exec("DELETE FROM callback_logs")
		testDB.Exec("DELETE FROM payment_methods")
	}
}

// stubGateway replaces the live AzamPay adapter in tests. Callback
// normalization stays real since it has no I/O.
type stubGateway struct {
	initiate func(InitiatePaymentDTO) (InitiatePaymentResult, error)
}

func (g *stubGateway) InitiatePayment(data InitiatePaymentDTO) (InitiatePaymentResult, error) {
	if g.initiate != nil {
		return g.initiate(data)
	}
	return InitiatePaymentResult{
		Success:       true,
		TransactionId: data.ReferenceId,
		Message:       "Confirm on your phone",
	}, nil
}

func (g *stubGateway) ValidateCallbackData(raw map[string]interface{}) (CallbackData, error) {
	var azampay AzamPayService
	return azampay.ValidateCallbackData(raw)
}

func newTestTransactionService(gateway PaymentGateway) *TransactionService {
	helper := NewHelperService(testDB)
	return NewTransactionService(testDB, helper, gateway, NewNotificationService(nil))
}

func balanceOf(t *testing.T, userId int) float64 {
	t.Helper()
	var user models.User
	if err := testDB.First(&user, userId).Error; err != nil {
		t.Fatalf("Failed to load user %d: %v", userId, err)
	}
	return user.CoinBalance
}

func TestCreateHybridTransaction_CoinOnly(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 101, Username: "fan101", CoinBalance: 200.00})
	svc := newTestTransactionService(&stubGateway{})

	res, err := svc.CreateHybridTransaction(CreatePaymentDTO{
		TrxType:    models.TrxDedication,
		PayerId:    101,
		ReceiverId: 102,
		Amount:     150.00,
	})
	if err != nil {
		t.Fatalf("CreateHybridTransaction failed: %v", err)
	}

	if res.PaymentMode != models.ModeCoin {
		t.Errorf("Expected coin mode, got %s", res.PaymentMode)
	}
	if res.CoinAmount != 150.00 || res.ExternalAmount != 0 {
		t.Errorf("Expected split 150/0, got %f/%f", res.CoinAmount, res.ExternalAmount)
	}

	var trx models.Transaction
	testDB.First(&trx, res.TransactionId)
	if trx.Status != models.StatusPending {
		t.Errorf("Expected status pending, got %s", trx.Status)
	}
	if trx.RefundTimer != nil {
		t.Errorf("Coin payments must not carry a refund deadline")
	}

	if bal := balanceOf(t, 101); math.Abs(bal-50.00) > 0.01 {
		t.Errorf("Expected balance 50, got %f", bal)
	}
}

func TestCreateHybridTransaction_Split(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 111, Username: "fan111", ContactNumber: "0712000111", CoinBalance: 30.00})
	svc := newTestTransactionService(&stubGateway{})

	res, err := svc.CreateHybridTransaction(CreatePaymentDTO{
		TrxType:    models.TrxAppointment,
		PayerId:    111,
		ReceiverId: 112,
		Amount:     100.00,
	})
	if err != nil {
		t.Fatalf("CreateHybridTransaction failed: %v", err)
	}

	if res.PaymentMode != models.ModeHybrid {
		t.Errorf("Expected hybrid mode, got %s", res.PaymentMode)
	}
	if math.Abs(res.CoinAmount-30.00) > 0.01 || math.Abs(res.ExternalAmount-70.00) > 0.01 {
		t.Errorf("Expected split 30/70, got %f/%f", res.CoinAmount, res.ExternalAmount)
	}

	var trx models.Transaction
	testDB.First(&trx, res.TransactionId)
	if trx.Status != models.StatusInitiated {
		t.Errorf("Expected status initiated, got %s", trx.Status)
	}
	if trx.RefundTimer == nil {
		t.Errorf("Expected a refund deadline on a hybrid transaction")
	}
	if trx.ExternalPaymentId == nil || *trx.ExternalPaymentId == "" {
		t.Errorf("Expected an external payment reference")
	}

	// The whole coin balance is reserved up front.
	if bal := balanceOf(t, 111); math.Abs(bal) > 0.01 {
		t.Errorf("Expected balance 0, got %f", bal)
	}
}

func TestCreateHybridTransaction_GatewayRejectionRollsBack(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 121, Username: "fan121", ContactNumber: "0712000121", CoinBalance: 40.00})
	svc := newTestTransactionService(&stubGateway{
		initiate: func(InitiatePaymentDTO) (InitiatePaymentResult, error) {
			return InitiatePaymentResult{Success: false, Message: "Provider unavailable"}, nil
		},
	})

	_, err := svc.CreateHybridTransaction(CreatePaymentDTO{
		TrxType: models.TrxDedication,
		PayerId: 121,
		Amount:  100.00,
	})
	if err == nil {
		t.Fatal("Expected an error when the gateway rejects")
	}

	// The coin debit must have rolled back with the transaction row.
	if bal := balanceOf(t, 121); math.Abs(bal-40.00) > 0.01 {
		t.Errorf("Expected balance restored to 40, got %f", bal)
	}
	var count int64
	testDB.Model(&models.Transaction{}).Where("payer_id = ?", 121).Count(&count)
	if count != 0 {
		t.Errorf("Expected no transaction row, found %d", count)
	}
}

func TestCreateTransaction_InsufficientBalance(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 131, Username: "fan131", CoinBalance: 10.00})
	svc := newTestTransactionService(&stubGateway{})

	_, err := svc.CreateTransaction(CreatePaymentDTO{
		TrxType: models.TrxDedication,
		PayerId: 131,
		Amount:  50.00,
	}, models.ModeCoin)
	if err != ErrInsufficientBalance {
		t.Fatalf("Expected ErrInsufficientBalance, got %v", err)
	}

	if bal := balanceOf(t, 131); math.Abs(bal-10.00) > 0.01 {
		t.Errorf("Expected balance untouched at 10, got %f", bal)
	}
}

func TestCompleteTransaction(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 141, Username: "fan141", CoinBalance: 100.00})
	testDB.Create(&models.User{ID: 142, Username: "star142", CoinBalance: 0.00})
	svc := newTestTransactionService(&stubGateway{})

	res, err := svc.CreateHybridTransaction(CreatePaymentDTO{
		TrxType:    models.TrxAppointment,
		PayerId:    141,
		ReceiverId: 142,
		Amount:     80.00,
	})
	if err != nil {
		t.Fatalf("CreateHybridTransaction failed: %v", err)
	}

	if err := svc.CompleteTransaction(res.TransactionId); err != nil {
		t.Fatalf("CompleteTransaction failed: %v", err)
	}

	if bal := balanceOf(t, 142); math.Abs(bal-80.00) > 0.01 {
		t.Errorf("Expected receiver balance 80, got %f", bal)
	}

	// A second completion is rejected without a double credit.
	if err := svc.CompleteTransaction(res.TransactionId); err != ErrInvalidState {
		t.Errorf("Expected ErrInvalidState on repeat completion, got %v", err)
	}
	if bal := balanceOf(t, 142); math.Abs(bal-80.00) > 0.01 {
		t.Errorf("Receiver balance must stay 80, got %f", bal)
	}
}

func TestCancelTransaction(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 151, Username: "fan151", CoinBalance: 100.00})
	svc := newTestTransactionService(&stubGateway{})

	res, err := svc.CreateHybridTransaction(CreatePaymentDTO{
		TrxType:    models.TrxDedication,
		PayerId:    151,
		ReceiverId: 152,
		Amount:     60.00,
	})
	if err != nil {
		t.Fatalf("CreateHybridTransaction failed: %v", err)
	}

	if err := svc.CancelTransaction(res.TransactionId); err != nil {
		t.Fatalf("CancelTransaction failed: %v", err)
	}

	// Escrow returns to the payer in full.
	if bal := balanceOf(t, 151); math.Abs(bal-100.00) > 0.01 {
		t.Errorf("Expected balance restored to 100, got %f", bal)
	}

	var trx models.Transaction
	testDB.First(&trx, res.TransactionId)
	if trx.Status != models.StatusCancelled {
		t.Errorf("Expected status cancelled, got %s", trx.Status)
	}
}

func TestRefundTransaction(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 161, Username: "fan161", CoinBalance: 100.00})
	testDB.Create(&models.User{ID: 162, Username: "star162", CoinBalance: 0.00})
	svc := newTestTransactionService(&stubGateway{})

	res, _ := svc.CreateHybridTransaction(CreatePaymentDTO{
		TrxType:    models.TrxAppointment,
		PayerId:    161,
		ReceiverId: 162,
		Amount:     70.00,
	})
	if err := svc.CompleteTransaction(res.TransactionId); err != nil {
		t.Fatalf("CompleteTransaction failed: %v", err)
	}

	if err := svc.RefundTransaction(res.TransactionId); err != nil {
		t.Fatalf("RefundTransaction failed: %v", err)
	}

	if bal := balanceOf(t, 161); math.Abs(bal-100.00) > 0.01 {
		t.Errorf("Expected payer restored to 100, got %f", bal)
	}
	if bal := balanceOf(t, 162); math.Abs(bal) > 0.01 {
		t.Errorf("Expected receiver back to 0, got %f", bal)
	}

	// Refund is a dead end.
	if err := svc.RefundTransaction(res.TransactionId); err != ErrInvalidState {
		t.Errorf("Expected ErrInvalidState on repeat refund, got %v", err)
	}
}

func TestAdminAdjustWallet(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{ID: 171, Username: "fan171", CoinBalance: 20.00})
	svc := newTestTransactionService(&stubGateway{})

	if _, err := svc.AdminAdjustWallet(171, 30.00, models.TrxAdminCredit, "promo"); err != nil {
		t.Fatalf("Admin credit failed: %v", err)
	}
	if bal := balanceOf(t, 171); math.Abs(bal-50.00) > 0.01 {
		t.Errorf("Expected balance 50 after credit, got %f", bal)
	}

	if _, err := svc.AdminAdjustWallet(171, 15.00, models.TrxAdminDebit, "chargeback"); err != nil {
		t.Fatalf("Admin debit failed: %v", err)
	}
	if bal := balanceOf(t, 171); math.Abs(bal-35.00) > 0.01 {
		t.Errorf("Expected balance 35 after debit, got %f", bal)
	}

	// Every adjustment leaves an audit row.
	var count int64
	testDB.Model(&models.Transaction{}).
		Where("transaction_type IN ?", []string{models.TrxAdminCredit, models.TrxAdminDebit}).
		Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 audit transactions, got %d", count)
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
