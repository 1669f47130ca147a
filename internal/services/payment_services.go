package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	mt "github.com/Bimsaraimalka/bixlayclothing-v1-sub000/external/midtrans"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

// PaymentService handles the card flow: orders placed with
// paymentMethod=card get a Snap transaction; the gateway webhook settles it.
// The order status itself stays admin-driven.
type PaymentService struct {
	PaymentRepo *repository.PaymentRepository
	OrderRepo   *repository.OrderRepository
	Snap        *snap.Client
}

func NewPaymentService(pr *repository.PaymentRepository, or *repository.OrderRepository, snap *snap.Client) *PaymentService {
	return &PaymentService{PaymentRepo: pr, OrderRepo: or, Snap: snap}
}

// CreateSnapPayment creates a pending gateway transaction for a card order
// and returns the redirect URL.
func (s *PaymentService) CreateSnapPayment(ctx context.Context, orderID int64) (string, error) {
	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return "", errors.New("order not found")
	}
	if order.PaymentMethod != model.PaymentCard {
		return "", errors.New("order is not a card order")
	}

	existing, err := s.PaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.PaymentStatus == "Pending" {
		return "", errors.New("payment already exists")
	}
	if existing != nil && existing.PaymentStatus == "Paid" {
		return "", errors.New("order already paid")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Reference,
			GrossAmt: order.Total,
		},
	}

	resp, snapErr := s.Snap.CreateTransaction(req)
	if snapErr != nil {
		return "", snapErr
	}

	payload, _ := json.Marshal(resp)

	_, err = s.PaymentRepo.CreatePending(ctx, orderID, order.Total, "midtrans", order.Reference, payload)
	if err != nil {
		return "", err
	}

	return resp.RedirectURL, nil
}

// HandleNotification processes the gateway webhook. Signature is verified
// before anything is trusted; settlement is idempotent.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	reference, ok := payload["order_id"].(string)
	if !ok {
		return errors.New("missing order_id")
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(reference, statusCode, grossAmount, signature, os.Getenv("MIDTRANS_SERVER_KEY")) {
		return errors.New("invalid signature")
	}

	payment, err := s.findPaymentByReference(ctx, reference)
	if err != nil {
		return err
	}
	if payment.PaymentStatus == "Paid" {
		// already processed, safely ignore
		return nil
	}

	data, _ := json.Marshal(payload)
	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.markPaid(ctx, payment.OrderID, payload)
	case "capture":
		if fraudStatus == "accept" {
			return s.markPaid(ctx, payment.OrderID, payload)
		}
	case "expire", "cancel", "deny":
		return s.PaymentRepo.MarkFailed(ctx, payment.OrderID, data)
	}
	return nil
}

func (s *PaymentService) findPaymentByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var orderID int64
	q := `SELECT orderid FROM payments WHERE providerref=$1 ORDER BY paymentid DESC LIMIT 1`
	if err := s.PaymentRepo.DB.QueryRow(ctx, q, reference).Scan(&orderID); err != nil {
		return nil, errors.New("payment not found")
	}
	p, err := s.PaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("payment not found")
	}
	return p, nil
}

func (s *PaymentService) markPaid(ctx context.Context, orderID int64, payload map[string]interface{}) error {
	data, _ := json.Marshal(payload)
	transactionID, _ := payload["transaction_id"].(string)

	tx, err := s.PaymentRepo.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.PaymentRepo.MarkPaidTx(ctx, tx, orderID, transactionID, data); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
