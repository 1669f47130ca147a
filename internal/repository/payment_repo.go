package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) CreatePending(
	ctx context.Context,
	orderID int64,
	amount int64,
	provider string,
	providerRef string,
	payload []byte,
) (int64, error) {

	var paymentID int64
	q := `
		INSERT INTO payments
			(orderid, amountpaid, paymentstatus, paymentprovider, providerref, providerpayload, createdat)
		VALUES
			($1, $2, 'Pending', $3, $4, $5, NOW())
		RETURNING paymentid
	`
	err := r.DB.QueryRow(
		ctx, q,
		orderID, amount, provider, providerRef, payload,
	).Scan(&paymentID)

	return paymentID, err
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	var p model.Payment
	q := `
		SELECT paymentid, orderid, amountpaid, paymentstatus,
		       paymentprovider, providerref, providerpayload,
		       createdat, paidat
		FROM payments
		WHERE orderid=$1
		ORDER BY paymentid DESC
		LIMIT 1
	`
	err := r.DB.QueryRow(ctx, q, orderID).Scan(
		&p.PaymentID, &p.OrderID, &p.AmountPaid, &p.PaymentStatus,
		&p.PaymentProvider, &p.ProviderRef, &p.ProviderPayload,
		&p.CreatedAt, &p.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// MarkPaidTx flips the payment to Paid inside the webhook transaction.
func (r *PaymentRepository) MarkPaidTx(ctx context.Context, tx pgx.Tx, orderID int64, providerRef string, payload []byte) error {
	q := `
		UPDATE payments
		SET paymentstatus='Paid', providerref=$1, providerpayload=$2, paidat=$3
		WHERE orderid=$4 AND paymentstatus='Pending'
	`
	_, err := tx.Exec(ctx, q, providerRef, payload, time.Now(), orderID)
	return err
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, orderID int64, payload []byte) error {
	q := `
		UPDATE payments
		SET paymentstatus='Failed', providerpayload=$1
		WHERE orderid=$2 AND paymentstatus='Pending'
	`
	_, err := r.DB.Exec(ctx, q, payload, orderID)
	return err
}
