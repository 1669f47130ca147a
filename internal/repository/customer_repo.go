package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// Create creates a customer row (used only during public registration)
func (r *CustomerRepository) Create(ctx context.Context, authID int64, email string) (int64, error) {
	var id int64
	query := `
		INSERT INTO customers (authid, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING customerid
	`
	if err := r.DB.QueryRow(ctx, query, authID, email, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByAuthID returns a customer by authid
func (r *CustomerRepository) GetByAuthID(ctx context.Context, authID int64) (*model.Customer, error) {
	var c model.Customer
	query := `
		SELECT customerid, authid, fullname, email, address, city, postalcode, phone, created_at, deleted_at
		FROM customers WHERE authid=$1 AND deleted_at IS NULL
	`
	if err := r.DB.QueryRow(ctx, query, authID).Scan(
		&c.CustomerID, &c.AuthID, &c.Fullname, &c.Email, &c.Address, &c.City, &c.PostalCode, &c.Phone, &c.CreatedAt, &c.DeletedAt,
	); err != nil {
		return nil, errors.New("customer not found")
	}
	return &c, nil
}

// Update allows a user to update their own customer record
func (r *CustomerRepository) Update(ctx context.Context, id int64, fullname, address, city, postalCode, phone *string) error {
	query := `
		UPDATE customers SET fullname=$1, address=$2, city=$3, postalcode=$4, phone=$5
		WHERE customerid=$6 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query, fullname, address, city, postalCode, phone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("customer not found or deleted")
	}
	return nil
}
