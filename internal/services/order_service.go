package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/background"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/pricing"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

// Notifier delivers a best-effort new-order notification to an operator
// channel. Errors are logged by the background queue and never surface to
// the customer.
type Notifier interface {
	Name() string
	NotifyNewOrder(ctx context.Context, o *model.Order) error
}

type OrderService struct {
	Repo      *repository.OrderRepository
	PromoRepo *repository.PromoRepository
	Pricing   pricing.Config
	Queue     *background.Queue
	Notifiers []Notifier
}

func NewOrderService(
	r *repository.OrderRepository,
	pr *repository.PromoRepository,
	cfg pricing.Config,
	queue *background.Queue,
	notifiers ...Notifier,
) *OrderService {
	return &OrderService{
		Repo:      r,
		PromoRepo: pr,
		Pricing:   cfg,
		Queue:     queue,
		Notifiers: notifiers,
	}
}

// CheckoutInput is the customer/payment half of an order; the cart session
// supplies the lines and promo.
type CheckoutInput struct {
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	City          string
	PostalCode    string
	PaymentMethod string
	Source        string
}

func (in *CheckoutInput) validate() error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	if in.CustomerName == "" {
		return errors.New("customer name is required")
	}
	if in.Email == "" {
		return errors.New("email is required")
	}
	if in.Address == "" {
		return errors.New("address is required")
	}
	switch in.PaymentMethod {
	case model.PaymentCard, model.PaymentCOD, model.PaymentTransfer:
	default:
		return errors.New("invalid payment method")
	}
	if in.Source == "" {
		in.Source = "web"
	}
	return nil
}

// Submit turns the session cart into a persisted order. The order and its
// items are written in one transaction together with the promo redeem, so
// the usage counter moves exactly once per order that consumed the code.
// Notifications are dispatched after commit and never block confirmation;
// the cart is cleared once the order stands.
func (s *OrderService) Submit(ctx context.Context, sess *cart.Session, in CheckoutInput) (*model.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	lines := sess.Store.Lines()
	if len(lines) == 0 {
		return nil, errors.New("cart is empty")
	}
	promo := sess.Store.Promo()

	b := pricing.Quote(lines, promo, in.PaymentMethod, s.Pricing)

	order := &model.Order{
		Reference:     "ORD-" + uuid.NewString(),
		CustomerID:    sess.UserID(),
		CustomerName:  in.CustomerName,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		City:          in.City,
		PostalCode:    in.PostalCode,
		PaymentMethod: in.PaymentMethod,
		Subtotal:      b.Subtotal,
		Discount:      b.Discount,
		Shipping:      b.Shipping,
		Tax:           b.Tax,
		Fee:           b.Fee,
		Total:         b.Total,
		Status:        model.StatusPending,
		Source:        in.Source,
		OrderDate:     time.Now(),
	}
	if promo != nil {
		code := promo.Code
		order.PromoCode = &code
	}
	for _, li := range lines {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Size:      li.Size,
			Color:     li.Color,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}

	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	orderID, err := s.Repo.CreateTx(ctx, tx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order.OrderID = orderID

	if promo != nil {
		if err := s.PromoRepo.RedeemTx(ctx, tx, promo.Code); err != nil {
			return nil, fmt.Errorf("redeem promo: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.dispatchNotifications(order)
	sess.Store.Clear()
	return order, nil
}

func (s *OrderService) dispatchNotifications(order *model.Order) {
	if s.Queue == nil {
		return
	}
	for _, n := range s.Notifiers {
		n := n
		s.Queue.Enqueue("notify "+n.Name(), func(ctx context.Context) error {
			return n.NotifyNewOrder(ctx, order)
		})
	}
}

func (s *OrderService) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.Repo.GetByID(ctx, orderID)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *OrderService) List(ctx context.Context, f repository.OrderFilter) ([]model.Order, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.Repo.List(ctx, f)
}

// statusTransitions is the table of legal admin-driven moves.
var statusTransitions = map[string][]string{
	model.StatusPending:   {model.StatusShipped, model.StatusCancelled},
	model.StatusShipped:   {model.StatusCompleted, model.StatusReturned},
	model.StatusCompleted: {model.StatusReturned},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order through the status machine, rejecting
// transitions outside the table.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	o, err := s.Repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, status) {
		return fmt.Errorf("cannot change order status from %s to %s", o.Status, status)
	}
	return s.Repo.UpdateStatus(ctx, orderID, status)
}

func (s *OrderService) Dashboard(ctx context.Context) ([]repository.StatusCount, error) {
	return s.Repo.CountByStatus(ctx)
}

var exportHeader = []string{
	"orderid", "reference", "customer", "email", "phone", "address",
	"items", "subtotal", "discount", "shipping", "tax", "fee", "total",
	"status", "orderdate", "payment", "promo", "source",
}

// ExportCSV streams the full order list as CSV for the admin back-office.
func (s *OrderService) ExportCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.Repo.ListForExport(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for i := range orders {
		if err := cw.Write(exportRow(&orders[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(o *model.Order) []string {
	promo := ""
	if o.PromoCode != nil {
		promo = *o.PromoCode
	}
	address := o.Address
	if o.City != "" {
		address += ", " + o.City
	}
	if o.PostalCode != "" {
		address += " " + o.PostalCode
	}
	return []string{
		strconv.FormatInt(o.OrderID, 10),
		o.Reference,
		o.CustomerName,
		o.Email,
		o.Phone,
		address,
		formatItems(o.Items),
		strconv.FormatInt(o.Subtotal, 10),
		strconv.FormatInt(o.Discount, 10),
		strconv.FormatInt(o.Shipping, 10),
		strconv.FormatInt(o.Tax, 10),
		strconv.FormatInt(o.Fee, 10),
		strconv.FormatInt(o.Total, 10),
		o.Status,
		o.OrderDate.Format("2006-01-02 15:04"),
		o.PaymentMethod,
		promo,
		o.Source,
	}
}

func formatItems(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s (%s/%s)", it.Quantity, it.Name, it.Size, it.Color))
	}
	return strings.Join(parts, "; ")
}
