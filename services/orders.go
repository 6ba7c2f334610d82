package services

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
	"github.com/google/uuid"
)

// Notifier is told about orders after they are committed.
type Notifier interface {
	OrderPlaced(order models.Order)
	OrderStatusChanged(order models.Order)
}

type PlaceOrderInput struct {
	ReceiverStreet      string
	ReceiverHouseNumber string
	ReceiverPhoneNumber string
}

type Orders struct {
	store    *store.Store
	notifier Notifier
	now      func() time.Time
}

// NewOrders builds the order engine. notifier may be nil.
func NewOrders(s *store.Store, notifier Notifier) *Orders {
	return &Orders{store: s, notifier: notifier, now: time.Now}
}

func generateOrderRef(now time.Time) string {
	// e.g. 20250908130500-<uuid4>
	return now.Format("20060102150405") + "-" + uuid.NewString()
}

// Place converts the user's cart into an order and empties the cart in one
// serializable transaction. Prices are read from the product rows at this
// point and copied into the order items.
func (o *Orders) Place(ctx context.Context, userID uint, in PlaceOrderInput) (*models.Order, error) {
	in.ReceiverStreet = strings.TrimSpace(in.ReceiverStreet)
	in.ReceiverHouseNumber = strings.TrimSpace(in.ReceiverHouseNumber)
	in.ReceiverPhoneNumber = strings.TrimSpace(in.ReceiverPhoneNumber)
	if in.ReceiverStreet == "" || in.ReceiverHouseNumber == "" || in.ReceiverPhoneNumber == "" {
		return nil, apperr.New(apperr.Validation, "receiver_street, receiver_house_number and receiver_phone_number are required")
	}

	var order *models.Order
	err := o.store.Transaction(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(tx *store.Store) error {
		items, err := tx.CartItemsForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.New(apperr.EmptyCart, "Cart is empty")
		}

		var total models.Money
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			total = total.Plus(item.Product.Price.Times(item.Quantity))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.Price,
			})
		}
		if !total.FitsColumn() {
			return apperr.New(apperr.Validation, "Order total exceeds "+models.MaxAmount.String())
		}

		now := o.now()
		order = &models.Order{
			OrderRef:            generateOrderRef(now),
			UserID:              userID,
			TotalPrice:          total,
			ReceiverStreet:      in.ReceiverStreet,
			ReceiverHouseNumber: in.ReceiverHouseNumber,
			ReceiverPhoneNumber: in.ReceiverPhoneNumber,
			Status:              models.OrderStatusProcessing,
			Items:               orderItems,
			CreatedAt:           now,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		_, err = tx.ClearCart(ctx, userID)
		return err
	})
	if err != nil {
		if apperr.Is(err, apperr.EmptyCart) || apperr.Is(err, apperr.Validation) {
			return nil, err
		}
		log.Printf("❌ Order placement for user %d rolled back: %v", userID, err)
		return nil, apperr.Wrap(apperr.TransactionFailed, "Failed to place order", err)
	}

	log.Printf("✅ Order %s placed by user %d, total %s", order.OrderRef, userID, order.TotalPrice)
	if o.notifier != nil {
		o.notifier.OrderPlaced(*order)
	}
	return order, nil
}

func (o *Orders) List(ctx context.Context, userID uint) ([]models.Order, error) {
	return o.store.OrdersByUser(ctx, userID)
}

func (o *Orders) Get(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := o.store.OrderForUser(ctx, userID, orderID)
	if err != nil {
		return nil, lookupErr(err, "Order not found")
	}
	return order, nil
}

func (o *Orders) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	st, ok := models.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return nil, apperr.New(apperr.Validation, "Invalid order status")
	}
	order, err := o.store.UpdateOrderStatus(ctx, orderID, st)
	if err != nil {
		return nil, lookupErr(err, "Order not found")
	}
	if o.notifier != nil {
		o.notifier.OrderStatusChanged(*order)
	}
	return order, nil
}
