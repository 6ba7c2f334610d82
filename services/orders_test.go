package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/models"
	"gorm.io/gorm"
)

var receiver = PlaceOrderInput{
	ReceiverStreet:      "Khreshchatyk",
	ReceiverHouseNumber: "22",
	ReceiverPhoneNumber: "+380501234567",
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User

	_, _ = e.cart.Add(ctx, user.ID, "bread", 2)
	_, _ = e.cart.Add(ctx, user.ID, "milk", 1)

	order, err := e.orders.Place(ctx, user.ID, receiver)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if order.TotalPrice.String() != "6.00" {
		t.Errorf("Expected total 6.00, got %s", order.TotalPrice)
	}
	if order.Status != models.OrderStatusProcessing {
		t.Errorf("Expected Processing, got %s", order.Status)
	}
	if !regexp.MustCompile(`^\d{14}-[0-9a-f-]{36}$`).MatchString(order.OrderRef) {
		t.Errorf("Unexpected order ref '%s'", order.OrderRef)
	}
	if order.ReceiverStreet != receiver.ReceiverStreet || order.ReceiverPhoneNumber != receiver.ReceiverPhoneNumber {
		t.Errorf("Receiver fields not captured: %+v", order)
	}

	lines, _ := e.cart.List(ctx, user.ID)
	if len(lines) != 0 {
		t.Errorf("Cart should be empty after placement, got %d lines", len(lines))
	}

	stored, err := e.orders.Get(ctx, user.ID, order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("Expected two order items, got %d", len(stored.Items))
	}
	quantities := map[uint]int{}
	for _, item := range stored.Items {
		quantities[item.ProductID] = item.Quantity
	}
	bread, _ := e.store.ProductBySlug(ctx, "bread")
	milk, _ := e.store.ProductBySlug(ctx, "milk")
	if quantities[bread.ID] != 2 || quantities[milk.ID] != 1 {
		t.Errorf("Unexpected item quantities %v", quantities)
	}

	if len(e.notifier.placed) != 1 || e.notifier.placed[0].ID != order.ID {
		t.Errorf("Expected one order.placed notification, got %+v", e.notifier.placed)
	}
}

func TestPlacedOrderIgnoresLaterPriceChanges(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User

	_, _ = e.cart.Add(ctx, user.ID, "bread", 2)
	order, err := e.orders.Place(ctx, user.ID, receiver)
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	bread, _ := e.store.ProductBySlug(ctx, "bread")
	bread.Price = models.MustMoney("9.99")
	if err := e.store.SaveProduct(ctx, bread); err != nil {
		t.Fatal(err)
	}

	stored, _ := e.orders.Get(ctx, user.ID, order.ID)
	if stored.TotalPrice.String() != "5.00" || stored.Items[0].UnitPrice.String() != "2.50" {
		t.Errorf("Order must keep the price at placement, got total %s unit %s",
			stored.TotalPrice, stored.Items[0].UnitPrice)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User

	_, err := e.orders.Place(ctx, user.ID, receiver)
	expectKind(t, err, apperr.EmptyCart)

	if n := countRows(t, e.store.DB(), &models.Order{}); n != 0 {
		t.Errorf("Expected no orders, got %d", n)
	}
	if len(e.notifier.placed) != 0 {
		t.Error("Failed placement must not notify")
	}
}

func TestPlaceOrderRejectsOversizedTotal(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User

	if _, err := e.catalog.CreateProduct(ctx, ProductInput{
		Name: "Truffle", Price: models.MaxAmount.String(), CategorySlug: "bakery",
	}); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if _, err := e.cart.Add(ctx, user.ID, "truffle", 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err := e.orders.Place(ctx, user.ID, receiver)
	expectKind(t, err, apperr.Validation)

	if n := countRows(t, e.store.DB(), &models.Order{}); n != 0 {
		t.Errorf("Expected no orders, got %d", n)
	}
	if lines, _ := e.cart.List(ctx, user.ID); len(lines) != 1 {
		t.Errorf("Cart must be untouched, got %+v", lines)
	}
}

func TestPlaceOrderRequiresReceiver(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User
	_, _ = e.cart.Add(ctx, user.ID, "bread", 1)

	in := receiver
	in.ReceiverPhoneNumber = "  "
	_, err := e.orders.Place(ctx, user.ID, in)
	expectKind(t, err, apperr.Validation)

	lines, _ := e.cart.List(ctx, user.ID)
	if len(lines) != 1 {
		t.Error("Rejected order must leave the cart alone")
	}
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User

	_, _ = e.cart.Add(ctx, user.ID, "bread", 2)
	_, _ = e.cart.Add(ctx, user.ID, "milk", 1)

	db := e.store.DB()
	injected := errors.New("injected cart delete failure")
	err := db.Callback().Delete().Before("gorm:delete").Register("test:fail_cart_delete", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "cart_items" {
			_ = tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.orders.Place(ctx, user.ID, receiver)
	expectKind(t, err, apperr.TransactionFailed)
	if !errors.Is(err, injected) {
		t.Errorf("Expected the injected cause to be wrapped, got %v", err)
	}

	if n := countRows(t, db, &models.Order{}); n != 0 {
		t.Errorf("Order must be rolled back, found %d", n)
	}
	if n := countRows(t, db, &models.OrderItem{}); n != 0 {
		t.Errorf("Order items must be rolled back, found %d", n)
	}
	lines, _ := e.cart.List(ctx, user.ID)
	if len(lines) != 2 {
		t.Errorf("Cart must be untouched, got %d lines", len(lines))
	}
	if len(e.notifier.placed) != 0 {
		t.Error("Rolled back order must not notify")
	}
}

func TestOrdersAreScopedToOwner(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	ann := e.register(t, "ann@example.com").User
	bob := e.register(t, "bob@example.com").User

	_, _ = e.cart.Add(ctx, ann.ID, "milk", 1)
	order, err := e.orders.Place(ctx, ann.ID, receiver)
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.orders.Get(ctx, bob.ID, order.ID)
	expectKind(t, err, apperr.NotFound)

	annOrders, _ := e.orders.List(ctx, ann.ID)
	bobOrders, _ := e.orders.List(ctx, bob.ID)
	if len(annOrders) != 1 || len(bobOrders) != 0 {
		t.Errorf("Unexpected order lists ann=%d bob=%d", len(annOrders), len(bobOrders))
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	e := newEnv(t)
	e.seedGroceries(t)
	ctx := context.Background()
	user := e.register(t, "ann@example.com").User
	_, _ = e.cart.Add(ctx, user.ID, "milk", 1)
	order, _ := e.orders.Place(ctx, user.ID, receiver)

	updated, err := e.orders.UpdateStatus(ctx, order.ID, "shipped")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.OrderStatusShipped {
		t.Errorf("Expected Shipped, got %s", updated.Status)
	}
	if len(e.notifier.changed) != 1 || e.notifier.changed[0].Status != models.OrderStatusShipped {
		t.Errorf("Expected status notification, got %+v", e.notifier.changed)
	}

	_, err = e.orders.UpdateStatus(ctx, order.ID, "Lost")
	expectKind(t, err, apperr.Validation)

	_, err = e.orders.UpdateStatus(ctx, order.ID+100, "Delivered")
	expectKind(t, err, apperr.NotFound)
}
