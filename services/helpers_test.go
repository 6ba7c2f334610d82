package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/auth"
	"github.com/XTHN9RF/Foodify-API/cache"
	"github.com/XTHN9RF/Foodify-API/database/dbtest"
	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/XTHN9RF/Foodify-API/store"
)

func newTokens(t *testing.T, now func() time.Time) *auth.TokenService {
	t.Helper()
	access, err := auth.NewKeySet(auth.Key{ID: "a1", Secret: []byte("access-secret")})
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := auth.NewKeySet(auth.Key{ID: "r1", Secret: []byte("refresh-secret")})
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := auth.NewTokenService(auth.TokenConfig{AccessKeys: access, RefreshKeys: refresh, Now: now})
	if err != nil {
		t.Fatal(err)
	}
	return tokens
}

type recordingNotifier struct {
	mu      sync.Mutex
	placed  []models.Order
	changed []models.Order
}

func (n *recordingNotifier) OrderPlaced(order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order)
}

func (n *recordingNotifier) OrderStatusChanged(order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, order)
}

type env struct {
	store    *store.Store
	tokens   *auth.TokenService
	auth     *Auth
	catalog  *Catalog
	cart     *Cart
	orders   *Orders
	profile  *Profile
	notifier *recordingNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := store.New(dbtest.New(t))
	tokens := newTokens(t, nil)
	notifier := &recordingNotifier{}
	return &env{
		store:    s,
		tokens:   tokens,
		auth:     NewAuth(s, tokens),
		catalog:  NewCatalog(s, cache.NewMemory()),
		cart:     NewCart(s),
		orders:   NewOrders(s, notifier),
		profile:  NewProfile(s),
		notifier: notifier,
	}
}

// seedGroceries creates bread (2.50) in Bakery and milk (1.00) in Dairy.
func (e *env) seedGroceries(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, name := range []string{"Bakery", "Dairy"} {
		if _, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: name}); err != nil {
			t.Fatalf("CreateCategory %s failed: %v", name, err)
		}
	}
	for _, in := range []ProductInput{
		{Name: "Bread", Description: "Sourdough loaf", Price: "2.50", CategorySlug: "bakery"},
		{Name: "Milk", Description: "Whole milk", Price: "1.00", CategorySlug: "dairy"},
	} {
		if _, err := e.catalog.CreateProduct(ctx, in); err != nil {
			t.Fatalf("CreateProduct %s failed: %v", in.Name, err)
		}
	}
}

func (e *env) register(t *testing.T, email string) *Session {
	t.Helper()
	sess, err := e.auth.Register(context.Background(), RegisterInput{
		Email: email, Name: "Ann", LastName: "Lee", Settlement: "Kyiv", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return sess
}

func expectKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("Expected %s error, got %s (%v)", kind, got, err)
	}
}
