package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-mouse-storefront/internal/cart"
	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
	"github.com/imrishuroy/go-mouse-storefront/internal/validation"
)

type fixture struct {
	svc    *Service
	carts  *cart.Store
	orders *orders.Store
}

func newFixture(t *testing.T, commit func(kv.Store) Committer) *fixture {
	t.Helper()
	mem := kv.NewMemory()
	products := catalog.NewStore(mem)
	require.NoError(t, products.SaveProducts(context.Background(), catalog.SampleProducts()))
	carts := cart.NewStore(mem)
	history := orders.NewStore(mem)
	if commit == nil {
		commit = func(s kv.Store) Committer { return NewKVCommitter(s) }
	}
	svc := NewService(products, carts, history, commit(mem))
	svc.nowFunc = func() time.Time { return time.UnixMilli(1700000000000) }
	return &fixture{svc: svc, carts: carts, orders: history}
}

func (f *fixture) fill(t *testing.T, items ...cart.Item) {
	t.Helper()
	require.NoError(t, f.carts.SaveCart(context.Background(), cart.Cart{Items: items}))
}

func validForm() Form {
	return Form{
		CustomerName: "Rami Haddad",
		Phone:        "03123456",
		Address:      "Hamra Street, Building 4, Floor 2",
		City:         "Beirut",
	}
}

func TestPlace_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	require.NoError(t, f.orders.SaveOrders(ctx, []orders.Order{{ID: "ORD-old", Status: orders.StatusDelivered}}))
	f.fill(t, cart.Item{ProductID: "MOUSE-001", Quantity: 2}, cart.Item{ProductID: "MOUSE-004", Quantity: 1})

	o, err := f.svc.Place(ctx, validForm())
	require.NoError(t, err)
	require.Equal(t, orders.StatusPending, o.Status)
	require.Equal(t, int64(1700000000000), o.CreatedAt)
	require.Equal(t, []orders.LineItem{
		{ProductID: "MOUSE-001", ProductName: "Logitech MX Master 3S", Price: 99.99, Quantity: 2},
		{ProductID: "MOUSE-004", ProductName: "Razer Viper Mini", Price: 39.99, Quantity: 1},
	}, o.Items)
	require.Equal(t, 239.97, o.Total)
	require.Equal(t, orders.Total(o.Items), o.Total)

	history, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, o.ID, history[0].ID, "new orders go first")
	require.Equal(t, "ORD-old", history[1].ID)

	c, err := f.carts.Cart(ctx)
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

func TestPlace_InvalidPhone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fill(t, cart.Item{ProductID: "MOUSE-001", Quantity: 1})

	form := validForm()
	form.Phone = "12345"
	_, err := f.svc.Place(ctx, form)

	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "Please enter a valid Lebanese phone number", ve.Fields["phone"])
	require.Len(t, ve.Fields, 1)

	history, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	require.Empty(t, history)
	c, err := f.carts.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 1, "cart untouched on validation failure")
}

func TestPlace_AllFieldErrors(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Place(context.Background(), Form{CustomerName: " ", Phone: "", Address: "\t", City: "Paris"})

	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	require.Equal(t, validation.FieldErrors{
		"customerName": "Name is required",
		"phone":        "Phone number is required",
		"address":      "Address is required",
		"city":         "Please select a supported city",
	}, ve.Fields)
}

func TestPlace_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Place(ctx, validForm())
	require.ErrorIs(t, err, ErrEmptyCart)
	var ve *validation.Error
	require.False(t, errors.As(err, &ve))

	// only deleted products left: still empty
	f.fill(t, cart.Item{ProductID: "GONE", Quantity: 3})
	_, err = f.svc.Place(ctx, validForm())
	require.ErrorIs(t, err, ErrEmptyCart)

	history, err := f.orders.Orders(ctx)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestPlace_UnresolvedLineGetsPlaceholder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fill(t, cart.Item{ProductID: "GONE", Quantity: 3}, cart.Item{ProductID: "MOUSE-008", Quantity: 1})

	o, err := f.svc.Place(ctx, validForm())
	require.NoError(t, err)
	require.Equal(t, orders.LineItem{ProductID: "GONE", ProductName: UnknownProductName, Price: 0, Quantity: 3}, o.Items[0])
	require.Equal(t, 29.99, o.Total)
}

func TestPlace_TrimsAndKeepsNotes(t *testing.T) {
	f := newFixture(t, nil)
	f.fill(t, cart.Item{ProductID: "MOUSE-001", Quantity: 1})

	form := validForm()
	form.CustomerName = "  Rami  "
	form.Phone = "+961 3 123 456"
	form.Notes = " call before delivery "
	o, err := f.svc.Place(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, "Rami", o.CustomerName)
	require.Equal(t, "+961 3 123 456", o.Phone)
	require.Equal(t, "call before delivery", o.Notes)
}

type failingCommitter struct{}

func (failingCommitter) Commit(context.Context, []orders.Order, cart.Cart) error {
	return errors.New("store unavailable")
}

func TestPlace_CommitFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(kv.Store) Committer { return failingCommitter{} })
	f.fill(t, cart.Item{ProductID: "MOUSE-001", Quantity: 1})

	_, err := f.svc.Place(ctx, validForm())
	require.Error(t, err)

	c, err := f.carts.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
}

type recordingNotifier struct {
	placed []string
	err    error
}

func (r *recordingNotifier) OrderPlaced(_ context.Context, o orders.Order) error {
	r.placed = append(r.placed, o.ID)
	return r.err
}

func TestPlace_NotifiesAndIgnoresNotifyErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	n := &recordingNotifier{err: errors.New("queue down")}
	f.svc.WithNotifier(n)
	f.fill(t, cart.Item{ProductID: "MOUSE-001", Quantity: 1})

	o, err := f.svc.Place(ctx, validForm())
	require.NoError(t, err)
	require.Equal(t, []string{o.ID}, n.placed)
}

func TestKVCommitter_WritesBothKeysTogether(t *testing.T) {
	ctx := context.Background()
	w := kv.Watch(kv.NewMemory())
	ordersCh, cancelOrders := w.Subscribe(kv.KeyOrders)
	defer cancelOrders()

	history := []orders.Order{{ID: "ORD-1", Status: orders.StatusPending}}
	require.NoError(t, NewKVCommitter(w).Commit(ctx, history, cart.Empty()))

	require.JSONEq(t, `[{"id":"ORD-1","customerName":"","phone":"","address":"","city":"","items":null,"total":0,"status":"pending","createdAt":0}]`, string(<-ordersCh))
	c, err := cart.NewStore(w).Cart(ctx)
	require.NoError(t, err)
	require.Empty(t, c.Items)
}

// hookedCarts runs onRead the first time the cart is loaded.
type hookedCarts struct {
	cart.Repository
	once   sync.Once
	onRead func()
}

func (h *hookedCarts) Cart(ctx context.Context) (cart.Cart, error) {
	h.once.Do(h.onRead)
	return h.Repository.Cart(ctx)
}

func TestPlace_SharedLockKeepsConcurrentCartAdd(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	products := catalog.NewStore(mem)
	require.NoError(t, products.SaveProducts(ctx, catalog.SampleProducts()))
	carts := cart.NewStore(mem)
	require.NoError(t, carts.SaveCart(ctx, cart.Cart{Items: []cart.Item{{ProductID: "MOUSE-001", Quantity: 1}}}))

	lock := &sync.Mutex{}
	cartSvc := cart.NewService(carts, products).WithLock(lock)
	done := make(chan error, 1)
	hooked := &hookedCarts{Repository: carts, onRead: func() {
		// lands while checkout holds the lock between reading and committing
		go func() { done <- cartSvc.AddItem(ctx, "MOUSE-004", 1) }()
	}}

	svc := NewService(products, hooked, orders.NewStore(mem), NewKVCommitter(mem)).WithLock(lock)
	o, err := svc.Place(ctx, validForm())
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	require.NoError(t, <-done)

	c, err := carts.Cart(ctx)
	require.NoError(t, err)
	require.Equal(t, []cart.Item{{ProductID: "MOUSE-004", Quantity: 1}}, c.Items, "the add made during checkout survives")
}
