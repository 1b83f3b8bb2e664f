package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeOrderStore struct {
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	cp := *order
	f.orders[order.ID.Hex()] = &cp
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) Find(_ context.Context, filter store.OrderFilter) ([]models.Order, error) {
	var result []models.Order
	for _, order := range f.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && order.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && order.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !order.CreatedAt.Before(*filter.To) {
			continue
		}
		result = append(result, *order)
	}
	if filter.SortByReadyAt {
		sort.Slice(result, func(i, j int) bool {
			return result[i].ReadyAt.Before(*result[j].ReadyAt)
		})
	} else {
		sort.Slice(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}
	return result, nil
}

func (f *fakeOrderStore) SetStatus(_ context.Context, id string, status models.OrderStatus, updatedAt time.Time, readyAt, completedAt *time.Time) error {
	order, ok := f.orders[id]
	if !ok {
		return store.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	if readyAt != nil {
		order.ReadyAt = readyAt
	}
	if completedAt != nil {
		order.CompletedAt = completedAt
	}
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return store.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakeMenu struct {
	items map[string]*models.MenuItem
}

func newFakeMenu(items ...*models.MenuItem) *fakeMenu {
	menu := &fakeMenu{items: make(map[string]*models.MenuItem)}
	for _, item := range items {
		menu.items[item.ID.Hex()] = item
	}
	return menu
}

func (f *fakeMenu) Resolve(_ context.Context, itemID string) (*models.MenuItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, store.ErrMenuItemNotFound
	}
	cp := *item
	return &cp, nil
}

type fakeBroadcaster struct {
	newOrders     []*models.Order
	statusUpdates []*models.Order
}

func (f *fakeBroadcaster) NewOrder(order *models.Order) {
	f.newOrders = append(f.newOrders, order)
}

func (f *fakeBroadcaster) OrderStatusUpdate(order *models.Order) {
	f.statusUpdates = append(f.statusUpdates, order)
}

func menuItem(name string, price float64, available bool) *models.MenuItem {
	return &models.MenuItem{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Category:  models.CategoryMainCourse,
		Available: available,
	}
}

func newTestService(menu MenuResolver) (*OrderService, *fakeOrderStore, *fakeBroadcaster) {
	orderStore := newFakeOrderStore()
	broadcaster := &fakeBroadcaster{}
	service := NewOrderService(orderStore, menu, broadcaster)
	return service, orderStore, broadcaster
}

func TestCreateOrderComputesTotal(t *testing.T) {
	itemA := menuItem("Margherita", 10, true)
	itemB := menuItem("Lemonade", 5, true)
	service, _, broadcaster := newTestService(newFakeMenu(itemA, itemB))

	order, err := service.Create(context.Background(), CreateOrderInput{
		Items: []CreateOrderItem{
			{MenuItemID: itemA.ID.Hex(), Quantity: 2},
			{MenuItemID: itemB.ID.Hex(), Quantity: 1},
		},
		CustomerName: "Ada",
		TableNumber:  "4",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if order.Total != 25 {
		t.Errorf("total = %v, want 25", order.Total)
	}
	if order.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.OrderNumber == "" {
		t.Error("order number not assigned")
	}
	if len(order.Items) != 2 {
		t.Fatalf("line items = %d, want 2", len(order.Items))
	}
	if order.Items[0].Name != "Margherita" || order.Items[0].Price != 10 {
		t.Errorf("line item did not snapshot name/price: %+v", order.Items[0])
	}
	if len(broadcaster.newOrders) != 1 {
		t.Errorf("newOrder events = %d, want 1", len(broadcaster.newOrders))
	}
}

func TestCreateOrderCarriesDeliveryAddress(t *testing.T) {
	item := menuItem("Margherita", 10, true)
	service, orderStore, _ := newTestService(newFakeMenu(item))

	order, err := service.Create(context.Background(), CreateOrderInput{
		Items:           []CreateOrderItem{{MenuItemID: item.ID.Hex(), Quantity: 1}},
		OrderType:       models.OrderTypeDelivery,
		DeliveryAddress: "12 Baker Street",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if order.DeliveryAddress != "12 Baker Street" {
		t.Errorf("delivery address = %q, want 12 Baker Street", order.DeliveryAddress)
	}
	stored, err := orderStore.FindByID(context.Background(), order.ID.Hex())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.DeliveryAddress != "12 Baker Street" {
		t.Errorf("stored delivery address = %q, want 12 Baker Street", stored.DeliveryAddress)
	}
}

func TestCreateOrderSnapshotsIgnoreLaterMenuEdits(t *testing.T) {
	item := menuItem("Soup", 8, true)
	menu := newFakeMenu(item)
	service, orderStore, _ := newTestService(menu)

	order, err := service.Create(context.Background(), CreateOrderInput{
		Items: []CreateOrderItem{{MenuItemID: item.ID.Hex(), Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Menu price change after creation must not affect the stored order.
	item.Price = 99

	stored, err := orderStore.FindByID(context.Background(), order.ID.Hex())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Items[0].Price != 8 || stored.Total != 24 {
		t.Errorf("order snapshot followed menu edit: price=%v total=%v", stored.Items[0].Price, stored.Total)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	service, _, broadcaster := newTestService(newFakeMenu())

	_, err := service.Create(context.Background(), CreateOrderInput{})
	if !errors.Is(err, ErrEmptyOrder) {
		t.Errorf("err = %v, want ErrEmptyOrder", err)
	}
	if len(broadcaster.newOrders) != 0 {
		t.Error("no event should be emitted for a rejected order")
	}
}

func TestCreateOrderRejectsUnknownItem(t *testing.T) {
	service, _, _ := newTestService(newFakeMenu())

	_, err := service.Create(context.Background(), CreateOrderInput{
		Items: []CreateOrderItem{{MenuItemID: primitive.NewObjectID().Hex(), Quantity: 1}},
	})

	var invalidItem *InvalidItemError
	if !errors.As(err, &invalidItem) {
		t.Fatalf("err = %v, want InvalidItemError", err)
	}
}

func TestCreateOrderRejectsUnavailableItem(t *testing.T) {
	item := menuItem("Off Menu", 12, false)
	service, orderStore, _ := newTestService(newFakeMenu(item))

	_, err := service.Create(context.Background(), CreateOrderInput{
		Items: []CreateOrderItem{{MenuItemID: item.ID.Hex(), Quantity: 1}},
	})

	var invalidItem *InvalidItemError
	if !errors.As(err, &invalidItem) {
		t.Fatalf("err = %v, want InvalidItemError", err)
	}
	if len(orderStore.orders) != 0 {
		t.Error("rejected order must not be persisted")
	}
}

func mustCreate(t *testing.T, service *OrderService, menu *fakeMenu) *models.Order {
	t.Helper()
	var itemID string
	for id := range menu.items {
		itemID = id
		break
	}
	order, err := service.Create(context.Background(), CreateOrderInput{
		Items:       []CreateOrderItem{{MenuItemID: itemID, Quantity: 1}},
		TableNumber: "7",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return order
}

func TestAdvanceStatusFollowsTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		path    []models.OrderStatus
		target  models.OrderStatus
		allowed bool
	}{
		{"pending to preparing", nil, models.StatusPreparing, true},
		{"pending to cancelled", nil, models.StatusCancelled, true},
		{"pending to ready", nil, models.StatusReady, false},
		{"pending to completed", nil, models.StatusCompleted, false},
		{"preparing to ready", []models.OrderStatus{models.StatusPreparing}, models.StatusReady, true},
		{"preparing to completed", []models.OrderStatus{models.StatusPreparing}, models.StatusCompleted, false},
		{"ready to completed", []models.OrderStatus{models.StatusPreparing, models.StatusReady}, models.StatusCompleted, true},
		{"ready to cancelled", []models.OrderStatus{models.StatusPreparing, models.StatusReady}, models.StatusCancelled, false},
		{"completed is terminal", []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusCompleted}, models.StatusPending, false},
		{"cancelled is terminal", []models.OrderStatus{models.StatusCancelled}, models.StatusPreparing, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			menu := newFakeMenu(menuItem("Dish", 9, true))
			service, orderStore, _ := newTestService(menu)
			order := mustCreate(t, service, menu)

			for _, step := range tc.path {
				if _, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), step); err != nil {
					t.Fatalf("setup step to %s failed: %v", step, err)
				}
			}
			before, _ := orderStore.FindByID(context.Background(), order.ID.Hex())

			_, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), tc.target)
			after, _ := orderStore.FindByID(context.Background(), order.ID.Hex())

			if tc.allowed {
				if err != nil {
					t.Fatalf("AdvanceStatus(%s) failed: %v", tc.target, err)
				}
				if after.Status != tc.target {
					t.Errorf("status = %s, want %s", after.Status, tc.target)
				}
				return
			}

			var invalidTransition *InvalidTransitionError
			if !errors.As(err, &invalidTransition) {
				t.Fatalf("err = %v, want InvalidTransitionError", err)
			}
			if invalidTransition.From != before.Status || invalidTransition.To != tc.target {
				t.Errorf("error carries %s -> %s, want %s -> %s",
					invalidTransition.From, invalidTransition.To, before.Status, tc.target)
			}
			if after.Status != before.Status {
				t.Errorf("illegal transition mutated status to %s", after.Status)
			}
		})
	}
}

func TestAdvanceStatusRejectsUnknownStatus(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, _, _ := newTestService(menu)
	order := mustCreate(t, service, menu)

	_, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), "shipped")
	var invalidStatus *InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Errorf("err = %v, want InvalidStatusError", err)
	}
}

func TestCancelThenAdvanceFails(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, _, _ := newTestService(menu)
	order := mustCreate(t, service, menu)

	if _, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), models.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), models.StatusPreparing)
	var invalidTransition *InvalidTransitionError
	if !errors.As(err, &invalidTransition) {
		t.Fatalf("err = %v, want InvalidTransitionError", err)
	}
}

func TestMarkReadyStampsReadyAtOnce(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, orderStore, _ := newTestService(menu)
	order := mustCreate(t, service, menu)

	if _, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), models.StatusPreparing); err != nil {
		t.Fatalf("advance to preparing failed: %v", err)
	}

	ready, err := service.MarkReady(context.Background(), order.ID.Hex())
	if err != nil {
		t.Fatalf("MarkReady failed: %v", err)
	}
	if ready.ReadyAt == nil {
		t.Fatal("readyAt not stamped")
	}
	firstReadyAt := *ready.ReadyAt

	_, err = service.MarkReady(context.Background(), order.ID.Hex())
	var precondition *PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("second MarkReady err = %v, want PreconditionError", err)
	}
	if precondition.Current != models.StatusReady || precondition.Required != models.StatusPreparing {
		t.Errorf("precondition error carries %s/%s", precondition.Current, precondition.Required)
	}

	stored, _ := orderStore.FindByID(context.Background(), order.ID.Hex())
	if !stored.ReadyAt.Equal(firstReadyAt) {
		t.Errorf("readyAt changed from %v to %v", firstReadyAt, stored.ReadyAt)
	}
}

func TestMarkCompletedRequiresReady(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, _, _ := newTestService(menu)
	order := mustCreate(t, service, menu)

	_, err := service.MarkCompleted(context.Background(), order.ID.Hex())
	var precondition *PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("err = %v, want PreconditionError", err)
	}

	for _, step := range []models.OrderStatus{models.StatusPreparing, models.StatusReady} {
		if _, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), step); err != nil {
			t.Fatalf("advance to %s failed: %v", step, err)
		}
	}

	completed, err := service.MarkCompleted(context.Background(), order.ID.Hex())
	if err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Error("completedAt not stamped")
	}
}

func TestUpdateStatusLooseSurface(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, _, broadcaster := newTestService(menu)
	order := mustCreate(t, service, menu)

	// The admin override may skip the transition table entirely.
	updated, err := service.UpdateStatus(context.Background(), order.ID.Hex(), "completed")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Error("completedAt should be stamped on first entry even via the loose surface")
	}

	// But it still rejects values outside the enumerated set.
	_, err = service.UpdateStatus(context.Background(), order.ID.Hex(), "archived")
	var invalidStatus *InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Errorf("err = %v, want InvalidStatusError", err)
	}

	if len(broadcaster.statusUpdates) != 1 {
		t.Errorf("statusUpdate events = %d, want 1", len(broadcaster.statusUpdates))
	}
}

func TestLooseSurfaceNeverRestampsTimestamps(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, orderStore, _ := newTestService(menu)
	order := mustCreate(t, service, menu)

	if _, err := service.UpdateStatus(context.Background(), order.ID.Hex(), "ready"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	first, _ := orderStore.FindByID(context.Background(), order.ID.Hex())

	// Bounce away and back via the loose surface; readyAt must survive.
	if _, err := service.UpdateStatus(context.Background(), order.ID.Hex(), "preparing"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), order.ID.Hex(), "ready"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	second, _ := orderStore.FindByID(context.Background(), order.ID.Hex())
	if !second.ReadyAt.Equal(*first.ReadyAt) {
		t.Errorf("readyAt restamped: %v -> %v", first.ReadyAt, second.ReadyAt)
	}
}

func TestGetReadyOrdersSortedByReadyAt(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, _, _ := newTestService(menu)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	service.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	var ids []string
	for i := 0; i < 3; i++ {
		order := mustCreate(t, service, menu)
		ids = append(ids, order.ID.Hex())
	}
	// Make them ready in reverse creation order.
	for i := len(ids) - 1; i >= 0; i-- {
		if _, err := service.AdvanceStatus(context.Background(), ids[i], models.StatusPreparing); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		if _, err := service.MarkReady(context.Background(), ids[i]); err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}
	}
	// One pending order that must not appear.
	mustCreate(t, service, menu)

	ready, err := service.GetReadyOrders(context.Background())
	if err != nil {
		t.Fatalf("GetReadyOrders failed: %v", err)
	}
	if len(ready) != 3 {
		t.Fatalf("ready orders = %d, want 3", len(ready))
	}
	for i := 1; i < len(ready); i++ {
		if ready[i].ReadyAt.Before(*ready[i-1].ReadyAt) {
			t.Errorf("ready orders not sorted ascending by readyAt")
		}
	}
	if ready[0].ID.Hex() != ids[2] {
		t.Errorf("oldest ready order should come first")
	}
}

func TestNilBroadcasterDoesNotFailLifecycle(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service := NewOrderService(newFakeOrderStore(), menu, nil)

	order := mustCreate(t, service, menu)
	if _, err := service.AdvanceStatus(context.Background(), order.ID.Hex(), models.StatusPreparing); err != nil {
		t.Fatalf("AdvanceStatus failed without a broadcaster: %v", err)
	}
}

func TestAdvanceStatusUnknownOrder(t *testing.T) {
	menu := newFakeMenu(menuItem("Dish", 9, true))
	service, _, _ := newTestService(menu)

	_, err := service.AdvanceStatus(context.Background(), primitive.NewObjectID().Hex(), models.StatusPreparing)
	if !errors.Is(err, store.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}
