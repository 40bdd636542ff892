package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/providers"
	"tienda-backend/services"
)

// ---- mock order repository ----

type mockOrderRepo struct {
	createErr     error
	created       *models.Order
	findOrder     *models.Order
	findErr       error
	paymentStatus string
	statusErr     error
	createdItem   *models.OrderItem
	findItem      *models.OrderItem
	findItemErr   error
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = order
	return nil
}
func (m *mockOrderRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return m.findOrder, m.findErr
}
func (m *mockOrderRepo) FindAll(_ context.Context) ([]models.Order, error) { return nil, nil }
func (m *mockOrderRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) Update(_ context.Context, _ *models.Order) error { return nil }
func (m *mockOrderRepo) Delete(_ context.Context, _ uuid.UUID) error     { return nil }
func (m *mockOrderRepo) OwnerID(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, nil
}
func (m *mockOrderRepo) PaymentStatus(_ context.Context, _ uuid.UUID) (string, error) {
	return m.paymentStatus, m.statusErr
}
func (m *mockOrderRepo) CreateItem(_ context.Context, item *models.OrderItem) error {
	m.createdItem = item
	return nil
}
func (m *mockOrderRepo) FindItemByID(_ context.Context, _ uuid.UUID) (*models.OrderItem, error) {
	return m.findItem, m.findItemErr
}
func (m *mockOrderRepo) FindItemsByOrderID(_ context.Context, _ uuid.UUID) ([]models.OrderItem, error) {
	return nil, nil
}
func (m *mockOrderRepo) UpdateItem(_ context.Context, _ *models.OrderItem) error { return nil }
func (m *mockOrderRepo) DeleteItem(_ context.Context, _ uuid.UUID) error         { return nil }
func (m *mockOrderRepo) ItemOwnerID(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, nil
}

// ---- mock size repository ----

type mockSizeRepo struct {
	sizes   []models.ProductSize
	findErr error
}

func (m *mockSizeRepo) Create(_ context.Context, _ *models.ProductSize) error { return nil }
func (m *mockSizeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ProductSize, error) {
	for i := range m.sizes {
		if m.sizes[i].ID == id {
			return &m.sizes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSizeRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.ProductSize, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.ProductSize
	for _, id := range ids {
		for _, s := range m.sizes {
			if s.ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}
func (m *mockSizeRepo) FindAll(_ context.Context) ([]models.ProductSize, error) { return m.sizes, nil }
func (m *mockSizeRepo) Update(_ context.Context, _ *models.ProductSize) error   { return nil }
func (m *mockSizeRepo) Delete(_ context.Context, _ uuid.UUID) error             { return nil }

// ---- mock shipping repository ----

type mockShipRepo struct {
	shipping *models.Shipping
	findErr  error
}

func (m *mockShipRepo) Create(_ context.Context, _ *models.Shipping) error { return nil }
func (m *mockShipRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Shipping, error) {
	return m.shipping, m.findErr
}
func (m *mockShipRepo) FindAll(_ context.Context) ([]models.Shipping, error) { return nil, nil }
func (m *mockShipRepo) Update(_ context.Context, _ *models.Shipping) error   { return nil }
func (m *mockShipRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

// ---- mock address repository ----

type mockAddrRepo struct {
	address *models.Address
	findErr error
}

func (m *mockAddrRepo) Create(_ context.Context, _ *models.Address) error { return nil }
func (m *mockAddrRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Address, error) {
	return m.address, m.findErr
}
func (m *mockAddrRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]models.Address, error) {
	return nil, nil
}
func (m *mockAddrRepo) Update(_ context.Context, _ *models.Address) error  { return nil }
func (m *mockAddrRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }
func (m *mockAddrRepo) SetDefault(_ context.Context, _, _ uuid.UUID) error { return nil }
func (m *mockAddrRepo) OwnerID(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, nil
}

// ---- mock rate provider ----

type mockRateProvider struct {
	volumetric    float64
	volumetricErr error
	cost          float64
	costErr       error
	quoteReq      *providers.QuoteRequest
}

func (m *mockRateProvider) VolumetricWeight(_ context.Context, _, _, _ float64) (float64, error) {
	return m.volumetric, m.volumetricErr
}
func (m *mockRateProvider) DeliveryCost(_ context.Context, req providers.QuoteRequest) (float64, error) {
	m.quoteReq = &req
	return m.cost, m.costErr
}

// ---- helpers ----

func makeSize(price, weight float64) models.ProductSize {
	productID := uuid.New()
	return models.ProductSize{
		ID:        uuid.New(),
		ProductID: productID,
		Size:      "M",
		Weight:    weight,
		Product:   &models.Product{ID: productID, Name: "Shirt", Price: price},
	}
}

func withDims(s models.ProductSize, l, w, h float64) models.ProductSize {
	s.Length, s.Width, s.Height = &l, &w, &h
	return s
}

func newTestOrderService(
	orderRepo *mockOrderRepo,
	sizeRepo *mockSizeRepo,
	shipRepo *mockShipRepo,
	addrRepo *mockAddrRepo,
	provider *mockRateProvider,
) *services.OrderService {
	logger, _ := zap.NewDevelopment()
	origin := services.Origin{PostalCode: "1007", Province: "AR-C"}
	return services.NewOrderService(orderRepo, sizeRepo, shipRepo, addrRepo, provider, origin, logger)
}

// ---- pricing tests ----

func TestPriceOrder_FlatRateScenario(t *testing.T) {
	// 2 x 10.00 (1kg each) + 1 x 5.00 (0.5kg): subtotal 25.00, weight 2.5kg.
	// Base 3.00 + 2.00/kg yields shipping 8.00 and total 33.00.
	sizeA := makeSize(10.00, 1.0)
	sizeB := makeSize(5.00, 0.5)
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{sizeA, sizeB}}
	shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), BasePrice: 3.00, PricePerKilo: 2.00}}
	svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, shipRepo, &mockAddrRepo{}, &mockRateProvider{})

	quote, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: shipRepo.shipping.ID,
		Items: []services.OrderItemInput{
			{ProductSizeID: sizeA.ID, Quantity: 2},
			{ProductSizeID: sizeB.ID, Quantity: 1},
		},
	})

	assert.Nil(t, svcErr)
	assert.InDelta(t, 25.00, quote.Subtotal, 1e-9)
	assert.InDelta(t, 2.5, quote.WeightKg, 1e-9)
	assert.InDelta(t, 8.00, quote.ShippingCost, 1e-9)
	assert.InDelta(t, 33.00, quote.Total, 1e-9)
}

func TestPriceOrder_ItemOrderIndependent(t *testing.T) {
	sizeA := makeSize(12.50, 0.3)
	sizeB := makeSize(7.25, 1.2)
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{sizeA, sizeB}}
	shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), BasePrice: 4.00, PricePerKilo: 1.50}}
	svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, shipRepo, &mockAddrRepo{}, &mockRateProvider{})

	forward, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: shipRepo.shipping.ID,
		Items: []services.OrderItemInput{
			{ProductSizeID: sizeA.ID, Quantity: 3},
			{ProductSizeID: sizeB.ID, Quantity: 2},
		},
	})
	assert.Nil(t, svcErr)

	reversed, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: shipRepo.shipping.ID,
		Items: []services.OrderItemInput{
			{ProductSizeID: sizeB.ID, Quantity: 2},
			{ProductSizeID: sizeA.ID, Quantity: 3},
		},
	})
	assert.Nil(t, svcErr)
	assert.InDelta(t, forward.Total, reversed.Total, 1e-9)
}

func TestPriceOrder_FlatRateFormula(t *testing.T) {
	cases := []struct {
		base, perKilo float64
	}{
		{0, 0},
		{5.00, 0},
		{0, 3.30},
		{2.75, 1.10},
	}
	size := makeSize(9.99, 1.7)
	for _, tc := range cases {
		sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
		shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), BasePrice: tc.base, PricePerKilo: tc.perKilo}}
		svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, shipRepo, &mockAddrRepo{}, &mockRateProvider{})

		quote, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
			ShippingID: shipRepo.shipping.ID,
			Items:      []services.OrderItemInput{{ProductSizeID: size.ID, Quantity: 2}},
		})
		assert.Nil(t, svcErr)
		assert.InDelta(t, tc.base+tc.perKilo*3.4, quote.ShippingCost, 1e-9)
		assert.InDelta(t, quote.Subtotal+quote.ShippingCost, quote.Total, 1e-9)
	}
}

func TestPriceOrder_UnknownSize(t *testing.T) {
	sizeRepo := &mockSizeRepo{}
	svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, &mockShipRepo{}, &mockAddrRepo{}, &mockRateProvider{})

	_, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: uuid.New(),
		Items:      []services.OrderItemInput{{ProductSizeID: uuid.New(), Quantity: 1}},
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestPriceOrder_NoItems(t *testing.T) {
	svc := newTestOrderService(&mockOrderRepo{}, &mockSizeRepo{}, &mockShipRepo{}, &mockAddrRepo{}, &mockRateProvider{})

	_, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{ShippingID: uuid.New()})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestPriceOrder_ZeroQuantity(t *testing.T) {
	size := makeSize(10.00, 1.0)
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, &mockShipRepo{}, &mockAddrRepo{}, &mockRateProvider{})

	_, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: uuid.New(),
		Items:      []services.OrderItemInput{{ProductSizeID: size.ID, Quantity: 0}},
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestPriceOrder_CarrierBillableWeight(t *testing.T) {
	// Volumetric 4.0kg exceeds the 1.0kg actual weight, so the carrier is
	// asked to price 4.0kg.
	size := withDims(makeSize(20.00, 1.0), 40, 30, 20)
	addrID := uuid.New()
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), CarrierServiceCode: "paqar-clasico"}}
	addrRepo := &mockAddrRepo{address: &models.Address{ID: addrID, PostalCode: "5000", State: "AR-X"}}
	provider := &mockRateProvider{volumetric: 4.0, cost: 17.35}
	svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, shipRepo, addrRepo, provider)

	quote, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: shipRepo.shipping.ID,
		AddressID:  &addrID,
		Items:      []services.OrderItemInput{{ProductSizeID: size.ID, Quantity: 1}},
	})

	assert.Nil(t, svcErr)
	assert.InDelta(t, 17.35, quote.ShippingCost, 1e-9)
	if assert.NotNil(t, provider.quoteReq) {
		assert.InDelta(t, 4.0, provider.quoteReq.WeightKg, 1e-9)
		assert.Equal(t, "1007", provider.quoteReq.OriginPostalCode)
		assert.Equal(t, "5000", provider.quoteReq.DestinationPostalCode)
	}
}

func TestPriceOrder_CarrierNeedsAddress(t *testing.T) {
	size := makeSize(20.00, 1.0)
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), CarrierServiceCode: "paqar-clasico"}}
	svc := newTestOrderService(&mockOrderRepo{}, sizeRepo, shipRepo, &mockAddrRepo{}, &mockRateProvider{})

	_, svcErr := svc.PriceOrder(context.Background(), &services.CreateOrderRequest{
		ShippingID: shipRepo.shipping.ID,
		Items:      []services.OrderItemInput{{ProductSizeID: size.ID, Quantity: 1}},
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestCreateOrder_CarrierFailureNothingPersisted(t *testing.T) {
	size := makeSize(20.00, 1.0)
	addrID := uuid.New()
	orderRepo := &mockOrderRepo{}
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), CarrierServiceCode: "paqar-clasico"}}
	addrRepo := &mockAddrRepo{address: &models.Address{ID: addrID, PostalCode: "5000", State: "AR-X"}}
	provider := &mockRateProvider{costErr: errors.New("malformed carrier response")}
	svc := newTestOrderService(orderRepo, sizeRepo, shipRepo, addrRepo, provider)

	_, svcErr := svc.CreateOrder(context.Background(), uuid.New(), &services.CreateOrderRequest{
		ShippingID: shipRepo.shipping.ID,
		AddressID:  &addrID,
		Items:      []services.OrderItemInput{{ProductSizeID: size.ID, Quantity: 1}},
	})

	assert.NotNil(t, svcErr)
	assert.Equal(t, 502, svcErr.StatusCode)
	assert.Nil(t, orderRepo.created)
}

func TestCreateOrder_PersistsSnapshotAndPendingPayment(t *testing.T) {
	size := makeSize(10.00, 1.0)
	orderRepo := &mockOrderRepo{}
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	shipRepo := &mockShipRepo{shipping: &models.Shipping{ID: uuid.New(), BasePrice: 3.00, PricePerKilo: 2.00}}
	svc := newTestOrderService(orderRepo, sizeRepo, shipRepo, &mockAddrRepo{}, &mockRateProvider{})

	userID := uuid.New()
	order, svcErr := svc.CreateOrder(context.Background(), userID, &services.CreateOrderRequest{
		ShippingID:    shipRepo.shipping.ID,
		PaymentMethod: "card",
		Items:         []services.OrderItemInput{{ProductSizeID: size.ID, Quantity: 2}},
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, userID, order.UserID)
	assert.InDelta(t, 20.00, order.Subtotal, 1e-9)
	assert.InDelta(t, 25.00, order.Total, 1e-9)
	if assert.Len(t, order.Items, 1) {
		// Snapshot carries the server-side price, never a client value.
		assert.InDelta(t, 10.00, order.Items[0].Price, 1e-9)
		assert.Equal(t, size.ProductID, order.Items[0].ProductID)
	}
	if assert.NotNil(t, order.Payment) {
		assert.Equal(t, models.PaymentStatusPending, order.Payment.Status)
		assert.InDelta(t, order.Total, order.Payment.Amount, 1e-9)
	}
	assert.Same(t, order, orderRepo.created)
}

// ---- order item freeze tests ----

func TestAddOrderItem_FrozenOrder(t *testing.T) {
	orderRepo := &mockOrderRepo{paymentStatus: models.PaymentStatusApproved}
	size := makeSize(10.00, 1.0)
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	svc := newTestOrderService(orderRepo, sizeRepo, &mockShipRepo{}, &mockAddrRepo{}, &mockRateProvider{})

	_, svcErr := svc.AddOrderItem(context.Background(), uuid.New(), size.ID, 1, 10.00)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
	assert.Nil(t, orderRepo.createdItem)
}

func TestAddOrderItem_DerivesProductFromSize(t *testing.T) {
	orderRepo := &mockOrderRepo{paymentStatus: models.PaymentStatusPending}
	size := makeSize(10.00, 1.0)
	sizeRepo := &mockSizeRepo{sizes: []models.ProductSize{size}}
	svc := newTestOrderService(orderRepo, sizeRepo, &mockShipRepo{}, &mockAddrRepo{}, &mockRateProvider{})

	item, svcErr := svc.AddOrderItem(context.Background(), uuid.New(), size.ID, 3, 9.50)
	assert.Nil(t, svcErr)
	assert.Equal(t, size.ProductID, item.ProductID)
	assert.Equal(t, 3, item.Quantity)
}

func TestUpdateOrderItem_FrozenOrder(t *testing.T) {
	itemID := uuid.New()
	orderRepo := &mockOrderRepo{
		paymentStatus: models.PaymentStatusApproved,
		findItem:      &models.OrderItem{ID: itemID, OrderID: uuid.New(), Quantity: 1, Price: 10.00},
	}
	svc := newTestOrderService(orderRepo, &mockSizeRepo{}, &mockShipRepo{}, &mockAddrRepo{}, &mockRateProvider{})

	_, svcErr := svc.UpdateOrderItem(context.Background(), itemID, services.OrderItemUpdate{Quantity: 2, Price: 10.00})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}
