package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ---- repository mocks（testify/mock）----

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) ListAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(model.Category), args.Error(1)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *ReviewRepoMock) ListAll(ctx context.Context, page int, limit int) ([]model.Review, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.Review), args.Get(1).(int64), args.Error(2)
}

func (m *ReviewRepoMock) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(model.Review), args.Error(1)
}

func (m *ReviewRepoMock) Create(ctx context.Context, r model.Review) (model.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(model.Review), args.Error(1)
}

func (m *ReviewRepoMock) Update(ctx context.Context, r model.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *ReviewRepoMock) DeleteByID(ctx context.Context, reviewID int64) error {
	return m.Called(ctx, reviewID).Error(0)
}

func (m *ReviewRepoMock) StatsByProductID(ctx context.Context, productID int64) (repo.ReviewStats, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(repo.ReviewStats), args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *CartItemRepoMock) UpsertByUserProductSize(ctx context.Context, userID int64, productID int64, size model.Size, addQty int64) error {
	return m.Called(ctx, userID, productID, size, addQty).Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	return m.Called(ctx, cartItemID, qty).Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	return m.Called(ctx, cartItemID).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *OrderRepoMock) SetPaymentVerified(ctx context.Context, orderID int64, verified bool) error {
	return m.Called(ctx, orderID, verified).Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

type ProfileRepoMock struct{ mock.Mock }

func (m *ProfileRepoMock) Create(ctx context.Context, p *model.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProfileRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileRepoMock) FindByVerificationToken(ctx context.Context, token string) (model.Profile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileRepoMock) Update(ctx context.Context, p model.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	return m.Called(ctx, productID, newStock).Error(0)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	return m.Called(ctx, productID, qty).Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	return m.Called(ctx, adj).Error(0)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.AuditLog), args.Error(1)
}

type WishlistRepoMock struct{ mock.Mock }

func (m *WishlistRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Wishlist), args.Error(1)
}

func (m *WishlistRepoMock) FindByID(ctx context.Context, id int64) (model.Wishlist, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Wishlist), args.Error(1)
}

func (m *WishlistRepoMock) Create(ctx context.Context, w model.Wishlist) (model.Wishlist, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(model.Wishlist), args.Error(1)
}

func (m *WishlistRepoMock) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// ---- TransactionManager のテスト用実装 ----

// TxReposMock はトランザクション内で渡されるリポジトリ束
type TxReposMock struct {
	OrdersMock     *OrderRepoMock
	OrderItemsMock *OrderItemRepoMock
	ProductsMock   *ProductRepoMock
	ProfilesMock   *ProfileRepoMock
	InventoryMock  *InventoryRepoMock
}

func NewTxReposMock() *TxReposMock {
	return &TxReposMock{
		OrdersMock:     new(OrderRepoMock),
		OrderItemsMock: new(OrderItemRepoMock),
		ProductsMock:   new(ProductRepoMock),
		ProfilesMock:   new(ProfileRepoMock),
		InventoryMock:  new(InventoryRepoMock),
	}
}

func (m *TxReposMock) Orders() repo.OrderRepository         { return m.OrdersMock }
func (m *TxReposMock) OrderItems() repo.OrderItemRepository { return m.OrderItemsMock }
func (m *TxReposMock) Products() repo.ProductRepository     { return m.ProductsMock }
func (m *TxReposMock) Profiles() repo.ProfileRepository     { return m.ProfilesMock }
func (m *TxReposMock) Inventory() repo.InventoryRepository  { return m.InventoryMock }

// TxManagerMock はトランザクションを張らずにfnへそのまま渡す
type TxManagerMock struct {
	Repos *TxReposMock
}

func NewTxManagerMock() *TxManagerMock {
	return &TxManagerMock{Repos: NewTxReposMock()}
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}
