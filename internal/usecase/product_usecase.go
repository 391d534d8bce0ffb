package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	reviewRepo    repo.ReviewRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	reviewRepo repo.ReviewRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		reviewRepo:    reviewRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
	InStock  bool
}

// 商品のレスポンス。レビュー集計と在庫の派生値を含む。
type ProductOutput struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Slug              string         `json:"slug"`
	Category          model.Category `json:"category"`
	Price             int64          `json:"price"`
	Description       string         `json:"description"`
	ImageURL          string         `json:"image_url"`
	IsFeatured        bool           `json:"is_featured"`
	StockQuantity     int64          `json:"stock_quantity"`
	LowStockThreshold int64          `json:"low_stock_threshold"`
	InStock           bool           `json:"in_stock"`
	LowStock          bool           `json:"low_stock"`
	AverageRating     float64        `json:"average_rating"`
	ReviewCount       int64          `json:"review_count"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Search:       strings.TrimSpace(in.Search),
		CategorySlug: strings.TrimSpace(in.Category),
		InStockOnly:  in.InStock,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs, err := u.toProductOutputs(ctx, items)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: outs,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// おすすめ商品（最大6件、在庫ありのみ）
func (u *ProductUsecase) ListFeatured(ctx context.Context) ([]ProductOutput, error) {
	items, err := u.productRepo.ListFeatured(ctx, 6)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs, err := u.toProductOutputs(ctx, items)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return outs, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs, err := u.toProductOutputs(ctx, []model.Product{p})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return outs[0], nil
}

// カテゴリとレビュー集計を付けてレスポンスへ変換する
func (u *ProductUsecase) toProductOutputs(ctx context.Context, items []model.Product) ([]ProductOutput, error) {
	outs := make([]ProductOutput, 0, len(items))

	//カテゴリは件数が少ないのでIDごとにキャッシュする
	categories := map[int64]model.Category{}

	for _, p := range items {
		cat, ok := categories[p.CategoryID]
		if !ok {
			c, err := u.categoryRepo.FindByID(ctx, p.CategoryID)
			if err != nil && err != repo.ErrNotFound {
				return nil, err
			}
			cat = c
			categories[p.CategoryID] = c
		}

		stats, err := u.reviewRepo.StatsByProductID(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		outs = append(outs, ProductOutput{
			ID:                p.ID,
			Title:             p.Title,
			Slug:              p.Slug,
			Category:          cat,
			Price:             p.Price,
			Description:       p.Description,
			ImageURL:          p.ImageURL,
			IsFeatured:        p.IsFeatured,
			StockQuantity:     p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
			InStock:           p.IsInStock(),
			LowStock:          p.IsLowStock(),
			AverageRating:     roundRating(stats.Average, stats.Count),
			ReviewCount:       stats.Count,
		})
	}

	return outs, nil
}

// 平均は小数1桁へ丸め。レビューゼロなら0。
func roundRating(avg float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(avg*10) / 10
}

type AdminProductInput struct {
	Title             string
	CategoryID        int64
	Price             int64
	Description       string
	ImageURL          string
	IsFeatured        bool
	StockQuantity     int64
	LowStockThreshold int64
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in AdminProductInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}

	//カテゴリの存在確認
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return 0, NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	threshold := in.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Title:             strings.TrimSpace(in.Title),
		Slug:              slugify(in.Title),
		CategoryID:        in.CategoryID,
		Price:             in.Price,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		IsFeatured:        in.IsFeatured,
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err == repo.ErrConflict {
		return 0, NewHTTPError(http.StatusConflict, "slug already exists")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID int64, in AdminProductInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}

	current, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.productRepo.Update(ctx, model.Product{
		ID:                productID,
		Title:             strings.TrimSpace(in.Title),
		Slug:              current.Slug,
		CategoryID:        in.CategoryID,
		Price:             in.Price,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		IsFeatured:        in.IsFeatured,
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: in.LowStockThreshold,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫の現在値を更新し、調整履歴と監査ログを残す
func (u *ProductUsecase) AdminUpdateInventory(ctx context.Context, adminUserID int64, productID int64, newStock int64, reason string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（before）
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	beforeJSON := fmt.Sprintf(`{"stock_quantity":%d}`, p.StockQuantity)
	afterJSON := fmt.Sprintf(`{"stock_quantity":%d}`, newStock)

	if err := u.inventoryRepo.SetStock(ctx, productID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//履歴を作成（差分）
	adj := model.InventoryAdjustment{
		ProductID:   productID,
		AdminUserID: adminUserID,
		Delta:       newStock - p.StockQuantity,
		Reason:      strings.TrimSpace(reason),
		CreatedAt:   time.Now(),
	}
	if err := u.inventoryRepo.CreateAdjustment(ctx, adj); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログを作成（在庫更新）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// タイトルからURL用のslugを作る
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugNonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
