package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlersはルート登録に必要なhandler一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Category     *handler.CategoryHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Payment      *handler.PaymentHandler
	Review       *handler.ReviewHandler
	Wishlist     *handler.WishlistHandler
	Contact      *handler.ContactHandler
	Profile      *handler.ProfileHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
	AdminUser    *handler.AdminUserHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	//公開
	h.Auth.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)

	//要ログイン（/reviews の一覧だけ公開）
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Payment.RegisterRoutes(e, cfg, userRepo)
	h.Review.RegisterRoutes(e, cfg, userRepo)
	h.Wishlist.RegisterRoutes(e, cfg, userRepo)
	h.Profile.RegisterRoutes(e, cfg, userRepo)

	//管理者のみ
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.AdminProduct.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg, userRepo)
}
