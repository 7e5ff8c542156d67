package server

import (
	"artmarket-backend/internal/auth"
	"artmarket-backend/internal/handler"
	"artmarket-backend/internal/middleware"
	"artmarket-backend/internal/model"
	"artmarket-backend/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo               *echo.Echo
	authService        *auth.Service
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	productHandler     *handler.ProductHandler
	marketplaceHandler *handler.MarketplaceHandler
	checkoutHandler    *handler.CheckoutHandler
}

func NewServer(
	authService *auth.Service,
	userService service.UserService,
	catalogService service.CatalogService,
	marketplaceService service.MarketplaceService,
	checkoutService service.CheckoutService,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:               e,
		authService:        authService,
		authHandler:        handler.NewAuthHandler(userService),
		userHandler:        handler.NewUserHandler(userService),
		productHandler:     handler.NewProductHandler(catalogService),
		marketplaceHandler: handler.NewMarketplaceHandler(marketplaceService),
		checkoutHandler:    handler.NewCheckoutHandler(checkoutService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authRequired := middleware.Auth(s.authService)
	sellersOnly := middleware.RequireRole(model.RoleAdminID, model.RoleArtistID)

	// -------- auth --------
	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.authHandler.Register)
	authGroup.POST("/login", s.authHandler.Login)
	authGroup.POST("/password-reset", s.authHandler.RequestPasswordReset)

	// -------- users --------
	users := api.Group("/users", authRequired)
	users.GET("/me", s.userHandler.Me)
	users.PATCH("/me", s.userHandler.UpdateMe)

	// -------- catalog --------
	products := api.Group("/products")
	products.GET("", s.productHandler.List)
	products.GET("/:id", s.productHandler.Get)
	products.GET("/seller/:userID", s.productHandler.ListBySeller)
	products.POST("", s.productHandler.Create, authRequired, sellersOnly)
	products.PATCH("/:id", s.productHandler.Patch, authRequired, sellersOnly)
	products.DELETE("/:id", s.productHandler.Delete, authRequired, sellersOnly)

	categories := api.Group("/categories")
	categories.GET("", s.marketplaceHandler.ListCategories)
	categories.GET("/:id", s.marketplaceHandler.GetCategory)
	categories.POST("", s.marketplaceHandler.CreateCategory, authRequired, sellersOnly)
	categories.PUT("/:id", s.marketplaceHandler.RenameCategory, authRequired, sellersOnly)
	categories.DELETE("/:id", s.marketplaceHandler.DeleteCategory, authRequired, sellersOnly)

	reviews := api.Group("/reviews")
	reviews.GET("/:id", s.marketplaceHandler.GetReview)
	reviews.GET("/product/:productID", s.marketplaceHandler.ListProductReviews)
	reviews.POST("", s.marketplaceHandler.CreateReview, authRequired)
	reviews.DELETE("/:id", s.marketplaceHandler.DeleteReview, authRequired)

	commissions := api.Group("/commissions", authRequired)
	commissions.GET("", s.marketplaceHandler.ListCommissions)
	commissions.GET("/:id", s.marketplaceHandler.GetCommission)
	commissions.POST("", s.marketplaceHandler.CreateCommission)
	commissions.DELETE("/:id", s.marketplaceHandler.DeleteCommission)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/create", s.checkoutHandler.Create, authRequired)
	payments.POST("/capture/:orderID", s.checkoutHandler.Capture)
	payments.POST("/confirm/:orderID", s.checkoutHandler.Confirm)

	// -------- paypal return callback --------
	payments.GET("/success", s.checkoutHandler.HandleSuccess)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
