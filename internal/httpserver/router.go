package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	addressrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/address"
	productrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/product"
	shippingrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/shipping"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/auth"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/cart"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/order"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/wishlist"
)

// Deps carries the services and read-side repositories the handlers use.
type Deps struct {
	Auth      *auth.Service
	Cart      *cart.Service
	Wishlist  *wishlist.Service
	Orders    *order.Service
	Products  productrepo.Repository
	Shipping  shippingrepo.Repository
	Addresses addressrepo.Repository
	Logger    logrus.FieldLogger
}

// buildRouter wires all API routes.
func buildRouter(logger *logrus.Logger, db *pgxpool.Pool, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	router.Use(sessionMiddleware(d))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/anonymous", anonymousHandler(d))
		authGroup.POST("/signup", signupHandler(d))
		authGroup.POST("/login", loginHandler(d))
		authGroup.POST("/logout", requireSession, logoutHandler(d))
		authGroup.GET("/me", requireSession, meHandler(d))
	}

	api.GET("/products", listProductsHandler(d))
	api.GET("/products/:id", getProductHandler(d))
	api.GET("/shipping-rules", listShippingRulesHandler(d))

	cartGroup := api.Group("/cart", requireSession)
	{
		cartGroup.GET("", getCartHandler(d))
		cartGroup.POST("/items", addCartItemHandler(d))
		cartGroup.PATCH("/items/:id", updateCartItemHandler(d))
		cartGroup.DELETE("/items/:id", removeCartItemHandler(d))
		cartGroup.GET("/count", cartCountHandler(d))
		cartGroup.GET("/contains/:productId", cartContainsHandler(d))
	}

	wishlistGroup := api.Group("/wishlist", requireSession)
	{
		wishlistGroup.GET("", getWishlistHandler(d))
		wishlistGroup.POST("/items", addWishlistItemHandler(d))
		wishlistGroup.DELETE("/items/:id", removeWishlistItemHandler(d))
		wishlistGroup.GET("/contains/:productId", wishlistContainsHandler(d))
	}

	addressGroup := api.Group("/addresses", requireSession)
	{
		addressGroup.GET("", listAddressesHandler(d))
		addressGroup.POST("", createAddressHandler(d))
	}

	ordersGroup := api.Group("/orders")
	{
		// Instant buy works without a session: identity is resolved
		// from the contact block.
		ordersGroup.POST("/instant", instantBuyHandler(d))
		ordersGroup.POST("", requireSession, placeOrderHandler(d))
		ordersGroup.GET("", requireSession, listOrdersHandler(d))
		ordersGroup.GET("/:id", requireSession, getOrderHandler(d))
		ordersGroup.POST("/:id/cancel", requireSession, cancelOrderHandler(d))
	}

	adminGroup := api.Group("/admin", requireSession, requireAdmin)
	{
		adminGroup.GET("/orders", adminListOrdersHandler(d))
		adminGroup.PATCH("/orders/:id/status", adminSetStatusHandler(d))
	}

	return router
}
