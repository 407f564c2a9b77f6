package routes

import (
	"net/http"

	"patakha/auth"
	"patakha/middleware"
	"patakha/orders"
	"patakha/products"
	"patakha/ratelim"
	"patakha/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))

	router.GET("/api/profile", middleware.Authenticate(auth.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(auth.EditProfile))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/:productid", middleware.OptionalAuth(products.GetProduct))

	router.POST("/api/products", rl.Limit(middleware.Authenticate(middleware.RequireAdmin(products.CreateProduct))))
	router.PUT("/api/products/:productid", rl.Limit(middleware.Authenticate(middleware.RequireAdmin(products.EditProduct))))
	router.DELETE("/api/products/:productid", rl.Limit(middleware.Authenticate(middleware.RequireAdmin(products.DeleteProduct))))
	router.POST("/api/products/:productid/image", rl.Limit(middleware.Authenticate(middleware.RequireAdmin(products.UploadProductImage))))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/mine", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders", middleware.Authenticate(middleware.RequireAdmin(orders.GetAllOrders)))
	router.GET("/api/orders/updates", middleware.Authenticate(middleware.RequireAdmin(orders.AdminOrderUpdates)))

	router.GET("/api/orders/id/:orderid", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/id/:orderid/qr", middleware.Authenticate(orders.OrderPaymentQR))
	router.GET("/api/orders/id/:orderid/invoice", middleware.Authenticate(orders.OrderInvoice))
	router.GET("/api/orders/id/:orderid/track", orders.TrackOrder)

	// The GET detail routes live under /id/ because httprouter cannot mix
	// the :orderid wildcard with the static /mine and /updates siblings.
	router.PUT("/api/orders/:orderid/status", rl.Limit(middleware.Authenticate(middleware.RequireAdmin(orders.UpdateOrderStatus))))
}

func AddReviewsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reviews", rl.Limit(middleware.Authenticate(reviews.AddReview)))
	router.GET("/api/reviews/product/:productid", middleware.OptionalAuth(reviews.GetProductReviews))
	router.DELETE("/api/reviews/:reviewid", rl.Limit(middleware.Authenticate(reviews.DeleteReview)))
}
