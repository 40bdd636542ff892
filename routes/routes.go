package routes

import (
	"github.com/gin-gonic/gin"

	"tienda-backend/controllers"
	"tienda-backend/middleware"
	"tienda-backend/models"
	"tienda-backend/repository"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Users      *controllers.UserController
	Products   *controllers.ProductController
	Sizes      *controllers.ProductSizeController
	Categories *controllers.CategoryController
	Carts      *controllers.CartController
	CartItems  *controllers.CartItemController
	Orders     *controllers.OrderController
	OrderItems *controllers.OrderItemController
	Payments   *controllers.PaymentController
	Shippings  *controllers.ShippingController
	Addresses  *controllers.AddressController
}

// Resolvers carries the owner lookups the ownership middleware needs.
type Resolvers struct {
	CartOwner     middleware.OwnerResolver
	CartItemOwner middleware.OwnerResolver
	OrderOwner    middleware.OwnerResolver
	ItemOwner     middleware.OwnerResolver
	AddressOwner  middleware.OwnerResolver
}

// NewResolvers wires the owner lookups from the repositories.
func NewResolvers(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	addresses repository.AddressRepository,
) Resolvers {
	return Resolvers{
		CartOwner:     carts.OwnerID,
		CartItemOwner: carts.ItemOwnerID,
		OrderOwner:    orders.OwnerID,
		ItemOwner:     orders.ItemOwnerID,
		AddressOwner:  addresses.OwnerID,
	}
}

// RegisterRoutes mounts the whole API surface on r. Catalog reads are
// public; everything else requires a token, with admin or ownership checks
// per route.
func RegisterRoutes(r *gin.Engine, ctrl Controllers, res Resolvers, jwtSecret []byte) {
	authn := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	authz := middleware.RoleAuthorizer{}

	users := r.Group("/users")
	{
		users.POST("/register", ctrl.Users.Register)
		users.POST("/login", ctrl.Users.Login)
		users.POST("/", authn, adminOnly, ctrl.Users.Create)
		users.GET("/", authn, adminOnly, ctrl.Users.List)
		users.GET("/:id", authn, ctrl.Users.Get)
		users.PUT("/:id", authn, ctrl.Users.Update)
		users.DELETE("/:id", authn, ctrl.Users.Delete)
	}

	products := r.Group("/products")
	{
		products.GET("/", ctrl.Products.List)
		products.GET("/:id", ctrl.Products.Get)
		products.POST("/", authn, adminOnly, ctrl.Products.Create)
		products.PUT("/:id", authn, adminOnly, ctrl.Products.Update)
		products.DELETE("/:id", authn, adminOnly, ctrl.Products.Delete)
	}

	sizes := r.Group("/sizes")
	{
		sizes.GET("/", ctrl.Sizes.List)
		sizes.GET("/:id", ctrl.Sizes.Get)
		sizes.POST("/", authn, adminOnly, ctrl.Sizes.Create)
		sizes.PUT("/:id", authn, adminOnly, ctrl.Sizes.Update)
		sizes.DELETE("/:id", authn, adminOnly, ctrl.Sizes.Delete)
	}

	categories := r.Group("/categories", authn)
	{
		categories.GET("/", ctrl.Categories.List)
		categories.GET("/:id", ctrl.Categories.Get)
		categories.POST("/", adminOnly, ctrl.Categories.Create)
		categories.PUT("/:id", adminOnly, ctrl.Categories.Update)
		categories.DELETE("/:id", adminOnly, ctrl.Categories.Delete)
	}

	carts := r.Group("/carts", authn)
	{
		carts.GET("/", adminOnly, ctrl.Carts.List)
		carts.GET("/me", ctrl.Carts.GetMine)
		carts.GET("/:id", middleware.CheckOwnership(authz, res.CartOwner), ctrl.Carts.Get)
		carts.DELETE("/:id", adminOnly, ctrl.Carts.Delete)
	}

	cartItems := r.Group("/cart-items", authn)
	{
		cartItems.POST("/", ctrl.CartItems.Create)
		cartItems.GET("/cart/:cartId", ctrl.CartItems.ListByCart)
		cartItems.GET("/:id", middleware.CheckOwnership(authz, res.CartItemOwner), ctrl.CartItems.Get)
		cartItems.PUT("/:id", middleware.CheckOwnership(authz, res.CartItemOwner), ctrl.CartItems.Update)
		cartItems.DELETE("/:id", middleware.CheckOwnership(authz, res.CartItemOwner), ctrl.CartItems.Delete)
	}

	orders := r.Group("/orders", authn)
	{
		orders.POST("/", ctrl.Orders.Create)
		orders.POST("/quote", ctrl.Orders.Quote)
		orders.GET("/", adminOnly, ctrl.Orders.List)
		orders.GET("/user/:userId", ctrl.Orders.ListByUser)
		orders.GET("/:id", middleware.CheckOwnership(authz, res.OrderOwner), ctrl.Orders.Get)
		orders.PUT("/:id", middleware.CheckOwnership(authz, res.OrderOwner), ctrl.Orders.UpdateShipping)
		orders.DELETE("/:id", middleware.CheckOwnership(authz, res.OrderOwner), ctrl.Orders.Delete)
	}

	orderItems := r.Group("/order-items", authn)
	{
		orderItems.POST("/", adminOnly, ctrl.OrderItems.Create)
		orderItems.GET("/order/:orderId", middleware.CheckOwnershipParam(authz, res.OrderOwner, "orderId"), ctrl.OrderItems.ListByOrder)
		orderItems.GET("/:id", middleware.CheckOwnership(authz, res.ItemOwner), ctrl.OrderItems.Get)
		orderItems.PUT("/:id", adminOnly, ctrl.OrderItems.Update)
		orderItems.DELETE("/:id", adminOnly, ctrl.OrderItems.Delete)
	}

	payments := r.Group("/payments", authn)
	{
		payments.POST("/", ctrl.Payments.Create)
		payments.GET("/", adminOnly, ctrl.Payments.List)
		payments.GET("/:id", adminOnly, ctrl.Payments.Get)
		payments.PUT("/:id", adminOnly, ctrl.Payments.Update)
		payments.DELETE("/:id", adminOnly, ctrl.Payments.Delete)
	}

	shippings := r.Group("/shippings")
	{
		shippings.GET("/", ctrl.Shippings.List)
		shippings.GET("/:id", ctrl.Shippings.Get)
		shippings.POST("/", authn, adminOnly, ctrl.Shippings.Create)
		shippings.PUT("/:id", authn, adminOnly, ctrl.Shippings.Update)
		shippings.DELETE("/:id", authn, adminOnly, ctrl.Shippings.Delete)
	}

	addresses := r.Group("/addresses", authn)
	{
		addresses.POST("/", ctrl.Addresses.Create)
		addresses.GET("/", ctrl.Addresses.List)
		addresses.GET("/user/:userId", ctrl.Addresses.ListByUser)
		addresses.PUT("/:id", middleware.CheckOwnership(authz, res.AddressOwner), ctrl.Addresses.Update)
		addresses.PATCH("/:id/default", middleware.CheckOwnership(authz, res.AddressOwner), ctrl.Addresses.SetDefault)
		addresses.DELETE("/:id", middleware.CheckOwnership(authz, res.AddressOwner), ctrl.Addresses.Delete)
	}
}
