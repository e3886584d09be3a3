package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alejandrorivera22/ecom-cart/internal/domain"
	authsvc "github.com/alejandrorivera22/ecom-cart/internal/service/auth"
	cartsvc "github.com/alejandrorivera22/ecom-cart/internal/service/cart"
	customersvc "github.com/alejandrorivera22/ecom-cart/internal/service/customer"
	ordersvc "github.com/alejandrorivera22/ecom-cart/internal/service/order"
	orderdetailsvc "github.com/alejandrorivera22/ecom-cart/internal/service/orderdetail"
	productsvc "github.com/alejandrorivera22/ecom-cart/internal/service/product"
)

// Deps carries the services the router exposes.
type Deps struct {
	Auth         *authsvc.Service
	Customers    *customersvc.Service
	Products     *productsvc.Service
	Carts        *cartsvc.Service
	Orders       *ordersvc.Service
	OrderDetails *orderdetailsvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	authH := &authHandler{auth: deps.Auth}
	custH := &customerHandler{customers: deps.Customers}
	prodH := &productHandler{products: deps.Products}
	cartH := &cartHandler{carts: deps.Carts}
	orderH := &orderHandler{orders: deps.Orders}
	detailH := &orderDetailHandler{details: deps.OrderDetails}

	auth := router.Group("/auth")
	{
		auth.POST("/login", authH.login)
		auth.POST("/register", authH.register)
	}

	authed := authRequired(deps.Auth)
	admin := requireRoles(domain.RoleAdmin)
	seller := requireRoles(domain.RoleSeller)
	customerOnly := requireRoles(domain.RoleCustomer)
	adminOrCustomer := requireRoles(domain.RoleAdmin, domain.RoleCustomer)
	adminOrSeller := requireRoles(domain.RoleAdmin, domain.RoleSeller)

	customer := router.Group("/customer", authed)
	{
		customer.GET("", admin, custH.list)
		customer.GET("/:id", admin, custH.getByID)
		customer.GET("/username/:username", admin, custH.getByUsername)
		customer.GET("/email/:email", admin, custH.getByEmail)
		customer.GET("/disabled-customer", admin, custH.listDisabled)
		customer.PUT("/:id", adminOrCustomer, custH.update)
		customer.PUT("/username/:username", adminOrCustomer, custH.updateByUsername)
		customer.PATCH("/add-role", admin, custH.addRole)
		customer.DELETE("/:id", custH.delete)
	}

	product := router.Group("/product")
	{
		product.GET("", prodH.list)
		product.GET("/:id", prodH.getByID)
		product.GET("/category/:id", prodH.listByCategory)
		product.GET("/disabled-products", prodH.listDisabled)
		product.POST("", authed, adminOrSeller, prodH.create)
		product.PUT("/:id", authed, adminOrSeller, prodH.update)
		product.PATCH("/:id/stock", authed, seller, prodH.updateStock)
		product.DELETE("/:id", authed, adminOrSeller, prodH.delete)
	}

	cart := router.Group("/cart", authed, customerOnly)
	{
		cart.POST("/:customerId", cartH.create)
		cart.GET("/:cartId", cartH.getByID)
		cart.GET("/customer/:customerId", cartH.getByCustomer)
		cart.PATCH("/:cartId/product/:productId", cartH.addProduct)
		cart.DELETE("/remove-product/:cartId/:productId", cartH.removeProduct)
		cart.DELETE("/:cartId/clear", cartH.clear)
	}

	order := router.Group("/order", authed)
	{
		order.POST("", customerOnly, orderH.create)
		order.GET("", admin, orderH.list)
		order.GET("/:orderId", adminOrSeller, orderH.getByID)
		order.GET("/customer/:customerId", adminOrCustomer, orderH.listByCustomer)
		order.PATCH("/status-order/:orderId", adminOrSeller, orderH.updateStatus)
		order.PATCH("/cancel/:orderId", customerOnly, orderH.cancel)
	}

	detail := router.Group("/order-detail", authed)
	{
		detail.GET("", admin, detailH.list)
		detail.GET("/order/:orderId", detailH.listByOrder)
		detail.GET("/product/:productId", adminOrCustomer, detailH.listByProduct)
	}

	return router
}
