package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/marketplace/pkg/db"
	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

type Deps struct {
	StoreHandler    *StoreHTTP
	ProductHandler  *ProductHTTP
	CustomerHandler *CustomerHTTP
	ReportHandler   *ReportHTTP
	DB              *gorm.DB
	JWTSecret       []byte
	AuthClient      middleware.Refresher
}

func Register(e *echo.Echo, d *Deps) {
	e.Renderer = NewRenderer()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	stores := e.Group("/stores")
	stores.GET("", d.StoreHandler.ListStores)
	stores.GET("/search", d.StoreHandler.SearchStores)
	stores.GET("/:id", d.StoreHandler.GetStore)
	stores.POST("", d.StoreHandler.CreateStore, authMW.RequireAuth)
	stores.PUT("/:id", d.StoreHandler.UpdateStore, authMW.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, authMW.RequireAuth)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, authMW.RequireAuth)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMW.RequireAuth)

	customers := e.Group("/customers", authMW.RequireAuth)
	customers.POST("", d.CustomerHandler.Register)
	customers.GET("/me", d.CustomerHandler.Me)

	reports := e.Group("/reports", authMW.RequireAdmin)
	reports.GET("/orders", d.ReportHandler.OrdersReport)
}
