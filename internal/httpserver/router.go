package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/lvieira/catalogo-api/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	ProductHandler  *ProductHTTP
	CategoryHandler *CategoryHTTP
	SearchHandler   *SearchHTTP
	AuthMW          *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	public := e.Group("/public")
	public.POST("/cadastro", d.AuthHandler.Register)
	public.POST("/login", d.AuthHandler.Login)

	private := e.Group("/private", d.AuthMW.RequireLogin)

	private.POST("/criar-produto", d.ProductHandler.CreateProduct)
	private.GET("/listar-produtos", d.ProductHandler.GetProducts)
	private.GET("/listar-produto/:id", d.ProductHandler.GetProduct)
	private.PUT("/editar-produto/:id", d.ProductHandler.UpdateProduct)
	private.DELETE("/deletar-produto/:id", d.ProductHandler.DeleteProduct)

	private.POST("/criar-categoria", d.CategoryHandler.CreateCategory)
	private.GET("/listar-categorias", d.CategoryHandler.GetCategories)
	private.GET("/listar-categoria/:id", d.CategoryHandler.GetCategory)
	private.PUT("/editar-categoria/:id", d.CategoryHandler.UpdateCategory)
	private.DELETE("/deletar-categoria/:id", d.CategoryHandler.DeleteCategory)

	if d.SearchHandler != nil {
		private.GET("/buscar-produtos", d.SearchHandler.SearchProducts)
	}
}
