package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

type productRequest struct {
	CategoryID  *int64   `json:"categoryid"`
	TemplateID  *int64   `json:"templateid"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       int64    `json:"price"`
	Segment     string   `json:"segment"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	ImageURL    *string  `json:"imageurl"`
	Active      *bool    `json:"active"`
}

func (req *productRequest) toModel(id int64) *model.Product {
	p := &model.Product{
		ProductID:   id,
		CategoryID:  req.CategoryID,
		TemplateID:  req.TemplateID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Segment:     req.Segment,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	return p
}

// registerProductRoutes mounts catalog endpoints.
//
// Public:
//
//	GET /products      -> list (?segment=&category=&q=&limit=&offset=)
//	GET /products/:id  -> get
//
// Admin:
//
//	POST   /admin/products      -> create
//	PUT    /admin/products/:id  -> update
//	DELETE /admin/products/:id  -> soft delete
func registerProductRoutes(g *echo.Group, ps *services.ProductService, auth *middleware.Auth) {
	g.GET("/products", func(c echo.Context) error {
		ctx := c.Request().Context()

		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		categoryID, _ := strconv.ParseInt(c.QueryParam("category"), 10, 64)

		f := repository.ProductFilter{
			Segment:    c.QueryParam("segment"),
			CategoryID: categoryID,
			Search:     c.QueryParam("q"),
			Limit:      limit,
			Offset:     offset,
		}
		list, err := ps.List(ctx, f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		p, err := ps.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})

	admin := g.Group("/admin")
	admin.Use(auth.Require())
	admin.Use(middleware.AdminOnly)

	admin.POST("/products", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := ps.Create(c.Request().Context(), req.toModel(0))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"productid": id})
	})

	admin.PUT("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := ps.Update(c.Request().Context(), req.toModel(id)); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.DELETE("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := ps.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
