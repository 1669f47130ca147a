package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

type templateRequest struct {
	Name      string   `json:"name"`
	Sizes     []string `json:"sizes"`
	Colors    []string `json:"colors"`
	BasePrice int64    `json:"baseprice"`
}

// registerTemplateRoutes mounts the product template endpoints. Templates
// are a back-office tool, so the whole surface is admin-only.
func registerTemplateRoutes(g *echo.Group, ts *services.TemplateService, auth *middleware.Auth) {
	admin := g.Group("/admin")
	admin.Use(auth.Require())
	admin.Use(middleware.AdminOnly)

	admin.GET("/templates", func(c echo.Context) error {
		list, err := ts.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.GET("/templates/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		t, err := ts.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "template not found"})
		}
		return c.JSON(http.StatusOK, t)
	})

	admin.POST("/templates", func(c echo.Context) error {
		req := new(templateRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		t := &model.ProductTemplate{
			Name:      req.Name,
			Sizes:     req.Sizes,
			Colors:    req.Colors,
			BasePrice: req.BasePrice,
		}
		id, err := ts.Create(c.Request().Context(), t)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"templateid": id})
	})

	admin.PUT("/templates/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(templateRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		t := &model.ProductTemplate{
			TemplateID: id,
			Name:       req.Name,
			Sizes:      req.Sizes,
			Colors:     req.Colors,
			BasePrice:  req.BasePrice,
		}
		if err := ts.Update(c.Request().Context(), t); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.DELETE("/templates/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := ts.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
