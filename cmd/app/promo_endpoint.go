package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

type validatePromoRequest struct {
	Code string `json:"code"`
}

type promoRequest struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discounttype"`
	DiscountValue int64  `json:"discountvalue"`
	ValidFrom     string `json:"validfrom,omitempty"`  // YYYY-MM-DD
	ValidUntil    string `json:"validuntil,omitempty"` // YYYY-MM-DD
	MaxUses       *int   `json:"maxuses,omitempty"`
}

func (req *promoRequest) toModel(id int64) (*model.PromoCode, error) {
	p := &model.PromoCode{
		PromoID:       id,
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxUses:       req.MaxUses,
	}
	if req.ValidFrom != "" {
		t, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			return nil, err
		}
		p.ValidFrom = &t
	}
	if req.ValidUntil != "" {
		t, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, err
		}
		// the code stays valid through the named day
		t = t.Add(24*time.Hour - time.Second)
		p.ValidUntil = &t
	}
	return p, nil
}

// registerPromoRoutes mounts promo endpoints.
//
// Public:
//
//	POST /promos/validate -> check a code without redeeming it
//
// Admin:
//
//	GET    /admin/promos      -> list (includes usage counters)
//	POST   /admin/promos      -> create
//	PUT    /admin/promos/:id  -> update
//	DELETE /admin/promos/:id  -> soft delete
func registerPromoRoutes(g *echo.Group, ps *services.PromoService, auth *middleware.Auth) {
	g.POST("/promos/validate", func(c echo.Context) error {
		req := new(validatePromoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		v, err := ps.Validate(c.Request().Context(), req.Code, time.Now())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, v)
	})

	admin := g.Group("/admin")
	admin.Use(auth.Require())
	admin.Use(middleware.AdminOnly)

	admin.GET("/promos", func(c echo.Context) error {
		list, err := ps.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.POST("/promos", func(c echo.Context) error {
		req := new(promoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		p, err := req.toModel(0)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date (use YYYY-MM-DD)"})
		}
		id, err := ps.Create(c.Request().Context(), p)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"promoid": id})
	})

	admin.PUT("/promos/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(promoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		p, err := req.toModel(id)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date (use YYYY-MM-DD)"})
		}
		if err := ps.Update(c.Request().Context(), p); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.DELETE("/promos/:id", func(c echo.Context) error {
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
