package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

type checkoutRequest struct {
	CustomerName  string `json:"customername"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalcode"`
	PaymentMethod string `json:"paymentmethod"`
	Source        string `json:"source,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// registerOrderRoutes mounts checkout and order management.
//
// Storefront:
//
//	POST /checkout      -> place the session cart as an order (guests allowed)
//	GET  /orders        -> the caller's order history (JWT)
//	GET  /orders/:id    -> one of the caller's orders (JWT)
//
// Admin:
//
//	GET /admin/orders              -> list (?status=&limit=&offset=)
//	GET /admin/orders/:id          -> get with items
//	PUT /admin/orders/:id/status   -> move through the status machine
//	GET /admin/orders/export       -> CSV download
//	GET /admin/dashboard           -> order counts and revenue per status
func registerOrderRoutes(g *echo.Group, osvc *services.OrderService, as *services.AuthService, cs *services.CartService, sessions *cart.Manager, auth *middleware.Auth) {
	g.POST("/checkout", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		req := new(checkoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		in := services.CheckoutInput{
			CustomerName:  req.CustomerName,
			Email:         req.Email,
			Phone:         req.Phone,
			Address:       req.Address,
			City:          req.City,
			PostalCode:    req.PostalCode,
			PaymentMethod: req.PaymentMethod,
			Source:        req.Source,
		}
		order, err := osvc.Submit(c.Request().Context(), sess, in)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		sessions.Drop(sess.ID)
		return c.JSON(http.StatusCreated, order)
	})

	mine := g.Group("/orders")
	mine.Use(auth.Require())

	mine.GET("", func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		cust, err := as.GetCustomer(c.Request().Context(), claims.AuthID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer record not found"})
		}
		list, err := osvc.ListByCustomer(c.Request().Context(), cust.CustomerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	mine.GET("/:id", func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		order, err := osvc.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
		}
		if claims.Role != "admin" {
			cust, err := as.GetCustomer(c.Request().Context(), claims.AuthID)
			if err != nil || order.CustomerID == nil || *order.CustomerID != cust.CustomerID {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
			}
		}
		return c.JSON(http.StatusOK, order)
	})

	admin := g.Group("/admin")
	admin.Use(auth.Require())
	admin.Use(middleware.AdminOnly)

	admin.GET("/orders", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		f := repository.OrderFilter{
			Status: c.QueryParam("status"),
			Limit:  limit,
			Offset: offset,
		}
		list, err := osvc.List(c.Request().Context(), f)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// static route before /orders/:id so echo does not swallow it
	admin.GET("/orders/export", func(c echo.Context) error {
		filename := "orders-" + time.Now().Format("20060102") + ".csv"
		c.Response().Header().Set(echo.HeaderContentType, "text/csv")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		c.Response().WriteHeader(http.StatusOK)
		return osvc.ExportCSV(c.Request().Context(), c.Response())
	})

	admin.GET("/orders/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		order, err := osvc.Get(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
		}
		return c.JSON(http.StatusOK, order)
	})

	admin.PUT("/orders/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(updateStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := osvc.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.GET("/dashboard", func(c echo.Context) error {
		counts, err := osvc.Dashboard(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, counts)
	})
}
