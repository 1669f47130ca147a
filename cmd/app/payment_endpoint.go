package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

// registerPaymentRoutes mounts the card payment flow.
//
//	POST /payments/:orderid/snap    -> create gateway transaction (JWT)
//	POST /payments/midtrans/notify  -> gateway webhook (signature-checked)
func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService, auth *middleware.Auth) {
	pay := g.Group("/payments")

	protected := pay.Group("")
	protected.Use(auth.Require())

	protected.POST("/:orderid/snap", func(c echo.Context) error {
		orderID, err := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		url, err := ps.CreateSnapPayment(c.Request().Context(), orderID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]string{"redirect_url": url})
	})

	pay.POST("/midtrans/notify", func(c echo.Context) error {
		payload := map[string]interface{}{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := ps.HandleNotification(c.Request().Context(), payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})
}
