package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Fullname   *string `json:"fullname"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalcode"`
	Phone      *string `json:"phone"`
}

// registerAuthRoutes mounts auth endpoints.
//
//	POST /auth/register -> create account + customer profile
//	POST /auth/login    -> issue JWT; merges the guest cart when the
//	                       client sends its X-Session-ID
//	GET  /auth/me       -> customer profile for the token holder
//	PUT  /auth/me       -> update shipping details on the profile
func registerAuthRoutes(g *echo.Group, as *services.AuthService, cs *services.CartService, sessions *cart.Manager, auth *middleware.Auth) {
	g.POST("/auth/register", func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := as.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"authid": id})
	})

	g.POST("/auth/login", func(c echo.Context) error {
		ctx := c.Request().Context()
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		u, err := as.Login(ctx, req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		token, err := auth.IssueToken(u)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		}

		resp := map[string]interface{}{"token": token, "role": u.Role}

		// merge the guest cart into the customer's server cart; login
		// succeeds even when the merge does not
		if sid := c.Request().Header.Get("X-Session-ID"); sid != "" {
			sess := sessions.Get(sid)
			if err := cs.SignIn(ctx, sess, u.AuthID); err != nil {
				log.Printf("cart merge failed for auth %d: %v", u.AuthID, err)
			}
			resp["sessionid"] = sess.ID
		}

		return c.JSON(http.StatusOK, resp)
	})

	me := g.Group("/auth")
	me.Use(auth.Require())
	me.GET("/me", func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		cust, err := as.GetCustomer(c.Request().Context(), claims.AuthID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer record not found"})
		}
		return c.JSON(http.StatusOK, cust)
	})

	me.PUT("/me", func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		req := new(updateProfileRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		cust, err := as.UpdateProfile(c.Request().Context(), claims.AuthID,
			req.Fullname, req.Address, req.City, req.PostalCode, req.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cust)
	})
}
