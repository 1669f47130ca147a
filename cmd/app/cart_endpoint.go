package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/pricing"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

type addItemRequest struct {
	ProductID int64  `json:"productid"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	ProductID int64  `json:"productid"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Delta     int    `json:"delta"`
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

type cartResponse struct {
	SessionID string              `json:"sessionid"`
	Items     []model.LineItem    `json:"items"`
	Promo     *model.AppliedPromo `json:"promo,omitempty"`
	Pricing   pricing.Breakdown   `json:"pricing"`
}

// resolveSession finds (or creates) the cart session for the request. The
// session id always goes back in the X-Session-ID response header so guests
// can pick it up on first contact. A valid bearer token binds the session to
// the customer, running the guest cart merge once.
func resolveSession(c echo.Context, sessions *cart.Manager, cs *services.CartService, auth *middleware.Auth) *cart.Session {
	sess := sessions.Get(c.Request().Header.Get("X-Session-ID"))
	c.Response().Header().Set("X-Session-ID", sess.ID)

	if claims := auth.OptionalClaims(c); claims != nil && sess.UserID() == nil {
		if err := cs.SignIn(c.Request().Context(), sess, claims.AuthID); err != nil {
			log.Printf("cart sign-in failed for auth %d: %v", claims.AuthID, err)
		}
	}
	return sess
}

func cartView(sess *cart.Session, paymentMethod string, cfg pricing.Config) cartResponse {
	switch paymentMethod {
	case model.PaymentCard, model.PaymentCOD, model.PaymentTransfer:
	default:
		paymentMethod = model.PaymentCOD
	}
	lines := sess.Store.Lines()
	promo := sess.Store.Promo()
	return cartResponse{
		SessionID: sess.ID,
		Items:     lines,
		Promo:     promo,
		Pricing:   pricing.Quote(lines, promo, paymentMethod, cfg),
	}
}

// registerCartRoutes mounts the session cart endpoints. All of them work for
// guests; a bearer token additionally mirrors the cart server-side.
//
//	GET    /cart                    -> contents + price breakdown (?payment=)
//	POST   /cart/items              -> add item
//	PUT    /cart/items              -> change quantity by delta (floor 1)
//	DELETE /cart/items/:productid   -> remove line (?size=&color=)
//	DELETE /cart                    -> clear
//	POST   /cart/promo              -> validate + apply code
//	DELETE /cart/promo              -> remove code
func registerCartRoutes(g *echo.Group, cs *services.CartService, sessions *cart.Manager, cfg pricing.Config, auth *middleware.Auth) {
	g.GET("/cart", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		return c.JSON(http.StatusOK, cartView(sess, c.QueryParam("payment"), cfg))
	})

	g.POST("/cart/items", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		req := new(addItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}
		if err := cs.AddItem(c.Request().Context(), sess, req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cartView(sess, "", cfg))
	})

	g.PUT("/cart/items", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		req := new(updateItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		key := model.LineKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
		if err := cs.UpdateQuantity(sess, key, req.Delta); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cartView(sess, "", cfg))
	})

	g.DELETE("/cart/items/:productid", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		productID, err := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		}
		key := model.LineKey{
			ProductID: productID,
			Size:      c.QueryParam("size"),
			Color:     c.QueryParam("color"),
		}
		cs.RemoveItem(sess, key)
		return c.JSON(http.StatusOK, cartView(sess, "", cfg))
	})

	g.DELETE("/cart", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		cs.Clear(sess)
		return c.JSON(http.StatusOK, cartView(sess, "", cfg))
	})

	g.POST("/cart/promo", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		req := new(applyPromoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		v, err := cs.ApplyPromo(c.Request().Context(), sess, req.Code)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		if !v.Valid {
			return c.JSON(http.StatusUnprocessableEntity, v)
		}
		return c.JSON(http.StatusOK, cartView(sess, "", cfg))
	})

	g.DELETE("/cart/promo", func(c echo.Context) error {
		sess := resolveSession(c, sessions, cs, auth)
		cs.RemovePromo(sess)
		return c.JSON(http.StatusOK, cartView(sess, "", cfg))
	})
}
