package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/order"
)

func placeOrderHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceFromCartInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		o, err := d.Orders.PlaceFromCart(c.Request.Context(), sessionFrom(c).UserID, req)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, o)
	}
}

func instantBuyHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.InstantBuyInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		o, err := d.Orders.InstantBuy(c.Request.Context(), sessionFrom(c), req)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, o)
	}
}

func listOrdersHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := d.Orders.ListForUser(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			d.Logger.WithError(err).Error("list orders failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, orders)
	}
}

func getOrderHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := d.Orders.Get(c.Request.Context(), sessionFrom(c), c.Param("id"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, o)
	}
}

func cancelOrderHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := d.Orders.Cancel(c.Request.Context(), sessionFrom(c), c.Param("id"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, o)
	}
}
