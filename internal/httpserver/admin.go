package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type setStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

func adminListOrdersHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := d.Orders.ListAll(c.Request.Context())
		if err != nil {
			d.Logger.WithError(err).Error("admin list orders failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, orders)
	}
}

func adminSetStatusHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		o, err := d.Orders.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, o)
	}
}
