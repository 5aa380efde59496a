package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := d.Products.List(c.Request.Context())
		if err != nil {
			d.Logger.WithError(err).Error("list products failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, products)
	}
}

func getProductHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := d.Products.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, p)
	}
}

func listShippingRulesHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		rules, err := d.Shipping.ListActive(c.Request.Context())
		if err != nil {
			d.Logger.WithError(err).Error("list shipping rules failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, rules)
	}
}
