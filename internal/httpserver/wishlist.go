package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func getWishlistHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := d.Wishlist.Get(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			d.Logger.WithError(err).Error("get wishlist failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, w)
	}
}

func addWishlistItemHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addWishlistItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		if err := d.Wishlist.Add(c.Request.Context(), sessionFrom(c).UserID, req.ProductID); err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, gin.H{"added": true})
	}
}

func removeWishlistItemHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := d.Wishlist.Remove(c.Request.Context(), sessionFrom(c).UserID, c.Param("id")); err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"removed": true})
	}
}

func wishlistContainsHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		has, err := d.Wishlist.Has(c.Request.Context(), sessionFrom(c).UserID, c.Param("productId"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"inWishlist": has})
	}
}
