package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/cart"
)

type addCartItemRequest struct {
	ProductID         string `json:"productId" binding:"required"`
	Quantity          int    `json:"quantity" binding:"required,gte=1,lte=10"`
	IsCustomized      bool   `json:"isCustomized"`
	CustomizationText string `json:"customizationText"`
	SelectedColor     string `json:"selectedColor"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0,lte=20"`
}

func getCartHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		full, err := d.Cart.GetFullCart(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			d.Logger.WithError(err).Error("get cart failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, full)
	}
}

func addCartItemHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		err := d.Cart.AddItem(c.Request.Context(), sessionFrom(c).UserID, cart.AddItemInput{
			ProductID:         req.ProductID,
			Quantity:          req.Quantity,
			IsCustomized:      req.IsCustomized,
			CustomizationText: req.CustomizationText,
			SelectedColor:     req.SelectedColor,
		})
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, gin.H{"added": true})
	}
}

func updateCartItemHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		err := d.Cart.UpdateQuantity(c.Request.Context(), sessionFrom(c).UserID, c.Param("id"), *req.Quantity)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"updated": true})
	}
}

func removeCartItemHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := d.Cart.RemoveItem(c.Request.Context(), sessionFrom(c).UserID, c.Param("id")); err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"removed": true})
	}
}

func cartCountHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := d.Cart.CountItems(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			d.Logger.WithError(err).Error("cart count failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"count": count})
	}
}

func cartContainsHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		has, err := d.Cart.IsProductInCart(c.Request.Context(), sessionFrom(c).UserID, c.Param("productId"))
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"inCart": has})
	}
}
