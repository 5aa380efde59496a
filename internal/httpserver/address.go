package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

type createAddressRequest struct {
	ShippingRuleID string `json:"shippingRuleId"`
	FullName       string `json:"fullName" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Country        string `json:"country"`
	City           string `json:"city" binding:"required"`
	Street         string `json:"street" binding:"required"`
	PostalCode     string `json:"postalCode"`
	Notes          string `json:"notes"`
	IsDefault      bool   `json:"isDefault"`
}

func listAddressesHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, err := d.Addresses.ListByUser(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			d.Logger.WithError(err).Error("list addresses failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, addresses)
	}
}

func createAddressHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		a, err := d.Addresses.Create(c.Request.Context(), domain.Address{
			UserID:         sessionFrom(c).UserID,
			ShippingRuleID: req.ShippingRuleID,
			FullName:       req.FullName,
			Phone:          req.Phone,
			Email:          req.Email,
			Country:        req.Country,
			City:           req.City,
			Street:         req.Street,
			PostalCode:     req.PostalCode,
			Notes:          req.Notes,
			IsDefault:      req.IsDefault,
		})
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, a)
	}
}
