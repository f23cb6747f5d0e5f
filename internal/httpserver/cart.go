package httpserver

import (
	"errors"
	"net/http"

	"shoppico/internal/cart"
	"shoppico/internal/domain"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.ForIdentity(c.Request.Context(), identityFrom(c))
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func addCartItemHandler(carts *cart.Manager, products ProductRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}

		product, err := products.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup product"})
			return
		}

		store := carts.ForIdentity(c.Request.Context(), identityFrom(c))
		if err := store.AddItem(*product, req.Quantity); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func updateCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}

		store := carts.ForIdentity(c.Request.Context(), identityFrom(c))
		store.UpdateQuantity(c.Param("productId"), *req.Quantity)
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func removeCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.ForIdentity(c.Request.Context(), identityFrom(c))
		store.RemoveItem(c.Param("productId"))
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func clearCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.ForIdentity(c.Request.Context(), identityFrom(c))
		store.Clear()
		c.JSON(http.StatusOK, store.Snapshot())
	}
}
