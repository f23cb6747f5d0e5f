package httpserver

import (
	"errors"
	"net/http"

	"shoppico/internal/domain"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(products ProductRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list products"})
			return
		}
		if list == nil {
			list = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	}
}

func getProductHandler(products ProductRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
