package httpserver

import (
	"context"
	"errors"
	"log"

	"shoppico/internal/cart"
	"shoppico/internal/domain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepo is the catalog read surface the cart routes need.
type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// IdentityService resolves session tokens to identity keys and issues
// guest sessions.
type IdentityService interface {
	IssueGuest(ctx context.Context) (token, identityKey string, err error)
	Resolve(ctx context.Context, token string) string
	TTLSeconds() int
}

// Deps carries the collaborators the router wires into its handlers.
type Deps struct {
	Carts    *cart.Manager
	Products ProductRepo
	Identity IdentityService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Carts == nil {
		return nil, errors.New("cart manager required")
	}
	if deps.Products == nil {
		return nil, errors.New("product repo required")
	}
	if deps.Identity == nil {
		return nil, errors.New("identity service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/guest", guestSessionHandler(deps.Identity))

	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))

	me := router.Group("/me", identityMiddleware(deps.Identity))
	me.GET("/cart", getCartHandler(deps.Carts))
	me.POST("/cart/items", addCartItemHandler(deps.Carts, deps.Products))
	me.PATCH("/cart/items/:productId", updateCartItemHandler(deps.Carts))
	me.DELETE("/cart/items/:productId", removeCartItemHandler(deps.Carts))
	me.DELETE("/cart", clearCartHandler(deps.Carts))

	return router, nil
}
