package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tailorhub/internal/cart"
	"tailorhub/internal/models"
)

type addCartLineRequest struct {
	DesignID string `json:"designId" binding:"required"`
	FabricID string `json:"fabricId" binding:"required"`
}

// fetchCatalogItem loads an active, undeleted item for snapshotting.
func fetchCatalogItem(ctx context.Context, db *mongo.Database, collection, hexID string) (models.CatalogItem, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.CatalogItem{}, err
	}

	var item models.CatalogItem
	err = db.Collection(collection).FindOne(ctx, bson.M{
		"_id":       id,
		"isActive":  bson.M{"$ne": false},
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&item)
	return item, err
}

/*
GET /cart
- Session-scoped cart; total rounded to 2 decimals in the response only
*/
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		sessionID := cartSessionID(c)
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing cart session")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		lines, err := store.Get(ctx, sessionID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": lines,
			"total": roundMoney(cart.Total(lines)),
		})
	}
}

/*
POST /cart/items
- Server loads both snapshots and computes the line total; the client never
  supplies prices
*/
func AddCartLine(db *mongo.Database, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		sessionID := cartSessionID(c)
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing cart session")
			return
		}

		var req addCartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		design, err := fetchCatalogItem(ctx, db, "designs", req.DesignID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "design not found")
			return
		}

		fabric, err := fetchCatalogItem(ctx, db, "fabrics", req.FabricID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "fabric not found")
			return
		}

		line, err := store.Add(ctx, sessionID, design, fabric)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.JSON(http.StatusCreated, line)
	}
}

/*
DELETE /cart/items/:index
- Positional removal, mirroring how the cart renders
*/
func RemoveCartLine(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:index"
		defer handlePanic(c, route)

		sessionID := cartSessionID(c)
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing cart session")
			return
		}

		index, err := parseIndexParam(c.Param("index"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid index")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Remove(ctx, sessionID, index); err != nil {
			if err == cart.ErrLineNotFound {
				respondWithError(c, http.StatusNotFound, route, "cart line not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

/*
DELETE /cart
*/
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		sessionID := cartSessionID(c)
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing cart session")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Clear(ctx, sessionID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
