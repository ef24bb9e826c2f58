package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tailorhub/internal/models"
)

func fetchOrders(ctx context.Context, db *mongo.Database, filter bson.M) ([]models.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := db.Collection("orders").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// listAssignedOrders serves the tailor's order views. The keep predicate is
// the only place view-specific filtering happens, and it works on buckets.
func listAssignedOrders(db *mongo.Database, route string, keep func(models.OrderStatus) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		tailorID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := fetchOrders(ctx, db, bson.M{"tailorId": tailorID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if keep != nil {
			filtered := make([]models.Order, 0, len(orders))
			for _, order := range orders {
				if keep(order.Status) {
					filtered = append(filtered, order)
				}
			}
			orders = filtered
		}

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

/*
GET /tailor/api/orders
*/
func GetTailorOrders(db *mongo.Database) gin.HandlerFunc {
	return listAssignedOrders(db, "GET /tailor/api/orders", nil)
}

/*
GET /tailor/api/orders/pending
- Open work: the pending and processing buckets
*/
func GetTailorPendingOrders(db *mongo.Database) gin.HandlerFunc {
	return listAssignedOrders(db, "GET /tailor/api/orders/pending", func(s models.OrderStatus) bool {
		return s.Open()
	})
}

/*
GET /tailor/api/orders/completed
- Finished work: the done bucket
*/
func GetTailorCompletedOrders(db *mongo.Database) gin.HandlerFunc {
	return listAssignedOrders(db, "GET /tailor/api/orders/completed", func(s models.OrderStatus) bool {
		return s.Done()
	})
}

/*
PUT /tailor/api/orders/:id/status
- Only orders assigned to the calling tailor match; the scope is part of the
  update filter, not a UI convention.
*/
func TailorUpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return updateOrderStatus(db, "PUT /tailor/api/orders/:id/status", func(c *gin.Context) (bson.M, bool) {
		tailorID, ok := callerID(c)
		if !ok {
			return nil, false
		}
		return bson.M{"tailorId": tailorID}, true
	})
}
