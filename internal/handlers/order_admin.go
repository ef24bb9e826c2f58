package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tailorhub/internal/models"
)

type assignTailorRequest struct {
	TailorID string `json:"tailorId" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

/*
GET /admin/api/orders
- Optional ?status= filter (validated against the enum) and ?search= over
  customer and tailor names
*/
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}
		if raw := strings.TrimSpace(c.Query("status")); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid status")
				return
			}
			filter["status"] = status
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"customerName": bson.M{"$regex": search, "$options": "i"}},
				{"tailorName": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

/*
PUT /admin/api/orders/:id/tailor
- Copies the tailor's current name and email onto the order. Those copies are
  not refreshed if the tailor later edits their profile.
*/
func AssignTailor(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/tailor"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req assignTailorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		tailorID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.TailorID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid tailorId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var tailor models.User
		err = db.Collection("users").FindOne(ctx, bson.M{
			"_id":      tailorID,
			"role":     models.RoleTailor,
			"isActive": true,
		}).Decode(&tailor)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusBadRequest, route, "tailor not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var updated models.Order
		err = db.Collection("orders").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": orderID},
				bson.M{"$set": bson.M{
					"tailorId":    tailor.ID,
					"tailorName":  tailor.Name,
					"tailorEmail": tailor.Email,
					"updatedAt":   time.Now(),
				}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] tailor %s assigned to order %s", tailor.ID.Hex(), orderID.Hex())
		c.JSON(http.StatusOK, updated)
	}
}

/*
PUT /admin/api/orders/:id/status
- Any enum value is accepted, including backward moves; last write wins and
  updatedAt is stamped on every change.
*/
func AdminUpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return updateOrderStatus(db, "PUT /admin/api/orders/:id/status", nil)
}

func updateOrderStatus(db *mongo.Database, route string, scope func(*gin.Context) (bson.M, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		filter := bson.M{"_id": orderID}
		if scope != nil {
			extra, ok := scope(c)
			if !ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			for k, v := range extra {
				filter[k] = v
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Order
		err = db.Collection("orders").
			FindOneAndUpdate(
				ctx,
				filter,
				bson.M{"$set": bson.M{
					"status":    status,
					"updatedAt": time.Now(),
				}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] order %s status set to %s", orderID.Hex(), status)
		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /admin/api/orders/:id
*/
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
