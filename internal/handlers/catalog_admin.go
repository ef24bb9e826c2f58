package handlers

import (
	"context"
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

type CatalogCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    []string `json:"category"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	IsActive    *bool    `json:"isActive"`
}

type CatalogUpdateRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    []string `json:"category"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	IsActive    *bool    `json:"isActive"`
}

/*
GET /admin/api/designs, /admin/api/fabrics
- Admin listing, includes inactive, excludes soft-deleted
*/
func listCatalogAdmin(db *mongo.Database, collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{"isDeleted": bson.M{"$ne": true}}

		if v := strings.TrimSpace(c.Query("isActive")); v != "" {
			filter["isActive"] = v == "true"
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection(collection).Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.CatalogItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

func createCatalogItem(db *mongo.Database, collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CatalogCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		item := models.CatalogItem{
			Name:        strings.TrimSpace(req.Name),
			Category:    models.StringList(req.Category),
			Price:       req.Price,
			Description: strings.TrimSpace(req.Description),
			ImageURL:    strings.TrimSpace(req.ImageURL),
			IsActive:    isActive,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection(collection).InsertOne(ctx, item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		item.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, item)
	}
}

func updateCatalogItem(db *mongo.Database, collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req CatalogUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than 0"})
				return
			}
			update["price"] = *req.Price
		}
		if req.Category != nil {
			update["category"] = models.StringList(req.Category)
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.ImageURL != nil {
			update["imageUrl"] = strings.TrimSpace(*req.ImageURL)
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.CatalogItem
		err = db.Collection(collection).
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id, "isDeleted": bson.M{"$ne": true}},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// Soft delete: the item disappears from listings but order snapshots keep
// referencing its copied fields.
func deleteCatalogItem(db *mongo.Database, collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		result, err := db.Collection(collection).UpdateOne(
			ctx,
			bson.M{"_id": id, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"isDeleted": true, "deletedAt": now}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func GetAllDesigns(db *mongo.Database) gin.HandlerFunc { return listCatalogAdmin(db, "designs") }
func CreateDesign(db *mongo.Database) gin.HandlerFunc { return createCatalogItem(db, "designs") }
func UpdateDesign(db *mongo.Database) gin.HandlerFunc { return updateCatalogItem(db, "designs") }
func DeleteDesign(db *mongo.Database) gin.HandlerFunc { return deleteCatalogItem(db, "designs") }
func GetAllFabrics(db *mongo.Database) gin.HandlerFunc { return listCatalogAdmin(db, "fabrics") }
func CreateFabric(db *mongo.Database) gin.HandlerFunc { return createCatalogItem(db, "fabrics") }
func UpdateFabric(db *mongo.Database) gin.HandlerFunc { return updateCatalogItem(db, "fabrics") }
func DeleteFabric(db *mongo.Database) gin.HandlerFunc { return deleteCatalogItem(db, "fabrics") }
