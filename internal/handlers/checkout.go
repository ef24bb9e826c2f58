package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tailorhub/internal/cart"
	"tailorhub/internal/models"
)

/* =========================
   REQUEST DTO
========================= */

type checkoutRequest struct {
	Name          string   `json:"name" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Phone         string   `json:"phone" binding:"required"`
	PaymentMethod string   `json:"paymentMethod" binding:"required"`
	PaymentOption string   `json:"paymentOption"`
	ExpectedTotal *float64 `json:"expectedTotal"`
	CheckoutKey   string   `json:"checkoutKey"`
}

// totalTolerance is how far a client-side total may drift from the
// recomputed one before checkout is rejected: one cent.
const totalTolerance = 0.01

/* =========================
   VALIDATION
========================= */

func validateCheckoutDetails(req checkoutRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return errors.New("address is required")
	}
	if len(strings.TrimSpace(req.Phone)) < 11 {
		return errors.New("phone must be at least 11 characters")
	}

	switch req.PaymentMethod {
	case models.PaymentCOD:
		return nil
	case models.PaymentOnline:
		option := strings.TrimSpace(req.PaymentOption)
		for _, rail := range models.OnlinePaymentRails {
			if option == rail {
				return nil
			}
		}
		return errors.New("online payment requires a valid payment option")
	default:
		return errors.New("invalid payment method")
	}
}

// paymentStatusFor maps the payment method onto the initial payment status:
// cash on delivery stays pending until handover, online rails go straight
// into processing.
func paymentStatusFor(method string) string {
	if method == models.PaymentOnline {
		return models.PaymentStatusProcessing
	}
	return models.PaymentStatusPending
}

func buildOrder(req checkoutRequest, userID primitive.ObjectID, userEmail string, lines []models.CartLine) models.Order {
	paymentOption := strings.TrimSpace(req.PaymentOption)
	if req.PaymentMethod != models.PaymentOnline {
		paymentOption = ""
	}

	return models.Order{
		CheckoutKey:     req.CheckoutKey,
		UserID:          userID,
		UserEmail:       userEmail,
		CustomerName:    strings.TrimSpace(req.Name),
		CustomerAddress: strings.TrimSpace(req.Address),
		CustomerPhone:   strings.TrimSpace(req.Phone),
		Items:           lines,
		TotalAmount:     cart.Total(lines),
		PaymentMethod:   req.PaymentMethod,
		PaymentOption:   paymentOption,
		PaymentStatus:   paymentStatusFor(req.PaymentMethod),
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
	}
}

/* =========================
   CREATE ORDER
========================= */

// Checkout turns the session cart into a persisted order. The write is a
// conditional create keyed on checkoutKey, and every line's price is
// recomputed from the current catalog inside one transaction; the cart is
// cleared only after the insert succeeds.
func Checkout(db *mongo.Database, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userEmail := ""
		if raw, ok := c.Get("claims"); ok {
			if claims, ok := raw.(jwt.MapClaims); ok {
				userEmail, _ = claims["email"].(string)
			}
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := validateCheckoutDetails(req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		sessionID := cartSessionID(c)
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing cart session")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		lines, err := store.Get(ctx, sessionID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart unavailable")
			return
		}
		if len(lines) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		if strings.TrimSpace(req.CheckoutKey) == "" {
			req.CheckoutKey = uuid.NewString()
		}

		// A retried checkout with the same key returns the order it already
		// created instead of writing a second one.
		var existing models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"checkoutKey": req.CheckoutKey}).Decode(&existing)
		if err == nil {
			log.Printf("[%s] duplicate checkout key %s, returning existing order", route, req.CheckoutKey)
			c.JSON(http.StatusOK, gin.H{
				"orderId": existing.ID.Hex(),
				"message": "order already created",
			})
			return
		}
		if err != mongo.ErrNoDocuments {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		order := buildOrder(req, userID, userEmail, lines)

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var orderID primitive.ObjectID
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			repriced := make([]models.CartLine, 0, len(order.Items))
			calculatedTotal := 0.0

			for _, line := range order.Items {
				design, err := repriceSnapshot(sessCtx, db, "designs", line.Design)
				if err != nil {
					return nil, err
				}
				fabric, err := repriceSnapshot(sessCtx, db, "fabrics", line.Fabric)
				if err != nil {
					return nil, err
				}

				line.Design = design
				line.Fabric = fabric
				line.TotalPrice = design.Price + fabric.Price
				repriced = append(repriced, line)
				calculatedTotal += line.TotalPrice
			}

			if req.ExpectedTotal != nil && math.Abs(*req.ExpectedTotal-calculatedTotal) > totalTolerance {
				return nil, totalMismatchError{
					Expected:   *req.ExpectedTotal,
					Calculated: calculatedTotal,
				}
			}

			order.Items = repriced
			order.TotalAmount = calculatedTotal

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				orderID = id
			}
			return nil, nil
		})
		if err != nil {
			var missingErr catalogItemMissingError
			if errors.As(err, &missingErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":  "catalog item no longer available",
					"kind":   missingErr.Kind,
					"itemId": missingErr.ItemID.Hex(),
				})
				return
			}
			var mismatchErr totalMismatchError
			if errors.As(err, &mismatchErr) {
				c.JSON(http.StatusConflict, gin.H{
					"error":      "cart total is out of date",
					"expected":   roundMoney(mismatchErr.Expected),
					"calculated": roundMoney(mismatchErr.Calculated),
				})
				return
			}
			if mongo.IsDuplicateKeyError(err) {
				// Lost the race against a concurrent attempt with the same key.
				if lookupErr := db.Collection("orders").FindOne(ctx, bson.M{"checkoutKey": req.CheckoutKey}).Decode(&existing); lookupErr == nil {
					c.JSON(http.StatusOK, gin.H{
						"orderId": existing.ID.Hex(),
						"message": "order already created",
					})
					return
				}
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !orderID.IsZero() {
			order.ID = orderID
		}

		// Only now does the cart go away; a failed clear is logged but the
		// order stands.
		if err := store.Clear(ctx, sessionID); err != nil {
			log.Printf("[%s] cart clear failed for session %s: %v", route, sessionID, err)
		}

		log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"orderId": order.ID.Hex(),
			"message": "order created",
		})
	}
}

// repriceSnapshot re-reads a snapshot's catalog item and refreshes the
// copied price, rejecting lines whose item has been removed since the cart
// was built.
func repriceSnapshot(ctx context.Context, db *mongo.Database, collection string, snapshot models.ItemSnapshot) (models.ItemSnapshot, error) {
	var item models.CatalogItem
	err := db.Collection(collection).FindOne(ctx, bson.M{
		"_id":       snapshot.ID,
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return models.ItemSnapshot{}, catalogItemMissingError{Kind: collection, ItemID: snapshot.ID}
	}
	if err != nil {
		return models.ItemSnapshot{}, err
	}
	return item.Snapshot(), nil
}

type catalogItemMissingError struct {
	Kind   string
	ItemID primitive.ObjectID
}

func (e catalogItemMissingError) Error() string {
	return fmt.Sprintf("%s item not found", e.Kind)
}

type totalMismatchError struct {
	Expected   float64
	Calculated float64
}

func (e totalMismatchError) Error() string {
	return "order total does not match current prices"
}
