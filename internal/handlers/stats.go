package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tailorhub/internal/models"
)

// orderSummary is one dashboard's worth of counters, reduced in memory from
// the full order set. Day and month windows use the server's local clock,
// midnight and first-of-month respectively.
type orderSummary struct {
	TotalOrders     int     `json:"totalOrders"`
	TodayOrders     int     `json:"todayOrders"`
	MonthOrders     int     `json:"monthOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	CancelledOrders int     `json:"cancelledOrders"`
	Revenue         float64 `json:"revenue"`
	MonthEarnings   float64 `json:"monthEarnings"`
	AverageOrder    float64 `json:"averageOrderValue"`
	MedianOrder     float64 `json:"medianOrderValue"`
}

// summarizeOrders is the single reduction every dashboard uses. Counting
// goes through the status bucket classifier; revenue only counts the done
// bucket.
func summarizeOrders(orders []models.Order, now time.Time) orderSummary {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summary := orderSummary{TotalOrders: len(orders)}
	doneAmounts := make([]float64, 0, len(orders))

	for _, order := range orders {
		if !order.CreatedAt.Before(startOfDay) {
			summary.TodayOrders++
		}
		if !order.CreatedAt.Before(startOfMonth) {
			summary.MonthOrders++
		}

		switch order.Status.Bucket() {
		case models.BucketPending, models.BucketProcessing:
			summary.PendingOrders++
		case models.BucketDone:
			summary.CompletedOrders++
			summary.Revenue += order.TotalAmount
			doneAmounts = append(doneAmounts, order.TotalAmount)
			if !order.CreatedAt.Before(startOfMonth) {
				summary.MonthEarnings += order.TotalAmount
			}
		case models.BucketCancelled:
			summary.CancelledOrders++
		}
	}

	if len(doneAmounts) > 0 {
		if mean, err := stats.Mean(doneAmounts); err == nil {
			summary.AverageOrder = roundMoney(mean)
		}
		if median, err := stats.Median(doneAmounts); err == nil {
			summary.MedianOrder = roundMoney(median)
		}
	}

	summary.Revenue = roundMoney(summary.Revenue)
	summary.MonthEarnings = roundMoney(summary.MonthEarnings)
	return summary
}

/*
GET /admin/api/stats
- Whole-collection pulls, reduced in memory. There is no incremental
  aggregation; every dashboard visit recomputes from scratch.
*/
func GetAdminStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		orders, err := fetchOrders(ctx, db, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		summary := summarizeOrders(orders, time.Now())

		counts := gin.H{}
		for label, query := range map[string]struct {
			collection string
			filter     bson.M
		}{
			"totalCustomers": {"users", bson.M{"role": models.RoleCustomer}},
			"totalTailors":   {"users", bson.M{"role": models.RoleTailor}},
			"totalDesigns":   {"designs", bson.M{"isDeleted": bson.M{"$ne": true}}},
			"totalFabrics":   {"fabrics", bson.M{"isDeleted": bson.M{"$ne": true}}},
		} {
			count, err := db.Collection(query.collection).CountDocuments(ctx, query.filter)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			counts[label] = count
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": summary,
			"totals": counts,
		})
	}
}

/*
GET /tailor/api/stats
- Same reduction restricted to the caller's assigned orders
*/
func GetTailorStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /tailor/api/stats"
		defer handlePanic(c, route)

		tailorID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		orders, err := fetchOrders(ctx, db, bson.M{"tailorId": tailorID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": summarizeOrders(orders, time.Now())})
	}
}
