package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tailorhub/internal/models"
)

func orderAt(created time.Time, status models.OrderStatus, amount float64) models.Order {
	return models.Order{CreatedAt: created, Status: status, TotalAmount: amount}
}

func TestSummarizeOrdersWindows(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.Local)

	orders := []models.Order{
		orderAt(now.Add(-time.Hour), models.StatusPending, 100),                                   // today
		orderAt(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local), models.StatusPending, 5), // midnight boundary counts
		orderAt(time.Date(2025, time.March, 14, 23, 59, 0, 0, time.Local), models.StatusPending, 5),
		orderAt(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), models.StatusPending, 5), // first of month counts
		orderAt(time.Date(2025, time.February, 28, 12, 0, 0, 0, time.Local), models.StatusPending, 5),
	}

	summary := summarizeOrders(orders, now)

	assert.Equal(t, 5, summary.TotalOrders)
	assert.Equal(t, 2, summary.TodayOrders)
	assert.Equal(t, 4, summary.MonthOrders)
}

func TestSummarizeOrdersBuckets(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.Local)
	recent := now.Add(-time.Hour)

	orders := []models.Order{
		orderAt(recent, models.StatusPending, 100),
		orderAt(recent, models.StatusApproved, 150),
		orderAt(recent, models.StatusProcessing, 200),
		orderAt(recent, models.StatusCompleted, 300),
		orderAt(recent, models.StatusDelivered, 500),
		orderAt(recent, models.StatusCancelled, 900),
	}

	summary := summarizeOrders(orders, now)

	// approved and processing still count as open work
	assert.Equal(t, 3, summary.PendingOrders)
	assert.Equal(t, 2, summary.CompletedOrders)
	assert.Equal(t, 1, summary.CancelledOrders)

	// only the done bucket earns; the cancelled 900 never does
	assert.InDelta(t, 800.0, summary.Revenue, 0.001)
	assert.InDelta(t, 800.0, summary.MonthEarnings, 0.001)
	assert.InDelta(t, 400.0, summary.AverageOrder, 0.001)
	assert.InDelta(t, 400.0, summary.MedianOrder, 0.001)
}

func TestSummarizeOrdersStatusTransitionMovesRevenue(t *testing.T) {
	now := time.Now()
	order := orderAt(now.Add(-time.Minute), models.StatusProcessing, 250)

	before := summarizeOrders([]models.Order{order}, now)
	assert.Equal(t, 1, before.PendingOrders)
	assert.Equal(t, 0, before.CompletedOrders)
	assert.InDelta(t, 0.0, before.Revenue, 0.001)

	order.Status = models.StatusCompleted
	after := summarizeOrders([]models.Order{order}, now)
	assert.Equal(t, 0, after.PendingOrders)
	assert.Equal(t, 1, after.CompletedOrders)
	assert.InDelta(t, 250.0, after.Revenue, 0.001)
}

func TestSummarizeOrdersMedianOfThree(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		orderAt(now, models.StatusDelivered, 10),
		orderAt(now, models.StatusDelivered, 20),
		orderAt(now, models.StatusDelivered, 100),
	}

	summary := summarizeOrders(orders, now)

	assert.InDelta(t, 43.33, summary.AverageOrder, 0.01)
	assert.InDelta(t, 20.0, summary.MedianOrder, 0.001)
}

func TestSummarizeOrdersMonthEarningsExcludesOlderDone(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.Local)

	orders := []models.Order{
		orderAt(now.Add(-time.Hour), models.StatusCompleted, 120),
		orderAt(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.Local), models.StatusCompleted, 80),
	}

	summary := summarizeOrders(orders, now)

	assert.InDelta(t, 200.0, summary.Revenue, 0.001)
	assert.InDelta(t, 120.0, summary.MonthEarnings, 0.001)
}

func TestSummarizeOrdersEmpty(t *testing.T) {
	summary := summarizeOrders(nil, time.Now())

	assert.Equal(t, 0, summary.TotalOrders)
	assert.Zero(t, summary.Revenue)
	assert.Zero(t, summary.AverageOrder)
	assert.Zero(t, summary.MedianOrder)
}
