package models

import (
	"fmt"
	"strings"
)

// OrderStatus is the closed set of lifecycle states an order can hold.
// Values are stored lowercase; parsing is case-insensitive so documents
// written by older clients keep decoding.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusApproved   OrderStatus = "approved"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// AllStatuses lists every valid status, in lifecycle order.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusApproved,
	StatusProcessing,
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus normalizes a raw status string. Empty input defaults to
// pending, matching how legacy order documents without a status are read.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	normalized := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if normalized == "" {
		return StatusPending, nil
	}
	for _, status := range AllStatuses {
		if normalized == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown order status: %q", raw)
}

// StatusBucket is the coarse grouping dashboards count and filter by.
type StatusBucket int

const (
	BucketPending StatusBucket = iota
	BucketProcessing
	BucketDone
	BucketCancelled
)

func (b StatusBucket) String() string {
	switch b {
	case BucketPending:
		return "pending"
	case BucketProcessing:
		return "processing"
	case BucketDone:
		return "done"
	case BucketCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Bucket maps every status into exactly one bucket. All views and counters
// must classify through here; nothing else compares status strings.
func (s OrderStatus) Bucket() StatusBucket {
	switch s {
	case StatusApproved, StatusProcessing:
		return BucketProcessing
	case StatusCompleted, StatusDelivered:
		return BucketDone
	case StatusCancelled:
		return BucketCancelled
	default:
		return BucketPending
	}
}

// Open reports whether the status still counts as in-progress work: the
// pending and processing buckets. Tailor "pending" views show these.
func (s OrderStatus) Open() bool {
	bucket := s.Bucket()
	return bucket == BucketPending || bucket == BucketProcessing
}

// Done reports whether the order is finished work that counts toward revenue.
func (s OrderStatus) Done() bool {
	return s.Bucket() == BucketDone
}
