package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOrderStatusCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"Pending", "PENDING", " pending ", "pending"} {
		status, err := ParseOrderStatus(raw)
		require.NoError(t, err, "raw=%q", raw)
		require.Equal(t, StatusPending, status)
	}
}

func TestParseOrderStatusEmptyDefaultsToPending(t *testing.T) {
	status, err := ParseOrderStatus("")
	require.NoError(t, err)
	require.Equal(t, StatusPending, status)
}

func TestParseOrderStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"shipped", "done", "in-progress"} {
		_, err := ParseOrderStatus(raw)
		require.Error(t, err, "raw=%q", raw)
	}
}

// Every status string the system has ever written must land in exactly one
// bucket; the older per-view predicates disagreed on this.
func TestBucketIsExhaustiveAndExclusive(t *testing.T) {
	expected := map[OrderStatus]StatusBucket{
		StatusPending:    BucketPending,
		StatusApproved:   BucketProcessing,
		StatusProcessing: BucketProcessing,
		StatusCompleted:  BucketDone,
		StatusDelivered:  BucketDone,
		StatusCancelled:  BucketCancelled,
	}

	require.Len(t, expected, len(AllStatuses))
	for _, status := range AllStatuses {
		want, ok := expected[status]
		require.True(t, ok, "status %q missing from expectation table", status)
		require.Equal(t, want, status.Bucket(), "status %q", status)
	}
}

func TestOpenAndDoneHelpers(t *testing.T) {
	require.True(t, StatusPending.Open())
	require.True(t, StatusApproved.Open())
	require.True(t, StatusProcessing.Open())
	require.False(t, StatusCompleted.Open())
	require.False(t, StatusCancelled.Open())

	require.True(t, StatusCompleted.Done())
	require.True(t, StatusDelivered.Done())
	require.False(t, StatusProcessing.Done())
	require.False(t, StatusCancelled.Done())
}
