package tracking_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(tracking.Unknown))
		assert.Equal(t, 1, int(tracking.Pending))
		assert.Equal(t, 2, int(tracking.Processing))
		assert.Equal(t, 3, int(tracking.Dispatched))
		assert.Equal(t, 4, int(tracking.Transit))
		assert.Equal(t, 5, int(tracking.Delivered))
		assert.Equal(t, 6, int(tracking.Undelivered))
		assert.Equal(t, 7, int(tracking.Exception))
		assert.Equal(t, 8, int(tracking.Expired))
		assert.Equal(t, 9, int(tracking.NotFound))
	})

	t.Run("should have distinct values", func(t *testing.T) {
		statuses := []tracking.Status{
			tracking.Unknown,
			tracking.Pending,
			tracking.Processing,
			tracking.Dispatched,
			tracking.Transit,
			tracking.Delivered,
			tracking.Undelivered,
			tracking.Exception,
			tracking.Expired,
			tracking.NotFound,
		}

		for i, status1 := range statuses {
			for j, status2 := range statuses {
				if i != j {
					assert.NotEqual(t, status1, status2,
						"statuses at indices %d and %d should be different", i, j)
				}
			}
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []tracking.Status{
			tracking.Pending,
			tracking.Processing,
			tracking.Dispatched,
			tracking.Transit,
			tracking.Delivered,
			tracking.Undelivered,
			tracking.Exception,
			tracking.Expired,
			tracking.NotFound,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				err := status.Validate()
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := tracking.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []tracking.Status{
			tracking.Status(-1),
			tracking.Status(10),
			tracking.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire name for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   tracking.Status
			expected string
		}{
			{tracking.Pending, "PENDING"},
			{tracking.Processing, "PROCESSING"},
			{tracking.Dispatched, "DISPATCHED"},
			{tracking.Transit, "TRANSIT"},
			{tracking.Delivered, "DELIVERED"},
			{tracking.Undelivered, "UNDELIVERED"},
			{tracking.Exception, "EXCEPTION"},
			{tracking.Expired, "EXPIRED"},
			{tracking.NotFound, "NOTFOUND"},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should return %s for %d", tc.expected, int(tc.status)), func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.status.String())
			})
		}
	})

	t.Run("should return UNKNOWN for invalid statuses", func(t *testing.T) {
		invalidStatuses := []tracking.Status{
			tracking.Unknown,
			tracking.Status(-1),
			tracking.Status(10),
			tracking.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should return UNKNOWN for status value %d", int(status)), func(t *testing.T) {
				assert.Equal(t, "UNKNOWN", status.String())
			})
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark Delivered, Undelivered and Expired as terminal", func(t *testing.T) {
		terminalStatuses := []tracking.Status{
			tracking.Delivered,
			tracking.Undelivered,
			tracking.Expired,
		}

		for _, status := range terminalStatuses {
			t.Run(fmt.Sprintf("%s should be terminal", status.String()), func(t *testing.T) {
				assert.True(t, status.IsTerminal())
			})
		}
	})

	t.Run("should keep all other statuses non-terminal", func(t *testing.T) {
		activeStatuses := []tracking.Status{
			tracking.Pending,
			tracking.Processing,
			tracking.Dispatched,
			tracking.Transit,
			tracking.Exception,
			tracking.NotFound,
		}

		for _, status := range activeStatuses {
			t.Run(fmt.Sprintf("%s should not be terminal", status.String()), func(t *testing.T) {
				assert.False(t, status.IsTerminal())
			})
		}
	})

	t.Run("should keep Exception eligible for further reconciliation", func(t *testing.T) {
		// A carrier-reported problem may still resolve.
		assert.False(t, tracking.Exception.IsTerminal())
	})

	t.Run("should keep NotFound eligible for further reconciliation", func(t *testing.T) {
		// The shipment may reappear in a later carrier response.
		assert.False(t, tracking.NotFound.IsTerminal())
	})
}

func TestStatus_Consistency(t *testing.T) {
	t.Run("should have consistent String() and Validate() behavior", func(t *testing.T) {
		allPossibleStatuses := []tracking.Status{
			tracking.Status(-100),
			tracking.Status(-1),
			tracking.Unknown,
			tracking.Pending,
			tracking.Processing,
			tracking.Dispatched,
			tracking.Transit,
			tracking.Delivered,
			tracking.Undelivered,
			tracking.Exception,
			tracking.Expired,
			tracking.NotFound,
			tracking.Status(10),
			tracking.Status(100),
		}

		for _, status := range allPossibleStatuses {
			t.Run(fmt.Sprintf("status %d", int(status)), func(t *testing.T) {
				str := status.String()
				err := status.Validate()

				if str == "UNKNOWN" {
					require.Error(t, err, "status with String() 'UNKNOWN' should fail validation")
				} else {
					require.NoError(t, err, "status with valid String() should pass validation")
				}
			})
		}
	})
}
