package leave

import (
	"context"
	"time"
)

// LeaveRepository is the approved-leave lookup consumed by the engine.
// Leave requests themselves (quotas, approval flow) are administered by an
// external system; the engine only needs to know whether a day is covered.
type LeaveRepository interface {
	HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
