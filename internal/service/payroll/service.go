package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/audit"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/payroll"
)

// TxRunner executes fn atomically. Callers wire the database transaction
// helper; tests substitute a passthrough.
type TxRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type payrollService struct {
	payrollRepo payroll.PayrollLockRepository
	auditRepo   audit.AuditRepository
	runTx       TxRunner
}

func NewPayrollService(payrollRepo payroll.PayrollLockRepository, auditRepo audit.AuditRepository, runTx TxRunner) payroll.PayrollService {
	return &payrollService{
		payrollRepo: payrollRepo,
		auditRepo:   auditRepo,
		runTx:       runTx,
	}
}

// LockPayroll implements payroll.PayrollService. The lock row and the record
// flags commit together; re-locking a period is a harmless no-op that
// reports zero newly locked records.
func (s *payrollService) LockPayroll(ctx context.Context, actor string, req payroll.LockRequest) (payroll.LockResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.LockResponse{}, err
	}

	var lockedCount int64
	err := s.runTx(ctx, func(txCtx context.Context) error {
		lock := payroll.Lock{Year: req.Year, Month: req.Month, LockedBy: &actor}
		if err := s.payrollRepo.CreateLock(txCtx, lock); err != nil {
			return err
		}

		count, err := s.payrollRepo.LockRecords(txCtx, req.Year, req.Month)
		if err != nil {
			return err
		}
		lockedCount = count
		return nil
	})
	if err != nil {
		return payroll.LockResponse{}, err
	}

	s.recordAudit(ctx, actor, req, lockedCount)

	return payroll.LockResponse{
		Year:        req.Year,
		Month:       req.Month,
		LockedCount: lockedCount,
	}, nil
}

// ListLocks implements payroll.PayrollService.
func (s *payrollService) ListLocks(ctx context.Context) ([]payroll.LockInfo, error) {
	locks, err := s.payrollRepo.ListLocks(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]payroll.LockInfo, 0, len(locks))
	for _, lock := range locks {
		infos = append(infos, payroll.LockInfo{
			Year:     lock.Year,
			Month:    lock.Month,
			LockedBy: lock.LockedBy,
			LockedAt: lock.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return infos, nil
}

func (s *payrollService) recordAudit(ctx context.Context, actor string, req payroll.LockRequest, lockedCount int64) {
	after, err := json.Marshal(map[string]interface{}{
		"year":         req.Year,
		"month":        req.Month,
		"locked_count": lockedCount,
	})
	if err != nil {
		return
	}

	entry := audit.Entry{
		Actor:      actor,
		Action:     audit.ActionPayrollLock,
		EntityType: "payroll_lock",
		EntityID:   fmt.Sprintf("%04d-%02d", req.Year, req.Month),
		After:      after,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry", "action", audit.ActionPayrollLock, "error", err)
	}
}
