package enrollment

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/kerjaflow/attendance-backend-go/internal/domain/audit"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/identity"
)

// EnrollRequest registers one face descriptor for an employee.
type EnrollRequest struct {
	EmployeeID string    `json:"employee_id"`
	Descriptor []float64 `json:"descriptor"`
}

// EnrollResponse reports the registry state after enrollment.
type EnrollResponse struct {
	EmployeeID      string `json:"employee_id"`
	DescriptorCount int    `json:"descriptor_count"`
}

// Service manages the face descriptor registry.
type Service interface {
	// Enroll validates and appends a descriptor to the employee's set.
	Enroll(ctx context.Context, actor string, req EnrollRequest) (EnrollResponse, error)
}

type enrollmentService struct {
	identityRepo identity.IdentityRepository
	auditRepo    audit.AuditRepository
}

func NewEnrollmentService(identityRepo identity.IdentityRepository, auditRepo audit.AuditRepository) Service {
	return &enrollmentService{
		identityRepo: identityRepo,
		auditRepo:    auditRepo,
	}
}

// Enroll implements Service.
func (s *enrollmentService) Enroll(ctx context.Context, actor string, req EnrollRequest) (EnrollResponse, error) {
	if err := identity.ValidateDescriptor(req.Descriptor); err != nil {
		return EnrollResponse{}, err
	}

	emp, err := s.identityRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return EnrollResponse{}, err
	}
	if !emp.IsActive {
		return EnrollResponse{}, identity.ErrEmployeeInactive
	}

	if err := s.identityRepo.AddDescriptor(ctx, req.EmployeeID, req.Descriptor); err != nil {
		return EnrollResponse{}, err
	}

	s.recordAudit(ctx, actor, req.EmployeeID, len(emp.Descriptors)+1)

	return EnrollResponse{
		EmployeeID:      req.EmployeeID,
		DescriptorCount: len(emp.Descriptors) + 1,
	}, nil
}

func (s *enrollmentService) recordAudit(ctx context.Context, actor string, employeeID string, count int) {
	after, err := json.Marshal(map[string]interface{}{"descriptor_count": count})
	if err != nil {
		return
	}

	entry := audit.Entry{
		Actor:      actor,
		Action:     audit.ActionEnrollFace,
		EntityType: "employee",
		EntityID:   employeeID,
		After:      after,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		slog.Error("Failed to record audit entry", "action", audit.ActionEnrollFace, "error", err)
	}
}
