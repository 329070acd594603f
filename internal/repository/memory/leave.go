package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

func newestFirst(a, b leave.LeaveRequest) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return b.StartDate.Compare(a.StartDate)
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return leave.LeaveRequest{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if request.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		request.ID = id.String()
	}
	now := r.store.now()
	request.CreatedAt, request.UpdatedAt = now, now
	request.StartDate = dateutil.Date(request.StartDate)
	request.EndDate = dateutil.Date(request.EndDate)

	r.store.leaves[request.ID] = request
	return r.store.joinLeave(request), nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.store.joinLeave(req), nil
}

func matchesLeave(r leave.LeaveRequest, f leave.LeaveRequestFilter) bool {
	switch {
	case f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID:
		return false
	case f.Department != nil && (r.Department == nil || *r.Department != *f.Department):
		return false
	case f.LeaveType != nil && string(r.LeaveType) != *f.LeaveType:
		return false
	case f.Status != nil && string(r.Status) != *f.Status:
		return false
	case f.StartDate != nil && dateutil.Format(r.EndDate) < *f.StartDate:
		return false
	case f.EndDate != nil && dateutil.Format(r.StartDate) > *f.EndDate:
		return false
	}
	return true
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []leave.LeaveRequest
	for _, req := range r.store.leaves {
		req = r.store.joinLeave(req)
		if matchesLeave(req, filter) {
			matched = append(matched, req)
		}
	}
	slices.SortFunc(matched, newestFirst)

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []leave.LeaveRequest
	for _, req := range r.store.leaves {
		if req.EmployeeID == employeeID {
			out = append(out, r.store.joinLeave(req))
		}
	}
	slices.SortFunc(out, newestFirst)
	return out, nil
}

// ListApproved implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListApproved(ctx context.Context, from, to time.Time, employeeIDs []string) ([]leave.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []leave.LeaveRequest
	for _, req := range r.store.leaves {
		if !req.IsApproved() {
			continue
		}
		if req.EndDate.Before(dateutil.Date(from)) || req.StartDate.After(dateutil.Date(to)) {
			continue
		}
		if len(employeeIDs) > 0 && !slices.Contains(employeeIDs, req.EmployeeID) {
			continue
		}
		out = append(out, r.store.joinLeave(req))
	}
	slices.SortFunc(out, func(a, b leave.LeaveRequest) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return out, nil
}

// Decide implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Decide(ctx context.Context, id string, to leave.LeaveRequestStatus, payType *leave.PayType, by string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.leaves[id]
	if !ok {
		return false, leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.LeaveRequestStatusPending {
		return false, nil
	}

	req.Status = to
	if to == leave.LeaveRequestStatusApproved && payType != nil {
		p := *payType
		req.PayType = &p
		req.PayTypeSetBy = &by
		req.PayTypeSetAt = &at
	}
	req.DecidedBy = &by
	req.DecidedAt = &at
	req.UpdatedAt = r.store.now()
	r.store.leaves[id] = req
	return true, nil
}

// SetPayType implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) SetPayType(ctx context.Context, id string, payType leave.PayType, by string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.leaves[id]
	if !ok {
		return false, leave.ErrLeaveRequestNotFound
	}
	if req.Status == leave.LeaveRequestStatusRejected {
		return false, nil
	}

	req.PayType = &payType
	req.PayTypeSetBy = &by
	req.PayTypeSetAt = &at
	req.UpdatedAt = r.store.now()
	r.store.leaves[id] = req
	return true, nil
}
