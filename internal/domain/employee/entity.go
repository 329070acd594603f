package employee

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
)

// Employee is the read-only directory view consumed by the attendance engine.
type Employee struct {
	ID            string
	Code          string
	FullName      string
	Department    string
	Position      *string
	Gender        Gender
	HomeLatitude  *float64
	HomeLongitude *float64
	Status        EmploymentStatus
	Role          user.Role
	CreatedAt     time.Time
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}

func (e Employee) IsFemale() bool {
	return e.Gender == Female
}

// HomeLocation returns the configured home coordinates, if both are set.
func (e Employee) HomeLocation() (geo.Point, bool) {
	if e.HomeLatitude == nil || e.HomeLongitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *e.HomeLatitude, Longitude: *e.HomeLongitude}, true
}
