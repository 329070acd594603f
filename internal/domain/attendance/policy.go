package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/geo"
	"github.com/shopspring/decimal"
)

// DefaultLateCutoffMinutes is 09:35 local time.
const DefaultLateCutoffMinutes = 9*60 + 35

// AutoCloseDisabled is the auto-close minute-of-day that turns the nightly close off.
// 0 is a valid close time and means midnight at the end of the punch day.
const AutoCloseDisabled = -1

// Policy holds the site-specific constants of the punch rules.
type Policy struct {
	Office            geo.Point
	OfficeRadiusKm    float64
	HomeRadiusKm      float64
	LateCutoffMinutes int
	Location          *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		Office:            geo.Point{Latitude: 12.99695, Longitude: 77.66048},
		OfficeRadiusKm:    0.1,
		HomeRadiusKm:      0.2,
		LateCutoffMinutes: DefaultLateCutoffMinutes,
		Location:          time.UTC,
	}
}

// Zone returns the business time zone, UTC when unset.
func (p Policy) Zone() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Classify marks a punch-in late when its local minute-of-day is strictly past the cutoff.
func (p Policy) Classify(punchIn time.Time) Status {
	local := punchIn.In(p.Zone())
	if local.Hour()*60+local.Minute() > p.LateCutoffMinutes {
		return StatusLate
	}
	return StatusPresent
}

// LocalDate returns the attendance date t belongs to.
func (p Policy) LocalDate(t time.Time) time.Time {
	return dateutil.In(t, p.Zone())
}

// CheckOffice returns the distance to the office, or a *DistanceError when outside.
func (p Policy) CheckOffice(lat, lon float64) (float64, error) {
	return checkRadius(p.Office, lat, lon, p.OfficeRadiusKm, ErrOutsideGeofence)
}

// CheckHome returns the distance to home, or a *DistanceError when outside.
func (p Policy) CheckHome(home geo.Point, lat, lon float64) (float64, error) {
	return checkRadius(home, lat, lon, p.HomeRadiusKm, ErrOutsideHomeRadius)
}

func checkRadius(center geo.Point, lat, lon, radiusKm float64, sentinel error) (float64, error) {
	d := geo.DistanceKm(lat, lon, center.Latitude, center.Longitude)
	if !geo.WithinRadius(d, radiusKm) {
		return d, &DistanceError{Err: sentinel, DistanceKm: d, RadiusKm: radiusKm}
	}
	return d, nil
}

var msPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// WorkHours returns out-in in hours rounded to two decimals, never negative.
func WorkHours(in, out time.Time) float64 {
	ms := out.Sub(in).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return decimal.NewFromInt(ms).Div(msPerHour).Round(2).InexactFloat64()
}
