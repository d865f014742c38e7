package attendance

import (
	"time"
)

type Status string

const (
	StatusOnTime   Status = "on-time"
	StatusLate     Status = "late"
	StatusEarly    Status = "early"
	StatusAbsent   Status = "absent"
	StatusOvertime Status = "overtime"
)

var StatusValues = []string{
	string(StatusOnTime),
	string(StatusLate),
	string(StatusEarly),
	string(StatusAbsent),
	string(StatusOvertime),
}

type AuthMethod string

const (
	AuthMethodFingerprint AuthMethod = "fingerprint"
	AuthMethodCard        AuthMethod = "card"
)

func (m AuthMethod) Valid() bool {
	return m == AuthMethodFingerprint || m == AuthMethodCard
}

type EventType string

const (
	EventCheckIn  EventType = "check-in"
	EventCheckOut EventType = "check-out"
)

// Record is the single attendance row for one user on one calendar day.
// TimeIn/TimeOut are wall-clock "HH:mm:ss" strings; TimeOut is nil while the day is open.
type Record struct {
	ID     string
	UserID string
	Date   time.Time

	TimeIn             string
	TimeOut            *string
	CheckInDeviceID    string
	CheckOutDeviceID   *string
	CheckInAuthMethod  AuthMethod
	CheckOutAuthMethod *AuthMethod

	// Snapshot of the shift resolved at check-in; not re-resolved at check-out.
	ExpectedShiftID   *string
	ExpectedStartTime *string
	ExpectedEndTime   *string

	Status    Status
	WorkHours float64
	Overtime  float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserName *string
}

// IsOpen reports whether the day has a check-in without a check-out.
func (r Record) IsOpen() bool {
	return r.TimeOut == nil
}

// WorkMetrics is the calculator output for a closed day.
type WorkMetrics struct {
	WorkHours float64
	Overtime  float64
	Status    Status
}
