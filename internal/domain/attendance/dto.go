package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// DEVICE EVENT DTOs
// ========================================

// DeviceEventRequest is the inbound event shape shared by the bus and HTTP ingest.
type DeviceEventRequest struct {
	DeviceMac   string     `json:"device_mac"`
	AuthMethod  AuthMethod `json:"auth_method"`
	BiometricID *int       `json:"biometric_id,omitempty"`
	CardNumber  *string    `json:"card_number,omitempty"`
	Timestamp   *string    `json:"timestamp,omitempty"` // RFC3339; server time when absent
}

func (r *DeviceEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceMac) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_mac",
			Message: "device_mac is required",
		})
	}

	switch r.AuthMethod {
	case AuthMethodFingerprint:
		if r.BiometricID == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "biometric_id",
				Message: "biometric_id is required for fingerprint authentication",
			})
		}
	case AuthMethodCard:
		if r.CardNumber == nil || validator.IsEmpty(*r.CardNumber) {
			errs = append(errs, validator.ValidationError{
				Field:   "card_number",
				Message: "card_number is required for card authentication",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "auth_method",
			Message: "auth_method must be one of: fingerprint, card",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an ISO8601 date time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EventTime returns the parsed timestamp, or fallback when none was sent.
func (r *DeviceEventRequest) EventTime(fallback time.Time) time.Time {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return fallback
	}
	if t, ok := validator.IsValidDateTime(*r.Timestamp); ok {
		return t
	}
	return fallback
}

type DeviceEventResponse struct {
	Message string              `json:"message"`
	Type    EventType           `json:"type,omitempty"`
	Record  *AttendanceResponse `json:"record,omitempty"`
}

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"user_id"`
	UserName           string      `json:"user_name,omitempty"`
	Date               string      `json:"date"`
	TimeIn             string      `json:"time_in"`
	TimeOut            *string     `json:"time_out"`
	CheckInDeviceID    string      `json:"check_in_device"`
	CheckOutDeviceID   *string     `json:"check_out_device"`
	CheckInAuthMethod  AuthMethod  `json:"check_in_auth_method"`
	CheckOutAuthMethod *AuthMethod `json:"check_out_auth_method"`
	ExpectedShiftID    *string     `json:"expected_shift"`
	ExpectedStartTime  *string     `json:"expected_start_time"`
	ExpectedEndTime    *string     `json:"expected_end_time"`
	Status             Status      `json:"status"`
	WorkHours          float64     `json:"work_hours"`
	Overtime           float64     `json:"overtime"`
	CreatedAt          string      `json:"created_at"`
	UpdatedAt          string      `json:"updated_at"`
}

// ToResponse converts a Record entity to AttendanceResponse
func ToResponse(r Record) AttendanceResponse {
	var userName string
	if r.UserName != nil {
		userName = *r.UserName
	}

	return AttendanceResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           userName,
		Date:               r.Date.Format("2006-01-02"),
		TimeIn:             r.TimeIn,
		TimeOut:            r.TimeOut,
		CheckInDeviceID:    r.CheckInDeviceID,
		CheckOutDeviceID:   r.CheckOutDeviceID,
		CheckInAuthMethod:  r.CheckInAuthMethod,
		CheckOutAuthMethod: r.CheckOutAuthMethod,
		ExpectedShiftID:    r.ExpectedShiftID,
		ExpectedStartTime:  r.ExpectedStartTime,
		ExpectedEndTime:    r.ExpectedEndTime,
		Status:             r.Status,
		WorkHours:          r.WorkHours,
		Overtime:           r.Overtime,
		CreatedAt:          r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type AttendanceFilter struct {
	// Search & Filter
	UserID    *string `json:"user_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, time_in, time_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		if !validator.IsInSlice(*f.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(StatusValues, ", "),
			})
		}
	}

	errs = append(errs, validateDateField("date", f.Date)...)
	errs = append(errs, validateDateField("start_date", f.StartDate)...)
	errs = append(errs, validateDateField("end_date", f.EndDate)...)

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "time_in", "time_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, time_in, time_out, status",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
		f.SortOrder = strings.ToLower(f.SortOrder)
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type SummaryFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate string  `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string  `json:"end_date"`   // YYYY-MM-DD, inclusive
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Summary is a reduction over attendance records.
type Summary struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalRecords   int     `json:"total_records"`
	OnTime         int     `json:"on_time"`
	Late           int     `json:"late"`
	Early          int     `json:"early"`
	Absent         int     `json:"absent"`
	Overtime       int     `json:"overtime"`
	TotalWorkHours float64 `json:"total_work_hours"`
	TotalOvertime  float64 `json:"total_overtime"`
}

func validateDateField(field string, value *string) validator.ValidationErrors {
	if value == nil || *value == "" {
		return nil
	}
	if _, valid := validator.IsValidDate(*value); !valid {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		}}
	}
	return nil
}
