package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// fakeAttendanceRepo keeps records in memory; FindOrCreate is atomic under mu,
// mirroring the single-statement upsert of the postgres repository.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Record
	creates int
	updates int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]attendance.Record{}}
}

func dayKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) FindOrCreate(ctx context.Context, candidate attendance.Record) (attendance.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(candidate.UserID, candidate.Date)
	if existing, ok := f.records[key]; ok {
		return existing, false, nil
	}
	f.records[key] = candidate
	f.creates++
	return candidate, true, nil
}

func (f *fakeAttendanceRepo) UpdateCheckOut(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(record.UserID, record.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	f.records[key] = record
	f.updates++
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.records[dayKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]attendance.Record, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListForSummary(ctx context.Context, filter attendance.SummaryFilter) ([]attendance.Record, error) {
	records, _, err := f.List(ctx, attendance.AttendanceFilter{})
	return records, err
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, attendance.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByFingerprintID(ctx context.Context, fingerprintID int) (user.User, error) {
	return user.User{}, attendance.ErrFingerprintNotRegistered
}

func (f *fakeUserRepo) GetByCardNumber(ctx context.Context, cardNumber string) (user.User, error) {
	return user.User{}, attendance.ErrCardNotRegistered
}

func (f *fakeUserRepo) UpdateWorkSchedule(ctx context.Context, id string, scheduleID *string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, attendance.ErrUserNotFound
	}
	u.WorkScheduleID = scheduleID
	f.users[id] = u
	return u, nil
}

type fakeDeviceRepo struct {
	devices map[string]device.Device
}

func (f *fakeDeviceRepo) GetByID(ctx context.Context, id string) (device.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return device.Device{}, attendance.ErrDeviceNotFound
	}
	return d, nil
}

func (f *fakeDeviceRepo) GetByMac(ctx context.Context, mac string) (device.Device, error) {
	for _, d := range f.devices {
		if d.DeviceMac == mac {
			return d, nil
		}
	}
	return device.Device{}, attendance.ErrDeviceNotFound
}

func (f *fakeDeviceRepo) Create(ctx context.Context, d device.Device) (device.Device, error) {
	f.devices[d.ID] = d
	return d, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.ShiftPolicy
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.ShiftPolicy, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.ShiftPolicy{}, attendance.ErrShiftNotFound
	}
	return s, nil
}

// fakeResolver returns the same shift for every user that has a schedule.
type fakeResolver struct {
	policy *shift.ShiftPolicy
	calls  int
	mu     sync.Mutex
}

func (f *fakeResolver) Resolve(ctx context.Context, u user.User, instant time.Time) (*shift.ShiftPolicy, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if !u.HasSchedule() || f.policy == nil {
		return nil, nil
	}
	p := *f.policy
	return &p, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []attendance.ActivityNotification
	err  error
}

func (r *recordingNotifier) NotifyActivity(ctx context.Context, n attendance.ActivityNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}
