package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps an English weekday name, case-insensitively, to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrInvalidWeekday)
	}
	return day, nil
}

// DecodeShiftMapping converts a stored day mapping into the canonical representation.
// Two encodings exist in stored data: a plain object {"Monday": "<shift id>"} and a
// serialized map as an array of pairs [["Monday", "<shift id>"]]. Both decode here so
// nothing past the repository has to care.
func DecodeShiftMapping(raw []byte) (map[time.Weekday]string, error) {
	result := make(map[time.Weekday]string)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return result, nil
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]*string
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShiftMapping, err)
		}
		for name, shiftID := range obj {
			if err := put(result, name, shiftID); err != nil {
				return nil, err
			}
		}
	case '[':
		var pairs [][]*string
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShiftMapping, err)
		}
		for _, pair := range pairs {
			if len(pair) != 2 || pair[0] == nil {
				return nil, fmt.Errorf("%w: expected [day, shift] pairs", ErrInvalidShiftMapping)
			}
			if err := put(result, *pair[0], pair[1]); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported encoding", ErrInvalidShiftMapping)
	}

	return result, nil
}

func put(result map[time.Weekday]string, name string, shiftID *string) error {
	day, err := ParseWeekday(name)
	if err != nil {
		return err
	}
	// null values mean "no shift" for that day
	if shiftID == nil || *shiftID == "" {
		return nil
	}
	result[day] = *shiftID
	return nil
}

// EncodeShiftMapping writes the canonical object form keyed by English weekday name.
func EncodeShiftMapping(shifts map[time.Weekday]string) ([]byte, error) {
	obj := make(map[string]string, len(shifts))
	for day, shiftID := range shifts {
		obj[day.String()] = shiftID
	}
	return json.Marshal(obj)
}
