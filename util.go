package fireauth

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// The user endpoints mix three timestamp encodings: epoch milliseconds
// as a string, epoch seconds as a string, and epoch milliseconds as a
// number. Each gets its own JSON type so User fields decode without
// per-field glue.

// UnixMilliString is an instant carried as a JSON string of epoch
// milliseconds.
type UnixMilliString struct {
	time.Time
}

func (t UnixMilliString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(t.UnixMilli(), 10))), nil
}

func (t *UnixMilliString) UnmarshalJSON(data []byte) error {
	ms, err := unquotedInt(data)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// UnixSecondsString is an instant carried as a JSON string of epoch
// seconds.
type UnixSecondsString struct {
	time.Time
}

func (t UnixSecondsString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(t.Unix(), 10))), nil
}

func (t *UnixSecondsString) UnmarshalJSON(data []byte) error {
	sec, err := unquotedInt(data)
	if err != nil {
		return err
	}
	t.Time = time.Unix(sec, 0).UTC()
	return nil
}

// UnixMilli is an instant carried as a JSON number of epoch
// milliseconds.
type UnixMilli struct {
	time.Time
}

func (t UnixMilli) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *UnixMilli) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.New("timestamp is not a number of epoch milliseconds")
	}
	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

func unquotedInt(data []byte) (int64, error) {
	raw := strings.Trim(string(data), `"`)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("timestamp is not an integer string")
	}
	return value, nil
}
