package repos

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type DurationMS time.Duration

func NewDurationMS(millis int64) DurationMS {
	return DurationMS(time.Duration(millis) * time.Millisecond)
}

//goland:noinspection GoMixedReceiverTypes
func (nt DurationMS) Millis() int64 {
	return nt.ToStd().Milliseconds()
}

//goland:noinspection GoMixedReceiverTypes
func (nt DurationMS) Seconds() int {
	return int(nt.ToStd().Seconds())
}

//goland:noinspection GoMixedReceiverTypes
func (nt DurationMS) ToStd() time.Duration {
	return time.Duration(nt)
}

//goland:noinspection GoMixedReceiverTypes
func (nt *DurationMS) Scan(value any) error {
	if value == nil {
		return nil
	}
	var milliseconds int64
	switch value := value.(type) {
	case int:
		milliseconds = int64(value)
	case int32:
		milliseconds = int64(value)
	case int64:
		milliseconds = value
	default:
		return fmt.Errorf("cannot scan %T into DurationMS; expected integer value", value)
	}
	*nt = DurationMS(milliseconds) * DurationMS(time.Millisecond)
	return nil
}

//goland:noinspection GoMixedReceiverTypes
func (nt DurationMS) Value() (driver.Value, error) {
	return time.Duration(nt).Milliseconds(), nil
}

type NullDurationMS struct {
	Duration DurationMS
	Valid    bool
}

//goland:noinspection GoMixedReceiverTypes
func (nt *NullDurationMS) Scan(value any) error {
	if value == nil {
		return nil
	}
	var milliseconds int64
	switch value := value.(type) {
	case int:
		milliseconds = int64(value)
	case int32:
		milliseconds = int64(value)
	case int64:
		milliseconds = value
	default:
		return fmt.Errorf("cannot scan %T into DurationMS; expected integer value", value)
	}
	*nt = NullDurationMS{
		Duration: DurationMS(milliseconds) * DurationMS(time.Millisecond),
		Valid:    true,
	}
	return nil
}

//goland:noinspection GoMixedReceiverTypes
func (nt NullDurationMS) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return time.Duration(nt.Duration).Milliseconds(), nil
}

// NullUnixMS is a nullable point in time stored as milliseconds since the unix epoch.
// Both supported dialects store it in a BIGINT column.
type NullUnixMS struct {
	Time  time.Time
	Valid bool
}

func NewNullUnixMS(t time.Time) NullUnixMS {
	return NullUnixMS{
		Time:  t,
		Valid: !t.IsZero(),
	}
}

// SinceMilli reports whether the time is valid and not before t at millisecond
// precision, the precision times are stored with.
//
//goland:noinspection GoMixedReceiverTypes
func (nt NullUnixMS) SinceMilli(t time.Time) bool {
	return nt.Valid && nt.Time.UnixMilli() >= t.UnixMilli()
}

//goland:noinspection GoMixedReceiverTypes
func (nt *NullUnixMS) Scan(value any) error {
	if value == nil {
		*nt = NullUnixMS{}
		return nil
	}
	var milliseconds int64
	switch value := value.(type) {
	case int:
		milliseconds = int64(value)
	case int32:
		milliseconds = int64(value)
	case int64:
		milliseconds = value
	default:
		return fmt.Errorf("cannot scan %T into NullUnixMS; expected integer value", value)
	}
	*nt = NullUnixMS{
		Time:  time.UnixMilli(milliseconds),
		Valid: true,
	}
	return nil
}

//goland:noinspection GoMixedReceiverTypes
func (nt NullUnixMS) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return nt.Time.UnixMilli(), nil
}

// UnixMS is a non-nullable point in time stored as milliseconds since the unix epoch.
type UnixMS time.Time

//goland:noinspection GoMixedReceiverTypes
func (u UnixMS) ToStd() time.Time {
	return time.Time(u)
}

//goland:noinspection GoMixedReceiverTypes
func (u *UnixMS) Scan(value any) error {
	var n NullUnixMS
	err := n.Scan(value)
	if err != nil {
		return err
	}
	if !n.Valid {
		return fmt.Errorf("cannot scan NULL into UnixMS")
	}
	*u = UnixMS(n.Time)
	return nil
}

//goland:noinspection GoMixedReceiverTypes
func (u UnixMS) Value() (driver.Value, error) {
	return time.Time(u).UnixMilli(), nil
}
