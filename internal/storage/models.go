package storage

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Date is a calendar date rendered as YYYY-MM-DD on the wire and in the
// database.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) parse(s string) error {
	for _, layout := range []string{dateLayout, dateTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as date", s)
}

// DateTime is a timestamp rendered as YYYY-MM-DD HH:MM:SS on the wire and in
// the database. Sub-second precision is dropped at creation time so the value
// echoed to the client equals the value read back.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{t.Truncate(time.Second)}
}

func Now() DateTime {
	return NewDateTime(time.Now())
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DD HH:MM:SS", s)
	}
	d.Time = t
	return nil
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Format(dateTimeLayout), nil
}

func (d *DateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("cannot scan %T into DateTime", src)
}

func (d *DateTime) parse(s string) error {
	for _, layout := range []string{dateTimeLayout, time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as timestamp", s)
}

// Vehicle is a resident's registered vehicle. Image fields are opaque storage
// paths, the service never dereferences them.
type Vehicle struct {
	VehicleID       int64  `db:"vehicle_id" json:"vehicle_id"`
	Province        string `db:"province" json:"province" binding:"required"`
	LicensePlateImg string `db:"license_plate_img" json:"license_plate_img" binding:"required"`
	VehicleImg      string `db:"vehicle_img" json:"vehicle_img" binding:"required"`
	ResidentID      int64  `db:"resident_id" json:"resident_id" binding:"required"`
	LicensePlate    string `db:"license_plate" json:"license_plate" binding:"required"`
	VehicleType     string `db:"vehicle_type" json:"vehicle_type" binding:"required"`
	Color           string `db:"color" json:"color" binding:"required"`
	Brand           string `db:"brand" json:"brand" binding:"required"`
}

type Visitor struct {
	VisitorID  int64  `db:"visitor_id" json:"visitor_id"`
	Name       string `db:"name" json:"name" binding:"required"`
	Phone      string `db:"phone" json:"phone" binding:"required"`
	Purpose    string `db:"purpose" json:"purpose" binding:"required"`
	VehicleID  *int64 `db:"vehicle_id" json:"vehicle_id"`
	ResidentID *int64 `db:"resident_id" json:"resident_id"`
}

type Resident struct {
	ResidentID int64   `db:"resident_id" json:"resident_id"`
	UserID     int64   `db:"user_id" json:"user_id" binding:"required"`
	Name       string  `db:"name" json:"name" binding:"required"`
	Address    *string `db:"address" json:"address"`
	Phone      *string `db:"phone" json:"phone"`
	Prefix     *string `db:"prefix" json:"prefix"`
	Lastname   *string `db:"lastname" json:"lastname"`
	CitizenID  string  `db:"citizen_id" json:"citizen_id" binding:"required"`
}

// User's created_at is server-assigned on create and, as in the system this
// replaces, overwritten with the current time on every update.
type User struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Email     string    `db:"email" json:"email" binding:"required,email"`
	Username  string    `db:"username" json:"username" binding:"required"`
	Password  *string   `db:"password" json:"password"`
	Role      string    `db:"role" json:"role" binding:"required"`
	CreatedAt *DateTime `db:"created_at" json:"created_at"`
}

type AccessPermission struct {
	PermissionID  int64 `db:"permission_id" json:"permission_id"`
	VehicleID     int64 `db:"vehicle_id" json:"vehicle_id" binding:"required"`
	ResidentID    int64 `db:"resident_id" json:"resident_id" binding:"required"`
	AllowedGateID int64 `db:"allowed_gate_id" json:"allowed_gate_id" binding:"required"`
	StartDate     Date  `db:"start_date" json:"start_date" binding:"required"`
	// Not validated against StartDate.
	EndDate Date `db:"end_date" json:"end_date" binding:"required"`
}

type IncidentReport struct {
	IncidentID      int64     `db:"incident_id" json:"incident_id"`
	Description     string    `db:"description" json:"description" binding:"required"`
	IncidentTime    *DateTime `db:"incident_time" json:"incident_time"`
	VehicleID       *int64    `db:"vehicle_id" json:"vehicle_id"`
	SecurityStaffID *int64    `db:"security_staff_id" json:"security_staff_id"`
	GateID          *int64    `db:"gate_id" json:"gate_id"`
}

type SecurityStaff struct {
	StaffID   int64  `db:"staff_id" json:"staff_id"`
	Name      string `db:"name" json:"name" binding:"required"`
	ShiftTime string `db:"shift_time" json:"shift_time" binding:"required"`
	Phone     string `db:"phone" json:"phone" binding:"required"`
	GateID    int64  `db:"gate_id" json:"gate_id" binding:"required"`
}

// Gate's gate_type holds the direction label as entered by the operator,
// typically "เข้า" (in) or "ออก" (out).
type Gate struct {
	GateID   int64  `db:"gate_id" json:"gate_id"`
	Location string `db:"location" json:"location" binding:"required"`
	GateType string `db:"gate_type" json:"gate_type" binding:"required"`
}

type EntryExitLog struct {
	LogID     int64     `db:"log_id" json:"log_id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id" binding:"required"`
	EntryTime *DateTime `db:"entry_time" json:"entry_time"`
	ExitTime  *DateTime `db:"exit_time" json:"exit_time"`
	GateID    int64     `db:"gate_id" json:"gate_id" binding:"required"`
}
