package timeutil

import (
	"time"
)

// VET is the Venezuela Time location (UTC-4), the timezone the chatbot
// operation runs in.
var VET *time.Location

func init() {
	var err error
	VET, err = time.LoadLocation("America/Caracas")
	if err != nil {
		// Fallback: create fixed zone if America/Caracas not available
		VET = time.FixedZone("VET", -4*60*60)
	}
}

// Now returns the current time in VET
func Now() time.Time {
	return time.Now().In(VET)
}

// ToVET converts any time to VET
func ToVET(t time.Time) time.Time {
	return t.In(VET)
}

// FormatVET formats a time in VET using the given layout
func FormatVET(t time.Time, layout string) string {
	return t.In(VET).Format(layout)
}

// Common layouts for VET formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
