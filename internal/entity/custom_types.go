package entity

import (
	"fmt"
	"time"
)

// CustomDate carries day precision, matching the date inputs on the event
// forms and the remote API's wire format.
type CustomDate struct {
	time.Time
}

const customDateLayout = "2006-01-02"

func NewCustomDate(t time.Time) CustomDate {
	return CustomDate{Time: t}
}

func ParseCustomDate(s string) (CustomDate, error) {
	t, err := time.Parse(customDateLayout, s)
	if err != nil {
		return CustomDate{}, err
	}
	return CustomDate{Time: t}, nil
}

func (cd *CustomDate) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	s = s[1 : len(s)-1]

	// The remote API stores dates both as plain days and full timestamps.
	for _, layout := range []string{customDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			cd.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as date", s)
}

func (cd CustomDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + cd.Format(customDateLayout) + `"`), nil
}

func (cd CustomDate) String() string {
	return cd.Format(customDateLayout)
}
