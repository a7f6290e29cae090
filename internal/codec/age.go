package codec

import (
	"fmt"
	"time"
)

var ageUnits = []struct {
	name string
	d    time.Duration
}{
	{"year", 365 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// Age renders the distance between then and now the way the client prints
// relative timestamps, e.g. "3 hours".
func Age(then, now time.Time) string {
	d := now.Sub(then)
	if d < 0 {
		d = 0
	}
	for _, u := range ageUnits {
		if d >= u.d {
			n := int(d / u.d)
			if n == 1 {
				return fmt.Sprintf("1 %s", u.name)
			}
			return fmt.Sprintf("%d %ss", n, u.name)
		}
	}
	return "0 seconds"
}
