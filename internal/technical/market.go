package technical

import "time"

// IST has no daylight saving, so a fixed offset is exact.
var ist = time.FixedZone("IST", 5*3600+30*60)

// IsMarketOpen reports whether NSE is in its regular session
// (09:15 to 15:30 IST, Monday to Friday) at t.
func IsMarketOpen(t time.Time) bool {
	local := t.In(ist)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	y, m, d := local.Date()
	open := time.Date(y, m, d, 9, 15, 0, 0, ist)
	closing := time.Date(y, m, d, 15, 30, 0, 0, ist)
	return !local.Before(open) && local.Before(closing)
}
