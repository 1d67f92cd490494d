package export

import "time"

// exportWindowDays is the size of the export window in days.
const exportWindowDays = 30

// DateKeys returns the calendar dates of the export window in YYYY-MM-DD form,
// most recent first: the date of now followed by the 29 preceding days.
// Dates are taken in now's location, so the window follows the local calendar.
func DateKeys(now time.Time) []string {
	keys := make([]string, 0, exportWindowDays)

	for dayOffset := 0; dayOffset < exportWindowDays; dayOffset++ {
		keys = append(keys, now.AddDate(0, 0, -dayOffset).Format(time.DateOnly))
	}

	return keys
}
