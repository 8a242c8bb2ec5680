package ledger

import (
	"fmt"
	"time"
)

// StartDate maps a month offset from now onto a calendar month. Offset 13 in
// November lands in December of the following year.
func StartDate(now time.Time, offset int) (int, time.Month) {
	total := int(now.Month()) - 1 + offset
	years := total / 12
	months := total % 12
	if months < 0 {
		months += 12
		years--
	}
	return now.Year() + years, time.Month(months + 1)
}

// DescribeStart renders an offset the way the payment list shows it.
func DescribeStart(now time.Time, offset int) string {
	switch offset {
	case 0:
		return "Now"
	case 1:
		return "In 1 month"
	}
	year, month := StartDate(now, offset)
	return fmt.Sprintf("%s %d", month, year)
}
