package api

import (
	"strings"
	"time"

	"bakked-marketing/internal/models"
)

// matchesMonthDay reports whether a "YYYY-MM-DD" date falls on today's
// month and day. Unparseable dates never match.
func matchesMonthDay(dateStr string, today time.Time) bool {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return false
	}
	return d.Month() == today.Month() && d.Day() == today.Day()
}

// daysSinceVisit returns the whole days between today and an ISO-8601
// last-visit timestamp. ok is false when the value is absent or unparseable.
func daysSinceVisit(lastVisit string, today time.Time) (int, bool) {
	if lastVisit == "" {
		return 0, false
	}
	normalized := strings.Replace(lastVisit, "Z", "+00:00", 1)
	lv, err := time.Parse("2006-01-02T15:04:05-07:00", normalized)
	if err != nil {
		lv, err = time.Parse("2006-01-02", normalized)
		if err != nil {
			return 0, false
		}
	}
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	visitDate := time.Date(lv.Year(), lv.Month(), lv.Day(), 0, 0, 0, 0, time.UTC)
	return int(todayDate.Sub(visitDate).Hours() / 24), true
}

// filterAudience selects contacts for a campaign type. Birthday and
// anniversary match on today's month+day; nudge matches contacts whose last
// visit was exactly nudgeDays ago; anything else takes everyone.
func filterAudience(contacts []models.Contact, campaignType string, nudgeDays int, today time.Time) []models.Contact {
	var selected []models.Contact
	for _, contact := range contacts {
		switch campaignType {
		case "birthday":
			if contact.DOB != "" && matchesMonthDay(contact.DOB, today) {
				selected = append(selected, contact)
			}
		case "anniversary":
			if contact.Anniversary != "" && matchesMonthDay(contact.Anniversary, today) {
				selected = append(selected, contact)
			}
		case "nudge":
			if days, ok := daysSinceVisit(contact.LastVisit, today); ok && days == nudgeDays {
				selected = append(selected, contact)
			}
		default:
			selected = append(selected, contact)
		}
	}
	return selected
}
