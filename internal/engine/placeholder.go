package engine

import (
	"strconv"
	"strings"
	"time"
)

// ContactInfo is the subset of a contact the resolver reads.
type ContactInfo struct {
	Name      string
	Phone     string
	LastVisit string // ISO-8601 timestamp
}

type tokenResolver struct {
	token   string
	resolve func(c ContactInfo, now time.Time) string
}

// Ordered so new tokens slot in without touching the resolve loop.
var tokenResolvers = []tokenResolver{
	{"[Name]", func(c ContactInfo, _ time.Time) string {
		if c.Name == "" {
			return "Friend"
		}
		return c.Name
	}},
	{"[Phone]", func(c ContactInfo, _ time.Time) string {
		return c.Phone
	}},
	{"[Days]", func(c ContactInfo, now time.Time) string {
		if c.LastVisit == "" {
			return ""
		}
		lv, err := parseISOTimestamp(c.LastVisit)
		if err != nil {
			return "some"
		}
		return strconv.Itoa(int(now.Sub(lv).Hours() / 24))
	}},
}

// ResolvePlaceholders substitutes [Name], [Phone] and [Days] tokens in text.
// It never fails; unparseable dates fall back per token.
func ResolvePlaceholders(text string, contact ContactInfo) string {
	return resolvePlaceholdersAt(text, contact, time.Now())
}

func resolvePlaceholdersAt(text string, contact ContactInfo, now time.Time) string {
	for _, tr := range tokenResolvers {
		if strings.Contains(text, tr.token) {
			text = strings.ReplaceAll(text, tr.token, tr.resolve(contact, now))
		}
	}
	return text
}

func parseISOTimestamp(value string) (time.Time, error) {
	normalized := strings.Replace(value, "Z", "+00:00", 1)
	t, err := time.Parse("2006-01-02T15:04:05-07:00", normalized)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", normalized)
}
