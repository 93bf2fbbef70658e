package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlaceholdersAllTokens(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	contact := ContactInfo{
		Name:      "Priya",
		Phone:     "919876543210",
		LastVisit: "2025-03-05T10:30:00Z",
	}

	got := resolvePlaceholdersAt("Hi [Name], we miss you! It has been [Days] days. Reply from [Phone].", contact, now)
	assert.Equal(t, "Hi Priya, we miss you! It has been 10 days. Reply from 919876543210.", got)
}

func TestResolvePlaceholdersDefaults(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		text    string
		contact ContactInfo
		want    string
	}{
		{
			name:    "missing name falls back to Friend",
			text:    "Hi [Name]!",
			contact: ContactInfo{},
			want:    "Hi Friend!",
		},
		{
			name:    "missing phone resolves empty",
			text:    "Call [Phone] now",
			contact: ContactInfo{Name: "Raj"},
			want:    "Call  now",
		},
		{
			name:    "missing last visit resolves empty",
			text:    "[Days] days ago",
			contact: ContactInfo{Name: "Raj"},
			want:    " days ago",
		},
		{
			name:    "unparseable last visit resolves to some",
			text:    "It has been [Days] days",
			contact: ContactInfo{LastVisit: "last tuesday"},
			want:    "It has been some days",
		},
		{
			name:    "no tokens passes through",
			text:    "Flat 20% off today",
			contact: ContactInfo{Name: "Raj"},
			want:    "Flat 20% off today",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolvePlaceholdersAt(tc.text, tc.contact, now))
		})
	}
}

func TestResolvePlaceholdersDateOnlyVisit(t *testing.T) {
	now := time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)
	got := resolvePlaceholdersAt("[Days]", ContactInfo{LastVisit: "2025-03-01"}, now)
	assert.Equal(t, "14", got)
}

func TestParseISOTimestampOffsetForm(t *testing.T) {
	got, err := parseISOTimestamp("2025-03-05T10:30:00+05:30")
	assert.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
}
