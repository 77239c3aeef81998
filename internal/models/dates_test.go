package models

import (
	"strings"
	"testing"
)

func TestRehydrateDates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"epoch millis", `{"createdAt":1704067200000}`, `{"createdAt":"2024-01-01T00:00:00Z"}`},
		{"bare date", `{"lastModified":"2024-03-05"}`, `{"lastModified":"2024-03-05T00:00:00Z"}`},
		{"rfc3339 kept", `{"createdAt":"2024-03-05T10:11:12+02:00"}`, `{"createdAt":"2024-03-05T10:11:12+02:00"}`},
		{"empty string", `{"uploadedAt":""}`, `{"uploadedAt":null}`},
		{"nested", `{"standards":[{"questions":[{"documentData":{"uploadedAt":0}}]}]}`,
			`{"standards":[{"questions":[{"documentData":{"uploadedAt":"1970-01-01T00:00:00Z"}}]}]}`},
		{"other numbers untouched", `{"weight":1.25,"score":3}`, `{"score":3,"weight":1.25}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RehydrateDates([]byte(tt.in))
			if err != nil {
				t.Fatalf("RehydrateDates: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRehydrateDates_Invalid(t *testing.T) {
	for _, in := range []string{`{"createdAt":"soon"}`, `{"createdAt":true}`, `{"createdAt":`} {
		if _, err := RehydrateDates([]byte(in)); err == nil {
			t.Errorf("%s: expected error", strings.TrimSpace(in))
		}
	}
}
