package datetime

import (
	"testing"
	"time"
)

func TestParseNAVDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "Day first",
			input: "05-03-2024",
			want:  time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Leap day",
			input: "29-02-2024",
			want:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Unpadded month out of range",
			input:   "5-13-2024",
			wantErr: true,
		},
		{
			name:    "ISO order rejected",
			input:   "2024-03-05",
			wantErr: true,
		},
		{
			name:    "Month out of range",
			input:   "05-13-2024",
			wantErr: true,
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNAVDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseNAVDate(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNAVDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseNAVDate(%q) = %v, expected %v", tt.input, got, tt.want)
			}
			if FormatNAVDate(got) != tt.input {
				t.Errorf("FormatNAVDate() = %s, expected %s", FormatNAVDate(got), tt.input)
			}
		})
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		layout   string
		months   int
		expected string
		wantErr  bool
	}{
		{
			name:     "Add multiple years",
			date:     "2025-01",
			layout:   MonthKeyLayout,
			months:   24,
			expected: "2027-01",
		},
		{
			name:     "Cross year boundary backward",
			date:     "2025-06",
			layout:   MonthKeyLayout,
			months:   -8,
			expected: "2024-10",
		},
		{
			name:     "NAV layout forward",
			date:     "15-11-2024",
			layout:   NAVDateLayout,
			months:   3,
			expected: "15-02-2025",
		},
		{
			name:    "Invalid date",
			date:    "not-a-date",
			layout:  NAVDateLayout,
			months:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, tt.layout, tt.months)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("OffsetDate() error = %v", err)
				return
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestParseNAVDateUnpadded(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"1-2-2024", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"5-11-2023", time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC)},
		{"15-3-2022", time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNAVDate(tt.input)
			if err != nil {
				t.Fatalf("ParseNAVDate(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseNAVDate(%q) = %v, expected %v", tt.input, got, tt.want)
			}
		})
	}
}
