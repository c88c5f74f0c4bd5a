package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsNonEmptyString(tt.input)
			if result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		min      int
		max      int
		expected bool
	}{
		{"Empty string, min 1", "", 1, 5, false},
		{"Too long", "dollars", 1, 5, false},
		{"Valid length", "$", 1, 5, true},
		{"With leading/trailing spaces", "  AU$  ", 1, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsValidStringLength(tt.input, tt.min, tt.max)
			if result != tt.expected {
				t.Errorf("IsValidStringLength(%q, %d, %d) = %v, expected %v", tt.input, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidRate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		rate     string
		expected bool
	}{
		{"Below minimum", "0.00", false},
		{"Exactly minimum", "0.01", true},
		{"Typical", "25.00", true},
		{"Exactly maximum", "999.99", true},
		{"Above maximum", "1000.00", false},
		{"Negative", "-5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsValidRate(decimal.RequireFromString(tt.rate))
			if result != tt.expected {
				t.Errorf("IsValidRate(%s) = %v, expected %v", tt.rate, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidRate_WithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rate.MaxRate = decimal.NewFromInt(50)
	validator := NewValidatorWithConfig(cfg)

	if validator.IsValidRate(decimal.NewFromInt(60)) {
		t.Error("IsValidRate(60) should be false when the configured maximum is 50")
	}
	if !validator.IsValidRate(decimal.NewFromInt(50)) {
		t.Error("IsValidRate(50) should be true when the configured maximum is 50")
	}
}

func TestValidator_HasAtMostPlaces(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"25", true},
		{"25.5", true},
		{"25.55", true},
		{"25.555", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := validator.HasAtMostPlaces(decimal.RequireFromString(tt.input), 2)
			if result != tt.expected {
				t.Errorf("HasAtMostPlaces(%s, 2) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidEntryID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		id       int64
		expected bool
	}{
		{"Zero ID", 0, false},
		{"Negative ID", -1, false},
		{"Valid ID", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsValidEntryID(tt.id)
			if result != tt.expected {
				t.Errorf("IsValidEntryID(%d) = %v, expected %v", tt.id, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidDateRange(t *testing.T) {
	validator := NewValidator()

	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from     *time.Time
		to       *time.Time
		expected bool
	}{
		{"Both nil", nil, nil, true},
		{"Start only", &jan1, nil, true},
		{"End only", nil, &jan31, true},
		{"Valid range", &jan1, &jan31, true},
		{"Same day", &jan1, &jan1, true},
		{"Reversed range", &jan31, &jan1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsValidDateRange(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidDateRange() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestValidator_ParseLenientDate(t *testing.T) {
	validator := NewValidator()
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{"ISO date", "2024-01-15", jan15, false},
		{"ISO date with spaces", "  2024-01-15 ", jan15, false},
		{"Day first slashes", "15/01/2024", jan15, false},
		{"Ambiguous reads day first", "02/01/2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"Month name", "January 15, 2024", jan15, false},
		{"Timestamp keeps the date", "2024-01-15T08:30:00Z", jan15, false},
		{"Garbage", "next tuesday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validator.ParseLenientDate(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("ParseLenientDate(%q) expected error but got %v", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLenientDate(%q) unexpected error: %v", tt.input, err)
			}
			if !result.Equal(tt.expected) {
				t.Errorf("ParseLenientDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_TrimAndValidateString(t *testing.T) {
	validator := NewValidator()

	if got := validator.TrimAndValidateString("  25.00  "); got != "25.00" {
		t.Errorf("TrimAndValidateString() = %q, expected %q", got, "25.00")
	}
}
