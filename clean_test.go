package zipcodes

import (
	"errors"
	"testing"
)

// TestClean tests zipcode normalization with various inputs
func TestClean(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		length  int
		want    string
		wantErr error
	}{
		{name: "five digits", input: "06469", length: 5, want: "06469"},
		{name: "leading zeros kept", input: "00501", length: 5, want: "00501"},
		{name: "zip plus four", input: "06469-1154", length: 5, want: "06469"},
		// A single hyphen always truncates, even with nothing after it.
		{name: "trailing hyphen", input: "12345-", length: 5, want: "12345"},
		{name: "trailing hyphen on short code", input: "1234-", length: 5, wantErr: ErrInputFormat},
		{name: "custom length", input: "0646", length: 4, want: "0646"},
		{name: "empty", input: "", length: 5, wantErr: ErrInputType},
		{name: "six digits", input: "000000", length: 5, wantErr: ErrInputFormat},
		{name: "letter", input: "0000a", length: 5, wantErr: ErrInputFormat},
		{name: "letter in suffix", input: "06469-11a4", length: 5, wantErr: ErrInputFormat},
		{name: "space", input: " 06469", length: 5, wantErr: ErrInputFormat},
		{name: "too short", input: "0646", length: 5, wantErr: ErrInputFormat},
		{name: "two hyphens", input: "1-2-3", length: 5, wantErr: ErrInputFormat},
		{name: "hyphen only", input: "-", length: 0, wantErr: ErrInputFormat},
		{name: "leading hyphen", input: "-1234", length: 0, wantErr: ErrInputFormat},
		{name: "unicode digit", input: "0646٣", length: 5, wantErr: ErrInputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(tt.input, tt.length)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Clean(%q, %d) error = %v, want %v", tt.input, tt.length, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Clean(%q, %d) unexpected error: %v", tt.input, tt.length, err)
			}
			if got != tt.want {
				t.Errorf("Clean(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

// TestClean_AllFiveDigitCodes checks that every 5-digit code cleans to itself
// and every ZIP+4 form cleans to its first five digits.
func TestClean_AllFiveDigitCodes(t *testing.T) {
	for _, code := range []string{"00000", "00501", "06475", "10001", "99999", "55555"} {
		if got, err := Clean(code, Zip5Length); err != nil || got != code {
			t.Errorf("Clean(%q) = %q, %v; want %q, nil", code, got, err, code)
		}
		plus4 := code + "-1234"
		if got, err := Clean(plus4, Zip5Length); err != nil || got != code {
			t.Errorf("Clean(%q) = %q, %v; want %q, nil", plus4, got, err, code)
		}
	}
}

func TestContainsNonDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1234a", true},
		{"12 45", true},
		{"12345", false},
		{"1234-", false},
		{"06469-1154", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsNonDigits(tt.input); got != tt.want {
			t.Errorf("ContainsNonDigits(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPrefixLength(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1", 1},
		{"1005", 4},
		{"10055-1234", 5},
		{"", 0},
	}
	for _, tt := range tests {
		if got := prefixLength(tt.input); got != tt.want {
			t.Errorf("prefixLength(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
