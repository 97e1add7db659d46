package service

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "valid", value: "2026-10-15", want: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{name: "leap day", value: "2028-02-29", want: time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "impossible month and day", value: "2020-13-45", wantErr: true},
		{name: "non-leap february 29", value: "2026-02-29", wantErr: true},
		{name: "wrong layout", value: "15/10/2026", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	if got, err := parseOptionalDate(nil); err != nil || got != nil {
		t.Errorf("parseOptionalDate(nil) = %v, %v, want nil, nil", got, err)
	}

	empty := ""
	if got, err := parseOptionalDate(&empty); err != nil || got != nil {
		t.Errorf("parseOptionalDate(\"\") = %v, %v, want nil, nil", got, err)
	}

	bad := "2020-13-45"
	if _, err := parseOptionalDate(&bad); err == nil {
		t.Error("parseOptionalDate(2020-13-45) error = nil, want validation error")
	}

	good := "2026-01-02"
	got, err := parseOptionalDate(&good)
	if err != nil || got == nil || !got.Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseOptionalDate(%q) = %v, %v", good, got, err)
	}
}
