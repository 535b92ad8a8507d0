package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "plain date", input: "2024-12-01", want: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2024-12-01T10:30:00Z", want: time.Date(2024, 12, 1, 10, 30, 0, 0, time.UTC)},
		{name: "empty is zero", input: "", want: time.Time{}},
		{name: "garbage", input: "12/01/2024", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
