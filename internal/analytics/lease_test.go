package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeaseYears(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{
			name:   "years and months",
			text:   "69 years 04 months",
			want:   69 + 4.0/12,
			wantOK: true,
		},
		{
			name:   "years only",
			text:   "99 years",
			want:   99,
			wantOK: true,
		},
		{
			name:   "singular units",
			text:   "1 year 1 month",
			want:   1 + 1.0/12,
			wantOK: true,
		},
		{
			name:   "zero months",
			text:   "61 years 00 months",
			want:   61,
			wantOK: true,
		},
		{
			name: "lenient months over eleven",
			// Upstream rows are not validated to keep months below 12;
			// tightening this would silently change which records survive.
			text:   "70 years 13 months",
			want:   70 + 13.0/12,
			wantOK: true,
		},
		{
			name:   "embedded in longer text",
			text:   "approx 80 years 2 months remaining",
			want:   80 + 2.0/12,
			wantOK: true,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
		{
			name:   "garbage",
			text:   "garbage",
			wantOK: false,
		},
		{
			name:   "number without unit",
			text:   "75",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLeaseYears(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
