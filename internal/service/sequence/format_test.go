package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"steelestim/internal/storage"
)

var march15 = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestFormatNumber_DefaultAssembly(t *testing.T) {
	tests := []struct {
		name   string
		series storage.NumberSeries
		number int
		want   string
	}{
		{
			name:   "prefix and padding only",
			series: storage.NumberSeries{Prefix: "PRJ-", MinDigits: 4},
			number: 8,
			want:   "PRJ-0008",
		},
		{
			name:   "prefix without trailing dash",
			series: storage.NumberSeries{Prefix: "PRJ", MinDigits: 4},
			number: 8,
			want:   "PRJ-0008",
		},
		{
			name:   "year segment",
			series: storage.NumberSeries{Prefix: "EST-", MinDigits: 5, IncludeYear: true},
			number: 42,
			want:   "EST-2025-00042",
		},
		{
			name:   "year and month segments",
			series: storage.NumberSeries{Prefix: "PI-", MinDigits: 3, IncludeYear: true, IncludeMonth: true},
			number: 7,
			want:   "PI-2025-03-007",
		},
		{
			name: "company code between prefix and year",
			series: storage.NumberSeries{
				Prefix: "PKG-", CompanyCode: "ACME", MinDigits: 4,
				IncludeCompanyCode: true, IncludeYear: true,
			},
			number: 12,
			want:   "PKG-ACME-2025-0012",
		},
		{
			name:   "company code flag off leaves code out",
			series: storage.NumberSeries{Prefix: "PKG-", CompanyCode: "ACME", MinDigits: 4},
			number: 12,
			want:   "PKG-0012",
		},
		{
			name:   "suffix with leading dash",
			series: storage.NumberSeries{Prefix: "WC-", Suffix: "-A", MinDigits: 3},
			number: 5,
			want:   "WC-005-A",
		},
		{
			name:   "no prefix at all",
			series: storage.NumberSeries{MinDigits: 4},
			number: 8,
			want:   "0008",
		},
		{
			name:   "number wider than min digits",
			series: storage.NumberSeries{Prefix: "PRJ-", MinDigits: 4},
			number: 123456,
			want:   "PRJ-123456",
		},
		{
			name:   "zero min digits keeps number bare",
			series: storage.NumberSeries{Prefix: "RT-"},
			number: 9,
			want:   "RT-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.series, tt.number, march15))
		})
	}
}

func TestFormatNumber_CustomFormat(t *testing.T) {
	tests := []struct {
		name   string
		series storage.NumberSeries
		number int
		want   string
	}{
		{
			name: "all placeholders",
			series: storage.NumberSeries{
				Prefix: "EST", Suffix: "X", MinDigits: 4,
				Format: "{Prefix}/{Year}/{Month}/{Day}/{Number}-{Suffix}",
			},
			number: 8,
			want:   "EST/2025/03/15/0008-X",
		},
		{
			name:   "two digit year",
			series: storage.NumberSeries{MinDigits: 3, Format: "Q{YY}-{Number}"},
			number: 77,
			want:   "Q25-077",
		},
		{
			name:   "unknown placeholder left untouched",
			series: storage.NumberSeries{MinDigits: 3, Format: "{Week}-{Number}"},
			number: 1,
			want:   "{Week}-001",
		},
		{
			name:   "repeated placeholder substituted once",
			series: storage.NumberSeries{MinDigits: 3, Format: "{Number}-{Number}"},
			number: 4,
			want:   "004-{Number}",
		},
		{
			name:   "custom format ignores segment flags",
			series: storage.NumberSeries{Prefix: "P", Format: "{Number}", MinDigits: 2, IncludeYear: true},
			number: 3,
			want:   "03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.series, tt.number, march15))
		})
	}
}
