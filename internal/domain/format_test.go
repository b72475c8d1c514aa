package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ShopAdmin/pkg/ptr"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09171234567", "+639171234567"},
		{"9171234567", "+639171234567"},
		{"+639171234567", "+639171234567"},
		{"0917-123-4567", "0917-123-4567"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}

	assert.Equal(t, "", (&User{}).FormattedPhone())
	assert.Equal(t, "+639171234567", (&User{Phone: ptr.Ptr("09171234567")}).FormattedPhone())
}

func TestService_FormattedDuration(t *testing.T) {
	assert.Equal(t, "1h 30m", (&Service{DurationMinutes: 90}).FormattedDuration())
	assert.Equal(t, "2h", (&Service{DurationMinutes: 120}).FormattedDuration())
	assert.Equal(t, "45m", (&Service{DurationMinutes: 45}).FormattedDuration())
}

func TestFormatPeso(t *testing.T) {
	assert.Equal(t, "₱1,234.50", FormatPeso(1234.5))
	assert.Equal(t, "₱0.00", FormatPeso(0))
	assert.Equal(t, "₱999.99", FormatPeso(999.99))
	assert.Equal(t, "₱1,000,000.00", FormatPeso(1_000_000))
	assert.Equal(t, "-₱50.00", FormatPeso(-50))
}

func TestNewPageInfo(t *testing.T) {
	page := NewPage(2, 10)
	info := NewPageInfo(page, 25, 10)

	assert.Equal(t, 3, info.LastPage)
	assert.Equal(t, 11, *info.From)
	assert.Equal(t, 20, *info.To)

	empty := NewPageInfo(NewPage(0, 0), 0, 0)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, DefaultPageSize, empty.PerPage)
	assert.Equal(t, 1, empty.LastPage)
	assert.Nil(t, empty.From)
}
