package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLine = `1.196.116.32 -  - [29/Jun/2017:03:50:29 +0300] "GET /api/v2/banner/782125 HTTP/1.1" 200 1052 "-" "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5" "-" "1498697426-2190034393-4708-9752865" "dc7161be3" 2.450`

func TestParseLine(t *testing.T) {
	got, err := ParseLine(validLine)

	require.NoError(t, err)
	assert.Equal(t, "/api/v2/banner/782125", got.URL)
	assert.InDelta(t, 2.45, got.Duration, 1e-12)
}

func TestParseLine_AbsoluteURL(t *testing.T) {
	line := `1.194.135.240 -  - [29/Jun/2017:03:50:23 +0300] "GET http://example.com/api/v2/group/7786679/statistic/sites/?date_type=day HTTP/1.1" 200 110 "-" "python-requests/2.13.0" "-" "1498697423-3979856266-4708-9752782" "8a7741a54297568b" 0.068`

	got, err := ParseLine(line)

	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api/v2/group/7786679/statistic/sites/?date_type=day", got.URL)
	assert.InDelta(t, 0.068, got.Duration, 1e-12)
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{
			name: "Single field",
			line: "not_a_log",
			want: ErrMalformedLine,
		},
		{
			name: "Empty line",
			line: "",
			want: ErrMalformedLine,
		},
		{
			name: "Seven fields",
			line: `1.196.116.32 -  - [29/Jun/2017:03:50:29 +0300] "GET`,
			want: ErrMalformedLine,
		},
		{
			name: "Missing request",
			line: `1.196.116.32 -  - [29/Jun/2017:03:50:29 +0300] "-" 200 1052 "-" "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5" "-" "1498697426-2190034393-4708-9752865" "dc7161be3" 2.450`,
			want: ErrURLNotRecognized,
		},
		{
			name: "Missing request time",
			line: `1.196.116.32 -  - [29/Jun/2017:03:50:29 +0300] "GET /api/v2/banner/782125 HTTP/1.1" 200 1052 "-" "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5" "-" "1498697426-2190034393-4708-9752865" "dc7161be3"`,
			want: ErrDurationNotNumeric,
		},
		{
			name: "Request time is NaN",
			line: `1.196.116.32 -  - [29/Jun/2017:03:50:29 +0300] "GET /api/v2/banner/782125 HTTP/1.1" 200 1052 "-" "-" "-" "-" "-" NaN`,
			want: ErrDurationNotNumeric,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.ErrorIsf(t, err, tt.want, "expected err = %v; got err = %v", tt.want, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}
