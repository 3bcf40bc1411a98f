package pformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSpecs(t *testing.T) {
	midnight := time.Date(1992, time.February, 18, 0, 0, 0, 0, time.UTC)
	afternoon := time.Date(1992, time.February, 18, 14, 5, 9, 123456789, time.UTC)
	mountain := time.Date(2024, time.July, 4, 9, 30, 0, 0, time.FixedZone("MST", -7*3600))

	testCases := []struct {
		name     string
		value    time.Time
		spec     string
		expected string
	}{
		{"iso date", midnight, "yyyy-MM-dd", "1992-02-18"},
		{"default", midnight, "", "2/18/1992 12:00:00 AM"},
		{"short date", midnight, "d", "2/18/1992"},
		{"long date", midnight, "D", "Tuesday, February 18, 1992"},
		{"full short time", afternoon, "f", "Tuesday, February 18, 1992 2:05 PM"},
		{"general short", afternoon, "g", "2/18/1992 2:05 PM"},
		{"month day", midnight, "M", "February 18"},
		{"year month", midnight, "Y", "February 1992"},
		{"sortable", afternoon, "s", "1992-02-18T14:05:09"},
		{"universal", midnight, "u", "1992-02-18 00:00:00Z"},
		{"round trip", midnight, "o", "1992-02-18T00:00:00.0000000Z"},
		{"rfc1123", midnight, "r", "Tue, 18 Feb 1992 00:00:00 GMT"},
		{"long time", afternoon, "T", "2:05:09 PM"},
		{"custom", afternoon, "dd MMM yy HH:mm:ss.fff tt", "18 Feb 92 14:05:09.123 PM"},
		{"single designator", afternoon, "h:mm t", "2:05 P"},
		{"trimmed fraction", afternoon, "ss.FFFFFFF", "09.1234567"},
		{"dropped fraction", midnight, "HH:mm:ss.FFF", "00:00:00"},
		{"quoted literal", midnight, "yyyy 'year'", "1992 year"},
		{"escaped literal", midnight, "\\d d", "d 18"},
		{"single custom specifier", midnight, "%d", "18"},
		{"offset hours", mountain, "z", "-7"},
		{"offset padded", mountain, "zz", "-07"},
		{"offset full", mountain, "zzz", "-07:00"},
		{"zone kind", mountain, "K", "-07:00"},
		{"utc kind", midnight, "K", "Z"},
		{"round trip offset", mountain, "o", "2024-07-04T09:30:00.0000000-07:00"},
		{"universal converts to utc", mountain, "u", "2024-07-04 16:30:00Z"},
		{"weekday", mountain, "dddd", "Thursday"},
		{"year month lower", mountain, "y", "July 2024"},
		{"short year", mountain, "%y", "24"},
		{"short year custom", mountain, "yy", "24"},
		{"era", mountain, "yyyy g", "2024 A.D."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Render(tc.value, tc.spec, 0, EnglishUS)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestTimePointer(t *testing.T) {
	d := time.Date(2000, time.January, 2, 0, 0, 0, 0, time.UTC)

	result, err := Render(&d, "yyyy-MM-dd", 0, EnglishUS)
	require.NoError(t, err)
	assert.Equal(t, "2000-01-02", result)

	var missing *time.Time
	result, err = Render(missing, "yyyy", 0, EnglishUS)
	require.NoError(t, err)
	assert.Equal(t, "", result)
}

func TestInvariantDates(t *testing.T) {
	d := time.Date(1992, time.February, 18, 15, 4, 5, 0, time.UTC)

	result, err := Render(d, "d", 0, Invariant)
	require.NoError(t, err)
	assert.Equal(t, "02/18/1992", result)

	result, err = Render(d, "T", 0, Invariant)
	require.NoError(t, err)
	assert.Equal(t, "15:04:05", result)
}

func TestDurationSpecs(t *testing.T) {
	testCases := []struct {
		name     string
		value    time.Duration
		spec     string
		expected string
	}{
		{"seconds", 50 * time.Second, "", "00:00:50"},
		{"constant", 50 * time.Second, "c", "00:00:50"},
		{"days", 26*time.Hour + 3*time.Minute + 4*time.Second, "", "1.02:03:04"},
		{"fraction", 1500 * time.Millisecond, "", "00:00:01.5000000"},
		{"negative", -90 * time.Second, "", "-00:01:30"},
		{"sub tick dropped", 50 * time.Nanosecond, "", "00:00:00"},
		{"general short", 50 * time.Second, "g", "0:00:50"},
		{"general short fraction", 1500 * time.Millisecond, "g", "0:00:01.5"},
		{"general short days", 26 * time.Hour, "g", "1:2:00:00"},
		{"general long", 50 * time.Second, "G", "0:00:00:50.0000000"},
		{"custom clock", 90 * time.Minute, "hh:mm", "01:30"},
		{"custom days", 26 * time.Hour, "d'd 'hh'h'", "1d 02h"},
		{"custom fraction", 1234 * time.Millisecond, "s\\.fff", "1.234"},
		{"custom trimmed fraction", 2 * time.Second, "ss.FF", "02"},
		{"single specifier", 90 * time.Minute, "%m", "30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Render(tc.value, tc.spec, 0, EnglishUS)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}
