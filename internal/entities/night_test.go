package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Night
		wantErr  bool
	}{
		{
			name:     "valid date",
			input:    "2022-11-24",
			expected: Night{Day: 24, Month: 11, Year: 2022, Date: "2022-11-24"},
		},
		{
			name:     "single digit month and day",
			input:    "2023-5-3",
			expected: Night{Day: 3, Month: 5, Year: 2023, Date: "2023-5-3"},
		},
		{name: "missing day", input: "2022-11", wantErr: true},
		{name: "too many parts", input: "2022-11-24-01", wantErr: true},
		{name: "non numeric", input: "2022-Nov-24", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "impossible date", input: "2023-02-30", wantErr: true},
		{name: "month out of range", input: "2023-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			night, err := ParseNight(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidNight)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, night)
		})
	}
}

func TestValidateNight(t *testing.T) {
	assert.NoError(t, ValidateNight("2022-11-24"))
	assert.ErrorIs(t, ValidateNight("2022-1-24"), ErrInvalidNight)
	assert.ErrorIs(t, ValidateNight("24/11/2022"), ErrInvalidNight)
}

func TestParseRangeBound(t *testing.T) {
	b, err := ParseRangeBound("2022-11")
	require.NoError(t, err)
	assert.Equal(t, RangeBound{Year: 2022, Month: 11}, b)
	assert.False(t, b.HasDay())

	b, err = ParseRangeBound("2022-11-25")
	require.NoError(t, err)
	assert.Equal(t, RangeBound{Year: 2022, Month: 11, Day: 25}, b)
	assert.True(t, b.HasDay())

	_, err = ParseRangeBound("2022")
	assert.ErrorIs(t, err, ErrInvalidNight)
	_, err = ParseRangeBound("2022-13")
	assert.ErrorIs(t, err, ErrInvalidNight)
	_, err = ParseRangeBound("2022-xx-01")
	assert.ErrorIs(t, err, ErrInvalidNight)
}

func TestNight_InRange(t *testing.T) {
	night := Night{Year: 2022, Month: 11, Day: 24, Date: "2022-11-24"}

	tests := []struct {
		name       string
		start, end RangeBound
		expected   bool
	}{
		{
			name:     "inside day range",
			start:    RangeBound{Year: 2022, Month: 11, Day: 20},
			end:      RangeBound{Year: 2022, Month: 11, Day: 30},
			expected: true,
		},
		{
			name:     "inclusive start day",
			start:    RangeBound{Year: 2022, Month: 11, Day: 24},
			end:      RangeBound{Year: 2022, Month: 11, Day: 30},
			expected: true,
		},
		{
			name:     "inclusive end day",
			start:    RangeBound{Year: 2022, Month: 11, Day: 1},
			end:      RangeBound{Year: 2022, Month: 11, Day: 24},
			expected: true,
		},
		{
			name:     "before day range",
			start:    RangeBound{Year: 2022, Month: 11, Day: 25},
			end:      RangeBound{Year: 2022, Month: 11, Day: 30},
			expected: false,
		},
		{
			name:     "month bounds ignore day",
			start:    RangeBound{Year: 2022, Month: 11},
			end:      RangeBound{Year: 2022, Month: 11},
			expected: true,
		},
		{
			name:     "one bound without day matches whole boundary month",
			start:    RangeBound{Year: 2022, Month: 11, Day: 25},
			end:      RangeBound{Year: 2022, Month: 12},
			expected: true,
		},
		{
			name:     "spanning years",
			start:    RangeBound{Year: 2021, Month: 12, Day: 1},
			end:      RangeBound{Year: 2023, Month: 1, Day: 1},
			expected: true,
		},
		{
			name:     "later year",
			start:    RangeBound{Year: 2023, Month: 1},
			end:      RangeBound{Year: 2023, Month: 12},
			expected: false,
		},
		{
			name:     "earlier month",
			start:    RangeBound{Year: 2022, Month: 1},
			end:      RangeBound{Year: 2022, Month: 10},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, night.InRange(tt.start, tt.end))
		})
	}
}

func TestSleepAggregate_Tags(t *testing.T) {
	agg := SleepAggregate{Sleep: Sleep{ID: 1}}
	assert.False(t, agg.HasTags())
	assert.Nil(t, agg.TagList())

	withNone := agg.WithTags(nil)
	assert.True(t, withNone.HasTags())
	assert.NotNil(t, withNone.TagList())
	assert.Empty(t, withNone.TagList())

	withTags := agg.WithTags([]Tag{{ID: 2, Name: "screen"}})
	assert.Len(t, withTags.TagList(), 1)
	assert.False(t, agg.HasTags(), "original aggregate must stay untouched")
}
