package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid", input: "09:00", want: "09:00"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "trims spaces", input: " 17:30 ", want: "17:30"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestCompare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:15"))
	assert.False(t, TimeString("09:15").IsBefore("09:15"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.False(t, TimeString("bad").IsAfter("09:00"))
}

func TestIsOnGrid(t *testing.T) {
	assert.True(t, TimeString("10:30").IsOnGrid(15))
	assert.False(t, TimeString("10:20").IsOnGrid(15))
	assert.False(t, TimeString("10:30").IsOnGrid(0))
}

func TestOn(t *testing.T) {
	loc := time.FixedZone("shop", -6*60*60)
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, loc)

	got, err := TimeString("14:15").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 14, 15, 0, 0, loc), got)
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("09:30:00")))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan("18:00:00"))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
