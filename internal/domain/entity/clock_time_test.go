package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    entity.ClockTime
		wantErr bool
	}{
		{in: "09:00", want: entity.NewClockTime(9, 0)},
		{in: "09:45:00", want: entity.NewClockTime(9, 45)},
		{in: "00:00", want: 0},
		{in: "24:00", want: entity.NewClockTime(24, 0)},
		{in: "23:59", want: entity.NewClockTime(23, 59)},
		{in: "25:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "09:30:15", wantErr: true},
		{in: "nine", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := entity.ParseClockTime(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, entity.ErrInvalidClockTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockTime_Scan(t *testing.T) {
	var c entity.ClockTime

	require.NoError(t, c.Scan("13:30:00"))
	assert.Equal(t, "13:30", c.String())

	require.NoError(t, c.Scan([]byte("08:15:00.000000")))
	assert.Equal(t, "08:15", c.String())

	require.NoError(t, c.Scan(time.Date(0, 1, 1, 17, 5, 0, 0, time.UTC)))
	assert.Equal(t, "17:05", c.String())

	assert.Error(t, c.Scan(42))
}

func TestClockTime_Value(t *testing.T) {
	v, err := entity.NewClockTime(9, 30).Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)
}

func TestClockTime_JSON(t *testing.T) {
	var payload struct {
		Start entity.ClockTime `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"10:15"}`), &payload))
	assert.Equal(t, entity.NewClockTime(10, 15), payload.Start)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10:15"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"10h15"}`), &payload))
}

func TestClockTime_On(t *testing.T) {
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC), entity.NewClockTime(9, 30).On(date))
}
