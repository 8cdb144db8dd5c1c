package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", input: `"1990-01-01"`, want: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: `"1990-01-01T10:30:00Z"`, want: time.Date(1990, 1, 1, 10, 30, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", input: `"1990-01-01T10:30:00+02:00"`, want: time.Date(1990, 1, 1, 8, 30, 0, 0, time.UTC)},
		{name: "other layout", input: `"01/01/1990"`, wantErr: true},
		{name: "not a string", input: `19900101`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time()), "got %s", d.Time())
		})
	}
}

func TestDateNullLeavesPointerNil(t *testing.T) {
	var info PersonalInfo
	require.NoError(t, json.Unmarshal([]byte(`{"dateOfBirth":null}`), &info))
	assert.Nil(t, info.DateOfBirth)
}

func TestDateBSONRoundTrip(t *testing.T) {
	dob := NewDate(time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC))
	in := PersonalInfo{FirstName: "Ada", DateOfBirth: &dob}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	value, err := bson.Raw(raw).LookupErr("dateOfBirth")
	require.NoError(t, err)
	assert.Equal(t, bson.TypeDateTime, value.Type)

	var out PersonalInfo
	require.NoError(t, bson.Unmarshal(raw, &out))
	require.NotNil(t, out.DateOfBirth)
	assert.True(t, dob.Equal(*out.DateOfBirth))
}
