package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeByName(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   Type
	}{
		{"str", "", String},
		{"string", "", String},
		{"int", "", Integer},
		{"Integer", "", Integer},
		{"float", "", Float},
		{" float64 ", "", Float},
		{"date", "", DateType{}},
		{"date", "20060102", DateType{Layout: "20060102"}},
	}

	for _, tt := range tests {
		got, err := TypeByName(tt.name, tt.format)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := TypeByName("complex", "")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestBuiltinTypes_Cast(t *testing.T) {
	tests := []struct {
		typ     Type
		input   any
		want    any
		wantErr bool
	}{
		{String, 131, "131", false},
		{String, 131.0, "131", false},
		{String, "u", "u", false},
		{String, struct{}{}, nil, true},
		{Integer, "131", 131, false},
		{Integer, 131.0, 131, false},
		{Integer, 131.5, nil, true},
		{Integer, "u", nil, true},
		{Float, "131", 131.0, false},
		{Float, 131, 131.0, false},
		{Float, "v", nil, true},
	}

	for _, tt := range tests {
		got, err := tt.typ.Cast(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "%s(%#v)", tt.typ.Name(), tt.input)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s(%#v)", tt.typ.Name(), tt.input)
	}
}

func TestDateType(t *testing.T) {
	want := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)

	for _, input := range []any{"2021-03-04", "20210304", 20210304, want} {
		got, err := DateType{}.Cast(input)
		require.NoError(t, err, "%#v", input)
		assert.True(t, want.Equal(got.(time.Time)), "%#v", input)
	}

	assert.Equal(t, "2021-03-04", DateType{}.Key(want))
	assert.Equal(t, want, DateType{}.Format(want))
	assert.Equal(t, "04/03/2021", DateType{Layout: "02/01/2006"}.Format(want))
	assert.Equal(t, "date(02/01/2006)", DateType{Layout: "02/01/2006"}.Name())
}
