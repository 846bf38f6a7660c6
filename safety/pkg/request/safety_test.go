package request

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	f, err := ParseFloat("", DEFAULT_CHECK_RADIUS)
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_CHECK_RADIUS, f)

	f, err = ParseFloat("2500.5", DEFAULT_CHECK_RADIUS)
	require.NoError(t, err)
	assert.Equal(t, 2500.5, f)

	_, err = ParseFloat("far", DEFAULT_CHECK_RADIUS)
	assert.Error(t, err)

	p, err := ParseOptionalFloat("")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParseOptionalFloat("-12.5")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, -12.5, *p)
}

func TestAreaValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	tests := []struct {
		name    string
		area    Area
		wantErr bool
	}{
		{name: "equator and meridian are valid", area: Area{Point: Point{0, 0}, Radius: 1000}},
		{name: "goa", area: Area{Point: Point{15.4909, 73.8278}, Radius: 1000}},
		{name: "latitude out of range", area: Area{Point: Point{91, 0}, Radius: 1000}, wantErr: true},
		{name: "longitude out of range", area: Area{Point: Point{0, -181}, Radius: 1000}, wantErr: true},
		{name: "zero radius", area: Area{Point: Point{0, 0}, Radius: 0}, wantErr: true},
		{name: "radius too large", area: Area{Point: Point{0, 0}, Radius: 60000}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.StructCtx(context.Background(), tt.area)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOptionalAreaValidate(t *testing.T) {
	lat := 15.49
	assert.NoError(t, OptionalArea{Radius: 300}.Validate())
	assert.False(t, OptionalArea{Radius: 300}.HasPoint())
	assert.ErrorIs(t, OptionalArea{Latitude: &lat, Radius: 300}.Validate(), ErrPartialPoint)
	assert.True(t, OptionalArea{Latitude: &lat, Longitude: &lat, Radius: 300}.HasPoint())
}

func TestReportValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid report at the equator",
			body: `{"latitude":0,"longitude":0,"name":"Dark alley","description":"Poorly lit at night","riskLevel":"High","reasons":["Crime"]}`,
		},
		{
			name:    "missing latitude",
			body:    `{"longitude":73.8,"name":"Dark alley","description":"Poorly lit at night","riskLevel":"High","reasons":[]}`,
			wantErr: true,
		},
		{
			name:    "short description",
			body:    `{"latitude":15.4,"longitude":73.8,"name":"Dark alley","description":"dark","riskLevel":"High","reasons":[]}`,
			wantErr: true,
		},
		{
			name:    "unknown risk level",
			body:    `{"latitude":15.4,"longitude":73.8,"name":"Dark alley","description":"Poorly lit at night","riskLevel":"Extreme","reasons":[]}`,
			wantErr: true,
		},
		{
			name:    "missing reasons",
			body:    `{"latitude":15.4,"longitude":73.8,"name":"Dark alley","description":"Poorly lit at night","riskLevel":"Low"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Report{}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := validate.StructCtx(context.Background(), req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
