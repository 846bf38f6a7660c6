package request

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestLoginRequest(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegisterRequest(t *testing.T) {
	phone := "+91 98220 00000"
	register := Register{Name: "Asha", Email: "asha@example.com", Password: "secret1", Phone: &phone}

	actual, err := json.Marshal(register)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"Asha","email":"asha@example.com","password":"***","phone":"+91 98220 00000"}`, string(actual))
	assert.Equal(t, "secret1", register.Password)
}

func TestValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	latitude, longitude := 15.49, 73.82
	zero := 0.0
	outOfRange := 120.0

	testCases := []struct {
		name    string
		request interface{}
		valid   bool
	}{
		{name: "register", request: Register{Name: "Asha", Email: "asha@example.com", Password: "secret1"}, valid: true},
		{name: "register with short name", request: Register{Name: "A", Email: "asha@example.com", Password: "secret1"}},
		{name: "register with short password", request: Register{Name: "Asha", Email: "asha@example.com", Password: "12345"}},
		{name: "register with malformed email", request: Register{Name: "Asha", Email: "asha", Password: "secret1"}},
		{name: "empty profile", request: Profile{}, valid: true},
		{name: "location", request: Location{Latitude: &latitude, Longitude: &longitude}, valid: true},
		{name: "location on equator", request: Location{Latitude: &zero, Longitude: &zero}, valid: true},
		{name: "location without longitude", request: Location{Latitude: &latitude}},
		{name: "location with latitude out of range", request: Location{Latitude: &outOfRange, Longitude: &longitude}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.request)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}
