package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusPatch struct {
	Trip   *string `validate:"omitempty,trip_status"`
	Driver string  `validate:"omitempty,driver_status"`
	User   *string `validate:"omitempty,user_status"`
}

func strPtr(s string) *string { return &s }

func TestRegisterRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterRules(v))

	assert.NoError(t, v.Struct(statusPatch{}))
	assert.NoError(t, v.Struct(statusPatch{Trip: strPtr("in_progress"), Driver: "approved"}))
	assert.Error(t, v.Struct(statusPatch{Trip: strPtr("finished")}))
	assert.Error(t, v.Struct(statusPatch{Driver: "banned"}))
	assert.NoError(t, v.Struct(statusPatch{User: strPtr("inactive")}))
	assert.Error(t, v.Struct(statusPatch{User: strPtr("banana")}))
}

func TestRegisterOnGinEngine(t *testing.T) {
	assert.NoError(t, Register())
	assert.NoError(t, Register())
}
