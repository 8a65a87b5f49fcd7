package controllers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyOTPInputAcceptsNumbersAndStrings(t *testing.T) {
	tests := []struct {
		body     string
		wantUser uint
		wantCode string
	}{
		{body: `{"userId": 7, "code": "4821"}`, wantUser: 7, wantCode: "4821"},
		{body: `{"userId": "7", "code": 4821}`, wantUser: 7, wantCode: "4821"},
		{body: `{"userId": "7", "code": "0042"}`, wantUser: 7, wantCode: "0042"},
	}
	for _, tt := range tests {
		var in verifyOTPInput
		require.NoError(t, json.Unmarshal([]byte(tt.body), &in), tt.body)
		assert.Equal(t, tt.wantUser, uint(in.UserID))
		assert.Equal(t, tt.wantCode, string(in.Code))
	}
}

func TestVerifyOTPInputRejectsGarbage(t *testing.T) {
	var in verifyOTPInput
	assert.Error(t, json.Unmarshal([]byte(`{"userId": "abc", "code": "4821"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"userId": -1, "code": "4821"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"userId": 1, "code": {"x": 1}}`), &in))
}
