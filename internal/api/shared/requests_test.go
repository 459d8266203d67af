package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Idea  string `json:"idea" validate:"required"`
	Style string `json:"style" validate:"omitempty,max=10"`
}

type selfValidating struct {
	OK bool `json:"ok"`
}

func (s selfValidating) Validate() error {
	if !s.OK {
		return errors.New("not ok")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"idea":"beach","style":"photo"}`},
		{name: "malformed", body: `{"idea":`, wantErr: true},
		{name: "unknown field", body: `{"idea":"beach","extra":1}`, wantErr: true},
		{name: "trailing data", body: `{"idea":"beach"} {"idea":"again"}`, wantErr: true},
		{name: "too large", body: `{"idea":"` + strings.Repeat("a", MaxJSONBodyBytes) + `"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v sampleRequest
			err := DecodeJSON(httptest.NewRecorder(), req, &v)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "beach", v.Idea)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Idea: "beach"}))
	assert.Error(t, ValidateRequest(sampleRequest{}))
	assert.Error(t, ValidateRequest(sampleRequest{Idea: "x", Style: strings.Repeat("s", 11)}))

	assert.NoError(t, ValidateRequest(selfValidating{OK: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}

func TestTraceID(t *testing.T) {
	id := NewTraceID()
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, NewTraceID())

	ctx := SetTraceID(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "")
	assert.Len(t, GetTraceID(ctx), 32)
	assert.Empty(t, GetTraceID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
