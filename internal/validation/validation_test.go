package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
	Subject  string `json:"subject" validate:"oneof=Physics Chemistry"`
}

func TestStructReportsJSONNames(t *testing.T) {
	v := New()
	err := Struct(v, signup{Email: "nope", Password: "abc", Subject: "Art"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	assert.Equal(t, "must be at least 6 characters", verr.Fields["password"])
	assert.Contains(t, verr.Fields["subject"], "Physics Chemistry")
}

func TestPasswordRule(t *testing.T) {
	v := New()
	for pw, ok := range map[string]bool{
		"Secret1":  true,
		"secret1":  false,
		"SECRET1":  false,
		"Secretxx": false,
	} {
		err := Struct(v, signup{Email: "a@b.co", Password: pw, Subject: "Physics"})
		if ok {
			assert.NoError(t, err, pw)
		} else {
			assert.Error(t, err, pw)
		}
	}
}
