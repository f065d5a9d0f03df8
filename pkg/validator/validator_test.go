package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `validate:"required,max=80"`
	Password string `validate:"required"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sampleRequest{Username: "test", Password: "test"})
	assert.NoError(t, err)
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(sampleRequest{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Username"])
	assert.Equal(t, "is required", fields["Password"])
	assert.Contains(t, valErr.Error(), "field 'Username' is required")
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	type taggedRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	err := Validate(taggedRequest{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["username"])
	assert.Equal(t, "is required", fields["password"])
}

func TestValidate_MaxLength(t *testing.T) {
	long := make([]byte, 81)
	for i := range long {
		long[i] = 'a'
	}

	err := Validate(sampleRequest{Username: string(long), Password: "test"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be at most 80 characters", valErr.Fields()["Username"])
}
