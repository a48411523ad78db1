package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, GetCode(New(CodeNotFound, "Department not found")))
	assert.Equal(t, CodeValidation, GetCode(Validation("Name is required")))
	assert.Equal(t, CodeInternal, GetCode(errors.New("boom")))
	assert.Equal(t, Code(""), GetCode(nil))
}

func TestGetCodeWrapped(t *testing.T) {
	err := fmt.Errorf("load department: %w", New(CodeNotFound, "Department not found"))
	assert.Equal(t, CodeNotFound, GetCode(err))
}

func TestValidationJoinsFields(t *testing.T) {
	err := Validation("Name is required", "Email is required")
	assert.Equal(t, "Name is required, Email is required", err.Error())
	assert.Len(t, err.Fields, 2)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("Name is required")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(New(CodeNotFound, "nope")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(New(CodeUnauthorized, "nope")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
