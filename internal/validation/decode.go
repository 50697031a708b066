package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/types"
)

// DecodeRecipeInput parses a recipe body, failing closed: any field outside
// the client-settable set is a validation error, not ignored.
func DecodeRecipeInput(data []byte) (*types.RecipeInput, error) {
	var in types.RecipeInput
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		if field, ok := unknownField(err); ok {
			return nil, apperr.Validation("Invalid field: %s", field)
		}
		return nil, apperr.Validation("Invalid recipe data")
	}
	return &in, nil
}

// DecodeUserUpdate parses a self-update body. A key outside the allow-list
// rejects the whole request with an authorization error naming the field,
// even if every other field is valid.
func DecodeUserUpdate(data []byte) (*types.UserUpdate, error) {
	var upd types.UserUpdate
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		if field, ok := unknownField(err); ok {
			return nil, apperr.Authorization("%s %q", apperr.UserCannotUpdate, field)
		}
		return nil, apperr.Validation("Invalid user data")
	}
	return &upd, nil
}

// unknownField extracts the field name from encoding/json's unknown-field
// error, which is only exposed as text.
func unknownField(err error) (string, bool) {
	const marker = "unknown field "
	msg := err.Error()
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return "", false
	}
	field := strings.Trim(msg[idx+len(marker):], `"`)
	return field, true
}
