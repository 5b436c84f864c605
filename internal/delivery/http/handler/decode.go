package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"patient-records-api/pkg/response"
)

// decodeJSONBody decodes the request body into dst and writes the error
// response itself on failure. A value of the wrong type for a known field
// is reported per field; anything else is a plain bad-request message.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		response.ValidationError(w, map[string]string{
			typeErr.Field: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
		})
		return false
	}

	response.BadRequest(w, "Invalid request body")
	return false
}
