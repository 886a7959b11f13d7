package utils

import (
	"encoding/json"
	"net/http"
)

// DecodeStrict decodes a JSON request body into v, rejecting fields
// the target does not declare. Update payloads go through this so a
// caller cannot smuggle arbitrary keys into a document.
func DecodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
