package api

import "encoding/json"

// envelope is the response convention shared by every HR API endpoint.
// Status arrives either as a boolean-like truthy flag or as the literal
// string "success"; both forms appear in the wild and both must be accepted.
type envelope struct {
	Status  any                 `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// ok reports whether the envelope signals success. Any falsy or
// non-"success" status value is a failure.
func (e envelope) ok() bool {
	switch v := e.Status.(type) {
	case bool:
		return v
	case string:
		return v == "success"
	case float64:
		return v != 0
	default:
		return false
	}
}
