/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates JSON body binding with strict format checks, returning
application errors suitable for direct client responses.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"doodlepair/internal/pkg/errs"
)

// BindJSON binds the JSON data from the HTTP request body to the destination struct dst.
// Unknown fields and trailing content are rejected.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
