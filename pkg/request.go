package pkg

import (
	"mime"
	"net/http"
)

// HasJSONBody reports whether the request declares a JSON body,
// ignoring media type parameters such as charset.
func HasJSONBody(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == ContentType.JSON
}
