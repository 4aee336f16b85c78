package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
)

// queryString returns a pointer to a non-empty query parameter, nil otherwise.
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns a positive integer query parameter or 0; filters apply their own defaults.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// formFile reads an optional upload. A missing file yields nils; the caller closes file.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	return file, header, err
}
