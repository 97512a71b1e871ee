package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

// MaxBodyBytes caps request bodies; the largest valid body is a 280 grapheme
// post, which fits comfortably.
const MaxBodyBytes = 64 * 1024

// ErrEmptyBody is returned by DecodeJSON when the request has no body
var ErrEmptyBody = errors.New("empty request body")

// DecodeJSON decodes the request body into v, rejecting unknown fields and
// bodies over MaxBodyBytes
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// WriteDecodeError reports a body that could not be decoded
func WriteDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
		return
	}
	WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
}

// QueryInt parses an optional integer query parameter
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// UserIDRequest is the body of requests that only identify the acting user
type UserIDRequest struct {
	UserID string `json:"userId"`
}

// DecodeUserID reads the acting user id from a {"userId": ...} body, falling
// back to the userId query parameter when the body is empty
func DecodeUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req UserIDRequest
	err := DecodeJSON(w, r, &req)
	if errors.Is(err, ErrEmptyBody) {
		req.UserID = r.URL.Query().Get("userId")
		err = nil
	}
	if err != nil {
		WriteDecodeError(w, err)
		return "", false
	}
	if req.UserID == "" {
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "userId is required")
		return "", false
	}
	return req.UserID, true
}
