// Package testutil holds request and response helpers shared by HTTP tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BookPayload is a create-book request body.
func BookPayload(title, author, isbn string) map[string]string {
	return map[string]string{"title": title, "author": author, "isbn": isbn}
}

// LoanPayload is a create-loan request body.
func LoanPayload(isbn, customer string) map[string]string {
	return map[string]string{"isbn": isbn, "customer": customer}
}

// NewRequest creates a new HTTP request for testing. A non-nil body is sent
// as JSON.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse is a decoded response envelope.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// Data returns the envelope's data object, or nil when it is not an object.
func (r RecordResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// List returns the envelope's data array.
func (r RecordResponse) List() []interface{} {
	list, _ := r.Body["data"].([]interface{})
	return list
}

// Meta returns the envelope's meta object.
func (r RecordResponse) Meta() map[string]interface{} {
	meta, _ := r.Body["meta"].(map[string]interface{})
	return meta
}

// ErrorCode returns error.code of a failed response.
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}
