package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/diewo77/commerce-api/internal/httpx"
	"github.com/diewo77/commerce-api/internal/services"
	"github.com/diewo77/commerce-api/internal/validation"
	"github.com/go-chi/chi/v5"
)

// decodeBody reads the request body into a generic JSON object. A
// missing body decodes to an empty map so the "Request body is empty."
// check downstream owns that case.
func decodeBody(r *http.Request) (map[string]any, *services.RequestError) {
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &services.RequestError{Status: 400, Short: "Bad Request", Message: "Invalid request syntax."}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, &services.RequestError{Status: 400, Short: "Bad Request", Message: "Invalid request syntax."}
	}
	return body, nil
}

// pathID extracts a numeric path parameter.
func pathID(r *http.Request, name string) (uint, *services.RequestError) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, &services.RequestError{Status: 400, Short: "Bad Request", Message: fmt.Sprintf("%s parameter is required.", name)}
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &services.RequestError{Status: 400, Short: "Bad Request", Message: fmt.Sprintf("%s parameter must be a number.", name)}
	}
	return uint(n), nil
}

// classifyBody runs the empty-body guard and the schema's
// presence/empty/type pass.
func classifyBody(body map[string]any, schema validation.Schema) *services.RequestError {
	if len(body) == 0 {
		return &services.RequestError{Status: 400, Short: "Bad Request", Message: "Request body is empty."}
	}
	if msg, failed := schema.Classify(body).Message(); failed {
		return &services.RequestError{Status: 400, Short: "Bad request", Message: msg}
	}
	return nil
}

// formatGate checks a string field against its format validator.
func formatGate(body map[string]any, field string, re *regexp.Regexp) *services.RequestError {
	v, _ := body[field].(string)
	if !re.MatchString(v) {
		return &services.RequestError{Status: 400, Short: "Bad request", Message: fmt.Sprintf("Invalid %s value format.", field)}
	}
	return nil
}

func respondRequestError(w http.ResponseWriter, rerr *services.RequestError) {
	httpx.Error(w, rerr.Status, rerr.Short, rerr.Message)
}

// respondError maps a contract failure to its decided status and any
// other error to a 500 with the operation prefix and the underlying
// error text. Persistence failures are never retried.
func respondError(w http.ResponseWriter, err error, opPrefix string) {
	if rerr, ok := err.(*services.RequestError); ok {
		respondRequestError(w, rerr)
		return
	}
	httpx.Error(w, http.StatusInternalServerError, "Internal Server Error", opPrefix+err.Error())
}
