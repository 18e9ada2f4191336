package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"conduit/internal/model"
	"conduit/internal/validation"
)

var errInvalidJSON = errors.New("request body is not valid JSON")

// decodePayload validates the JSON body against schema and decodes the
// object under envelope into dst.
func decodePayload(r *http.Request, v *validation.Validator, schema, envelope string, mode validation.Mode, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return errInvalidJSON
	}
	if doc == nil {
		doc = map[string]any{}
	}

	if errs := v.Validate(schema, doc, mode); errs != nil {
		return errs
	}

	// Validation guarantees the envelope is an object of the right shape.
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return errInvalidJSON
	}
	if err := json.Unmarshal(env[envelope], dst); err != nil {
		return fmt.Errorf("decode %s: %w", envelope, err)
	}
	return nil
}

// parsePage reads limit and offset. Absent values default to
// model.DefaultPageSize and 0; limit=0 means unbounded.
func parsePage(r *http.Request) (limit, offset int, err error) {
	errs := validation.Errors{}
	limit = parseNonNegative(r, "limit", model.DefaultPageSize, errs)
	offset = parseNonNegative(r, "offset", 0, errs)
	if len(errs) > 0 {
		return 0, 0, errs
	}
	return limit, offset, nil
}

func parseNonNegative(r *http.Request, name string, def int, errs validation.Errors) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(name, validation.MsgNotInteger)
		return def
	}
	if n < 0 {
		errs.Add(name, "min value is 0")
		return def
	}
	return n
}
