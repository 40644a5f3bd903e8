// Package formutil decodes admin form submissions, sent as JSON objects,
// into documents ready for the content store.
//
// Numbers are decoded with UseNumber and then narrowed to int64 when they
// are integral, float64 otherwise, so stores never see json.Number. A JSON
// null is kept as an explicit nil: on update it clears the field.
package formutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
)

// MaxBodyBytes caps an admin request body.
const MaxBodyBytes = 1 << 20

// ErrNotObject is returned when the body is valid JSON but not an object.
var ErrNotObject = errors.New("request body must be a JSON object")

// DecodeDocument reads r's body as a JSON object.
func DecodeDocument(w http.ResponseWriter, r *http.Request) (docstore.Document, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("request body must hold a single JSON object")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return docstore.Document(narrow(obj).(map[string]any)), nil
}

func narrow(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = narrow(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = narrow(vv)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}
