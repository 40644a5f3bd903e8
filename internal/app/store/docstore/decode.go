// internal/app/store/docstore/decode.go
package docstore

import (
	"encoding/json"
	"fmt"
)

// FromStruct converts a json-tagged struct into a Document.
func FromStruct(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %T into document: %w", v, err)
	}
	return doc, nil
}

// Decode converts documents into json-tagged structs of type T.
func Decode[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encode document %q: %w", d.ID(), err)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode document %q: %w", d.ID(), err)
		}
		out = append(out, v)
	}
	return out, nil
}
