// internal/app/store/docstore/fields.go
package docstore

// undefined marks a field the caller left unset, as opposed to one it set to
// nil. Decoded JSON never contains it; programmatic callers building field
// maps from optional form inputs use it.
type undefined struct{}

// Undefined is the "field not supplied" sentinel. Both create and update
// cleaning drop it.
var Undefined = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// reserved fields are owned by the store and never taken from callers.
var reserved = map[string]bool{
	IDField:        true,
	"_id":          true,
	CreatedAtField: true,
	UpdatedAtField: true,
}

// CleanForCreate prepares fields for a new document. Undefined and nil values
// are omitted entirely; empty strings are kept as genuinely blank fields.
func CleanForCreate(fields Document) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		if reserved[k] || v == nil || IsUndefined(v) {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// CleanForUpdate prepares fields for a partial update. Only Undefined is
// dropped: an explicit "" or nil is sent so an edit can erase a value that
// creation would have omitted.
func CleanForUpdate(fields Document) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		if reserved[k] || IsUndefined(v) {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}
