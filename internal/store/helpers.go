package store

import "encoding/json"

// jsonbOrEmpty substitutes a default literal ("[]" or "{}") for absent JSONB
// input so NOT NULL columns never see a nil parameter.
func jsonbOrEmpty(raw json.RawMessage, def string) []byte {
	if len(raw) == 0 {
		return []byte(def)
	}
	return raw
}
