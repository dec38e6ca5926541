package dia

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Manifest is the decoded optimization map: which archive entry holds
// each asset id's pixels, and which id (if any) each id is composited on
// top of.
type Manifest struct {
	// ImageMap maps asset id to archive entry filename.
	ImageMap map[string]string

	// Dependencies maps asset id to the parent id rendered beneath it.
	// Each id has at most one parent, so the links form chains.
	Dependencies map[string]string
}

// rawManifest mirrors the JSON wire form. Member values are kept raw so
// a single non-string value can be skipped without rejecting the whole
// document. Unrecognized top-level members are ignored by Unmarshal.
type rawManifest struct {
	ImageMap     map[string]json.RawMessage `json:"image_map"`
	Dependencies map[string]json.RawMessage `json:"dependencies"`
}

// ParseManifest decodes manifest JSON. Comments and trailing commas are
// tolerated. Non-string values under image_map or dependencies are
// dropped with a warning; the document itself must still be a JSON
// object. No referential checks happen here: an id whose filename or
// parent is missing fails at resolve/render time, not at load time.
func ParseManifest(data []byte) (Manifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return Manifest{}, fmt.Errorf("dia: parse manifest: %w", err)
	}
	return Manifest{
		ImageMap:     stringValues("image_map", raw.ImageMap),
		Dependencies: stringValues("dependencies", raw.Dependencies),
	}, nil
}

// stringValues keeps the string-valued members of a manifest object,
// logging and skipping everything else (numbers, nulls, nested objects).
func stringValues(member string, raw map[string]json.RawMessage) map[string]string {
	m := make(map[string]string, len(raw))
	for key, val := range raw {
		var v any
		if err := json.Unmarshal(val, &v); err != nil {
			Logger().Warn("skipping unreadable manifest value", "member", member, "key", key)
			continue
		}
		s, ok := v.(string)
		if !ok {
			Logger().Warn("skipping non-string manifest value", "member", member, "key", key)
			continue
		}
		m[key] = s
	}
	return m
}
