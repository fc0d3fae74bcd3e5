// Package catalog holds the line-item model shared by intake, classification,
// and verification. Products are ephemeral: owned by whichever collaborator
// reported them and never retained beyond one evaluation.
package catalog

import "encoding/json"

// Product identifies a scanned line item. Group is always a plain string by
// the time it leaves this package; source systems that report structured group
// objects are unwrapped at the boundary via NormalizeGroup.
type Product struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description,omitempty"`
}

// NormalizeGroup flattens the polymorphic group/category shapes seen in POS
// payloads (plain string, or an object with a "name" or "title" field) into a
// plain label. Classification never branches on representation.
func NormalizeGroup(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		if name, ok := v["name"].(string); ok && name != "" {
			return name
		}
		if title, ok := v["title"].(string); ok && title != "" {
			return title
		}
		return ""
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
