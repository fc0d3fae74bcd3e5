// Package restriction decides whether a scanned product requires an ID check.
package restriction

import (
	"strings"

	"agegate/internal/catalog"
)

// Classifier matches product group labels against the configured list of
// age-restricted groups. It is a pure function of its inputs and the static
// group list; construct once at startup and share freely.
type Classifier struct {
	groups []string // lowercased restricted group names
}

// New builds a Classifier from the configured restricted group names.
func New(restrictedGroups []string) *Classifier {
	groups := make([]string, 0, len(restrictedGroups))
	for _, g := range restrictedGroups {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			groups = append(groups, g)
		}
	}
	return &Classifier{groups: groups}
}

// IsRestricted reports whether the product belongs to an age-restricted group.
//
// Matching is bidirectional substring containment on the lowercased group
// label: either the label contains a restricted group name or the restricted
// group name contains the label. This tolerates both abbreviated and extended
// category taxonomies across store configurations. When no group label is
// present, the concatenated name and description are scanned for a restricted
// group keyword with whitespace and slashes stripped, so embedded text like
// "TallCansBeer" still matches "Tall Cans Beer/Seltzer".
func (c *Classifier) IsRestricted(p *catalog.Product) bool {
	if p == nil {
		return false
	}

	group := strings.ToLower(strings.TrimSpace(p.Group))
	if group != "" {
		for _, restricted := range c.groups {
			if strings.Contains(group, restricted) || strings.Contains(restricted, group) {
				return true
			}
		}
		return false
	}

	if p.Name == "" && p.Description == "" {
		return false
	}
	text := compact(strings.ToLower(p.Name + " " + p.Description))
	for _, restricted := range c.groups {
		if keyword := compact(restricted); keyword != "" && strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Groups returns the normalized restricted group list, for introspection.
func (c *Classifier) Groups() []string {
	return append([]string(nil), c.groups...)
}

// compact strips whitespace and slash characters so keyword matching survives
// the formatting differences between category names and product text.
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '/':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
