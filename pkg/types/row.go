package types

// Row is a generic table row keyed by column name. Values are scalars or nil
// as decoded from JSON or scanned from the database; no referential check is
// applied at this level.
type Row = map[string]any

// Backend modes.
const (
	ModeDesktop = "desktop"
	ModeWeb     = "web"
)

// Media inclusion policies for export.
const (
	MediaSkip      = "skip"
	MediaReference = "reference"
	MediaInline    = "inline"
)

// ValidMediaPolicy reports whether p is a recognized media inclusion policy.
func ValidMediaPolicy(p string) bool {
	return p == MediaSkip || p == MediaReference || p == MediaInline
}
