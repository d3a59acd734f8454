package types

// Config selects the active backend and its parameters.
type Config struct {
	// Mode is "desktop" (embedded SQLite) or "web" (hosted Postgres via
	// PostgREST with the service role key).
	Mode string `json:"mode" yaml:"mode"`

	// DataDir holds giapha.db and the media/ directory in desktop mode.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ListenAddr is the bind address for `giapha serve`.
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	// SupabaseURL is the project REST endpoint, e.g.
	// https://xyzcompany.supabase.co/rest/v1.
	SupabaseURL string `json:"supabase_url" yaml:"supabase_url"`

	// SupabaseServiceKey is the service-role key. It bypasses row level
	// security; restore must write every table regardless of the caller's
	// normal permissions.
	SupabaseServiceKey string `json:"supabase_service_key" yaml:"supabase_service_key"`
}

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	switch c.Mode {
	case "":
		return ErrModeEmpty
	case ModeDesktop:
		return nil
	case ModeWeb:
		if c.SupabaseURL == "" {
			return ErrSupabaseURLMissing
		}
		if c.SupabaseServiceKey == "" {
			return ErrServiceKeyMissing
		}
		return nil
	default:
		return ErrUnknownMode
	}
}
