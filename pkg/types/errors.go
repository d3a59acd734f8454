package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed   = errors.New("store is closed")
	ErrAlreadyOpen   = errors.New("store is already open")
	ErrTableNotFound = errors.New("table not found")
	ErrUnknownMode   = errors.New("unknown backend mode")
)

// Archive and restore errors. ErrManifestMissing and ErrManifestInvalid are
// structural failures: they abort a restore before any destructive step.
var (
	ErrManifestMissing = errors.New("archive has no manifest.json")
	ErrManifestInvalid = errors.New("invalid manifest format")
	ErrArchiveTooLarge = errors.New("archive exceeds maximum import size")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
)

// Configuration errors.
var (
	ErrModeEmpty          = errors.New("mode must not be empty")
	ErrSupabaseURLMissing = errors.New("supabase_url is required in web mode")
	ErrServiceKeyMissing  = errors.New("supabase_service_key is required in web mode")
)
