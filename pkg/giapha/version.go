// Package giapha exposes release metadata for the giapha application.
package giapha

// Version is the application release version. It is recorded in every backup
// manifest as app_version.
const Version = "2.2.1"
