// Package types defines the entity types, table names, row representation,
// configuration, and standard errors shared by the giapha storage backends,
// the backup engine, and the GEDCOM exporter.
package types
