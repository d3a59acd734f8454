// Package registry declares the exportable tables, their foreign-key-safe
// ordering, and the per-table column allowlists used to sanitize untrusted
// rows before they reach either storage backend.
package registry

import "github.com/dangdinh/giapha/pkg/types"

// Entry describes one exportable table: its name and the exact set of
// persisted column names. Rows are filtered against Columns before any
// insert; column names never come from archive content.
type Entry struct {
	Name    string
	Columns map[string]struct{}
}

// entries lists every exportable table in insertion order. The order is
// foreign-key safe: parents (people, pools) precede the tables that
// reference them. Any schema change must update the matching allowlist here
// in the same commit.
var entries = []Entry{
	{types.TablePeople, columnSet(
		"id", "handle", "display_name", "first_name", "middle_name", "surname",
		"pen_name", "taboo_name", "gender", "generation", "chi",
		"birth_date", "birth_year", "birth_place",
		"death_date", "death_year", "death_place", "death_lunar",
		"is_living", "is_patrilineal",
		"phone", "email", "zalo", "facebook", "address", "hometown",
		"occupation", "biography", "notes", "avatar_url", "privacy_level",
		"created_at", "updated_at",
	)},
	{types.TableFamilies, columnSet(
		"id", "handle", "father_id", "mother_id",
		"marriage_date", "marriage_place", "divorce_date", "notes", "sort_order",
		"created_at", "updated_at",
	)},
	{types.TableChildren, columnSet(
		"id", "family_id", "person_id", "sort_order", "created_at",
	)},
	{types.TableContributions, columnSet(
		"id", "author_id", "target_person", "change_type", "changes",
		"reason", "status", "reviewed_by", "reviewed_at", "review_notes", "created_at",
	)},
	{types.TableEvents, columnSet(
		"id", "title", "description", "event_date", "event_lunar",
		"event_type", "person_id", "location", "recurring", "created_at",
	)},
	{types.TableMedia, columnSet(
		"id", "person_id", "type", "url", "caption", "is_primary", "sort_order", "created_at",
	)},
	{types.TableAchievements, columnSet(
		"id", "person_id", "title", "category", "description",
		"year", "awarded_by", "is_featured", "created_at", "updated_at",
	)},
	{types.TableFundTransactions, columnSet(
		"id", "type", "category", "amount", "donor_name", "donor_person_id",
		"recipient_id", "description", "transaction_date", "academic_year",
		"created_by", "created_at",
	)},
	{types.TableScholarships, columnSet(
		"id", "person_id", "type", "amount", "reason", "academic_year",
		"school", "grade_level", "status", "approved_by", "approved_at", "created_at",
	)},
	{types.TableClanArticles, columnSet(
		"id", "title", "content", "category", "sort_order",
		"is_featured", "author_id", "created_at", "updated_at",
	)},
	{types.TableCauDuongPools, columnSet(
		"id", "name", "ancestor_id", "min_generation", "max_age_lunar",
		"description", "is_active", "created_at", "updated_at",
	)},
	{types.TableCauDuongAssigns, columnSet(
		"id", "pool_id", "year", "ceremony_type", "host_person_id",
		"actual_host_person_id", "status", "scheduled_date", "actual_date",
		"reason", "notes", "rotation_index", "created_by", "created_at", "updated_at",
	)},
	{types.TableClanDocuments, columnSet(
		"id", "title", "description", "file_url", "file_type", "file_size",
		"category", "tags", "person_id", "uploaded_by", "created_at", "updated_at",
	)},
}

// byName indexes entries for Sanitize and Columns lookups.
var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// InsertOrder returns the table names in foreign-key-safe insertion order.
// The returned slice is a copy; callers may reorder it freely.
func InsertOrder() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// DeleteOrder returns the table names in deletion order, the exact reverse
// of InsertOrder.
func DeleteOrder() []string {
	names := InsertOrder()
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Columns returns the column allowlist for a table and whether the table is
// registered.
func Columns(table string) (map[string]struct{}, bool) {
	e, ok := byName[table]
	if !ok {
		return nil, false
	}
	return e.Columns, true
}

// Registered reports whether table is an exportable table.
func Registered(table string) bool {
	_, ok := byName[table]
	return ok
}

func columnSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
