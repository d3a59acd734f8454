// Package gedcom encodes the clan's relational snapshot as GEDCOM 5.5.1
// text and structurally validates the result. The encoder works from a
// typed snapshot, so both storage backends feed it through the same path.
package gedcom

import (
	"fmt"

	"github.com/dangdinh/giapha/internal/backup"
	"github.com/dangdinh/giapha/pkg/types"
)

// Snapshot is the genealogical slice of the dataset: people, the families
// joining them, and the ordered parent-child links.
type Snapshot struct {
	People   []types.Person
	Families []types.Family
	Children []types.Child
}

// Load reads the genealogical tables from a store into a Snapshot.
func Load(store backup.Store) (*Snapshot, error) {
	peopleRows, err := store.ReadAll(types.TablePeople)
	if err != nil {
		return nil, fmt.Errorf("reading people: %w", err)
	}
	familyRows, err := store.ReadAll(types.TableFamilies)
	if err != nil {
		return nil, fmt.Errorf("reading families: %w", err)
	}
	childRows, err := store.ReadAll(types.TableChildren)
	if err != nil {
		return nil, fmt.Errorf("reading children: %w", err)
	}

	snap := &Snapshot{
		People:   make([]types.Person, 0, len(peopleRows)),
		Families: make([]types.Family, 0, len(familyRows)),
		Children: make([]types.Child, 0, len(childRows)),
	}
	for _, row := range peopleRows {
		snap.People = append(snap.People, personFromRow(row))
	}
	for _, row := range familyRows {
		snap.Families = append(snap.Families, familyFromRow(row))
	}
	for _, row := range childRows {
		snap.Children = append(snap.Children, childFromRow(row))
	}
	return snap, nil
}

func personFromRow(row types.Row) types.Person {
	return types.Person{
		ID:           asString(row["id"]),
		DisplayName:  asString(row["display_name"]),
		FirstName:    asString(row["first_name"]),
		MiddleName:   asString(row["middle_name"]),
		Surname:      asString(row["surname"]),
		Gender:       asInt(row["gender"]),
		BirthDate:    asString(row["birth_date"]),
		BirthYear:    asInt(row["birth_year"]),
		BirthPlace:   asString(row["birth_place"]),
		DeathDate:    asString(row["death_date"]),
		DeathYear:    asInt(row["death_year"]),
		DeathPlace:   asString(row["death_place"]),
		IsLiving:     asBool(row["is_living"]),
		Occupation:   asString(row["occupation"]),
		Biography:    asString(row["biography"]),
		Notes:        asString(row["notes"]),
		PrivacyLevel: asInt(row["privacy_level"]),
	}
}

func familyFromRow(row types.Row) types.Family {
	return types.Family{
		ID:            asString(row["id"]),
		FatherID:      asString(row["father_id"]),
		MotherID:      asString(row["mother_id"]),
		MarriageDate:  asString(row["marriage_date"]),
		MarriagePlace: asString(row["marriage_place"]),
		DivorceDate:   asString(row["divorce_date"]),
	}
}

func childFromRow(row types.Row) types.Child {
	return types.Child{
		ID:        asString(row["id"]),
		FamilyID:  asString(row["family_id"]),
		PersonID:  asString(row["person_id"]),
		SortOrder: asInt(row["sort_order"]),
	}
}

// Row values arrive as int64 from SQLite and float64 or bool from JSON, so
// the coercions below accept all of them.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case int64:
		return n != 0
	case float64:
		return n != 0
	case int:
		return n != 0
	default:
		return false
	}
}
