package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dangdinh/giapha/pkg/types"
)

// seedPerson describes one sample person for first-run seeding.
type seedPerson struct {
	displayName string
	firstName   string
	surname     string
	gender      int
	generation  int
	birthYear   int
	isLiving    bool
}

// seedData is a three-generation sample line used by `giapha init --seed` so
// a fresh install has something to export and render.
var seedData = []seedPerson{
	{"Đặng Đình Khởi", "Khởi", "Đặng", types.GenderMale, 1, 1920, false},
	{"Nguyễn Thị Lan", "Lan", "Nguyễn", types.GenderFemale, 1, 1925, false},
	{"Đặng Đình Trung", "Trung", "Đặng", types.GenderMale, 2, 1950, true},
	{"Đặng Đình Minh", "Minh", "Đặng", types.GenderMale, 3, 1980, true},
	{"Đặng Thị Hoa", "Hoa", "Đặng", types.GenderFemale, 3, 1983, true},
}

// newUUID generates a UUID v7 string for seeded entity IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Seed inserts the sample clan when the people table is empty. Seeding is
// idempotent: a non-empty people table makes it a no-op.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		return fmt.Errorf("counting people: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, len(seedData))
	for i, p := range seedData {
		ids[i] = newUUID()
		isLiving := 0
		if p.isLiving {
			isLiving = 1
		}
		_, err := tx.Exec(
			`INSERT INTO people (id, display_name, first_name, surname, gender, generation,
                birth_year, is_living, privacy_level, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ids[i], p.displayName, p.firstName, p.surname, p.gender, p.generation,
			p.birthYear, isLiving, types.PrivacyPublic, now, now,
		)
		if err != nil {
			return fmt.Errorf("seeding person %s: %w", p.displayName, err)
		}
	}

	// First couple and their one seeded child.
	familyID := newUUID()
	_, err = tx.Exec(
		`INSERT INTO families (id, father_id, mother_id, marriage_date, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		familyID, ids[0], ids[1], "1945-02-10", now, now,
	)
	if err != nil {
		return fmt.Errorf("seeding family: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO children (id, family_id, person_id, sort_order, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		newUUID(), familyID, ids[2], 0, now,
	)
	if err != nil {
		return fmt.Errorf("seeding child: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
