package types

// Gender codes used by the people table.
const (
	GenderMale   = 1
	GenderFemale = 0
)

// Privacy tiers on a person record. PrivacyPrivate people are excluded from
// interchange exports entirely.
const (
	PrivacyPublic  = 0
	PrivacyMembers = 1
	PrivacyPrivate = 2
)

// Person is the typed view of a people row used by the GEDCOM encoder.
// Only the columns the interchange format consumes are carried.
type Person struct {
	ID           string
	DisplayName  string
	FirstName    string
	MiddleName   string
	Surname      string
	Gender       int
	BirthDate    string // ISO date, may be empty
	BirthYear    int
	BirthPlace   string
	DeathDate    string
	DeathYear    int
	DeathPlace   string
	IsLiving     bool
	Occupation   string
	Biography    string
	Notes        string
	PrivacyLevel int
}

// Family links two spouse-parents and carries marriage facts. Either parent
// id may be empty.
type Family struct {
	ID            string
	FatherID      string
	MotherID      string
	MarriageDate  string
	MarriagePlace string
	DivorceDate   string
}

// Child is an ordered membership of a person in a family.
type Child struct {
	ID        string
	FamilyID  string
	PersonID  string
	SortOrder int
}
