package sqlite

// Schema DDL for the clan tables. Column names match the restore allowlists
// exactly; timestamps and dates are TEXT (RFC 3339 / ISO dates), flags are
// INTEGER 0/1. Foreign keys are declared for documentation but restore
// relies on insertion order, not enforcement.
const (
	createPeople = `CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    handle TEXT,
    display_name TEXT NOT NULL,
    first_name TEXT,
    middle_name TEXT,
    surname TEXT,
    pen_name TEXT,
    taboo_name TEXT,
    gender INTEGER,
    generation INTEGER,
    chi INTEGER,
    birth_date TEXT,
    birth_year INTEGER,
    birth_place TEXT,
    death_date TEXT,
    death_year INTEGER,
    death_place TEXT,
    death_lunar TEXT,
    is_living INTEGER,
    is_patrilineal INTEGER,
    phone TEXT,
    email TEXT,
    zalo TEXT,
    facebook TEXT,
    address TEXT,
    hometown TEXT,
    occupation TEXT,
    biography TEXT,
    notes TEXT,
    avatar_url TEXT,
    privacy_level INTEGER,
    created_at TEXT,
    updated_at TEXT
);`

	createFamilies = `CREATE TABLE IF NOT EXISTS families (
    id TEXT PRIMARY KEY,
    handle TEXT,
    father_id TEXT,
    mother_id TEXT,
    marriage_date TEXT,
    marriage_place TEXT,
    divorce_date TEXT,
    notes TEXT,
    sort_order INTEGER,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (father_id) REFERENCES people(id),
    FOREIGN KEY (mother_id) REFERENCES people(id)
);`

	createChildren = `CREATE TABLE IF NOT EXISTS children (
    id TEXT PRIMARY KEY,
    family_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    sort_order INTEGER,
    created_at TEXT,
    FOREIGN KEY (family_id) REFERENCES families(id),
    FOREIGN KEY (person_id) REFERENCES people(id)
);`

	createContributions = `CREATE TABLE IF NOT EXISTS contributions (
    id TEXT PRIMARY KEY,
    author_id TEXT,
    target_person TEXT,
    change_type TEXT,
    changes TEXT,
    reason TEXT,
    status TEXT,
    reviewed_by TEXT,
    reviewed_at TEXT,
    review_notes TEXT,
    created_at TEXT
);`

	createEvents = `CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    event_date TEXT,
    event_lunar TEXT,
    event_type TEXT,
    person_id TEXT,
    location TEXT,
    recurring INTEGER,
    created_at TEXT,
    FOREIGN KEY (person_id) REFERENCES people(id)
);`

	createMedia = `CREATE TABLE IF NOT EXISTS media (
    id TEXT PRIMARY KEY,
    person_id TEXT,
    type TEXT,
    url TEXT NOT NULL,
    caption TEXT,
    is_primary INTEGER,
    sort_order INTEGER,
    created_at TEXT,
    FOREIGN KEY (person_id) REFERENCES people(id)
);`

	createAchievements = `CREATE TABLE IF NOT EXISTS achievements (
    id TEXT PRIMARY KEY,
    person_id TEXT,
    title TEXT NOT NULL,
    category TEXT,
    description TEXT,
    year INTEGER,
    awarded_by TEXT,
    is_featured INTEGER,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (person_id) REFERENCES people(id)
);`

	createFundTransactions = `CREATE TABLE IF NOT EXISTS fund_transactions (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    category TEXT,
    amount REAL,
    donor_name TEXT,
    donor_person_id TEXT,
    recipient_id TEXT,
    description TEXT,
    transaction_date TEXT,
    academic_year TEXT,
    created_by TEXT,
    created_at TEXT
);`

	createScholarships = `CREATE TABLE IF NOT EXISTS scholarships (
    id TEXT PRIMARY KEY,
    person_id TEXT,
    type TEXT,
    amount REAL,
    reason TEXT,
    academic_year TEXT,
    school TEXT,
    grade_level TEXT,
    status TEXT,
    approved_by TEXT,
    approved_at TEXT,
    created_at TEXT,
    FOREIGN KEY (person_id) REFERENCES people(id)
);`

	createClanArticles = `CREATE TABLE IF NOT EXISTS clan_articles (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT,
    category TEXT,
    sort_order INTEGER,
    is_featured INTEGER,
    author_id TEXT,
    created_at TEXT,
    updated_at TEXT
);`

	createCauDuongPools = `CREATE TABLE IF NOT EXISTS cau_duong_pools (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    ancestor_id TEXT,
    min_generation INTEGER,
    max_age_lunar INTEGER,
    description TEXT,
    is_active INTEGER,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (ancestor_id) REFERENCES people(id)
);`

	createCauDuongAssignments = `CREATE TABLE IF NOT EXISTS cau_duong_assignments (
    id TEXT PRIMARY KEY,
    pool_id TEXT NOT NULL,
    year INTEGER,
    ceremony_type TEXT,
    host_person_id TEXT,
    actual_host_person_id TEXT,
    status TEXT,
    scheduled_date TEXT,
    actual_date TEXT,
    reason TEXT,
    notes TEXT,
    rotation_index INTEGER,
    created_by TEXT,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (pool_id) REFERENCES cau_duong_pools(id)
);`

	createClanDocuments = `CREATE TABLE IF NOT EXISTS clan_documents (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    file_url TEXT,
    file_type TEXT,
    file_size INTEGER,
    category TEXT,
    tags TEXT,
    person_id TEXT,
    uploaded_by TEXT,
    created_at TEXT,
    updated_at TEXT,
    FOREIGN KEY (person_id) REFERENCES people(id)
);`
)

// Index DDL for lookups used by export and the GEDCOM snapshot.
const (
	idxFamiliesFather     = `CREATE INDEX IF NOT EXISTS idx_families_father ON families(father_id);`
	idxFamiliesMother     = `CREATE INDEX IF NOT EXISTS idx_families_mother ON families(mother_id);`
	idxChildrenFamily     = `CREATE INDEX IF NOT EXISTS idx_children_family ON children(family_id);`
	idxChildrenPerson     = `CREATE INDEX IF NOT EXISTS idx_children_person ON children(person_id);`
	idxMediaPerson        = `CREATE INDEX IF NOT EXISTS idx_media_person ON media(person_id);`
	idxEventsPerson       = `CREATE INDEX IF NOT EXISTS idx_events_person ON events(person_id);`
	idxAchievementsPerson = `CREATE INDEX IF NOT EXISTS idx_achievements_person ON achievements(person_id);`
	idxAssignmentsPool    = `CREATE INDEX IF NOT EXISTS idx_cau_duong_assignments_pool ON cau_duong_assignments(pool_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPeople,
	createFamilies,
	createChildren,
	createContributions,
	createEvents,
	createMedia,
	createAchievements,
	createFundTransactions,
	createScholarships,
	createClanArticles,
	createCauDuongPools,
	createCauDuongAssignments,
	createClanDocuments,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxFamiliesFather,
	idxFamiliesMother,
	idxChildrenFamily,
	idxChildrenPerson,
	idxMediaPerson,
	idxEventsPerson,
	idxAchievementsPerson,
	idxAssignmentsPool,
}
