package types

// Standard table names. The order of ExportTables is foreign-key safe for
// insertion; deletion walks it in reverse.
const (
	TablePeople           = "people"
	TableFamilies         = "families"
	TableChildren         = "children"
	TableContributions    = "contributions"
	TableEvents           = "events"
	TableMedia            = "media"
	TableAchievements     = "achievements"
	TableFundTransactions = "fund_transactions"
	TableScholarships     = "scholarships"
	TableClanArticles     = "clan_articles"
	TableCauDuongPools    = "cau_duong_pools"
	TableCauDuongAssigns  = "cau_duong_assignments"
	TableClanDocuments    = "clan_documents"
)

// ExportTables lists every exportable table in insertion order. Profiles are
// deliberately absent: account identities cannot be remapped across
// deployments, so they never travel in a backup.
var ExportTables = []string{
	TablePeople,
	TableFamilies,
	TableChildren,
	TableContributions,
	TableEvents,
	TableMedia,
	TableAchievements,
	TableFundTransactions,
	TableScholarships,
	TableClanArticles,
	TableCauDuongPools,
	TableCauDuongAssigns,
	TableClanDocuments,
}
