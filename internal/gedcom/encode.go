package gedcom

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dangdinh/giapha/pkg/giapha"
	"github.com/dangdinh/giapha/pkg/types"
)

// Header identity written into every export.
const (
	SourceName    = "GiaPha"
	SubmitterName = "Dang Dinh - Thach Lam"
	FilenameSlug  = "gia-pha-dang-dinh"
)

// Physical line limits from the GEDCOM 5.5.1 grammar: a full line tops out
// at 255 characters and each continuation chunk carries at most 248.
const (
	maxLineLen  = 255
	maxChunkLen = 248
)

// months is the fixed DATE month-abbreviation table.
var months = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// Filename returns the artifact name for an export at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("%s-%s.ged", FilenameSlug, now.Format("2006-01-02"))
}

// PersonXref derives the individual reference id from a person id: the
// first eight characters, enough of a UUID to stay unique within one clan.
func PersonXref(id string) string {
	return "@I" + truncate(id, 8) + "@"
}

// FamilyXref derives the family reference id from a family id.
func FamilyXref(id string) string {
	return "@F" + truncate(id, 8) + "@"
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Encode serializes a snapshot as GEDCOM 5.5.1 text. People at the private
// privacy tier are left out entirely, and family records plus all FAMS/FAMC
// back-links appear only for families with at least one visible parent, so
// every reference in the output resolves.
func Encode(snap *Snapshot, now time.Time) string {
	visible := make(map[string]bool, len(snap.People))
	for _, p := range snap.People {
		if p.PrivacyLevel != types.PrivacyPrivate {
			visible[p.ID] = true
		}
	}

	linked := make(map[string]bool, len(snap.Families))
	spouseFamilies := make(map[string][]string) // person id -> family ids as parent
	childFamilies := make(map[string][]string)  // person id -> family ids as child
	familyChildren := make(map[string][]string) // family id -> ordered child person ids

	for _, f := range snap.Families {
		if visible[f.FatherID] {
			spouseFamilies[f.FatherID] = append(spouseFamilies[f.FatherID], f.ID)
			linked[f.ID] = true
		}
		if visible[f.MotherID] {
			spouseFamilies[f.MotherID] = append(spouseFamilies[f.MotherID], f.ID)
			linked[f.ID] = true
		}
	}
	for _, c := range snap.Children {
		if visible[c.PersonID] && linked[c.FamilyID] {
			childFamilies[c.PersonID] = append(childFamilies[c.PersonID], c.FamilyID)
		}
		familyChildren[c.FamilyID] = append(familyChildren[c.FamilyID], c.PersonID)
	}

	var b strings.Builder
	writeHeader(&b, now)
	writeSubmitter(&b)

	for _, p := range snap.People {
		if !visible[p.ID] {
			continue
		}
		writePerson(&b, p, spouseFamilies[p.ID], childFamilies[p.ID])
	}
	for _, f := range snap.Families {
		if !linked[f.ID] {
			continue
		}
		writeFamily(&b, f, familyChildren[f.ID], visible)
	}

	b.WriteString("0 TRLR\n")
	return b.String()
}

func writeHeader(b *strings.Builder, now time.Time) {
	writeLine(b, 0, "HEAD", "")
	writeLine(b, 1, "SOUR", SourceName)
	writeLine(b, 2, "VERS", giapha.Version)
	writeLine(b, 2, "NAME", "Gia Pha Dien Tu")
	writeLine(b, 1, "DEST", "ANY")
	writeLine(b, 1, "DATE", formatDay(now))
	writeLine(b, 1, "SUBM", "@SUB1@")
	writeLine(b, 1, "GEDC", "")
	writeLine(b, 2, "VERS", "5.5.1")
	writeLine(b, 2, "FORM", "LINEAGE-LINKED")
	writeLine(b, 1, "CHAR", "UTF-8")
}

func writeSubmitter(b *strings.Builder) {
	b.WriteString("0 @SUB1@ SUBM\n")
	writeLine(b, 1, "NAME", SubmitterName)
}

func writePerson(b *strings.Builder, p types.Person, fams, famcs []string) {
	fmt.Fprintf(b, "0 %s INDI\n", PersonXref(p.ID))

	given := joinNonEmpty(" ", p.FirstName, p.MiddleName)
	if given == "" {
		given = p.DisplayName
	}
	writeLine(b, 1, "NAME", given+" /"+p.Surname+"/")
	if given != "" {
		writeLine(b, 2, "GIVN", given)
	}
	if p.Surname != "" {
		writeLine(b, 2, "SURN", p.Surname)
	}

	sex := "F"
	if p.Gender == types.GenderMale {
		sex = "M"
	}
	writeLine(b, 1, "SEX", sex)

	birth := formatDate(p.BirthDate, p.BirthYear)
	if birth != "" || p.BirthPlace != "" {
		writeLine(b, 1, "BIRT", "")
		if birth != "" {
			writeLine(b, 2, "DATE", birth)
		}
		if p.BirthPlace != "" {
			writeLine(b, 2, "PLAC", p.BirthPlace)
		}
	}

	if !p.IsLiving {
		writeLine(b, 1, "DEAT", "")
		if death := formatDate(p.DeathDate, p.DeathYear); death != "" {
			writeLine(b, 2, "DATE", death)
		}
		if p.DeathPlace != "" {
			writeLine(b, 2, "PLAC", p.DeathPlace)
		}
	}

	if p.Occupation != "" {
		writeLine(b, 1, "OCCU", p.Occupation)
	}
	if note := joinNonEmpty("\n\n", p.Biography, p.Notes); note != "" {
		writeLine(b, 1, "NOTE", note)
	}

	for _, fid := range fams {
		writeLine(b, 1, "FAMS", FamilyXref(fid))
	}
	for _, fid := range famcs {
		writeLine(b, 1, "FAMC", FamilyXref(fid))
	}
}

func writeFamily(b *strings.Builder, f types.Family, children []string, visible map[string]bool) {
	fmt.Fprintf(b, "0 %s FAM\n", FamilyXref(f.ID))

	if visible[f.FatherID] {
		writeLine(b, 1, "HUSB", PersonXref(f.FatherID))
	}
	if visible[f.MotherID] {
		writeLine(b, 1, "WIFE", PersonXref(f.MotherID))
	}

	marriage := formatDate(f.MarriageDate, 0)
	if marriage != "" || f.MarriagePlace != "" {
		writeLine(b, 1, "MARR", "")
		if marriage != "" {
			writeLine(b, 2, "DATE", marriage)
		}
		if f.MarriagePlace != "" {
			writeLine(b, 2, "PLAC", f.MarriagePlace)
		}
	}
	if f.DivorceDate != "" {
		writeLine(b, 1, "DIV", "")
		if d := formatDate(f.DivorceDate, 0); d != "" {
			writeLine(b, 2, "DATE", d)
		}
	}

	for _, childID := range children {
		if visible[childID] {
			writeLine(b, 1, "CHIL", PersonXref(childID))
		}
	}
}

// writeLine emits one logical value as physical lines. Values split on
// embedded newlines into CONT lines; any physical line that would exceed
// 255 characters is cut there and continued with CONC chunks of at most
// 248 characters.
func writeLine(b *strings.Builder, level int, tag, value string) {
	if value == "" {
		fmt.Fprintf(b, "%d %s\n", level, tag)
		return
	}

	for i, segment := range strings.Split(value, "\n") {
		prefix := fmt.Sprintf("%d %s ", level, tag)
		if i > 0 {
			prefix = fmt.Sprintf("%d CONT ", level+1)
		}
		if len(prefix)+len(segment) <= maxLineLen {
			b.WriteString(prefix + segment + "\n")
			continue
		}

		head := maxLineLen - len(prefix)
		b.WriteString(prefix + segment[:head] + "\n")
		for rest := segment[head:]; len(rest) > 0; {
			chunk := rest
			if len(chunk) > maxChunkLen {
				chunk = chunk[:maxChunkLen]
			}
			fmt.Fprintf(b, "%d CONC %s\n", level+1, chunk)
			rest = rest[len(chunk):]
		}
	}
}

// dateLayouts are the stored date formats we accept, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// formatDate renders a stored date as "2 JAN 2006". An unparseable or empty
// date falls back to the bare year when one is known.
func formatDate(stored string, year int) string {
	if stored != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, stored); err == nil {
				return formatDay(t)
			}
		}
	}
	if year != 0 {
		return strconv.Itoa(year)
	}
	return ""
}

func formatDay(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
