// Package testutil provides the shared test fixture: a three-generation
// Schmidt/Becker family tree with a marriage between the branches, one
// cousin pair, one unnamed spouse with unknown gender, and a source
// record. Tests reference individuals through the Universe handles
// instead of hard-coding pointers.
package testutil

import (
	"testing"

	"github.com/gedtree/gedtree/gedtree/document"
	"github.com/gedtree/gedtree/gedtree/session"
)

// Universe names every record in the fixture by its GEDCOM pointer.
type Universe struct {
	// Generation 1
	Wilhelm string // @I1@ - M, 1820-1890, Hamburg; HUSB of SchmidtFamily
	Greta   string // @I2@ - F, 1825-1900, Bremen; WIFE of SchmidtFamily
	Otto    string // @I7@ - M, 1818; HUSB of BeckerFamily
	Anna    string // @I8@ - F, 1822; WIFE of BeckerFamily

	// Generation 2
	Johann string // @I3@ - M, 1850-1920, Hamburg; carpenter with notes and EDUC fact
	Karl   string // @I5@ - M, 1852, Hamburg; Johann's brother, a near-duplicate of him
	Maria  string // @I4@ - F, 1855, Bremen; Johann's wife
	Liese  string // @I9@ - F, 1857; Maria's sister
	Franz  string // @I10@ - M, 1853; Liese's husband

	// Generation 3
	Heinrich string // @I6@ - M, 1880, Hamburg; son of Johann and Maria
	Clara    string // @I11@ - F, 1882; daughter of Johann and Maria
	Emma     string // @I12@ - F, 1881; daughter of Franz and Liese, cousin of Heinrich
	Pat      string // @I13@ - no SEX record; Heinrich's spouse

	// Families
	SchmidtFamily string // @F1@ - Wilhelm + Greta, children Johann and Karl
	BeckerFamily  string // @F2@ - Otto + Anna, children Maria and Liese
	JohannMaria   string // @F3@ - Johann + Maria, children Heinrich and Clara
	WeberFamily   string // @F4@ - Franz + Liese, child Emma
	HeinrichPat   string // @F5@ - Heinrich + Pat, no children

	// Sources
	ParishRegister string // @S1@ - Hamburg parish register
}

// UniverseGedcom is the raw fixture text.
const UniverseGedcom = `0 HEAD
1 SOUR gedtree
1 GEDC
2 VERS 5.5.1
1 CHAR UTF-8
0 @I1@ INDI
1 NAME Wilhelm /Schmidt/
1 SEX M
1 BIRT
2 DATE 3 JUN 1820
2 PLAC Hamburg, Germany
1 DEAT
2 DATE 1890
2 PLAC Hamburg, Germany
1 FAMS @F1@
0 @I2@ INDI
1 NAME Greta /Mueller/
1 SEX F
1 BIRT
2 DATE 1825
2 PLAC Bremen, Germany
1 DEAT
2 DATE 1900
1 FAMS @F1@
0 @I3@ INDI
1 NAME Johann /Schmidt/
2 GIVN Johann
2 SURN Schmidt
1 SEX M
1 BIRT
2 DATE 15 MAR 1850
2 PLAC Hamburg, Germany
1 DEAT
2 DATE 12 JAN 1920
2 PLAC Hamburg, Germany
1 OCCU Carpenter
1 NOTE Emigrated to America in 1872, returned 1885
1 EDUC Apprenticed as a carpenter
1 FAMC @F1@
1 FAMS @F3@
0 @I4@ INDI
1 NAME Maria /Becker/
1 SEX F
1 BIRT
2 DATE 1855
2 PLAC Bremen, Germany
1 FAMC @F2@
1 FAMS @F3@
0 @I5@ INDI
1 NAME Karl /Schmidt/
1 SEX M
1 BIRT
2 DATE 1852
2 PLAC Hamburg, Germany
1 FAMC @F1@
0 @I6@ INDI
1 NAME Heinrich /Schmidt/
1 SEX M
1 BIRT
2 DATE 1880
2 PLAC Hamburg, Germany
1 FAMC @F3@
1 FAMS @F5@
0 @I7@ INDI
1 NAME Otto /Becker/
1 SEX M
1 BIRT
2 DATE 1818
1 FAMS @F2@
0 @I8@ INDI
1 NAME Anna /Krause/
1 SEX F
1 BIRT
2 DATE 1822
1 FAMS @F2@
0 @I9@ INDI
1 NAME Liese /Becker/
1 SEX F
1 BIRT
2 DATE 1857
1 FAMC @F2@
1 FAMS @F4@
0 @I10@ INDI
1 NAME Franz /Weber/
1 SEX M
1 BIRT
2 DATE 1853
1 FAMS @F4@
0 @I11@ INDI
1 NAME Clara /Schmidt/
1 SEX F
1 BIRT
2 DATE 1882
1 FAMC @F3@
0 @I12@ INDI
1 NAME Emma /Weber/
1 SEX F
1 BIRT
2 DATE 1881
1 FAMC @F4@
0 @I13@ INDI
1 NAME Pat /Jones/
1 FAMS @F5@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 CHIL @I5@
1 MARR
2 DATE 1848
2 PLAC Hamburg, Germany
0 @F2@ FAM
1 HUSB @I7@
1 WIFE @I8@
1 CHIL @I4@
1 CHIL @I9@
0 @F3@ FAM
1 HUSB @I3@
1 WIFE @I4@
1 CHIL @I6@
1 CHIL @I11@
1 MARR
2 DATE 1878
0 @F4@ FAM
1 HUSB @I10@
1 WIFE @I9@
1 CHIL @I12@
0 @F5@ FAM
1 HUSB @I6@
1 WIFE @I13@
0 @S1@ SOUR
1 TITL Hamburg Parish Register 1840-1900
1 AUTH Evangelical Church of Hamburg
0 TRLR`

func newUniverse() *Universe {
	return &Universe{
		Wilhelm:  "@I1@",
		Greta:    "@I2@",
		Johann:   "@I3@",
		Maria:    "@I4@",
		Karl:     "@I5@",
		Heinrich: "@I6@",
		Otto:     "@I7@",
		Anna:     "@I8@",
		Liese:    "@I9@",
		Franz:    "@I10@",
		Clara:    "@I11@",
		Emma:     "@I12@",
		Pat:      "@I13@",

		SchmidtFamily: "@F1@",
		BeckerFamily:  "@F2@",
		JohannMaria:   "@F3@",
		WeberFamily:   "@F4@",
		HeinrichPat:   "@F5@",

		ParishRegister: "@S1@",
	}
}

// LoadUniverse parses the fixture into a standalone document.
func LoadUniverse(t *testing.T) (*document.Document, *Universe) {
	t.Helper()

	doc, err := document.Parse(UniverseGedcom)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc, newUniverse()
}

// LoadSession loads the fixture into a fresh session.
func LoadSession(t *testing.T) (*session.Session, *Universe) {
	t.Helper()

	s := session.New()
	if err := s.LoadString(UniverseGedcom); err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	return s, newUniverse()
}
