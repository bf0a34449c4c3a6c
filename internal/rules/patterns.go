package rules

// Patterns holds the regex lists the engine matches, in pattern-class form so
// the lists can be extended from config without touching the ordering logic.
type Patterns struct {
	VisaSponsorship    []string
	NotHelpful         []string
	Helpful            []string
	RemoteFirstDomains []string
}

// DefaultPatterns returns the built-in pattern sets for a Ghana-based job
// seeker. Config lists, when present, replace these wholesale.
func DefaultPatterns() Patterns {
	return Patterns{
		VisaSponsorship: []string{
			`visa\s+sponsor(?:ship)?`,
			`sponsor(?:ing)?\s+visa`,
			`we\s+sponsor\s+visas?`,
			`willing\s+to\s+sponsor`,
			`provide\s+visa\s+sponsor(?:ship)?`,
			`offer(?:s)?\s+visa\s+sponsor(?:ship)?`,
			`relocation\s+(?:and\s+)?visa`,
			`visa\s+(?:and\s+)?relocation`,
			`h-?1b\s+sponsor(?:ship)?`,
			`work\s+authorization\s+support`,
			`immigration\s+support`,
			`assist\s+with\s+visa`,
			`help\s+with\s+visa`,
			`sponsorship\s+available`,
		},
		NotHelpful: []string{
			`us\s+only`,
			`usa\s+only`,
			`united\s+states\s+only`,
			`u\.s\.\s+only`,
			`remote\s+us\b`,
			`remote\s+usa\b`,
			`eu\s+only`,
			`europe\s+only`,
			`european\s+union\s+only`,
			`remote\s+europe\b`,
			`remote\s+eu\b`,
			`europe\s+remote`,
			`uk\s+only`,
			`united\s+kingdom\s+only`,
			`remote\s+uk\b`,
			`on-?site\s+only`,
			`in-?office\s+only`,
			`no\s+remote`,
			`must\s+be\s+located\s+in`,
			`must\s+be\s+based\s+in`,
			`must\s+reside\s+in`,
			`north\s+america\s+only`,
			`canada\s+only`,
			`australia\s+only`,
			`new\s+zealand\s+only`,
			`remote\s+canada\b`,
			`remote\s+australia\b`,
			`(?:pst|est|cet|pacific|eastern|central\s+european)\s+time(?:zone)?\s+required`,
		},
		Helpful: []string{
			`worldwide\s+remote`,
			`global\s+remote`,
			`work\s+from\s+anywhere`,
			`remote\s+worldwide`,
			`fully\s+remote`,
			`\bghana\b`,
			`\baccra\b`,
			`africa`,
			`any\s+location`,
			`location\s+independent`,
		},
		RemoteFirstDomains: []string{
			"remoteok.com",
			"weworkremotely.com",
		},
	}
}
