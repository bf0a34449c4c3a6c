package model

// Verdict is the classification outcome for a job posting's accessibility
// from Ghana. The zero value is Unclear.
type Verdict int

const (
	// Unclear means the requirements could not be determined.
	Unclear Verdict = iota
	// Helpful means the posting is open to Ghana-based applicants
	// (worldwide remote, Africa included, or Ghana-based).
	Helpful
	// VisaSponsorship means the posting offers visa sponsorship or
	// relocation support, even if it is otherwise location-restricted.
	VisaSponsorship
	// NotHelpful means the posting is restricted to locations that
	// exclude Ghana and offers no sponsorship.
	NotHelpful
)

// String returns the wire/storage form of the verdict.
func (v Verdict) String() string {
	switch v {
	case Helpful:
		return "helpful"
	case VisaSponsorship:
		return "visa_sponsorship"
	case NotHelpful:
		return "not_helpful"
	default:
		return "unclear"
	}
}

// ParseVerdict maps a stored verdict string back to its Verdict value.
// Unknown strings map to Unclear.
func ParseVerdict(s string) Verdict {
	switch s {
	case "helpful":
		return Helpful
	case "visa_sponsorship":
		return VisaSponsorship
	case "not_helpful":
		return NotHelpful
	default:
		return Unclear
	}
}
