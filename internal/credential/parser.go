package credential

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	dErrors "agegate/pkg/domain-errors"
)

const (
	// minStructuredLen is the minimum payload length for a license barcode.
	// Anything shorter cannot be a PDF417 DL payload and is rejected outright.
	minStructuredLen = 50

	// minHeuristicLen gates the fallback date scan. Only payloads long enough
	// to plausibly embed a full record are worth scavenging for date shapes.
	minHeuristicLen = 100
)

// Default plausible birth-year window, expressed in years before "now". The
// window is a sanity filter on scavenged dates, not a legal age check.
const (
	DefaultMaxYearsBack = 100
	DefaultMinYearsBack = 10
)

var (
	digitRun8  = regexp.MustCompile(`\d{8}`)
	slashDate  = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	hyphenDate = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	eightDigit = regexp.MustCompile(`^\d{8}$`)
)

// Parser turns raw scanned text into a Credential. It is pure: the reference
// time is injected by the caller, and all failures surface as coded domain
// errors rather than panics.
type Parser struct {
	maxYearsBack int
	minYearsBack int
}

// Option configures the Parser.
type Option func(*Parser)

// WithBirthYearWindow overrides the plausible birth-year window bounds when
// both are positive. maxBack is the oldest accepted birth year (years before
// now), minBack the youngest.
func WithBirthYearWindow(maxBack, minBack int) Option {
	return func(p *Parser) {
		if maxBack > 0 && minBack > 0 {
			p.maxYearsBack = maxBack
			p.minYearsBack = minBack
		}
	}
}

// NewParser constructs a Parser with the default birth-year window.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxYearsBack: DefaultMaxYearsBack,
		minYearsBack: DefaultMinYearsBack,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts a Credential from a scanned barcode payload.
//
// Two tiers mirror real-world barcode heterogeneity. Payloads carrying an
// AAMVA sentinel ("@" prefix or embedded "ANSI" marker) go through the
// structured field-code extraction; a structured payload that fails there
// falls through to the heuristic date scan only when it is longer than 100
// characters. Payloads shorter than 50 characters are rejected outright with
// no fallback.
func (p *Parser) Parse(raw string, now time.Time) (*Credential, error) {
	if len(raw) < minStructuredLen {
		return nil, dErrors.New(dErrors.CodeUnparseable, "payload too short to be an ID barcode")
	}

	if strings.HasPrefix(raw, "@") || strings.Contains(raw, "ANSI") {
		if cred, err := p.parseStructured(raw); err == nil {
			return cred, nil
		}
	}

	if len(raw) > minHeuristicLen {
		return p.parseHeuristic(raw, now)
	}

	return nil, dErrors.New(dErrors.CodeUnparseable, "no usable date of birth in payload")
}

// ParseManualEntry accepts a typed eight-digit YYYYMMDD birth date. This is
// the no-scanner path: no sentinel, no length tiers, no plausibility window.
func (p *Parser) ParseManualEntry(digits string) (*Credential, error) {
	digits = strings.TrimSpace(digits)
	if !eightDigit.MatchString(digits) {
		return nil, dErrors.New(dErrors.CodeInvalidManualEntry, "manual entry must be exactly eight digits (YYYYMMDD)")
	}
	year := atoi(digits[0:4])
	month := atoi(digits[4:6])
	day := atoi(digits[6:8])
	dob, ok := calendarDate(year, month, day)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidManualEntry, "manual entry is not a valid calendar date")
	}
	return &Credential{DateOfBirth: dob}, nil
}

// parseStructured extracts AAMVA field codes line by line. A record is
// accepted only when it yields both a date of birth and some form of a name.
func (p *Parser) parseStructured(raw string) (*Credential, error) {
	rec := rawRecord{seen: make(map[string]bool)}

	for _, line := range splitLines(raw) {
		if len(line) < 4 {
			continue
		}
		code := line[:3]
		set, known := fieldSetters[code]
		if !known || rec.seen[code] {
			continue
		}
		rec.seen[code] = true
		set(&rec, strings.TrimSpace(line[3:]))
	}

	if rec.dateOfBirth == "" || !rec.cred.HasName() {
		return nil, dErrors.New(dErrors.CodeUnparseable, "structured payload missing date of birth or name")
	}

	dob, err := parseDate(rec.dateOfBirth)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnparseable, "structured payload has malformed date of birth")
	}
	rec.cred.DateOfBirth = dob

	// Auxiliary dates are best-effort: a malformed expiration or issue date
	// nils that field without sinking the record.
	if rec.expiration != "" {
		if exp, err := parseDate(rec.expiration); err == nil {
			rec.cred.ExpirationDate = &exp
		}
	}
	if rec.issue != "" {
		if iss, err := parseDate(rec.issue); err == nil {
			rec.cred.IssueDate = &iss
		}
	}

	return &rec.cred, nil
}

// parseHeuristic scans an unstructured payload for digit groups matching
// common date shapes and accepts the first candidate whose year falls inside
// the plausible birth-year window.
func (p *Parser) parseHeuristic(raw string, now time.Time) (*Credential, error) {
	minYear := now.Year() - p.maxYearsBack
	maxYear := now.Year() - p.minYearsBack
	sawCandidate := false

	check := func(year, month, day int) *time.Time {
		date, ok := calendarDate(year, month, day)
		if !ok {
			return nil
		}
		sawCandidate = true
		if year < minYear || year > maxYear {
			return nil
		}
		return &date
	}

	// Eight-digit runs are tried as MMDDYYYY first, then YYYYMMDD, matching
	// the order US license payloads are most commonly encoded in.
	for _, run := range digitRun8.FindAllString(raw, -1) {
		if dob := check(atoi(run[4:8]), atoi(run[0:2]), atoi(run[2:4])); dob != nil {
			return &Credential{DateOfBirth: *dob}, nil
		}
	}
	for _, run := range digitRun8.FindAllString(raw, -1) {
		if dob := check(atoi(run[0:4]), atoi(run[4:6]), atoi(run[6:8])); dob != nil {
			return &Credential{DateOfBirth: *dob}, nil
		}
	}
	for _, m := range slashDate.FindAllStringSubmatch(raw, -1) {
		if dob := check(atoi(m[3]), atoi(m[1]), atoi(m[2])); dob != nil {
			return &Credential{DateOfBirth: *dob}, nil
		}
	}
	for _, m := range hyphenDate.FindAllStringSubmatch(raw, -1) {
		if dob := check(atoi(m[1]), atoi(m[2]), atoi(m[3])); dob != nil {
			return &Credential{DateOfBirth: *dob}, nil
		}
	}

	if sawCandidate {
		return nil, dErrors.New(dErrors.CodeImplausibleDate, "dates found but none inside the plausible birth-year window")
	}
	return nil, dErrors.New(dErrors.CodeUnparseable, "no usable date of birth in payload")
}

// parseDate handles the date strings found on license payloads: eight-digit
// MMDDYYYY positionally, everything else through known calendar layouts.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if eightDigit.MatchString(s) {
		date, ok := calendarDate(atoi(s[4:8]), atoi(s[0:2]), atoi(s[2:4]))
		if !ok {
			return time.Time{}, dErrors.New(dErrors.CodeUnparseable, "invalid MMDDYYYY date")
		}
		return date, nil
	}
	for _, layout := range []string{"2006-01-02", "01/02/2006", "2006/01/02", "01-02-2006"} {
		if date, err := time.Parse(layout, s); err == nil {
			return date, nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeUnparseable, "unrecognized date format")
}

// calendarDate builds a UTC date and rejects non-existent combinations such
// as month 13 or April 31 (time.Date would silently normalize them).
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
}

// atoi is safe here: every caller passes regexp-validated digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
