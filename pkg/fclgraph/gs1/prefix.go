package gs1

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sync"
)

// keyPatterns holds the structural validation pattern for each supported
// GS1 application identifier. The character classes for alphanumeric
// components follow the GS1 General Specifications "component character
// set" (CSET 82).
var keyPatterns = map[string]*regexp.Regexp{
	"00":   regexp.MustCompile(`^(\d{18})$`),
	"01":   regexp.MustCompile(`^(\d{14})$`),
	"253":  regexp.MustCompile(`^(\d{13})([\x21-\x22\x25-\x2F\x30-\x39\x3A-\x3F\x41-\x5A\x5F\x61-\x7A]{0,17})$`),
	"255":  regexp.MustCompile(`^(\d{13})(\d{0,12})$`),
	"401":  regexp.MustCompile(`^([\x21-\x22\x25-\x2F\x30-\x39\x3A-\x3F\x41-\x5A\x5F\x61-\x7A]{0,30})$`),
	"402":  regexp.MustCompile(`^(\d{17})$`),
	"414":  regexp.MustCompile(`^(\d{13})$`),
	"417":  regexp.MustCompile(`^(\d{13})$`),
	"8003": regexp.MustCompile(`^(\d{14})([\x21-\x22\x25-\x2F\x30-\x39\x3A-\x3F\x41-\x5A\x5F\x61-\x7A]{0,16})$`),
	"8004": regexp.MustCompile(`^([\x21-\x22\x25-\x2F\x30-\x39\x3A-\x3F\x41-\x5A\x5F\x61-\x7A]{0,30})$`),
	"8006": regexp.MustCompile(`^(\d{14})(\d{2})(\d{2})$`),
	"8010": regexp.MustCompile(`^([\x23\x2D\x2F\x30-\x39\x41-\x5A]{0,30})$`),
	"8017": regexp.MustCompile(`^(\d{18})$`),
	"8018": regexp.MustCompile(`^(\d{18})$`),
}

// keyStartsWithGCP records, per application identifier, whether the company
// prefix is the leading component of the key. Keys that lead with the GCP
// are padded with a single '0' so the prefix always occupies positions
// [1, 1+length) during registry matching, the same as keys that lead with
// an extension or indicator digit.
var keyStartsWithGCP = map[string]bool{
	"00":   false,
	"01":   false,
	"253":  true,
	"255":  true,
	"401":  true,
	"402":  true,
	"414":  true,
	"417":  true,
	"8003": false,
	"8004": true,
	"8006": false,
	"8010": true,
	"8017": true,
	"8018": true,
}

// Candidate prefix lengths probed against the registry, longest first.
const (
	maxPrefixLength = 12
	minPrefixLength = 3
)

// PrefixTable is an immutable lookup table mapping registered GS1 prefixes
// to company-prefix lengths, grouped by prefix length for positional
// matching. Build one with ParseTable or LoadTable, or use Default.
type PrefixTable struct {
	// byLength[l] maps each registered prefix of length l to its GCP length.
	byLength map[int]map[string]int
}

// prefixFormatList mirrors the GS1 GCP prefix format list JSON document.
type prefixFormatList struct {
	GCPPrefixFormatList struct {
		Entry []prefixEntry `json:"entry"`
	} `json:"GCPPrefixFormatList"`
}

type prefixEntry struct {
	Prefix    string `json:"prefix"`
	GCPLength int    `json:"gcpLength"`
}

//go:embed gcpprefixformatlist.json
var defaultTableJSON []byte

var (
	defaultTable     *PrefixTable
	defaultTableOnce sync.Once
)

// Default returns the process-wide prefix table built from the bundled copy
// of the GS1 GCP prefix format list. The table is parsed once and shared
// read-only thereafter.
//
// The bundled list is a point-in-time snapshot; deployments that need the
// current registry should load it with LoadTable and use the returned
// table directly.
func Default() *PrefixTable {
	defaultTableOnce.Do(func() {
		t, err := ParseTable(defaultTableJSON)
		if err != nil {
			// The bundled table is validated by tests; a parse failure
			// here means a broken build.
			panic(fmt.Sprintf("gs1: bundled prefix table invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// ParseTable builds a PrefixTable from GCP prefix format list JSON.
func ParseTable(data []byte) (*PrefixTable, error) {
	var list prefixFormatList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse prefix format list: %w", err)
	}
	if len(list.GCPPrefixFormatList.Entry) == 0 {
		return nil, fmt.Errorf("parse prefix format list: no entries")
	}
	t := &PrefixTable{byLength: make(map[int]map[string]int)}
	for _, e := range list.GCPPrefixFormatList.Entry {
		l := len(e.Prefix)
		if l == 0 {
			continue
		}
		m, ok := t.byLength[l]
		if !ok {
			m = make(map[string]int)
			t.byLength[l] = m
		}
		m[e.Prefix] = e.GCPLength
	}
	return t, nil
}

// LoadTable reads a GCP prefix format list JSON file into a PrefixTable.
func LoadTable(path string) (*PrefixTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefix format list: %w", err)
	}
	return ParseTable(data)
}

// PrefixLength resolves the company-prefix length for a GS1 key.
//
// The key is first validated against the structural pattern of its
// application identifier, then normalised: keys whose leading component is
// the company prefix are padded with a single '0', and any serial or lot
// suffix after the first non-digit character is discarded. Candidate
// lengths are probed from 12 down to 3 against the registered prefixes of
// that exact length; the first (longest) match wins.
//
// Returns an error wrapping ErrMalformedIdentifier for unsupported
// application identifiers or keys that fail validation, and
// ErrUnknownPrefix when no registry entry matches.
func (t *PrefixTable) PrefixLength(ai, key string) (int, error) {
	pattern, ok := keyPatterns[ai]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported application identifier %q", ErrMalformedIdentifier, ai)
	}
	if !pattern.MatchString(key) {
		return 0, fmt.Errorf("%w: key %q does not match the %s pattern", ErrMalformedIdentifier, key, ai)
	}

	normalized := key
	if keyStartsWithGCP[ai] {
		normalized = "0" + normalized
	}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] < '0' || normalized[i] > '9' {
			normalized = normalized[:i]
			break
		}
	}

	for l := maxPrefixLength; l >= minPrefixLength; l-- {
		if len(normalized) < 1+l {
			continue
		}
		if gcpLen, ok := t.byLength[l][normalized[1:1+l]]; ok {
			return gcpLen, nil
		}
	}
	return 0, fmt.Errorf("%w: key %q (AI %s)", ErrUnknownPrefix, key, ai)
}

// CompanyPrefixLength resolves the company-prefix length of a GS1 key
// against the bundled registry. See PrefixTable.PrefixLength.
func CompanyPrefixLength(ai, key string) (int, error) {
	return Default().PrefixLength(ai, key)
}
