package search

import (
	"regexp"
	"strings"
)

// Mode selects how the query is matched against a text fragment.
type Mode int

const (
	// ModeSubstring matches the query as a plain substring.
	ModeSubstring Mode = iota
	// ModeRegex compiles the query as a regular expression and matches
	// it anywhere in the fragment (search, not full match).
	ModeRegex
	// ModeKeywords requires every keyword to be a substring of the fragment.
	ModeKeywords
	// ModeWordBoundary matches the query as a whole word only.
	ModeWordBoundary
)

// String returns the mode name used in CLI flags and history records.
func (m Mode) String() string {
	switch m {
	case ModeSubstring:
		return "substring"
	case ModeRegex:
		return "regex"
	case ModeKeywords:
		return "keywords"
	case ModeWordBoundary:
		return "word-boundary"
	default:
		return "unknown"
	}
}

// Fields selects which tool fields are searched.
type Fields struct {
	Name        bool
	Title       bool
	Description bool
	InputSchema bool
}

// DefaultFields searches name, title, and description. Input schemas are
// excluded by default: schema text is expensive to extract and noisy.
func DefaultFields() Fields {
	return Fields{Name: true, Title: true, Description: true}
}

// Criteria describes which tools match a search.
//
// Construct it with one of the New* functions or MatchAll and refine it
// with the With* methods, which return modified copies. A Criteria value
// is safe for concurrent use once constructed.
type Criteria struct {
	// Query is the search string; its meaning depends on Mode. Mutually
	// exclusive with ExactName.
	Query string

	// ExactName, when non-empty, short-circuits everything else and
	// requires equality with the tool name (case-insensitive unless
	// CaseSensitive is set).
	ExactName string

	Mode          Mode
	Fields        Fields
	CaseSensitive bool

	// MinDescriptionLength rejects tools whose description is missing or
	// shorter than this many bytes. Zero disables the check.
	MinDescriptionLength int

	// Keywords are the terms for ModeKeywords; all must be present.
	Keywords []string

	// Compiled pattern for ModeRegex. A nil regex with a non-nil
	// regexErr means the pattern was invalid and the mode never matches.
	regex    *regexp.Regexp
	regexErr error
}

// NewQueryCriteria creates substring-match criteria for the given query.
func NewQueryCriteria(query string) *Criteria {
	return &Criteria{
		Query:  query,
		Mode:   ModeSubstring,
		Fields: DefaultFields(),
	}
}

// NewNameCriteria creates criteria matching a tool name exactly
// (case-insensitive by default).
func NewNameCriteria(name string) *Criteria {
	return &Criteria{
		ExactName: name,
		Mode:      ModeSubstring,
		Fields:    DefaultFields(),
	}
}

// NewRegexCriteria creates regex-match criteria. The pattern is compiled
// once here; an invalid pattern is not an error, the criteria simply
// never matches.
func NewRegexCriteria(pattern string) *Criteria {
	c := &Criteria{
		Query:  pattern,
		Mode:   ModeRegex,
		Fields: DefaultFields(),
	}
	c.regex, c.regexErr = regexp.Compile(pattern)
	return c
}

// NewKeywordsCriteria creates criteria requiring every keyword to be
// present. An empty keyword list matches everything.
func NewKeywordsCriteria(keywords []string) *Criteria {
	return &Criteria{
		Mode:     ModeKeywords,
		Fields:   DefaultFields(),
		Keywords: keywords,
	}
}

// MatchAll creates criteria that match every tool. This is how "list all
// tools" is expressed.
func MatchAll() *Criteria {
	return &Criteria{
		Mode:   ModeSubstring,
		Fields: DefaultFields(),
	}
}

// WithMode returns a copy of the criteria with the given mode,
// recompiling the pattern when switching to ModeRegex.
func (c *Criteria) WithMode(mode Mode) *Criteria {
	out := *c
	out.Mode = mode
	out.regex, out.regexErr = nil, nil
	if mode == ModeRegex && out.Query != "" {
		out.regex, out.regexErr = regexp.Compile(out.Query)
	}
	return &out
}

// WithFields returns a copy of the criteria searching the given fields.
func (c *Criteria) WithFields(fields Fields) *Criteria {
	out := *c
	out.Fields = fields
	return &out
}

// WithCaseSensitive returns a copy with case sensitivity set.
func (c *Criteria) WithCaseSensitive(sensitive bool) *Criteria {
	out := *c
	out.CaseSensitive = sensitive
	return &out
}

// WithMinDescriptionLength returns a copy requiring a description of at
// least n bytes.
func (c *Criteria) WithMinDescriptionLength(n int) *Criteria {
	out := *c
	out.MinDescriptionLength = n
	return &out
}

// Matches reports whether a tool satisfies the criteria.
func (c *Criteria) Matches(tool Tool) bool {
	// Exact name match takes precedence over everything else.
	if c.ExactName != "" {
		if c.CaseSensitive {
			return tool.Name == c.ExactName
		}
		return strings.EqualFold(tool.Name, c.ExactName)
	}

	// Applied unconditionally, even for match-all criteria.
	if c.MinDescriptionLength > 0 && len(tool.Description) < c.MinDescriptionLength {
		return false
	}

	// No query and no keywords: match everything.
	if c.Query == "" && len(c.Keywords) == 0 {
		return true
	}

	// A tool matches if any enabled field does.
	if c.Fields.Name && c.textMatches(tool.Name) {
		return true
	}
	if c.Fields.Title && tool.Title != "" && c.textMatches(tool.Title) {
		return true
	}
	if c.Fields.Description && tool.Description != "" && c.textMatches(tool.Description) {
		return true
	}
	if c.Fields.InputSchema {
		if schemaText := extractSchemaText(tool.InputSchema); schemaText != "" && c.textMatches(schemaText) {
			return true
		}
	}
	return false
}

// textMatches evaluates the mode-specific predicate against one fragment.
func (c *Criteria) textMatches(text string) bool {
	folded := text
	if !c.CaseSensitive {
		folded = strings.ToLower(text)
	}

	switch c.Mode {
	case ModeSubstring:
		query := c.Query
		if !c.CaseSensitive {
			query = strings.ToLower(query)
		}
		return strings.Contains(folded, query)

	case ModeRegex:
		// Regex matches against the original text; an invalid pattern
		// never matches and never raises.
		if c.regex != nil {
			return c.regex.MatchString(text)
		}
		if c.regexErr != nil {
			return false
		}
		// Criteria built as a struct literal: compile on the fly.
		re, err := regexp.Compile(c.Query)
		if err != nil {
			return false
		}
		return re.MatchString(text)

	case ModeKeywords:
		for _, keyword := range c.Keywords {
			if !c.CaseSensitive {
				keyword = strings.ToLower(keyword)
			}
			if !strings.Contains(folded, keyword) {
				return false
			}
		}
		return true

	case ModeWordBoundary:
		query := c.Query
		if !c.CaseSensitive {
			query = strings.ToLower(query)
		}
		// Underscore counts as a separator here, so "read" matches the
		// snake_case token "read_file" but not "bread" or "reader".
		re, err := regexp.Compile(`(?:^|[^0-9A-Za-z])` + regexp.QuoteMeta(query) + `(?:$|[^0-9A-Za-z])`)
		if err != nil {
			// Degraded match: fall back to plain containment.
			return strings.Contains(folded, query)
		}
		return re.MatchString(folded)

	default:
		return false
	}
}
