package summary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SearchMode selects which part of a record a search runs against.
type SearchMode string

const (
	// ModeKeyword matches anywhere in the serialized record (OR semantics).
	ModeKeyword SearchMode = "keyword"
	// ModeDependency matches internal dependency paths and external package names.
	ModeDependency SearchMode = "dependency"
	// ModeComponent matches key component names.
	ModeComponent SearchMode = "component"
	// ModeExports matches public API signatures.
	ModeExports SearchMode = "exports"
)

// ParseMode validates a mode string, defaulting empty to keyword.
func ParseMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(s)) {
	case "", ModeKeyword:
		return ModeKeyword, nil
	case ModeDependency:
		return ModeDependency, nil
	case ModeComponent:
		return ModeComponent, nil
	case ModeExports:
		return ModeExports, nil
	}
	return "", fmt.Errorf("unknown search mode %q (want keyword, dependency, component, or exports)", s)
}

// SearchResult is one matching record. Matches holds the matched keywords in
// keyword mode, and the matching component names or signatures in component
// and exports modes. Matched and Total count keywords in keyword mode.
type SearchResult struct {
	File    string   `json:"file"`
	Matches []string `json:"matches,omitempty"`
	Matched int      `json:"matched,omitempty"`
	Total   int      `json:"total,omitempty"`
}

// Search tokenizes query on whitespace into lowercase keywords and matches
// them against every record in the store. A record that fails to parse is
// skipped, never fatal.
func (s *Store) Search(query string, mode SearchMode) ([]SearchResult, error) {
	keywords := tokenize(query)
	if len(keywords) == 0 {
		return nil, nil
	}

	records, err := s.All()
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, rec := range records {
		if res, ok := matchRecord(rec, keywords, mode); ok {
			results = append(results, res)
		}
	}
	return results, nil
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	return fields
}

func matchRecord(rec *Record, keywords []string, mode SearchMode) (SearchResult, bool) {
	res := SearchResult{File: rec.SourceFile}

	switch mode {
	case ModeDependency:
		var haystack []string
		for _, dep := range rec.Summary.Dependencies.Internal {
			haystack = append(haystack, dep.Path)
		}
		for _, dep := range rec.Summary.Dependencies.External {
			haystack = append(haystack, dep.Name)
		}
		res.Matches = matchAny(haystack, keywords)

	case ModeComponent:
		var names []string
		for _, c := range rec.Summary.KeyComponents {
			names = append(names, c.Name)
		}
		res.Matches = matchAny(names, keywords)

	case ModeExports:
		var sigs []string
		for _, e := range rec.Summary.PublicAPI {
			sigs = append(sigs, e.Signature)
		}
		res.Matches = matchAny(sigs, keywords)

	default: // keyword
		serialized, err := json.Marshal(rec)
		if err != nil {
			return res, false
		}
		text := strings.ToLower(string(serialized))
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				res.Matches = append(res.Matches, kw)
			}
		}
		res.Matched = len(res.Matches)
		res.Total = len(keywords)
	}

	return res, len(res.Matches) > 0
}

// matchAny returns the candidates containing any keyword as a substring,
// case-insensitive.
func matchAny(candidates, keywords []string) []string {
	var matched []string
	for _, cand := range candidates {
		lower := strings.ToLower(cand)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, cand)
				break
			}
		}
	}
	return matched
}
