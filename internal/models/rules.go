package models

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// RuleSpec is one entry of the smart playlist file.
type RuleSpec struct {
	Playlist string   `json:"playlist"`
	Channels []string `json:"channels"`
}

// RuleSet maps a smart playlist name to its spec, exactly as stored on disk:
//
//	{"Daily": {"playlist": "PL...", "channels": ["UC...", "UC..."]}}
type RuleSet map[string]RuleSpec

// Rule is a named [RuleSpec].
type Rule struct {
	Name       string
	PlaylistID string
	Channels   []string
}

// LoadRules reads and validates a smart playlist file.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidRules, err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates smart playlist JSON.
func ParseRules(data []byte) (RuleSet, error) {
	var rules RuleSet
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidRules, err)
	}
	if rules == nil {
		return nil, fmt.Errorf("%w: expected a JSON object of rules", shared.ErrInvalidRules)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks every rule has a target playlist and non-empty channel IDs.
func (rs RuleSet) Validate() error {
	var problems []string
	for _, r := range rs.Rules() {
		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, "rule with empty name")
		}
		if strings.TrimSpace(r.PlaylistID) == "" {
			problems = append(problems, fmt.Sprintf("%q: missing playlist", r.Name))
		}
		for i, ch := range r.Channels {
			if strings.TrimSpace(ch) == "" {
				problems = append(problems, fmt.Sprintf("%q: channel %d is empty", r.Name, i))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", shared.ErrInvalidRules, strings.Join(problems, "; "))
	}
	return nil
}

// Rules returns the rules sorted by name so sweeps visit them in a stable order.
func (rs RuleSet) Rules() []Rule {
	names := make([]string, 0, len(rs))
	for name := range rs {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		spec := rs[name]
		rules = append(rules, Rule{Name: name, PlaylistID: spec.Playlist, Channels: spec.Channels})
	}
	return rules
}

// Channels returns the distinct channel IDs referenced by any rule, sorted.
func (rs RuleSet) Channels() []string {
	seen := make(map[string]struct{})
	for _, spec := range rs {
		for _, ch := range spec.Channels {
			seen[ch] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for ch := range seen {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}
