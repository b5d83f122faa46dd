// Package lexicon holds the keyword tables driving classification and
// search: exclusion and inclusion keyword sets, organisation names,
// technology synonym groups, and query-intent patterns. A Lexicon is built
// once at startup and treated as read-only afterwards.
//
// All matching downstream is lowercase substring matching, so every entry
// here must be lowercase. Substring (not word-boundary) semantics are
// intentional: the classifier thresholds were tuned against them.
package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Intent category names. These are the only keys accepted in the
// intent_patterns table.
const (
	IntentClosingSoon     = "closing_soon"
	IntentHighValue       = "high_value"
	IntentSMEFriendly     = "sme_friendly"
	IntentTechnologyFocus = "technology_focus"
)

// Lexicon is the static keyword configuration. Fields are populated from
// Default and optionally overridden per section from a YAML file; a
// non-empty section in the file replaces the default section wholesale.
type Lexicon struct {
	// Exclusions reject a record outright when any entry occurs in its
	// combined text.
	Exclusions []string `yaml:"exclusions"`
	// HighValue keywords score +5 each.
	HighValue []string `yaml:"high_value"`
	// MediumValue keywords score +3 each.
	MediumValue []string `yaml:"medium_value"`
	// Organisations score +10 each.
	Organisations []string `yaml:"organisations"`
	// TechKeywords score +2 each, but only when a ContextMarkers entry is
	// also present in the text.
	TechKeywords []string `yaml:"tech_keywords"`
	// ContextMarkers gate the TechKeywords rule.
	ContextMarkers []string `yaml:"context_markers"`
	// Synonyms maps a group key to its expansion terms.
	Synonyms map[string][]string `yaml:"synonyms"`
	// IntentPatterns maps an intent category to its regex sources.
	IntentPatterns map[string][]string `yaml:"intent_patterns"`

	compiled map[string][]*regexp.Regexp
}

// Default returns the built-in lexicon, compiled and ready to use.
func Default() *Lexicon {
	l := &Lexicon{
		Exclusions: []string{
			"catering", "cleaning", "janitorial", "hospitality", "school meals",
			"nursery", "teaching", "curriculum", "dental", "gp services",
			"hospital", "nhs trust", "social care", "care home",
			"housing association", "landscaping", "gardening", "plumbing",
			"roofing", "furniture", "stationery", "office supplies", "vending",
			"waste collection", "recycling", "pest control", "window cleaning",
			"car park", "bus route", "rail franchise", "road resurfacing",
			"street lighting", "sewerage", "water treatment", "leisure centre",
			"playground", "library service", "museum", "tourism",
		},
		HighValue: []string{
			"defence", "defense", "military", "weapon", "missile", "radar",
			"sonar", "submarine", "munitions", "ballistic", "armour",
			"warhead", "countermeasure", "electronic warfare", "surveillance",
			"reconnaissance", "stealth", "torpedo",
		},
		MediumValue: []string{
			"security", "aerospace", "avionics", "maritime", "tactical",
			"cyber", "encryption", "dual-use", "resilience",
			"interoperability", "situational awareness", "deterrence",
		},
		Organisations: []string{
			"ministry of defence", "dstl",
			"defence science and technology laboratory", "dasa",
			"defence and security accelerator", "defence equipment and support",
			"royal navy", "royal air force", "british army",
			"strategic command", "nato", "darpa", "european defence agency",
		},
		TechKeywords: []string{
			"ai", "quantum", "robotics", "sensors", "communications",
		},
		ContextMarkers: []string{
			"defence", "defense", "military", "armed forces", "battlefield",
			"combat", "soldier", "warfighter", "national security",
		},
		Synonyms: map[string][]string{
			"ai":             {"artificial intelligence", "machine learning", "deep learning", "neural networks"},
			"uav":            {"drone", "unmanned aerial vehicle", "uas", "quadcopter"},
			"cyber":          {"cybersecurity", "cyber security", "information security", "infosec"},
			"surveillance":   {"monitoring", "reconnaissance", "intelligence gathering", "observation"},
			"quantum":        {"quantum computing", "quantum sensing", "post-quantum"},
			"radar":          {"radio detection", "electromagnetic sensing", "phased array"},
			"communications": {"comms", "satcom", "tactical datalink", "radio"},
			"maritime":       {"naval", "underwater", "subsea", "littoral"},
			"space":          {"satellite", "orbital", "launch systems", "earth observation"},
			"autonomous":     {"autonomy", "unmanned", "uncrewed", "self-navigating"},
		},
		IntentPatterns: map[string][]string{
			IntentClosingSoon: {
				`closing soon`, `deadline`, `urgent`, `last chance`,
				`expir(es|ing|y)`, `this (week|month)`, `time.?sensitive`,
			},
			IntentHighValue: {
				`high.?value`, `large`, `major`, `multi.?million`,
				`[0-9]+\s*(million|m\b)`, `big.?budget`, `£\s*[0-9]`,
			},
			IntentSMEFriendly: {
				`\bsmes?\b`, `small business`, `small compan(y|ies)`,
				`start.?up`, `micro.?business`,
			},
			IntentTechnologyFocus: {
				`innovat`, `\br&d\b`, `research`, `emerging tech`,
				`cutting.?edge`, `novel`, `next.?generation`, `prototype`,
			},
		},
	}
	if err := l.compile(); err != nil {
		// Built-in patterns are fixed; a compile failure is a programming error.
		panic(fmt.Sprintf("lexicon: default patterns: %v", err))
	}
	return l
}

// Load returns the default lexicon with per-section overrides read from a
// YAML file. An empty path returns Default unchanged.
func Load(path string) (*Lexicon, error) {
	l := Default()
	if path == "" {
		return l, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	l.merge(&override)
	if err := l.compile(); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return l, nil
}

// Patterns returns the compiled regexes for an intent category.
func (l *Lexicon) Patterns(category string) []*regexp.Regexp {
	return l.compiled[category]
}

// IntentCategories returns the known intent category names in a fixed order.
func IntentCategories() []string {
	return []string{IntentClosingSoon, IntentHighValue, IntentSMEFriendly, IntentTechnologyFocus}
}

func (l *Lexicon) merge(o *Lexicon) {
	if len(o.Exclusions) > 0 {
		l.Exclusions = o.Exclusions
	}
	if len(o.HighValue) > 0 {
		l.HighValue = o.HighValue
	}
	if len(o.MediumValue) > 0 {
		l.MediumValue = o.MediumValue
	}
	if len(o.Organisations) > 0 {
		l.Organisations = o.Organisations
	}
	if len(o.TechKeywords) > 0 {
		l.TechKeywords = o.TechKeywords
	}
	if len(o.ContextMarkers) > 0 {
		l.ContextMarkers = o.ContextMarkers
	}
	if len(o.Synonyms) > 0 {
		l.Synonyms = o.Synonyms
	}
	if len(o.IntentPatterns) > 0 {
		l.IntentPatterns = o.IntentPatterns
	}
}

func (l *Lexicon) compile() error {
	known := map[string]bool{
		IntentClosingSoon:     true,
		IntentHighValue:       true,
		IntentSMEFriendly:     true,
		IntentTechnologyFocus: true,
	}
	compiled := make(map[string][]*regexp.Regexp, len(l.IntentPatterns))
	for category, sources := range l.IntentPatterns {
		if !known[category] {
			return fmt.Errorf("unknown intent category %q", category)
		}
		for _, src := range sources {
			re, err := regexp.Compile(src)
			if err != nil {
				return fmt.Errorf("intent pattern %q for %s: %w", src, category, err)
			}
			compiled[category] = append(compiled[category], re)
		}
	}
	l.compiled = compiled
	return nil
}
