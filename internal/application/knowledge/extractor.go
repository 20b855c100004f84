// Package knowledge extracts cooking rules from short instruction texts with
// keyword matching and reports rules that contradict each other.
package knowledge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
)

// MinTextLength is the shortest text, in characters, that is inspected.
const MinTextLength = 5

// Topics shared by rules that can contradict each other
const (
	TopicWhiskEggs = "whisk_eggs"
	TopicBaking    = "baking"
)

const (
	defaultBakeTemperature = 180
	defaultBakeMinutes     = 25
)

// Finding is an extracted rule together with what it is about.
type Finding struct {
	Rule    kitchen.KnowledgeRule
	Topic   string
	Negated bool
	Source  string
}

// Contradiction pairs a positive and a negative rule on the same topic.
type Contradiction struct {
	Topic    string `json:"topic"`
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

var (
	negationPattern = regexp.MustCompile(`(^|[^\p{L}])(нельзя|не|never|don't|do not|must not)([^\p{L}]|$)`)

	temperaturePattern = regexp.MustCompile(`(\d+)\s*(градус|degree|°)`)
	minutesPattern     = regexp.MustCompile(`(\d+)\s*(минут|minute|min)`)
)

type matcher struct {
	topic   string
	negated bool
	match   func(text string) bool
	rule    func(text string, russian bool) string
	conf    float64
}

var matchers = []matcher{
	{
		topic: TopicWhiskEggs,
		match: func(t string) bool {
			return strings.Contains(t, "взбей") || (strings.Contains(t, "whisk") && !negated(t))
		},
		rule: func(_ string, russian bool) string {
			if russian {
				return "IF есть яйца THEN взбить яйца"
			}
			return "IF eggs available THEN whisk eggs"
		},
		conf: 0.9,
	},
	{
		topic:   TopicWhiskEggs,
		negated: true,
		match: func(t string) bool {
			return negated(t) && (strings.Contains(t, "взб") || strings.Contains(t, "whisk"))
		},
		rule: func(_ string, russian bool) string {
			if russian {
				return "IF есть яйца THEN НЕ взбивать яйца"
			}
			return "IF eggs available THEN do NOT whisk eggs"
		},
		conf: 0.8,
	},
	{
		topic: TopicBaking,
		match: func(t string) bool {
			return strings.Contains(t, "градус") || strings.Contains(t, "degree")
		},
		rule: func(t string, russian bool) string {
			temp := firstNumber(temperaturePattern, t, defaultBakeTemperature)
			minutes := firstNumber(minutesPattern, t, defaultBakeMinutes)
			if russian {
				return fmt.Sprintf("IF тесто готово THEN выпекать при %dC %d минут", temp, minutes)
			}
			return fmt.Sprintf("IF dough ready THEN bake at %dC for %d minutes", temp, minutes)
		},
		conf: 0.95,
	},
}

// Extract runs every keyword matcher over each text and returns the findings
// in text order. Texts shorter than MinTextLength are skipped.
func Extract(texts []string) []Finding {
	var findings []Finding
	for _, text := range texts {
		if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
			continue
		}

		lowered := strings.ToLower(text)
		russian := hasCyrillic(lowered)
		for _, m := range matchers {
			if !m.match(lowered) {
				continue
			}
			findings = append(findings, Finding{
				Rule: kitchen.KnowledgeRule{
					Rule:       m.rule(lowered, russian),
					Confidence: m.conf,
				},
				Topic:   m.topic,
				Negated: m.negated,
				Source:  text,
			})
		}
	}
	return findings
}

// DetectContradictions reports one contradiction per topic that has both a
// positive and a negative finding.
func DetectContradictions(findings []Finding) []Contradiction {
	positive := make(map[string]string)
	negative := make(map[string]string)
	var order []string

	for _, f := range findings {
		target := positive
		if f.Negated {
			target = negative
		}
		if _, seen := target[f.Topic]; seen {
			continue
		}
		target[f.Topic] = f.Rule.Rule
		order = append(order, f.Topic)
	}

	var contradictions []Contradiction
	reported := make(map[string]bool)
	for _, topic := range order {
		if reported[topic] {
			continue
		}
		pos, okPos := positive[topic]
		neg, okNeg := negative[topic]
		if okPos && okNeg {
			contradictions = append(contradictions, Contradiction{Topic: topic, Positive: pos, Negative: neg})
			reported[topic] = true
		}
	}
	return contradictions
}

func negated(text string) bool {
	return negationPattern.MatchString(text)
}

func hasCyrillic(text string) bool {
	for _, r := range text {
		if r >= 'а' && r <= 'я' || r == 'ё' {
			return true
		}
	}
	return false
}

func firstNumber(p *regexp.Regexp, text string, fallback int) int {
	m := p.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	return n
}
