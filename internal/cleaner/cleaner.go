package cleaner

import (
	"slices"
	"strings"

	"task-description-updater/internal/model"
)

type Service interface {
	// Subject removes every occurrence of every subject rule from a title
	Subject(title string) string

	// Body strips header rules, then footer rules, from a description
	Body(text string) string

	// Text applies one removal pass with the given rules
	Text(text string, rules []string) string
}

type service struct {
	rules model.RuleSet
}

func New(rules model.RuleSet) Service {
	return &service{rules: rules}
}

// Subject only removes text, the title is not trimmed or re-joined.
func (s *service) Subject(title string) string {
	for _, rule := range s.rules.Subjects {
		if rule == "" || !strings.Contains(title, rule) {
			continue
		}
		title = strings.ReplaceAll(title, rule, "")
	}
	return title
}

func (s *service) Body(text string) string {
	text = s.Text(text, s.rules.Headers)
	return s.Text(text, s.rules.Footers)
}

// Text removes all occurrences of each rule in order, drops lines that
// still equal a rule exactly, trims what is left and joins it on single
// spaces. A rule that spans several lines is only removed as a substring.
func (s *service) Text(text string, rules []string) string {
	for _, rule := range rules {
		if rule == "" {
			continue
		}
		text = strings.ReplaceAll(text, rule, "")
	}

	lines := splitLines(text)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" && slices.Contains(rules, line) {
			continue
		}
		kept = append(kept, strings.TrimSpace(line))
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// produce an extra empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
