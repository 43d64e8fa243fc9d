// Package domain holds the triage rules and the text matching behind them
package domain

import (
	"slices"
	"strings"

	"ghappkit/internal/core/normalize"
)

// ConfigFile is the default name of the triage config under .github
const ConfigFile = "triage.yml"

// AuthorPlaceholder is replaced with the issue author login in greetings
const AuthorPlaceholder = "{author}"

// Config is the repository-hosted triage configuration
type Config struct {
	Greeting string `yaml:"greeting" json:"greeting"`
	Labels   []Rule `yaml:"labels"   json:"labels"   validate:"dive"`
	// Disable lists slash commands that must not run on this repository
	Disable []string `yaml:"disable"  json:"disable"  validate:"dive,required"`
}

// Rule adds Label to issues mentioning any of Keywords
type Rule struct {
	Label    string   `yaml:"label"    json:"label"    validate:"required,label_name"`
	Keywords []string `yaml:"keywords" json:"keywords" validate:"min=1,dive,required"`
}

// Enabled reports whether the slash command name may run
func (c Config) Enabled(command string) bool {
	return !slices.Contains(c.Disable, command)
}

// Match returns the labels whose rules match text, in rule order without duplicates
func (c Config) Match(text string) []string {
	var out []string
	for _, r := range c.Labels {
		if slices.Contains(out, r.Label) {
			continue
		}
		for _, kw := range r.Keywords {
			if normalize.Contains(text, kw) {
				out = append(out, r.Label)
				break
			}
		}
	}
	return out
}

// Greet renders the greeting for author, empty when no greeting is configured
func (c Config) Greet(author string) string {
	return strings.ReplaceAll(c.Greeting, AuthorPlaceholder, author)
}

// Command is a slash command found in a comment, such as "/label a b"
type Command struct {
	Name string
	Args []string
}

// ParseCommand finds the first line of body starting with a slash command
func ParseCommand(body string) (Command, bool) {
	for line := range strings.Lines(body) {
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") || len(fields[0]) == 1 {
			continue
		}
		return Command{Name: strings.ToLower(fields[0][1:]), Args: fields[1:]}, true
	}
	return Command{}, false
}
