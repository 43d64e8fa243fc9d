package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	c := Config{Labels: []Rule{
		{Label: "kind/bug", Keywords: []string{"crash", "exception"}},
		{Label: "area/startup", Keywords: []string{"on start", "startup"}},
		{Label: "kind/bug", Keywords: []string{"broken"}},
		{Label: "area/native", Keywords: []string{"native"}},
	}}

	assert.Equal(t, []string{"kind/bug", "area/startup"}, c.Match("CRASH on START, it is broken"))
	assert.Equal(t, []string{"area/native"}, c.Match("Ｎａｔｉｖｅ image"))
	assert.Empty(t, c.Match("works fine"))
}

func TestMatchIgnoresAccents(t *testing.T) {
	c := Config{Labels: []Rule{
		{Label: "area/i18n", Keywords: []string{"résumé"}},
		{Label: "area/native", Keywords: []string{"native"}},
	}}

	assert.Equal(t, []string{"area/i18n", "area/native"}, c.Match("Resume upload crashes in NATÏVE mode"))
	assert.Equal(t, []string{"area/i18n"}, c.Match("re\u0301sume\u0301 page"))
}

func TestGreet(t *testing.T) {
	c := Config{Greeting: "Thanks @{author}!"}
	assert.Equal(t, "Thanks @yrodiere!", c.Greet("yrodiere"))
	assert.Empty(t, Config{}.Greet("yrodiere"))
}

func TestEnabled(t *testing.T) {
	assert.True(t, Config{}.Enabled("label"))
	assert.True(t, Config{Disable: []string{"close"}}.Enabled("label"))
	assert.False(t, Config{Disable: []string{"label"}}.Enabled("label"))
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		body string
		want Command
		ok   bool
	}{
		{"/label a b", Command{Name: "label", Args: []string{"a", "b"}}, true},
		{"thanks!\n  /Label triage/needs-info\n/close", Command{Name: "label", Args: []string{"triage/needs-info"}}, true},
		{"/close", Command{Name: "close", Args: []string{}}, true},
		{"see a/b/c", Command{}, false},
		{"/ nothing", Command{}, false},
		{"", Command{}, false},
	}
	for _, c := range cases {
		got, ok := ParseCommand(c.body)
		assert.Equal(t, c.ok, ok, c.body)
		assert.Equal(t, c.want, got, c.body)
	}
}
