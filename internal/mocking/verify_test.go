package mocking_test

import (
	"context"
	"testing"

	"ghappkit/internal/mocking"
	perr "ghappkit/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes fn in the executing phase and leaves the session verifying
func run(t *testing.T, s *mocking.Session, fn func()) {
	t.Helper()
	require.NoError(t, s.Execute())
	fn()
	require.NoError(t, s.Verify())
}

func TestVerifyCalled(t *testing.T) {
	wd := newWorld()
	ctx := context.Background()
	wd.handle.On("Tag", mocking.Any(), mocking.Any()).Return("ok")
	run(t, wd.s, func() {
		_, _ = wd.w.Tag(ctx, "p", "a")
		_, _ = wd.w.Tag(ctx, "p", "b")
	})

	require.NoError(t, mocking.Verify(wd.handle).Called("Tag", "p", "a"))
	require.NoError(t, mocking.Verify(wd.handle).Times(2).Called("Tag", "p", mocking.AnyOf[string]()))
	require.NoError(t, mocking.Verify(wd.handle).AtLeastOnce().Called("Tag", "p", "b"))
	require.NoError(t, mocking.Verify(wd.handle).Never().Called("Tag", "q", "a"))
	require.NoError(t, mocking.VerifyNoMoreInteractions(wd.handle))
}

func TestVerifyArgumentsAreDifferentSingleLine(t *testing.T) {
	wd := newWorld()
	wd.handle.On("Tag", mocking.Any()).DoNothing()
	run(t, wd.s, func() { _, _ = wd.w.Tag(context.Background(), "other") })

	err := mocking.Verify(wd.handle).Called("Tag", "some")
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeVerification))
	assert.Equal(t, "Argument(s) are different! Wanted:\n"+
		"Widget#1.Tag(\"some\");\n"+
		"Actual invocations have different arguments:\n"+
		"Widget#1.Tag(\"other\");", err.Error())
}

func TestVerifyArgumentsAreDifferentBlockForm(t *testing.T) {
	wd := newWorld()
	wd.handle.On("Tag", mocking.Any()).DoNothing()
	run(t, wd.s, func() { _, _ = wd.w.Tag(context.Background(), "x") })

	// the wanted call is too long for one line, so the short actual call follows it
	err := mocking.Verify(wd.handle).Called("Tag", "valueFromTheRepositoryConfigFile")
	assert.Equal(t, "Argument(s) are different! Wanted:\n"+
		"Widget#1.Tag(\n    \"valueFromTheRepositoryConfigFile\"\n);\n"+
		"Actual invocations have different arguments:\n"+
		"Widget#1.Tag(\n    \"x\"\n);", err.Error())
}

func TestVerifyWantedButNotInvoked(t *testing.T) {
	wd := newWorld()
	run(t, wd.s, func() {})

	err := mocking.Verify(wd.handle).Called("Name")
	assert.Equal(t, "Wanted but not invoked:\nWidget#1.Name();\nActually, there were zero interactions with this mock.", err.Error())

	wd2 := newWorld()
	wd2.handle.On("Child").DoNothing()
	run(t, wd2.s, func() { _, _ = wd2.w.Child(context.Background()) })
	err = mocking.Verify(wd2.handle).Called("Name")
	assert.Contains(t, err.Error(), "However, there was exactly 1 interaction with this mock:\nWidget#1.Child();")
}

func TestVerifyCounts(t *testing.T) {
	wd := newWorld()
	wd.handle.On("Name").Return("n")
	run(t, wd.s, func() {
		_ = wd.w.Name()
		_ = wd.w.Name()
	})

	err := mocking.Verify(wd.handle).Called("Name")
	assert.Equal(t, "Widget#1.Name();\nWanted 1 time:\nBut was 2 times.", err.Error())

	err = mocking.Verify(wd.handle).Never().Called("Name")
	assert.Contains(t, err.Error(), "Never wanted here:\nBut invoked here:\nWidget#1.Name();\nWidget#1.Name();")
}

func TestVerifyNoMoreInteractions(t *testing.T) {
	wd := newWorld()
	wd.handle.On("Name").Return("n")
	wd.handle.On("Tag", mocking.Any()).DoNothing()
	run(t, wd.s, func() {
		_ = wd.w.Name()
		_, _ = wd.w.Tag(context.Background(), "x")
		_, _ = wd.w.Child(context.Background()) // fallback, pre-verified
	})

	require.NoError(t, mocking.Verify(wd.handle).Called("Tag", "x"))
	err := mocking.VerifyNoMoreInteractions(wd.handle)
	assert.Equal(t, "No interactions wanted here:\n"+
		"But found this interaction on mock 'Widget#1':\n"+
		"Widget#1.Name();\n"+
		"***\n"+
		"For your reference, here is the list of all invocations ([?] - means unverified).\n"+
		"1. [?] Widget#1.Name();\n"+
		"2. Widget#1.Tag(\"x\");\n"+
		"3. Widget#1.Child();", err.Error())

	proxies := mocking.IgnoreStubs(wd.handle)
	assert.NoError(t, mocking.VerifyNoMoreInteractions(proxies...))
}

func TestVerificationNeedsVerifyingPhase(t *testing.T) {
	wd := newWorld()
	err := mocking.Verify(wd.handle).Called("Name")
	assert.True(t, perr.IsCode(err, perr.ErrorCodePhase))
	assert.True(t, perr.IsCode(mocking.VerifyNoMoreInteractions(wd.handle), perr.ErrorCodePhase))
}

func TestRenderingOfArguments(t *testing.T) {
	wd := newWorld()
	other := wd.s.View(wd.s.Resolve("Widget", 2)).(widgetProxy)
	wd.handle.On("Tag", mocking.Any(), mocking.Any(), mocking.Any()).DoNothing()
	run(t, wd.s, func() { _, _ = wd.w.Tag(context.Background(), "p", "q", "r") })

	err := mocking.Verify(wd.handle).Called("Tag", other, mocking.MatchedBy("short", func(string) bool { return false }), nil)
	assert.Contains(t, err.Error(), "Widget#1.Tag(Widget#2, <short>, nil);")
	assert.Contains(t, err.Error(), `Widget#1.Tag("p", "q", "r");`)
}
