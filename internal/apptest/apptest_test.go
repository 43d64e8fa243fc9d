package apptest_test

import (
	"errors"
	"testing"

	"ghappkit/internal/app"
	"ghappkit/internal/apptest"
	"ghappkit/internal/event"
	"ghappkit/internal/gh"
	"ghappkit/internal/mocking"
	perr "ghappkit/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issueID = 750705278

type listenerConfig struct {
	SomeProperty string `yaml:"someProperty"`
}

// issueListener reads config.yml when present and hands everything to behavior
func issueListener(t *testing.T, behavior func(c *app.Context, p *event.Issues, conf listenerConfig) error) *apptest.Harness {
	a := app.New("testing-framework")
	app.On(a, event.KindIssues, "opened", func(c *app.Context, p *event.Issues) error {
		var conf listenerConfig
		if err := c.ConfigFile("config.yml", &conf); err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
			return err
		}
		return behavior(c, p, conf)
	})
	return apptest.New(a, apptest.WithFixturesDir("testdata"), apptest.WithTestName(t.Name()))
}

func TestGHObjectMocking(t *testing.T) {
	var captured string
	h := issueListener(t, func(_ *app.Context, p *event.Issues, _ listenerConfig) error {
		captured = p.Issue.Body()
		return nil
	})

	err := h.Given().
		GitHub(func(mocks *apptest.Mocks) {
			mocks.Issue(issueID).On("Body").Return("someValue")
		}).
		When().PayloadFromFile("issue-opened.json").
		Event(event.KindIssues).
		Then().GitHub(func(*apptest.Mocks) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "someValue", captured)
}

func ghObjectVerify(h *apptest.Harness) error {
	return h.Given().
		GitHub(func(mocks *apptest.Mocks) {
			mocks.Issue(issueID).On("AddLabels", mocking.AnyOf[string]()).DoNothing()
			mocks.Issue(issueID).On("Body").Return("someValue")
		}).
		When().PayloadFromFile("issue-opened.json").
		Event(event.KindIssues).
		Then().GitHub(func(mocks *apptest.Mocks) error {
		if err := mocks.Verify(mocks.Issue(issueID)).Called("AddLabels", "someValue"); err != nil {
			return err
		}
		return mocks.VerifyNoMoreInteractions(mocks.GHObjects()...)
	})
}

func TestGHObjectVerify(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
			return p.Issue.AddLabels(c, "someValue")
		})
		require.NoError(t, ghObjectVerify(h))
	})

	t.Run("stubbed getters do not count as interactions", func(t *testing.T) {
		h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
			return p.Issue.AddLabels(c, p.Issue.Body())
		})
		require.NoError(t, ghObjectVerify(h))
	})

	t.Run("failure", func(t *testing.T) {
		h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
			return p.Issue.AddLabels(c, "otherValue")
		})
		err := ghObjectVerify(h)
		require.Error(t, err)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeVerification))
		assert.Contains(t, err.Error(), "Actual invocations have different arguments:\n"+
			"GHIssue#750705278.AddLabels(\"otherValue\");")
	})
}

func configFileMocking(h *apptest.Harness) error {
	return h.Given().
		GitHub(func(mocks *apptest.Mocks) {
			mocks.ConfigFileFromString("config.yml", "someProperty: valueFromConfigFile")
			mocks.Issue(issueID).On("AddLabels", mocking.AnyOf[string]()).DoNothing()
		}).
		When().PayloadFromFile("issue-opened.json").
		Event(event.KindIssues).
		Then().GitHub(func(mocks *apptest.Mocks) error {
		if err := mocks.Verify(mocks.Issue(issueID)).Called("AddLabels", "valueFromConfigFile"); err != nil {
			return err
		}
		return mocks.VerifyNoMoreInteractions(mocks.GHObjects()...)
	})
}

func TestConfigFileMocking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := issueListener(t, func(c *app.Context, p *event.Issues, conf listenerConfig) error {
			return p.Issue.AddLabels(c, conf.SomeProperty)
		})
		require.NoError(t, configFileMocking(h))
	})

	t.Run("failure", func(t *testing.T) {
		h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
			return p.Issue.AddLabels(c, "notValueFromConfigFile")
		})
		err := configFileMocking(h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Argument(s) are different! Wanted:\n"+
			"GHIssue#750705278.AddLabels(\n"+
			"    \"valueFromConfigFile\"\n"+
			");")
	})

	t.Run("from file", func(t *testing.T) {
		var got string
		h := issueListener(t, func(_ *app.Context, _ *event.Issues, conf listenerConfig) error {
			got = conf.SomeProperty
			return nil
		})
		err := h.Given().
			GitHub(func(mocks *apptest.Mocks) { mocks.ConfigFileFromFile("config.yml", "config.yml") }).
			When().PayloadFromFile("issue-opened.json").
			Event(event.KindIssues).
			Then().GitHub(func(*apptest.Mocks) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, "valueFromConfigFile", got)
	})

	t.Run("missing fixture", func(t *testing.T) {
		h := issueListener(t, func(*app.Context, *event.Issues, listenerConfig) error { return nil })
		err := h.Given().
			GitHub(func(mocks *apptest.Mocks) { mocks.ConfigFileFromFile("config.yml", "nope.yml") }).
			When().PayloadFromFile("issue-opened.json").
			Event(event.KindIssues).
			Err()
		assert.True(t, perr.IsCode(err, perr.ErrorCodeConfigFile))
	})
}

func TestMissingMock(t *testing.T) {
	h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
		comments, err := p.Issue.Comments(c)
		if err != nil {
			return err
		}
		_, err = comments[0].CreateReaction(c, gh.ReactionEyes)
		return err
	})

	verified := false
	err := h.When().PayloadFromFile("issue-opened.json").
		Event(event.KindIssues).
		Then().GitHub(func(mocks *apptest.Mocks) error {
		verified = true
		return mocks.Verify(mocks.Issue(issueID)).Called("AddLabels", "someValue")
	})
	require.Error(t, err)
	assert.False(t, verified, "verification is skipped when dispatch failed")
	assert.ErrorIs(t, err, mocking.ErrMissingBehavior)
	assert.Contains(t, err.Error(), "Mocked behavior is missing for GHIssue#750705278.Comments();."+
		" Use the following syntax to mock the behavior of GitHub objects:\n"+
		"    Given().\n"+
		"        GitHub(func(mocks *apptest.Mocks) {\n"+
		"            mocks.GHObject(\"GHIssue\", <the ID of the GHObject>).On(\"Comments\").\n"+
		"                Return([...])\n"+
		"        }).\n"+
		"        When(). [...]")
}

func TestStubbedCommentsReachDeeperObjects(t *testing.T) {
	h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
		comments, err := p.Issue.Comments(c)
		if err != nil {
			return err
		}
		_, err = comments[0].CreateReaction(c, gh.ReactionEyes)
		return err
	})

	err := h.Given().
		GitHub(func(mocks *apptest.Mocks) {
			mocks.Issue(issueID).On("Comments").Return([]gh.IssueComment{mocks.IssueComment(11)})
			mocks.IssueComment(11).On("CreateReaction", mocking.Any()).DoNothing()
		}).
		When().PayloadFromFile("issue-opened.json").
		Event(event.KindIssues).
		Then().GitHub(func(mocks *apptest.Mocks) error {
		if err := mocks.Verify(mocks.IssueComment(11)).Called("CreateReaction", gh.ReactionEyes); err != nil {
			return err
		}
		return mocks.VerifyNoMoreInteractions(mocks.GHObjects()...)
	})
	require.NoError(t, err)
}

func TestTransportStubsLetRealObjectsWork(t *testing.T) {
	h := issueListener(t, func(c *app.Context, p *event.Issues, _ listenerConfig) error {
		return p.Issue.Close(c)
	})
	err := h.Given().
		GitHub(func(mocks *apptest.Mocks) {
			mocks.Client().On("Request", "PATCH", mocking.Any(), mocking.Any()).Return([]byte(`{}`))
		}).
		When().PayloadFromFile("issue-opened.json").
		Event(event.KindIssues).
		Then().GitHub(func(mocks *apptest.Mocks) error {
		return mocks.Verify(mocks.Client()).Called("Request", "PATCH",
			"/repos/yrodiere/quarkus-github-playground/issues/1", gh.StateRequest{State: "closed"})
	})
	require.NoError(t, err)
}

func TestScenarioErrors(t *testing.T) {
	h := issueListener(t, func(*app.Context, *event.Issues, listenerConfig) error { return errors.New("unused") })

	err := h.When().PayloadFromFile("does-not-exist.json").Event(event.KindIssues).Err()
	assert.True(t, perr.IsCode(err, perr.ErrorCodePayload))

	err = h.When().PayloadFromString(`{"action":"opened"}`).Event(event.KindIssues).Then().
		GitHub(func(*apptest.Mocks) error { return nil })
	assert.True(t, perr.IsCode(err, perr.ErrorCodePayload))

	err = h.When().PayloadFromFile("issue-opened.json").Event(event.KindIssues).Err()
	assert.EqualError(t, err, "unused")
}
