package apptest

import (
	"context"
	"os"

	"ghappkit/internal/configfile"
	"ghappkit/internal/gh"
	"ghappkit/internal/ghmock"
	"ghappkit/internal/mocking"
	perr "ghappkit/internal/platform/errors"
)

// Mocks is the view tests get on the mocked GitHub: registered proxies keyed by id,
// the API transport, and config files
type Mocks struct {
	s              *mocking.Session
	installationID int64
	fixturesDir    string
	configs        configFiles
	err            error
}

func newMocks(s *mocking.Session, o Options) *Mocks {
	return &Mocks{s: s, installationID: o.InstallationID, fixturesDir: o.FixturesDir, configs: configFiles{}}
}

// Issue returns the issue registered under id
func (m *Mocks) Issue(id int64) ghmock.Issue {
	return ghmock.Object[ghmock.Issue](m.s, gh.TypeIssue, id)
}

// IssueComment returns the comment registered under id
func (m *Mocks) IssueComment(id int64) ghmock.IssueComment {
	return ghmock.Object[ghmock.IssueComment](m.s, gh.TypeIssueComment, id)
}

// Reaction returns the reaction registered under id
func (m *Mocks) Reaction(id int64) ghmock.Reaction {
	return ghmock.Object[ghmock.Reaction](m.s, gh.TypeReaction, id)
}

// Repository returns the repository registered under id
func (m *Mocks) Repository(id int64) ghmock.Repository {
	return ghmock.Object[ghmock.Repository](m.s, gh.TypeRepository, id)
}

// User returns the user registered under id
func (m *Mocks) User(id int64) ghmock.User {
	return ghmock.Object[ghmock.User](m.s, gh.TypeUser, id)
}

// Label returns the label registered under id
func (m *Mocks) Label(id int64) ghmock.Label {
	return ghmock.Object[ghmock.Label](m.s, gh.TypeLabel, id)
}

// GHObject returns the handle registered for a type name such as "GHIssue"
func (m *Mocks) GHObject(typ string, id int64) *mocking.Handle { return m.s.Resolve(typ, id) }

// GHObjects returns every registered domain object with stubbed invocations already
// accounted for, ready for VerifyNoMoreInteractions
func (m *Mocks) GHObjects() []mocking.Proxy {
	hs := m.s.Objects()
	ps := make([]mocking.Proxy, len(hs))
	for i, h := range hs {
		ps[i] = h
	}
	return mocking.IgnoreStubs(ps...)
}

// Client returns the API transport of the installation
func (m *Mocks) Client() ghmock.GitHub { return ghmock.Transport(m.s, m.installationID) }

// ConfigFileFromString serves content as the repository config file name
func (m *Mocks) ConfigFileFromString(name, content string) {
	m.configs[configfile.Path(name)] = []byte(content)
}

// ConfigFileFromFile serves a fixture file as the repository config file name
// A read error fails the scenario when the event is sent
func (m *Mocks) ConfigFileFromFile(name, path string) {
	b, err := os.ReadFile(fixturePath(m.fixturesDir, path))
	if err != nil {
		if m.err == nil {
			m.err = perr.Wrapf(err, perr.ErrorCodeConfigFile, "read config file fixture %s", path)
		}
		return
	}
	m.configs[configfile.Path(name)] = b
}

// Verify starts a verification on p
func (m *Mocks) Verify(p mocking.Proxy) *mocking.Verification { return mocking.Verify(p) }

// VerifyNoMoreInteractions fails on the first unverified invocation of ps
func (m *Mocks) VerifyNoMoreInteractions(ps ...mocking.Proxy) error {
	return mocking.VerifyNoMoreInteractions(ps...)
}

// configFiles serves config files registered by the test; anything else is not found
type configFiles map[string][]byte

func (c configFiles) Fetch(_ context.Context, _ gh.Repository, name string) ([]byte, error) {
	if b, ok := c[configfile.Path(name)]; ok {
		return b, nil
	}
	return nil, perr.NotFoundf("config file %s is not mocked", configfile.Path(name))
}
