// Package ghmock plugs the gh object catalog into the mocking engine: one typed proxy per
// domain interface plus a proxy for the API transport
package ghmock

import (
	"ghappkit/internal/gh"
	"ghappkit/internal/mocking"
)

func fixed(name string, params int) mocking.Method { return mocking.Method{Name: name, Params: params} }

var (
	mNumber         = fixed("Number", 0)
	mTitle          = fixed("Title", 0)
	mBody           = fixed("Body", 0)
	mState          = fixed("State", 0)
	mUser           = fixed("User", 0)
	mLabels         = fixed("Labels", 0)
	mRepository     = fixed("Repository", 0)
	mComments       = fixed("Comments", 0)
	mComment        = fixed("Comment", 1)
	mAddLabels      = mocking.Method{Name: "AddLabels", Params: 1, Variadic: true}
	mRemoveLabel    = fixed("RemoveLabel", 1)
	mClose          = fixed("Close", 0)
	mCreateReaction = fixed("CreateReaction", 1)
	mUpdate         = fixed("Update", 1)
	mDelete         = fixed("Delete", 0)
	mContent        = fixed("Content", 0)
	mName           = fixed("Name", 0)
	mFullName       = fixed("FullName", 0)
	mOwner          = fixed("Owner", 0)
	mDefaultBranch  = fixed("DefaultBranch", 0)
	mIssue          = fixed("Issue", 1)
	mFileContent    = fixed("FileContent", 2)
	mLogin          = fixed("Login", 0)
	mType           = fixed("Type", 0)
	mColor          = fixed("Color", 0)
	mRequest        = fixed("Request", 3)
)

var methods = map[string][]mocking.Method{
	gh.TypeIssue: {
		mNumber, mTitle, mBody, mState, mUser, mLabels, mRepository,
		mComments, mComment, mAddLabels, mRemoveLabel, mClose, mCreateReaction,
	},
	gh.TypeIssueComment: {mBody, mUser, mCreateReaction, mUpdate, mDelete},
	gh.TypeReaction:     {mContent, mUser},
	gh.TypeRepository:   {mName, mFullName, mOwner, mDefaultBranch, mIssue, mFileContent},
	gh.TypeUser:         {mLogin, mType},
	gh.TypeLabel:        {mName, mColor},
	gh.TypeGitHub:       {mRequest},
}

// Catalog implements mocking.Catalog for the gh types
type Catalog struct{}

var _ mocking.Catalog = Catalog{}

// Identify maps a real gh object to its identity. Proxies are never identified, so a
// proxy handed back to the engine is not wrapped twice
func (Catalog) Identify(v any) (mocking.Identity, bool) {
	if _, ok := v.(mocking.Proxy); ok {
		return mocking.Identity{}, false
	}
	var typ string
	switch v.(type) {
	case gh.Issue:
		typ = gh.TypeIssue
	case gh.IssueComment:
		typ = gh.TypeIssueComment
	case gh.Reaction:
		typ = gh.TypeReaction
	case gh.Repository:
		typ = gh.TypeRepository
	case gh.Label:
		typ = gh.TypeLabel
	case gh.User:
		typ = gh.TypeUser
	default:
		return mocking.Identity{}, false
	}
	return mocking.Identity{Type: typ, ID: v.(gh.Object).ID()}, true
}

// View wraps h in the proxy of its type; unknown types get the bare handle
func (Catalog) View(h *mocking.Handle) any {
	switch h.Identity().Type {
	case gh.TypeIssue:
		return Issue{h}
	case gh.TypeIssueComment:
		return IssueComment{h}
	case gh.TypeReaction:
		return Reaction{h}
	case gh.TypeRepository:
		return Repository{h}
	case gh.TypeUser:
		return User{h}
	case gh.TypeLabel:
		return Label{h}
	case gh.TypeGitHub:
		return GitHub{h}
	default:
		return h
	}
}

// Methods lists the interceptable methods of typ
func (Catalog) Methods(typ string) []mocking.Method { return methods[typ] }

// NewSession starts a mocking session over the gh catalog
func NewSession() *mocking.Session { return mocking.NewSession(Catalog{}) }
