// Package gh defines the closed catalog of GitHub domain objects handlers work with.
//
// Every object is an interface so the test harness can substitute an interceptable
// proxy for the real implementation. Real implementations are built from webhook or
// REST JSON and reach the network only through a Requester; accessors never do I/O.
package gh

import (
	"context"
	"strings"

	perr "ghappkit/internal/platform/errors"
)

// Type names of the catalog, as they appear in identities and diagnostics
const (
	TypeIssue        = "GHIssue"
	TypeIssueComment = "GHIssueComment"
	TypeReaction     = "GHReaction"
	TypeRepository   = "GHRepository"
	TypeUser         = "GHUser"
	TypeLabel        = "GHLabel"

	// TypeGitHub is the transport root, not a domain object
	TypeGitHub = "GitHub"
)

// Requester performs one REST call against the GitHub API and returns the raw response body
// body, when non-nil, is sent as JSON
type Requester interface {
	Request(ctx context.Context, method, path string, body any) ([]byte, error)
}

// Object is implemented by every domain object
type Object interface {
	ID() int64
}

// Issue is a GitHub issue
type Issue interface {
	Object
	Number() int
	Title() string
	Body() string
	State() string
	User() User
	Labels() []Label
	Repository() Repository

	Comments(ctx context.Context) ([]IssueComment, error)
	Comment(ctx context.Context, body string) (IssueComment, error)
	AddLabels(ctx context.Context, labels ...string) error
	RemoveLabel(ctx context.Context, name string) error
	Close(ctx context.Context) error
	CreateReaction(ctx context.Context, content ReactionContent) (Reaction, error)
}

// IssueComment is a comment on an issue or pull request
type IssueComment interface {
	Object
	Body() string
	User() User

	CreateReaction(ctx context.Context, content ReactionContent) (Reaction, error)
	Update(ctx context.Context, body string) error
	Delete(ctx context.Context) error
}

// Reaction is an emoji reaction on an issue or comment
type Reaction interface {
	Object
	Content() ReactionContent
	User() User
}

// Repository is a GitHub repository
type Repository interface {
	Object
	Name() string
	FullName() string
	Owner() User
	DefaultBranch() string

	Issue(ctx context.Context, number int) (Issue, error)
	FileContent(ctx context.Context, path, ref string) ([]byte, error)
}

// User is a GitHub user, bot, or organization
type User interface {
	Object
	Login() string
	Type() string
}

// Label is an issue label
type Label interface {
	Object
	Name() string
	Color() string
}

// ReactionContent is the closed set of reaction emoji, valued by its API name
type ReactionContent string

// Reaction contents
const (
	ReactionPlusOne  ReactionContent = "+1"
	ReactionMinusOne ReactionContent = "-1"
	ReactionLaugh    ReactionContent = "laugh"
	ReactionConfused ReactionContent = "confused"
	ReactionHeart    ReactionContent = "heart"
	ReactionHooray   ReactionContent = "hooray"
	ReactionRocket   ReactionContent = "rocket"
	ReactionEyes     ReactionContent = "eyes"
)

var reactionNames = map[ReactionContent]string{
	ReactionPlusOne:  "PLUS_ONE",
	ReactionMinusOne: "MINUS_ONE",
	ReactionLaugh:    "LAUGH",
	ReactionConfused: "CONFUSED",
	ReactionHeart:    "HEART",
	ReactionHooray:   "HOORAY",
	ReactionRocket:   "ROCKET",
	ReactionEyes:     "EYES",
}

// String returns the enum name (EYES, PLUS_ONE...) used in diagnostics
func (c ReactionContent) String() string {
	if s, ok := reactionNames[c]; ok {
		return s
	}
	return string(c)
}

// ParseReactionContent accepts either the API value ("eyes", "+1") or the enum name ("EYES")
func ParseReactionContent(s string) (ReactionContent, error) {
	for c, name := range reactionNames {
		if s == string(c) || strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return "", perr.InvalidArgf("unknown reaction content %q", s)
}
