package gh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	perr "ghappkit/internal/platform/errors"
)

// call performs a request and decodes the JSON response into T
func call[T any](ctx context.Context, r Requester, method, path string, body any) (T, error) {
	var out T
	raw, err := r.Request(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s %s", method, path)
	}
	return out, nil
}

func send(ctx context.Context, r Requester, method, path string, body any) error {
	_, err := r.Request(ctx, method, path, body)
	return err
}

// repoPath turns a repository API url (https://api.github.com/repos/o/n) into "o/n"
func repoPath(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return ""
	}
	_, after, ok := strings.Cut(u.Path, "/repos/")
	if !ok {
		return ""
	}
	return after
}

// issueURLParts splits an issue API url into "o/n" and the issue number
func issueURLParts(apiURL string) (repo string, number int) {
	rest := repoPath(apiURL)
	repo, tail, _ := strings.Cut(rest, "/issues/")
	if _, err := fmt.Sscanf(tail, "%d", &number); err != nil {
		return repo, 0
	}
	return repo, number
}

// User

type user struct{ d UserData }

// NewUser builds a real User
func NewUser(d UserData) User { return user{d: d} }

func (u user) ID() int64      { return u.d.ID }
func (u user) Login() string  { return u.d.Login }
func (u user) Type() string   { return u.d.Type }
func (u user) String() string { return u.d.Login }

// Label

type label struct{ d LabelData }

// NewLabel builds a real Label
func NewLabel(d LabelData) Label { return label{d: d} }

func (l label) ID() int64     { return l.d.ID }
func (l label) Name() string  { return l.d.Name }
func (l label) Color() string { return l.d.Color }

// Reaction

type reaction struct{ d ReactionData }

// NewReaction builds a real Reaction
func NewReaction(d ReactionData) Reaction { return reaction{d: d} }

func (r reaction) ID() int64                { return r.d.ID }
func (r reaction) Content() ReactionContent { return r.d.Content }
func (r reaction) User() User               { return NewUser(r.d.User) }

// Repository

type repository struct {
	d RepositoryData
	r Requester
}

// NewRepository builds a real Repository that issues requests through r
func NewRepository(d RepositoryData, r Requester) Repository { return &repository{d: d, r: r} }

func (p *repository) ID() int64             { return p.d.ID }
func (p *repository) Name() string          { return p.d.Name }
func (p *repository) FullName() string      { return p.d.FullName }
func (p *repository) Owner() User           { return NewUser(p.d.Owner) }
func (p *repository) DefaultBranch() string { return p.d.DefaultBranch }

func (p *repository) Issue(ctx context.Context, number int) (Issue, error) {
	d, err := call[IssueData](ctx, p.r, http.MethodGet, fmt.Sprintf("/repos/%s/issues/%d", p.d.FullName, number), nil)
	if err != nil {
		return nil, err
	}
	return NewIssue(d, p, p.r), nil
}

// FileContent returns the decoded file at path; ref defaults to the default branch when empty
func (p *repository) FileContent(ctx context.Context, path, ref string) ([]byte, error) {
	endpoint := fmt.Sprintf("/repos/%s/contents/%s", p.d.FullName, strings.TrimPrefix(path, "/"))
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}
	d, err := call[ContentData](ctx, p.r, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if d.Type != "" && d.Type != "file" {
		return nil, perr.InvalidArgf("%s is a %s, not a file", path, d.Type)
	}
	if d.Encoding != "base64" {
		return []byte(d.Content), nil
	}
	b, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(d.Content, "\n", ""))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode content of %s", path)
	}
	return b, nil
}

// Issue

type issue struct {
	d    IssueData
	repo Repository
	r    Requester
}

// NewIssue builds a real Issue. repo may be nil; API paths then come from the issue's repository_url
func NewIssue(d IssueData, repo Repository, r Requester) Issue { return &issue{d: d, repo: repo, r: r} }

func (i *issue) ID() int64              { return i.d.ID }
func (i *issue) Number() int            { return i.d.Number }
func (i *issue) Title() string          { return i.d.Title }
func (i *issue) Body() string           { return i.d.Body }
func (i *issue) State() string          { return i.d.State }
func (i *issue) User() User             { return NewUser(i.d.User) }
func (i *issue) Repository() Repository { return i.repo }

func (i *issue) Labels() []Label {
	out := make([]Label, 0, len(i.d.Labels))
	for _, l := range i.d.Labels {
		out = append(out, NewLabel(l))
	}
	return out
}

func (i *issue) path(suffix string) string {
	full := repoPath(i.d.RepositoryURL)
	if i.repo != nil {
		full = i.repo.FullName()
	}
	return fmt.Sprintf("/repos/%s/issues/%d%s", full, i.d.Number, suffix)
}

func (i *issue) Comments(ctx context.Context) ([]IssueComment, error) {
	ds, err := call[[]CommentData](ctx, i.r, http.MethodGet, i.path("/comments"), nil)
	if err != nil {
		return nil, err
	}
	out := make([]IssueComment, 0, len(ds))
	for _, d := range ds {
		out = append(out, NewIssueComment(d, i.repo, i.r))
	}
	return out, nil
}

func (i *issue) Comment(ctx context.Context, body string) (IssueComment, error) {
	d, err := call[CommentData](ctx, i.r, http.MethodPost, i.path("/comments"), CommentRequest{Body: body})
	if err != nil {
		return nil, err
	}
	return NewIssueComment(d, i.repo, i.r), nil
}

// AddLabels is a no-op without labels; the API rejects an empty list
func (i *issue) AddLabels(ctx context.Context, labels ...string) error {
	if len(labels) == 0 {
		return nil
	}
	return send(ctx, i.r, http.MethodPost, i.path("/labels"), LabelsRequest{Labels: labels})
}

func (i *issue) RemoveLabel(ctx context.Context, name string) error {
	return send(ctx, i.r, http.MethodDelete, i.path("/labels/"+url.PathEscape(name)), nil)
}

func (i *issue) Close(ctx context.Context) error {
	return send(ctx, i.r, http.MethodPatch, i.path(""), StateRequest{State: "closed"})
}

func (i *issue) CreateReaction(ctx context.Context, content ReactionContent) (Reaction, error) {
	d, err := call[ReactionData](ctx, i.r, http.MethodPost, i.path("/reactions"), ReactionRequest{Content: content})
	if err != nil {
		return nil, err
	}
	return NewReaction(d), nil
}

// IssueComment

type comment struct {
	d    CommentData
	repo Repository
	r    Requester
}

// NewIssueComment builds a real IssueComment. repo may be nil; API paths then come from issue_url
func NewIssueComment(d CommentData, repo Repository, r Requester) IssueComment {
	return &comment{d: d, repo: repo, r: r}
}

func (c *comment) ID() int64    { return c.d.ID }
func (c *comment) Body() string { return c.d.Body }
func (c *comment) User() User   { return NewUser(c.d.User) }

func (c *comment) path(suffix string) string {
	full, _ := issueURLParts(c.d.IssueURL)
	if c.repo != nil {
		full = c.repo.FullName()
	}
	return fmt.Sprintf("/repos/%s/issues/comments/%d%s", full, c.d.ID, suffix)
}

func (c *comment) CreateReaction(ctx context.Context, content ReactionContent) (Reaction, error) {
	d, err := call[ReactionData](ctx, c.r, http.MethodPost, c.path("/reactions"), ReactionRequest{Content: content})
	if err != nil {
		return nil, err
	}
	return NewReaction(d), nil
}

func (c *comment) Update(ctx context.Context, body string) error {
	if err := send(ctx, c.r, http.MethodPatch, c.path(""), CommentRequest{Body: body}); err != nil {
		return err
	}
	c.d.Body = body
	return nil
}

func (c *comment) Delete(ctx context.Context) error {
	return send(ctx, c.r, http.MethodDelete, c.path(""), nil)
}
