// Package event decodes GitHub webhook payloads into typed payloads holding real gh objects
package event

import (
	"encoding/json"
	"strings"

	"ghappkit/internal/gh"
	perr "ghappkit/internal/platform/errors"
	"ghappkit/internal/platform/validate"
)

// Kind is the webhook event name, as sent in X-GitHub-Event
type Kind string

// Supported kinds
const (
	KindIssues       Kind = "issues"
	KindIssueComment Kind = "issue_comment"
	KindPing         Kind = "ping"
)

// ParseKind accepts the header value; case and surrounding spaces are ignored
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindIssues, KindIssueComment, KindPing:
		return k, nil
	default:
		return "", perr.Payloadf("unsupported event %q", s)
	}
}

// Header is the routing information every payload carries
type Header struct {
	Kind           Kind
	Action         string
	InstallationID int64
}

// Head returns the header
func (h Header) Head() Header { return h }

// Payload is a decoded event
type Payload interface {
	Head() Header
	// MapObjects replaces every gh object the payload holds with fn(object)
	// Results that do not implement the field's interface are ignored
	MapObjects(fn func(any) any)
}

// Issues is the payload of an issues event
type Issues struct {
	Header
	Issue      gh.Issue
	Repository gh.Repository
	Sender     gh.User
	// Label is set for labeled and unlabeled actions
	Label gh.Label
}

// MapObjects implements Payload
func (p *Issues) MapObjects(fn func(any) any) {
	p.Issue = mapAs(fn, p.Issue)
	p.Repository = mapAs(fn, p.Repository)
	p.Sender = mapAs(fn, p.Sender)
	p.Label = mapAs(fn, p.Label)
}

// IssueComment is the payload of an issue_comment event
type IssueComment struct {
	Header
	Issue      gh.Issue
	Comment    gh.IssueComment
	Repository gh.Repository
	Sender     gh.User
}

// MapObjects implements Payload
func (p *IssueComment) MapObjects(fn func(any) any) {
	p.Issue = mapAs(fn, p.Issue)
	p.Comment = mapAs(fn, p.Comment)
	p.Repository = mapAs(fn, p.Repository)
	p.Sender = mapAs(fn, p.Sender)
}

// Ping is sent once when a webhook is created
type Ping struct {
	Header
	Zen    string
	HookID int64
	// Repository is nil for organization and app level hooks
	Repository gh.Repository
}

// MapObjects implements Payload
func (p *Ping) MapObjects(fn func(any) any) { p.Repository = mapAs(fn, p.Repository) }

// RepositoryOf returns the repository an event happened in, nil when it has none
func RepositoryOf(p Payload) gh.Repository {
	switch v := p.(type) {
	case *Issues:
		return v.Repository
	case *IssueComment:
		return v.Repository
	case *Ping:
		return v.Repository
	default:
		return nil
	}
}

func mapAs[T any](fn func(any) any, v T) T {
	if any(v) == nil {
		return v
	}
	if m, ok := fn(v).(T); ok {
		return m
	}
	return v
}

// Decode parses raw as a kind event; every object it builds issues requests through r
func Decode(kind Kind, raw []byte, r gh.Requester) (Payload, error) {
	switch kind {
	case KindIssues:
		var w issuesWire
		if err := unmarshal(kind, raw, &w); err != nil {
			return nil, err
		}
		repo := gh.NewRepository(w.Repository, r)
		p := &Issues{
			Header:     header(kind, w.Action, w.Installation),
			Issue:      gh.NewIssue(w.Issue, repo, r),
			Repository: repo,
			Sender:     user(w.Sender),
		}
		if w.Label != nil {
			p.Label = gh.NewLabel(*w.Label)
		}
		return p, nil
	case KindIssueComment:
		var w issueCommentWire
		if err := unmarshal(kind, raw, &w); err != nil {
			return nil, err
		}
		repo := gh.NewRepository(w.Repository, r)
		return &IssueComment{
			Header:     header(kind, w.Action, w.Installation),
			Issue:      gh.NewIssue(w.Issue, repo, r),
			Comment:    gh.NewIssueComment(w.Comment, repo, r),
			Repository: repo,
			Sender:     user(w.Sender),
		}, nil
	case KindPing:
		var w pingWire
		if err := unmarshal(kind, raw, &w); err != nil {
			return nil, err
		}
		p := &Ping{Header: header(kind, "", w.Installation), Zen: w.Zen, HookID: w.HookID}
		if w.Repository != nil {
			p.Repository = gh.NewRepository(*w.Repository, r)
		}
		return p, nil
	default:
		return nil, perr.Payloadf("unsupported event %q", kind)
	}
}

func unmarshal(kind Kind, raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePayload, "decode %s payload", kind)
	}
	if err := validate.Struct(out, perr.ErrorCodePayload); err != nil {
		return perr.WithOp(err, "decode "+string(kind))
	}
	return nil
}

func header(kind Kind, action string, inst *installationWire) Header {
	h := Header{Kind: kind, Action: action}
	if inst != nil {
		h.InstallationID = inst.ID
	}
	return h
}

func user(d *gh.UserData) gh.User {
	if d == nil {
		return nil
	}
	return gh.NewUser(*d)
}
