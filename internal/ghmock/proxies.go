package ghmock

import (
	"context"

	"ghappkit/internal/gh"
	"ghappkit/internal/mocking"
)

// bound returns the real object behind h; fallback only runs when one is bound
func bound[T any](h *mocking.Handle) T {
	r, _ := h.Real().(T)
	return r
}

// Issue is the proxy for gh.Issue
type Issue struct{ *mocking.Handle }

var _ gh.Issue = Issue{}

func (p Issue) r() gh.Issue { return bound[gh.Issue](p.Handle) }

// ID returns the identity id without intercepting
func (p Issue) ID() int64 { return p.Identity().ID }

func (p Issue) Number() int {
	return mocking.Must[int](p.Invoke(mNumber, nil, func(mocking.Args) (any, error) { return p.r().Number(), nil }))
}

func (p Issue) Title() string {
	return mocking.Must[string](p.Invoke(mTitle, nil, func(mocking.Args) (any, error) { return p.r().Title(), nil }))
}

func (p Issue) Body() string {
	return mocking.Must[string](p.Invoke(mBody, nil, func(mocking.Args) (any, error) { return p.r().Body(), nil }))
}

func (p Issue) State() string {
	return mocking.Must[string](p.Invoke(mState, nil, func(mocking.Args) (any, error) { return p.r().State(), nil }))
}

func (p Issue) User() gh.User {
	return mocking.Must[gh.User](p.Invoke(mUser, nil, func(mocking.Args) (any, error) { return p.r().User(), nil }))
}

func (p Issue) Labels() []gh.Label {
	return mocking.Must[[]gh.Label](p.Invoke(mLabels, nil, func(mocking.Args) (any, error) { return p.r().Labels(), nil }))
}

func (p Issue) Repository() gh.Repository {
	return mocking.Must[gh.Repository](p.Invoke(mRepository, nil, func(mocking.Args) (any, error) { return p.r().Repository(), nil }))
}

func (p Issue) Comments(ctx context.Context) ([]gh.IssueComment, error) {
	return mocking.Result[[]gh.IssueComment](p.Invoke(mComments, nil, func(mocking.Args) (any, error) { return p.r().Comments(ctx) }))
}

func (p Issue) Comment(ctx context.Context, body string) (gh.IssueComment, error) {
	return mocking.Result[gh.IssueComment](p.Invoke(mComment, []any{body}, func(a mocking.Args) (any, error) {
		return p.r().Comment(ctx, mocking.Arg[string](a, 0))
	}))
}

func (p Issue) AddLabels(ctx context.Context, labels ...string) error {
	_, err := mocking.Result[any](p.Invoke(mAddLabels, mocking.Expand(nil, labels), func(a mocking.Args) (any, error) {
		return nil, p.r().AddLabels(ctx, mocking.Seq[string](a.Rest)...)
	}))
	return err
}

func (p Issue) RemoveLabel(ctx context.Context, name string) error {
	_, err := mocking.Result[any](p.Invoke(mRemoveLabel, []any{name}, func(a mocking.Args) (any, error) {
		return nil, p.r().RemoveLabel(ctx, mocking.Arg[string](a, 0))
	}))
	return err
}

func (p Issue) Close(ctx context.Context) error {
	_, err := mocking.Result[any](p.Invoke(mClose, nil, func(mocking.Args) (any, error) { return nil, p.r().Close(ctx) }))
	return err
}

func (p Issue) CreateReaction(ctx context.Context, content gh.ReactionContent) (gh.Reaction, error) {
	return mocking.Result[gh.Reaction](p.Invoke(mCreateReaction, []any{content}, func(a mocking.Args) (any, error) {
		return p.r().CreateReaction(ctx, mocking.Arg[gh.ReactionContent](a, 0))
	}))
}

// IssueComment is the proxy for gh.IssueComment
type IssueComment struct{ *mocking.Handle }

var _ gh.IssueComment = IssueComment{}

func (p IssueComment) r() gh.IssueComment { return bound[gh.IssueComment](p.Handle) }

// ID returns the identity id without intercepting
func (p IssueComment) ID() int64 { return p.Identity().ID }

func (p IssueComment) Body() string {
	return mocking.Must[string](p.Invoke(mBody, nil, func(mocking.Args) (any, error) { return p.r().Body(), nil }))
}

func (p IssueComment) User() gh.User {
	return mocking.Must[gh.User](p.Invoke(mUser, nil, func(mocking.Args) (any, error) { return p.r().User(), nil }))
}

func (p IssueComment) CreateReaction(ctx context.Context, content gh.ReactionContent) (gh.Reaction, error) {
	return mocking.Result[gh.Reaction](p.Invoke(mCreateReaction, []any{content}, func(a mocking.Args) (any, error) {
		return p.r().CreateReaction(ctx, mocking.Arg[gh.ReactionContent](a, 0))
	}))
}

func (p IssueComment) Update(ctx context.Context, body string) error {
	_, err := mocking.Result[any](p.Invoke(mUpdate, []any{body}, func(a mocking.Args) (any, error) {
		return nil, p.r().Update(ctx, mocking.Arg[string](a, 0))
	}))
	return err
}

func (p IssueComment) Delete(ctx context.Context) error {
	_, err := mocking.Result[any](p.Invoke(mDelete, nil, func(mocking.Args) (any, error) { return nil, p.r().Delete(ctx) }))
	return err
}

// Reaction is the proxy for gh.Reaction
type Reaction struct{ *mocking.Handle }

var _ gh.Reaction = Reaction{}

func (p Reaction) r() gh.Reaction { return bound[gh.Reaction](p.Handle) }

// ID returns the identity id without intercepting
func (p Reaction) ID() int64 { return p.Identity().ID }

func (p Reaction) Content() gh.ReactionContent {
	return mocking.Must[gh.ReactionContent](p.Invoke(mContent, nil, func(mocking.Args) (any, error) { return p.r().Content(), nil }))
}

func (p Reaction) User() gh.User {
	return mocking.Must[gh.User](p.Invoke(mUser, nil, func(mocking.Args) (any, error) { return p.r().User(), nil }))
}

// Repository is the proxy for gh.Repository
type Repository struct{ *mocking.Handle }

var _ gh.Repository = Repository{}

func (p Repository) r() gh.Repository { return bound[gh.Repository](p.Handle) }

// ID returns the identity id without intercepting
func (p Repository) ID() int64 { return p.Identity().ID }

// Name is the repository name; the mock name stays reachable through MockHandle().Name()
func (p Repository) Name() string {
	return mocking.Must[string](p.Invoke(mName, nil, func(mocking.Args) (any, error) { return p.r().Name(), nil }))
}

func (p Repository) FullName() string {
	return mocking.Must[string](p.Invoke(mFullName, nil, func(mocking.Args) (any, error) { return p.r().FullName(), nil }))
}

func (p Repository) Owner() gh.User {
	return mocking.Must[gh.User](p.Invoke(mOwner, nil, func(mocking.Args) (any, error) { return p.r().Owner(), nil }))
}

func (p Repository) DefaultBranch() string {
	return mocking.Must[string](p.Invoke(mDefaultBranch, nil, func(mocking.Args) (any, error) { return p.r().DefaultBranch(), nil }))
}

func (p Repository) Issue(ctx context.Context, number int) (gh.Issue, error) {
	return mocking.Result[gh.Issue](p.Invoke(mIssue, []any{number}, func(a mocking.Args) (any, error) {
		return p.r().Issue(ctx, mocking.Arg[int](a, 0))
	}))
}

func (p Repository) FileContent(ctx context.Context, path, ref string) ([]byte, error) {
	return mocking.Result[[]byte](p.Invoke(mFileContent, []any{path, ref}, func(a mocking.Args) (any, error) {
		return p.r().FileContent(ctx, mocking.Arg[string](a, 0), mocking.Arg[string](a, 1))
	}))
}

// User is the proxy for gh.User
type User struct{ *mocking.Handle }

var _ gh.User = User{}

func (p User) r() gh.User { return bound[gh.User](p.Handle) }

// ID returns the identity id without intercepting
func (p User) ID() int64 { return p.Identity().ID }

func (p User) Login() string {
	return mocking.Must[string](p.Invoke(mLogin, nil, func(mocking.Args) (any, error) { return p.r().Login(), nil }))
}

func (p User) Type() string {
	return mocking.Must[string](p.Invoke(mType, nil, func(mocking.Args) (any, error) { return p.r().Type(), nil }))
}

// Label is the proxy for gh.Label
type Label struct{ *mocking.Handle }

var _ gh.Label = Label{}

func (p Label) r() gh.Label { return bound[gh.Label](p.Handle) }

// ID returns the identity id without intercepting
func (p Label) ID() int64 { return p.Identity().ID }

func (p Label) Name() string {
	return mocking.Must[string](p.Invoke(mName, nil, func(mocking.Args) (any, error) { return p.r().Name(), nil }))
}

func (p Label) Color() string {
	return mocking.Must[string](p.Invoke(mColor, nil, func(mocking.Args) (any, error) { return p.r().Color(), nil }))
}
