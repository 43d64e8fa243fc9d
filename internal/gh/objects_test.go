package gh

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	perr "ghappkit/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	method, path string
	body         any
}

type fakeRequester struct {
	calls     []sent
	responses map[string]string
	err       error
}

func (f *fakeRequester) Request(_ context.Context, method, path string, body any) ([]byte, error) {
	f.calls = append(f.calls, sent{method, path, body})
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.responses[method+" "+path]; ok {
		return []byte(r), nil
	}
	return []byte(`{}`), nil
}

func testIssue(r Requester) Issue {
	repo := NewRepository(RepositoryData{ID: 1, Name: "repo", FullName: "octo/repo", DefaultBranch: "main"}, r)
	return NewIssue(IssueData{
		ID: 750705278, Number: 7, Title: "Crash", Body: "it broke", State: "open",
		User:   UserData{ID: 2, Login: "alice", Type: "User"},
		Labels: []LabelData{{ID: 3, Name: "bug", Color: "d73a4a"}},
	}, repo, r)
}

func TestIssueAccessors(t *testing.T) {
	i := testIssue(&fakeRequester{})
	assert.Equal(t, int64(750705278), i.ID())
	assert.Equal(t, 7, i.Number())
	assert.Equal(t, "it broke", i.Body())
	assert.Equal(t, "alice", i.User().Login())
	require.Len(t, i.Labels(), 1)
	assert.Equal(t, "bug", i.Labels()[0].Name())
	assert.Equal(t, "octo/repo", i.Repository().FullName())
}

func TestIssueRequests(t *testing.T) {
	ctx := context.Background()
	f := &fakeRequester{responses: map[string]string{
		"GET /repos/octo/repo/issues/7/comments":   `[{"id":11,"body":"first","user":{"id":2,"login":"alice"}}]`,
		"POST /repos/octo/repo/issues/7/reactions": `{"id":99,"content":"eyes"}`,
	}}
	i := testIssue(f)

	comments, err := i.Comments(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(11), comments[0].ID())

	require.NoError(t, i.AddLabels(ctx, "a", "b", "c"))
	require.NoError(t, i.AddLabels(ctx))
	require.NoError(t, i.RemoveLabel(ctx, "needs triage"))
	require.NoError(t, i.Close(ctx))
	r, err := i.CreateReaction(ctx, ReactionEyes)
	require.NoError(t, err)
	assert.Equal(t, ReactionEyes, r.Content())

	want := []sent{
		{http.MethodGet, "/repos/octo/repo/issues/7/comments", nil},
		{http.MethodPost, "/repos/octo/repo/issues/7/labels", LabelsRequest{Labels: []string{"a", "b", "c"}}},
		{http.MethodDelete, "/repos/octo/repo/issues/7/labels/needs%20triage", nil},
		{http.MethodPatch, "/repos/octo/repo/issues/7", StateRequest{State: "closed"}},
		{http.MethodPost, "/repos/octo/repo/issues/7/reactions", ReactionRequest{Content: ReactionEyes}},
	}
	assert.Equal(t, want, f.calls)
}

func TestIssuePathFromRepositoryURL(t *testing.T) {
	f := &fakeRequester{}
	i := NewIssue(IssueData{ID: 1, Number: 3, RepositoryURL: "https://api.github.com/repos/octo/other"}, nil, f)
	require.NoError(t, i.Close(context.Background()))
	assert.Equal(t, "/repos/octo/other/issues/3", f.calls[0].path)
}

func TestCommentRequests(t *testing.T) {
	ctx := context.Background()
	f := &fakeRequester{}
	c := NewIssueComment(CommentData{ID: 5, Body: "old", IssueURL: "https://api.github.com/repos/octo/repo/issues/7"}, nil, f)

	_, err := c.CreateReaction(ctx, ReactionHeart)
	require.NoError(t, err)
	require.NoError(t, c.Update(ctx, "new"))
	assert.Equal(t, "new", c.Body())
	require.NoError(t, c.Delete(ctx))

	assert.Equal(t, "/repos/octo/repo/issues/comments/5/reactions", f.calls[0].path)
	assert.Equal(t, http.MethodPatch, f.calls[1].method)
	assert.Equal(t, "/repos/octo/repo/issues/comments/5", f.calls[2].path)
}

func TestRepositoryFileContent(t *testing.T) {
	f := &fakeRequester{responses: map[string]string{
		"GET /repos/octo/repo/contents/.github/triage.yml?ref=main": `{"type":"file","encoding":"base64","content":"Z3JlZXRp\nbmc6IGhp\n"}`,
	}}
	repo := NewRepository(RepositoryData{ID: 1, Name: "repo", FullName: "octo/repo"}, f)

	b, err := repo.FileContent(context.Background(), ".github/triage.yml", "main")
	require.NoError(t, err)
	assert.Equal(t, "greeting: hi", string(b))
}

func TestRequestErrorsPassThrough(t *testing.T) {
	f := &fakeRequester{err: perr.ErrNotFound}
	_, err := testIssue(f).Comments(context.Background())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))
}

func TestReactionContent(t *testing.T) {
	assert.Equal(t, "EYES", ReactionEyes.String())
	assert.Equal(t, "PLUS_ONE", ReactionPlusOne.String())

	for _, in := range []string{"eyes", "EYES", "Eyes"} {
		c, err := ParseReactionContent(in)
		require.NoError(t, err)
		assert.Equal(t, ReactionEyes, c)
	}
	_, err := ParseReactionContent("thumbs")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeInvalidArgument))

	b, err := json.Marshal(ReactionRequest{Content: ReactionPlusOne})
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"+1"}`, string(b))
}
