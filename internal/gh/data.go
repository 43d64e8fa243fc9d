package gh

// Wire shapes shared by webhook payloads and REST responses. Only fields handlers use are kept.

// UserData is the JSON form of a user
type UserData struct {
	ID    int64  `json:"id" validate:"required"`
	Login string `json:"login" validate:"required"`
	Type  string `json:"type"`
}

// LabelData is the JSON form of a label
type LabelData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

// RepositoryData is the JSON form of a repository
type RepositoryData struct {
	ID            int64    `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	FullName      string   `json:"full_name" validate:"required"`
	Owner         UserData `json:"owner"`
	DefaultBranch string   `json:"default_branch"`
}

// IssueData is the JSON form of an issue
type IssueData struct {
	ID            int64       `json:"id" validate:"required"`
	Number        int         `json:"number" validate:"required"`
	Title         string      `json:"title"`
	Body          string      `json:"body"`
	State         string      `json:"state"`
	User          UserData    `json:"user"`
	Labels        []LabelData `json:"labels"`
	RepositoryURL string      `json:"repository_url"`
}

// CommentData is the JSON form of an issue comment
type CommentData struct {
	ID       int64    `json:"id" validate:"required"`
	Body     string   `json:"body"`
	User     UserData `json:"user"`
	IssueURL string   `json:"issue_url"`
}

// ReactionData is the JSON form of a reaction
type ReactionData struct {
	ID      int64           `json:"id"`
	Content ReactionContent `json:"content"`
	User    UserData        `json:"user"`
}

// ContentData is the JSON form of a repository file returned by the contents API
type ContentData struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	Path     string `json:"path"`
}

// Request bodies sent by the real implementations

// LabelsRequest adds labels to an issue
type LabelsRequest struct {
	Labels []string `json:"labels"`
}

// CommentRequest creates or edits a comment
type CommentRequest struct {
	Body string `json:"body"`
}

// ReactionRequest creates a reaction
type ReactionRequest struct {
	Content ReactionContent `json:"content"`
}

// StateRequest changes an issue state
type StateRequest struct {
	State string `json:"state"`
}
