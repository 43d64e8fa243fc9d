package event

import "ghappkit/internal/gh"

type installationWire struct {
	ID int64 `json:"id" validate:"required"`
}

type issuesWire struct {
	Action       string            `json:"action" validate:"required"`
	Issue        gh.IssueData      `json:"issue" validate:"required"`
	Repository   gh.RepositoryData `json:"repository" validate:"required"`
	Sender       *gh.UserData      `json:"sender"`
	Label        *gh.LabelData     `json:"label"`
	Installation *installationWire `json:"installation"`
}

type issueCommentWire struct {
	Action       string            `json:"action" validate:"required"`
	Issue        gh.IssueData      `json:"issue" validate:"required"`
	Comment      gh.CommentData    `json:"comment" validate:"required"`
	Repository   gh.RepositoryData `json:"repository" validate:"required"`
	Sender       *gh.UserData      `json:"sender"`
	Installation *installationWire `json:"installation"`
}

type pingWire struct {
	Zen          string             `json:"zen"`
	HookID       int64              `json:"hook_id" validate:"required"`
	Repository   *gh.RepositoryData `json:"repository"`
	Installation *installationWire  `json:"installation"`
}
