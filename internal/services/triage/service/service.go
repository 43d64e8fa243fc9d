// Package service implements the triage app: keyword labelling and greetings on new issues,
// slash commands on issue comments
package service

import (
	"ghappkit/internal/app"
	"ghappkit/internal/event"
	"ghappkit/internal/gh"
	perr "ghappkit/internal/platform/errors"
	dom "ghappkit/internal/services/triage/domain"
)

// Name is the app name used in logs
const Name = "triage"

// Config for the triage service
type Config struct {
	// ConfigFile is read from .github of the event repository
	ConfigFile string
}

// Service holds the triage handlers
type Service struct {
	Cfg Config
}

// New registers the triage handlers on a new app
func New(cfg Config, opts ...app.Option) *app.App {
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = dom.ConfigFile
	}
	s := &Service{Cfg: cfg}
	a := app.New(Name, opts...)
	app.On(a, event.KindIssues, "opened", s.IssueOpened)
	app.On(a, event.KindIssueComment, "created", s.CommentCreated)
	return a
}

// config reads the repository triage config; ok is false when the repository has none
func (s *Service) config(c *app.Context) (conf dom.Config, ok bool, err error) {
	if err := c.ConfigFile(s.Cfg.ConfigFile, &conf); err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return conf, false, nil
		}
		return conf, false, err
	}
	return conf, true, nil
}

// IssueOpened labels the issue from the configured keywords and posts the greeting
func (s *Service) IssueOpened(c *app.Context, p *event.Issues) error {
	if isBot(p.Sender) {
		return nil
	}
	conf, ok, err := s.config(c)
	if err != nil {
		return err
	}
	if !ok {
		c.Log().Debug().Str("file", s.Cfg.ConfigFile).Msg("no triage config, skipping")
		return nil
	}

	issue := p.Issue
	if labels := conf.Match(issue.Title() + "\n" + issue.Body()); len(labels) > 0 {
		if err := issue.AddLabels(c, labels...); err != nil {
			return perr.WithOp(err, "add labels")
		}
		c.Log().Info().Strs("labels", labels).Int("issue", issue.Number()).Msg("issue labelled")
	}

	if conf.Greeting == "" {
		return nil
	}
	author := ""
	if u := issue.User(); u != nil {
		author = u.Login()
	}
	if _, err := issue.Comment(c, conf.Greet(author)); err != nil {
		return perr.WithOp(err, "greet")
	}
	return nil
}

// CommentCreated runs the slash command of a new comment and acknowledges it with an EYES reaction
func (s *Service) CommentCreated(c *app.Context, p *event.IssueComment) error {
	if isBot(p.Sender) {
		return nil
	}
	cmd, found := dom.ParseCommand(p.Comment.Body())
	if !found || cmd.Name != "label" || len(cmd.Args) == 0 {
		return nil
	}
	conf, _, err := s.config(c)
	if err != nil {
		return err
	}
	if !conf.Enabled(cmd.Name) {
		c.Log().Debug().Str("command", cmd.Name).Msg("command disabled")
		return nil
	}

	if err := p.Issue.AddLabels(c, cmd.Args...); err != nil {
		return perr.WithOp(err, "label command")
	}
	if _, err := p.Comment.CreateReaction(c, gh.ReactionEyes); err != nil {
		return perr.WithOp(err, "acknowledge command")
	}
	return nil
}

func isBot(u gh.User) bool { return u != nil && u.Type() == "Bot" }
