// Package configfile reads per-repository app configuration stored under .github/
package configfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path"
	"reflect"
	"strings"

	"ghappkit/internal/gh"
	perr "ghappkit/internal/platform/errors"
	"ghappkit/internal/platform/validate"

	"gopkg.in/yaml.v3"
)

// Dir is where repositories keep app config files
const Dir = ".github"

// Provider fetches the raw content of a named config file for a repository
type Provider interface {
	Fetch(ctx context.Context, repo gh.Repository, name string) ([]byte, error)
}

// RepoProvider reads config files from the repository itself, on its default branch
type RepoProvider struct{}

// Fetch implements Provider; a missing file is reported as perr.ErrorCodeNotFound
func (RepoProvider) Fetch(ctx context.Context, repo gh.Repository, name string) ([]byte, error) {
	if repo == nil {
		return nil, perr.Newf(perr.ErrorCodeConfigFile, "config file %s: event has no repository", name)
	}
	p := Path(name)
	b, err := repo.FileContent(ctx, p, repo.DefaultBranch())
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "config file %s not found in %s", p, repo.FullName())
		}
		return nil, err
	}
	return b, nil
}

// Path returns the repository path of a config file; absolute names are kept as-is
func Path(name string) string {
	if strings.HasPrefix(name, "/") {
		return strings.TrimPrefix(name, "/")
	}
	return path.Join(Dir, name)
}

// Decode parses content into out, YAML unless name ends in .json, then validates out
func Decode(name string, content []byte, out any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeConfigFile, "parse %s", name)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		// an empty document leaves out at its zero value
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return perr.Wrapf(err, perr.ErrorCodeConfigFile, "parse %s", name)
		}
	}
	if reflect.Indirect(reflect.ValueOf(out)).Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(out, perr.ErrorCodeConfigFile); err != nil {
		return perr.WithOp(err, "config file "+name)
	}
	return nil
}
