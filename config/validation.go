package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/pkg/rule"
	"github.com/grovetools/reload/util/pathutil"
)

// Validate checks the parts of the configuration the schema cannot express.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return errors.UnsupportedVersion(c.Version, SupportedVersion)
	}

	seen := make(map[string]int)
	for i, w := range c.Paths {
		if len(w.Command) == 0 || w.Command[0] == "" {
			return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("paths[%d]: missing command", i)).
				WithDetail("path", w.Path)
		}
		if w.Name == "" {
			continue
		}
		if prev, dup := seen[w.Name]; dup {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("paths[%d]: name %q already used by paths[%d]", i, w.Name, prev)).
				WithDetail("name", w.Name)
		}
		seen[w.Name] = i
	}

	return nil
}

// Rules builds the rule set in file order. Relative paths are anchored at
// the directory of the configuration file.
func (c *Config) Rules() (rule.RuleSet, error) {
	base := ""
	if c.file != "" {
		base = filepath.Dir(c.file)
	}

	rules := make(rule.RuleSet, 0, len(c.Paths))
	for i, w := range c.Paths {
		r, err := w.rule(base)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid entry paths[%d]", i)).
				WithDetail("index", i)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (w WatchConfig) rule(base string) (*rule.Rule, error) {
	path, err := pathutil.ResolveFrom(base, w.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "bad path").WithDetail("path", w.Path)
	}

	spec := rule.Spec{
		Name:    w.Name,
		Path:    path,
		Pattern: w.Pattern,
		Ignore:  w.Ignore,
		Command: w.Command,
		Env:     w.Env,
	}
	if w.WorkingDir != "" {
		spec.WorkingDir, err = pathutil.ResolveFrom(base, w.WorkingDir)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "bad working_dir").WithDetail("working_dir", w.WorkingDir)
		}
	}
	if w.KillTimeout != nil {
		d := time.Duration(*w.KillTimeout)
		spec.KillTimeout = &d
	}
	if w.Debounce != nil {
		spec.Debounce = time.Duration(*w.Debounce)
	}

	return rule.New(spec)
}
