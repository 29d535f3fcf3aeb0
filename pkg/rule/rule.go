// Package rule holds validated watch rules. A Rule is built once from
// configuration and never changes afterwards.
package rule

import (
	"fmt"
	"time"

	"github.com/grovetools/reload/errors"
	"github.com/grovetools/reload/pkg/glob"
	"github.com/grovetools/reload/pkg/process"
)

// DefaultDebounce is the window in which raw change notifications are
// coalesced into one batch.
const DefaultDebounce = 200 * time.Millisecond

// Spec is the unvalidated description of a rule.
type Spec struct {
	Name        string
	Path        string
	Pattern     string
	Ignore      []string
	Command     []string
	WorkingDir  string
	Env         []string
	KillTimeout *time.Duration
	Debounce    time.Duration
}

// Rule binds a watched path and pattern to the command it restarts.
type Rule struct {
	name        string
	path        string
	matcher     *glob.Matcher
	ignore      *glob.IgnoreMatcher
	ignoreList  []string
	command     string
	args        []string
	workingDir  string
	env         []string
	killTimeout time.Duration
	debounce    time.Duration
}

// New validates spec and compiles its patterns. Every failure is a
// configuration error.
func New(spec Spec) (*Rule, error) {
	if spec.Path == "" {
		return nil, errors.ConfigInvalid("rule path is empty")
	}
	if len(spec.Command) == 0 || spec.Command[0] == "" {
		return nil, errors.ConfigInvalid(fmt.Sprintf("rule %q: missing command", displayName(spec))).
			WithDetail("path", spec.Path)
	}

	matcher, err := glob.Compile(spec.Pattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("rule %q: bad pattern", displayName(spec)))
	}
	ignore, err := glob.CompileIgnore(spec.Path, spec.Ignore)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("rule %q: bad ignore list", displayName(spec)))
	}

	killTimeout := process.DefaultKillTimeout
	if spec.KillTimeout != nil {
		if *spec.KillTimeout < 0 {
			return nil, errors.ConfigInvalid(fmt.Sprintf("rule %q: kill_timeout must not be negative", displayName(spec)))
		}
		killTimeout = *spec.KillTimeout
	}
	debounce := spec.Debounce
	if debounce < 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("rule %q: debounce must not be negative", displayName(spec)))
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	return &Rule{
		name:        displayName(spec),
		path:        spec.Path,
		matcher:     matcher,
		ignore:      ignore,
		ignoreList:  append([]string(nil), spec.Ignore...),
		command:     spec.Command[0],
		args:        append([]string(nil), spec.Command[1:]...),
		workingDir:  spec.WorkingDir,
		env:         append([]string(nil), spec.Env...),
		killTimeout: killTimeout,
		debounce:    debounce,
	}, nil
}

func displayName(spec Spec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return spec.Path
}

// Name labels the rule in diagnostics.
func (r *Rule) Name() string { return r.name }

// Path is the watched file or directory.
func (r *Rule) Path() string { return r.path }

// Pattern is the source glob.
func (r *Rule) Pattern() string { return r.matcher.Pattern() }

// IgnorePatterns returns the ignore list as configured.
func (r *Rule) IgnorePatterns() []string {
	return append([]string(nil), r.ignoreList...)
}

// KillTimeout is the grace period before a child is killed.
func (r *Rule) KillTimeout() time.Duration { return r.killTimeout }

// Debounce is the coalescing window for change notifications.
func (r *Rule) Debounce() time.Duration { return r.debounce }

// Triggers reports whether p should cause a restart. The pattern is tried
// against p and against p relative to the watched path.
func (r *Rule) Triggers(p string) bool {
	return r.matcher.MatchesUnder(r.path, p) && !r.ignore.Ignored(p)
}

// FirstTrigger returns the first path in a batch that triggers a restart.
func (r *Rule) FirstTrigger(paths []string) (string, bool) {
	for _, p := range paths {
		if r.Triggers(p) {
			return p, true
		}
	}
	return "", false
}

// ProcessSpec describes the managed process.
func (r *Rule) ProcessSpec() process.Spec {
	return process.Spec{
		Command: r.command,
		Args:    append([]string(nil), r.args...),
		Dir:     r.workingDir,
		Env:     append([]string(nil), r.env...),
	}
}

// RuleSet is the ordered list of rules from one configuration file.
type RuleSet []*Rule

// Names lists the rule names in order.
func (rs RuleSet) Names() []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name()
	}
	return names
}
