package rule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/reload/errors"
)

func TestNewRejectsInvalidSpecs(t *testing.T) {
	negative := -time.Second

	testCases := []struct {
		name string
		spec Spec
		code errors.ErrorCode
	}{
		{"empty command list", Spec{Path: "/src", Pattern: "*.rs"}, errors.ErrCodeConfigInvalid},
		{"empty executable", Spec{Path: "/src", Pattern: "*.rs", Command: []string{"", "x"}}, errors.ErrCodeConfigInvalid},
		{"empty path", Spec{Pattern: "*.rs", Command: []string{"echo"}}, errors.ErrCodeConfigInvalid},
		{"bad glob", Spec{Path: "/src", Pattern: "[", Command: []string{"echo"}}, errors.ErrCodeInvalidPattern},
		{"negative kill timeout", Spec{Path: "/src", Pattern: "*", Command: []string{"echo"}, KillTimeout: &negative}, errors.ErrCodeConfigInvalid},
		{"negative debounce", Spec{Path: "/src", Pattern: "*", Command: []string{"echo"}, Debounce: -time.Millisecond}, errors.ErrCodeConfigInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(tc.spec)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, tc.code), "got %v", err)
			assert.True(t, errors.IsConfigError(err))
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	r, err := New(Spec{Path: "/src", Pattern: "*.rs", Command: []string{"echo", "hi"}})
	require.NoError(t, err)

	assert.Equal(t, "/src", r.Name())
	assert.Equal(t, "/src", r.Path())
	assert.Equal(t, "*.rs", r.Pattern())
	assert.Equal(t, DefaultDebounce, r.Debounce())
	assert.Equal(t, 5*time.Second, r.KillTimeout())

	spec := r.ProcessSpec()
	assert.Equal(t, "echo", spec.Command)
	assert.Equal(t, []string{"hi"}, spec.Args)
	assert.Empty(t, spec.Dir)
}

func TestNewKeepsExplicitZeroKillTimeout(t *testing.T) {
	zero := time.Duration(0)
	r, err := New(Spec{Path: "/src", Pattern: "*", Command: []string{"echo"}, KillTimeout: &zero})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), r.KillTimeout())
}

func TestRuleIsNotMutatedThroughSpec(t *testing.T) {
	command := []string{"echo", "hi"}
	env := []string{"A=1"}
	ignore := []string{"target/**"}
	r, err := New(Spec{Path: "/src", Pattern: "*", Command: command, Env: env, Ignore: ignore})
	require.NoError(t, err)

	command[1] = "changed"
	env[0] = "A=2"
	ignore[0] = "other"
	assert.Equal(t, []string{"target/**"}, r.IgnorePatterns())
	got := r.ProcessSpec()
	assert.Equal(t, []string{"hi"}, got.Args)
	assert.Equal(t, []string{"A=1"}, got.Env)

	got.Args[0] = "mutated"
	assert.Equal(t, []string{"hi"}, r.ProcessSpec().Args)
}

func TestTriggers(t *testing.T) {
	r, err := New(Spec{
		Name:    "api",
		Path:    "/project",
		Pattern: "*.go",
		Ignore:  []string{"vendor"},
		Command: []string{"go", "run", "."},
	})
	require.NoError(t, err)

	assert.True(t, r.Triggers("/project/main.go"))
	assert.False(t, r.Triggers("/project/README.md"))
	assert.False(t, r.Triggers("/project/vendor/lib/x.go"))

	first, ok := r.FirstTrigger([]string{"/project/README.md", "/project/vendor/a.go", "/project/cmd/main.go"})
	assert.True(t, ok)
	assert.Equal(t, "/project/cmd/main.go", first)

	_, ok = r.FirstTrigger([]string{"/project/README.md"})
	assert.False(t, ok)
}

func TestTriggersRelativeToWatchedPath(t *testing.T) {
	r, err := New(Spec{Path: "/project/web", Pattern: "src/**/*.tsx", Command: []string{"npm", "start"}})
	require.NoError(t, err)

	assert.True(t, r.Triggers("/project/web/src/app/page.tsx"))
	assert.False(t, r.Triggers("/project/web/test/page.tsx"))
}

func TestTriggersHonorsIgnoreForRelativePath(t *testing.T) {
	oldWD, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	r, err := New(Spec{
		Path:    "web",
		Pattern: "**/*.ts",
		Ignore:  []string{"node_modules/**", "dist/**"},
		Command: []string{"npm", "start"},
	})
	require.NoError(t, err)

	assert.True(t, r.Triggers(filepath.Join("web", "src", "index.ts")))
	assert.False(t, r.Triggers(filepath.Join("web", "node_modules", "pkg", "index.ts")))
	assert.False(t, r.Triggers(filepath.Join("web", "dist", "main.ts")))
}

func TestRuleSetNames(t *testing.T) {
	a, err := New(Spec{Name: "a", Path: "/a", Pattern: "*", Command: []string{"true"}})
	require.NoError(t, err)
	b, err := New(Spec{Path: "/b", Pattern: "*", Command: []string{"true"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "/b"}, RuleSet{a, b}.Names())
}
