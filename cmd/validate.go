package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/reload/cli"
	"github.com/grovetools/reload/pkg/rule"
)

// ruleView is the resolved form of a rule printed by validate.
type ruleView struct {
	Name        string   `yaml:"name" json:"name"`
	Path        string   `yaml:"path" json:"path"`
	Pattern     string   `yaml:"pattern" json:"pattern"`
	Ignore      []string `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Command     []string `yaml:"command" json:"command"`
	WorkingDir  string   `yaml:"working_dir,omitempty" json:"working_dir,omitempty"`
	Env         []string `yaml:"env,omitempty" json:"env,omitempty"`
	KillTimeout string   `yaml:"kill_timeout" json:"kill_timeout"`
	Debounce    string   `yaml:"debounce" json:"debounce"`
}

type validateOutput struct {
	Config string     `yaml:"config" json:"config"`
	Rules  []ruleView `yaml:"rules" json:"rules"`
}

func newRuleView(r *rule.Rule) ruleView {
	spec := r.ProcessSpec()
	return ruleView{
		Name:        r.Name(),
		Path:        r.Path(),
		Pattern:     r.Pattern(),
		Ignore:      r.IgnorePatterns(),
		Command:     spec.Argv(),
		WorkingDir:  spec.Dir,
		Env:         spec.Env,
		KillTimeout: r.KillTimeout().String(),
		Debounce:    r.Debounce().String(),
	}
}

// NewValidateCmd returns the command that checks a configuration file.
func NewValidateCmd() *cobra.Command {
	return cli.MarkReadsConfig(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and print the resolved rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			cfg, err := cli.LoadConfig(opts)
			if err != nil {
				return err
			}
			rules, err := cfg.Rules()
			if err != nil {
				return err
			}

			out := validateOutput{Config: cfg.File(), Rules: make([]ruleView, 0, len(rules))}
			for _, r := range rules {
				out.Rules = append(out.Rules, newRuleView(r))
			}

			var data []byte
			if opts.JSONOutput {
				data, err = json.MarshalIndent(out, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(out)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
}
