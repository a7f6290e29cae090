// Package ctl implements gdpsctl, the operator command line for a gdps
// deployment.
package ctl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/conf"
	"gopkg.in/yaml.v3"

	"github.com/gdps-go/gdps/internal/cli/common"
	"github.com/gdps-go/gdps/services/gdps/internal/config"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

// EnvPrefix prefixes environment overrides, e.g. GDPS_REDIS_ADDR.
const EnvPrefix = "GDPS"

type options struct {
	configFile string
	includes   []string
	profile    string
	log        common.LogOptions
}

// New returns the root gdpsctl command.
func New() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:              "gdpsctl",
		Short:            "Operate a gdps deployment",
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			common.SetupLogger(o.log)
		},
	}
	f := root.PersistentFlags()
	f.StringVarP(&o.configFile, "config", "f", "etc/gdps.yaml", "config file")
	f.StringSliceVar(&o.includes, "include", nil, "extra config files merged in order")
	f.StringVar(&o.profile, "profile", "", "overlay profiles.<name> from the config")
	f.StringVar(&o.log.Level, "log-level", "warn", "debug|info|warn|error")
	f.StringVar(&o.log.Format, "log-format", "console", "console|json")
	f.StringVar(&o.log.File, "log-file", "", "rotate logs into this file instead of stderr")
	f.IntVar(&o.log.MaxSizeMB, "log-max-size", 100, "log file size in MB before rotation")
	f.IntVar(&o.log.MaxBackups, "log-max-backups", 7, "rotated log files to keep")
	f.IntVar(&o.log.MaxAgeDays, "log-max-age", 7, "days to keep rotated log files")
	f.BoolVar(&o.log.Compress, "log-compress", false, "gzip rotated log files")

	root.AddCommand(
		newConfigCmd(o),
		newMigrateCmd(o),
		newPublishCmd(o),
		newSyncCmd(o),
		newUserCmd(o),
		newScheduleCmd(o),
		newSongCmd(o),
		newCompletionCmd(root),
	)
	return root
}

// settings resolves the effective settings map: file, includes, profile,
// then environment.
func (o *options) settings() (map[string]any, error) {
	v, err := common.LoadWithIncludes(o.configFile, o.includes)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if v, err = common.ApplyProfile(v, o.profile); err != nil {
		return nil, err
	}
	common.BindEnv(v, EnvPrefix)
	return common.Settings(v), nil
}

func (o *options) load() (config.Config, error) {
	var c config.Config
	settings, err := o.settings()
	if err != nil {
		return c, err
	}
	b, err := yaml.Marshal(settings)
	if err != nil {
		return c, err
	}
	if err := conf.LoadFromYamlBytes(b, &c); err != nil {
		return c, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

// withServices runs fn against a fully wired service context.
func (o *options) withServices(ctx context.Context, fn func(ctx context.Context, s *svc.ServiceContext) error) error {
	c, err := o.load()
	if err != nil {
		return err
	}
	s, err := svc.New(ctx, c)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE:      func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unknown shell: %s", args[0])
		},
	}
}
