package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/terminalthread/infra/auth"
	"github.com/CrestNiraj12/terminalthread/infra/cache"
	"github.com/CrestNiraj12/terminalthread/infra/config"
	"github.com/CrestNiraj12/terminalthread/infra/logging"
	"github.com/CrestNiraj12/terminalthread/infra/mastodon"
	"github.com/CrestNiraj12/terminalthread/infra/pager"
	"github.com/CrestNiraj12/terminalthread/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type runOptions struct {
	version  bool
	offline  bool
	noStream bool
	print    bool
}

func newRootCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "terminalthread <status-id|url>",
		Short: "Read a Mastodon conversation as an indented thread",
		Long: `Open one status together with its ancestors and replies.

The argument is either a status ID on your instance or the URL of a post
on any server, which is resolved through your instance's search.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
				fmt.Fprintf(cmd.OutOrStdout(), "terminalthread %s\ncommit: %s\nbuilt: %s\n", v, c, d)
				return nil
			}
			start, err := parseStart(args[0])
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), start, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "print version information")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "read only from the local cache")
	cmd.Flags().BoolVar(&opts.noStream, "no-stream", false, "do not refresh on live updates")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the thread to stdout instead of opening the TUI")
	return cmd
}

// parseStart treats absolute http(s) URLs as remote posts and anything else
// as a local status ID.
func parseStart(arg string) (tui.Start, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return tui.Start{}, fmt.Errorf("status id or url required")
	}
	if u, err := url.Parse(arg); err == nil && u.Host != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return tui.Start{RemoteURL: arg}, nil
		}
	}
	if strings.ContainsAny(arg, "/ ") {
		return tui.Start{}, fmt.Errorf("not a status id or post url: %q", arg)
	}
	return tui.Start{StatusID: arg}, nil
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func run(ctx context.Context, out io.Writer, start tui.Start, opts runOptions) error {
	// 1. Load config from .env files and the environment.
	if err := config.LoadDotEnv(config.DefaultDotEnvPaths()...); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, logCloser, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer logCloser.Close()
	logger.Info().
		Str("instance", cfg.InstanceURL).
		Bool("offline", opts.offline).
		Msg("starting")

	// 2. Build infrastructure.
	httpClient := mastodon.NewClient(cfg.InstanceURL, auth.Resolve(cfg.AccessToken, cfg.TokenPath))
	remote := mastodon.NewStatusService(httpClient)

	// 3. Build services (concrete types satisfy app.* interfaces).
	deps := tui.Deps{
		Statuses:  remote,
		Search:    remote,
		Account:   mastodon.NewAccountService(httpClient),
		Pager:     pager.NewEnvPager(),
		Logger:    logger,
		MaxIndent: cfg.MaxIndent,
	}
	db, err := openCache(cfg.CachePath)
	switch {
	case err != nil && opts.offline:
		return fmt.Errorf("cache: %w", err)
	case err != nil:
		logger.Warn().Err(err).Msg("cache unavailable, continuing without it")
	default:
		defer db.Close()
		deps.Statuses = cache.NewStatusService(remote, db, logger, opts.offline)
	}
	if opts.offline {
		deps.Search = nil
		deps.Account = nil
	}
	if cfg.Stream && !opts.noStream && !opts.offline && !opts.print {
		deps.Stream = mastodon.NewStreamService(httpClient, logger)
	}

	if opts.print {
		return printThread(ctx, out, start, deps)
	}

	// 4. Wire root TUI model and run.
	p := tea.NewProgram(tui.NewApp(ctx, deps, start), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminalthread: %w", err)
	}
	return nil
}

func openCache(path string) (*cache.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return cache.Open(path)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
