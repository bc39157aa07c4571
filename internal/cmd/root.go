// Package cmd provides the entrypoint and CLI command configuration for the
// statsdash application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/invenio"
	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/ui"
)

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// Execute initializes and runs the statsdash terminal application.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := &cobra.Command{
		Use:   "statsdash",
		Short: "A terminal dashboard for InvenioRDM collection statistics.",
		Long:  "A terminal dashboard for InvenioRDM collection statistics.",
		Args:  cobra.NoArgs,
	}

	rootCmd.Version = buildVersion(version, commit, date, builtBy)
	rootCmd.SetVersionTemplate(`statsdash {{printf "version %s\n" .Version}}`)

	rootCmd.Flags().String(
		"cpuprofile",
		"",
		"write cpu profile to file",
	)

	rootCmd.Flags().BoolP(
		"help",
		"h",
		false,
		"help for statsdash",
	)

	rootCmd.Flags().String(
		"api",
		"https://localhost:5000",
		"InvenioRDM API base URL",
	)
	rootCmd.Flags().String(
		"community",
		"global",
		"community identifier to show statistics for",
	)
	rootCmd.Flags().String(
		"redis",
		"",
		"redis URL for the stats cache (empty disables caching)",
	)
	rootCmd.Flags().Duration(
		"cache-ttl",
		time.Hour,
		"how long cached statistics stay valid",
	)
	rootCmd.Flags().Int(
		"start-year",
		2015,
		"first year of statistics to fetch",
	)
	rootCmd.Flags().Int(
		"end-year",
		time.Now().UTC().Year(),
		"last year of statistics to fetch",
	)
	rootCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "url":
			name = "api"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cpuprofile, err := cmd.Flags().GetString("cpuprofile")
		if err != nil {
			return fmt.Errorf("parse cpuprofile flag: %w", err)
		}

		apiURL, err := cmd.Flags().GetString("api")
		if err != nil {
			return fmt.Errorf("parse api flag: %w", err)
		}
		communityID, err := cmd.Flags().GetString("community")
		if err != nil {
			return fmt.Errorf("parse community flag: %w", err)
		}
		redisURL, err := cmd.Flags().GetString("redis")
		if err != nil {
			return fmt.Errorf("parse redis flag: %w", err)
		}
		cacheTTL, err := cmd.Flags().GetDuration("cache-ttl")
		if err != nil {
			return fmt.Errorf("parse cache-ttl flag: %w", err)
		}
		startYear, err := cmd.Flags().GetInt("start-year")
		if err != nil {
			return fmt.Errorf("parse start-year flag: %w", err)
		}
		endYear, err := cmd.Flags().GetInt("end-year")
		if err != nil {
			return fmt.Errorf("parse end-year flag: %w", err)
		}
		if startYear > endYear {
			return fmt.Errorf("start-year %d is after end-year %d", startYear, endYear)
		}

		client, err := invenio.NewClient(apiURL)
		if err != nil {
			return fmt.Errorf("create API client: %w", err)
		}

		var cache *invenio.Cache
		if redisURL != "" {
			cache, err = invenio.NewCache(redisURL, cacheTTL)
			if err != nil {
				return fmt.Errorf("create redis cache: %w", err)
			}
			defer func() {
				_ = cache.Close()
			}()
		}

		var profileFile *os.File
		if cpuprofile != "" {
			file, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("create cpuprofile file: %w", err)
			}
			profileFile = file
			if err := pprof.StartCPUProfile(profileFile); err != nil {
				_ = profileFile.Close()
				return fmt.Errorf("start cpu profile: %w", err)
			}
			defer func() {
				pprof.StopCPUProfile()
				_ = profileFile.Close()
			}()
		}

		service := invenio.NewService(client, cache, communityID, startYear, endYear)
		app := ui.New(service)
		p := tea.NewProgram(app)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run statsdash: %w", err)
		}

		return nil
	}

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}
