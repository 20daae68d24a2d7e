package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/fillforge/pkg/config"
	"github.com/entrhq/fillforge/pkg/driver/htmlform"
	pwdriver "github.com/entrhq/fillforge/pkg/driver/playwright"
	"github.com/entrhq/fillforge/pkg/fill"
	"github.com/entrhq/fillforge/pkg/typing"
)

func newFillCmd(configPath *string) *cobra.Command {
	var (
		pageURL  string
		htmlPath string
		origin   string
		mode     string
		preset   string
		scenario string
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form with a test persona",
		Long: "Fill fills every eligible control of a form. With --url it drives a\n" +
			"live browser page; with --html it runs offline against static markup\n" +
			"and prints the values each control would receive.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pageURL == "") == (htmlPath == "") {
				return fmt.Errorf("exactly one of --url or --html is required")
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Close()

			opts, err := fillOptions(cfg, mode, preset)
			if err != nil {
				return err
			}

			store, cleanup, err := openDatasetStore(cfg, log, scenario)
			if err != nil {
				return err
			}
			defer cleanup()

			eng, err := fill.NewEngine(fill.EngineConfig{Selector: store, Logger: log})
			if err != nil {
				return err
			}

			if htmlPath != "" {
				return fillHTML(cmd, eng, htmlPath, origin, opts)
			}

			if !cmd.Flags().Changed("headless") {
				headless = cfg.Headless
			}
			return fillLive(cmd, cfg, eng, pageURL, headless, opts)
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "URL of the page to fill in a live browser")
	cmd.Flags().StringVar(&htmlPath, "html", "", "static HTML file to fill offline")
	cmd.Flags().StringVar(&origin, "origin", "localhost", "origin attributed to --html forms")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "fill mode: instant or animated (default from config)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "typing preset: slow, normal, fast, instant (default from config)")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "scenario name or file providing the persona pool")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser without a window (default from config)")
	return cmd
}

// fillOptions resolves mode and typing settings, flags over config.
func fillOptions(cfg *config.Config, mode, preset string) (fill.Options, error) {
	opts := fill.Options{Typing: cfg.TypingConfig()}
	if cfg.Animated() {
		opts.Mode = fill.ModeAnimated
	}

	switch mode {
	case "":
	case "instant":
		opts.Mode = fill.ModeInstant
	case "animated":
		opts.Mode = fill.ModeAnimated
	default:
		return opts, fmt.Errorf("invalid mode %q: must be instant or animated", mode)
	}

	if preset != "" {
		tc, ok := typing.Preset(preset)
		if !ok {
			return opts, fmt.Errorf("unknown typing preset %q", preset)
		}
		opts.Typing = tc
	}
	return opts, nil
}

func fillHTML(cmd *cobra.Command, eng *fill.Engine, path, origin string, opts fill.Options) error {
	page, err := htmlform.ParseFile(origin, path)
	if err != nil {
		return err
	}

	res, err := eng.FillAll(page, opts)
	if err != nil {
		return err
	}
	printResult(cmd, res)

	controls, _ := page.Controls()
	for _, c := range controls {
		if v := c.Value(); v != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %s\n", c.Descriptor().Identifier(), v)
		}
	}
	return nil
}

func fillLive(cmd *cobra.Command, cfg *config.Config, eng *fill.Engine, pageURL string, headless bool, opts fill.Options) error {
	host, err := hostOf(pageURL)
	if err != nil {
		return err
	}
	if !cfg.OriginAllowed(host) {
		return fmt.Errorf("origin %q is not in the allowed origins list", host)
	}

	session, err := pwdriver.NewSession(pwdriver.Options{Headless: headless})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Navigate(pageURL); err != nil {
		return err
	}

	res, err := eng.FillAll(session.Page(), opts)
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}

func printResult(cmd *cobra.Command, res fill.Result) {
	fmt.Fprintf(cmd.OutOrStdout(), "Filled %d, skipped %d, failed %d (dataset %s, form %s)\n",
		res.Filled, res.Skipped, res.Failed, res.DatasetID, res.Fingerprint.Hash)
}

func hostOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("URL %q has no hostname", raw)
	}
	return strings.ToLower(host), nil
}
