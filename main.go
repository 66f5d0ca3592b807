package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/deck/internal/app"
	"github.com/llehouerou/deck/internal/config"
	"github.com/llehouerou/deck/internal/errmsg"
	"github.com/llehouerou/deck/internal/mpris"
	"github.com/llehouerou/deck/internal/notify"
	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/player"
	"github.com/llehouerou/deck/internal/state"
	"github.com/llehouerou/deck/internal/stderr"
	"github.com/llehouerou/deck/internal/upload"
)

type options struct {
	configPath string
	volume     float64
	repeat     bool
	seed       uint64
	noState    bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "deck [paths...]",
		Short: "Play local audio files from a terminal playlist",
		Long: `deck plays local audio files (mp3, flac, wav, ogg).

Files and directories given as arguments are added to the playlist.
More can be added from the UI with the a key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "extra config file, read after the default ones")
	f.Float64Var(&opts.volume, "volume", 1, "initial volume, 0 to 1")
	f.BoolVar(&opts.repeat, "repeat", false, "start with repeat enabled")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for shuffle, for a reproducible order")
	f.BoolVar(&opts.noState, "no-state", false, "do not load or save preferences")
	return cmd
}

func run(cmd *cobra.Command, opts options, args []string) error {
	var extra []string
	if opts.configPath != "" {
		extra = append(extra, opts.configPath)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	pb := cfg.GetPlaybackConfig()
	volume, repeat := pb.Volume, pb.Repeat

	// Saved preferences override the config file; flags override both.
	var stateMgr state.Interface
	if !opts.noState {
		mgr, err := state.Open()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpPreferencesLoad, err))
		}
		defer mgr.Close()
		stateMgr = mgr

		prefs, err := mgr.GetPreferences()
		if err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpPreferencesLoad, err))
		} else if prefs != nil {
			volume, repeat = prefs.Volume, prefs.Repeat
		}
	}
	if cmd.Flags().Changed("volume") {
		volume = opts.volume
	}
	if cmd.Flags().Changed("repeat") {
		repeat = opts.repeat
	}

	ph := cfg.GetPlaceholder()
	pbOpts := []playback.Option{
		playback.WithPositionInterval(pb.PositionInterval),
		playback.WithPlaceholder(playback.Placeholder{Artist: ph.Artist, Album: ph.Album, Cover: ph.Cover}),
		playback.WithVolume(volume),
		playback.WithRepeat(repeat),
	}
	if cmd.Flags().Changed("seed") {
		pbOpts = append(pbOpts, playback.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed)))) //nolint:gosec // shuffle order only
	}

	// ALSA reports through fd 2; keep it off the terminal while the UI runs.
	capture, captureErr := stderr.Start()
	warn := func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	if captureErr == nil {
		defer capture.Stop()
		warn = func(msg string) { capture.WriteOriginal(msg + "\n") }
	}

	backend := player.NewSpeaker(pb.SampleRate, pb.SpeakerBuffer)
	defer backend.Close()

	ctrl := playback.New(backend, pbOpts...)
	defer ctrl.Close()

	if len(args) > 0 {
		entries, errs := upload.FromPaths(args...)
		for _, e := range errs {
			warn(errmsg.Format(errmsg.OpFileLoad, e))
		}
		res := ctrl.AddTracks(entries...)
		for _, e := range res.Errors {
			warn(errmsg.Format(errmsg.OpTrackAdd, e))
		}
	}

	startDir := cfg.DefaultFolder
	if startDir == "" {
		startDir, _ = os.Getwd()
	}

	if cfg.MPRISEnabled() {
		if adapter, err := mpris.New(ctrl); err == nil {
			defer adapter.Close()
		}
	}

	model := app.New(ctrl, stateMgr, startDir)
	if cfg.Desktop.Notifications {
		if n, err := notify.New(); err == nil {
			model.Notifier = n
		}
	}

	if captureErr == nil {
		model.StderrLines = capture.Lines()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}
