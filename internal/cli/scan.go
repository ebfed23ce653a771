package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/VictorZP/halfs-app-sub001/internal/browser"
	"github.com/VictorZP/halfs-app-sub001/internal/config"
	"github.com/VictorZP/halfs-app-sub001/internal/logger"
	"github.com/VictorZP/halfs-app-sub001/internal/notifier"
	"github.com/VictorZP/halfs-app-sub001/internal/registry"
	"github.com/VictorZP/halfs-app-sub001/internal/scanner"
)

var (
	flagDate       string
	flagTournament string
	flagFormat     string
	flagSort       string
	flagNotify     string
	flagHeadless   bool
	flagVerbose    bool
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan tournaments for matches on a target date",
		Long: `Scan every active tournament's live-stats page and report which
matches are scheduled, live, or finished on the target date.
Exit code 2 means matches were found.`,
		RunE: runScan,
	}

	cmd.Flags().StringVar(&flagDate, "date", "today", "Target date: DD/MM/YYYY, YYYY-MM-DD, today or tomorrow")
	cmd.Flags().StringVar(&flagTournament, "tournament", "", "Scan only the tournament matching this name (fuzzy)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "tournament", "Sort order: tournament, status or text")
	cmd.Flags().StringVar(&flagNotify, "notify", "", "Send the report via: telegram, twitter or dry-run")
	cmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run the browser headless")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	code, err := doScan()
	if err != nil {
		return err
	}
	os.Exit(code)
	return nil
}

// doScan runs the scan and returns the process exit code. Split from
// runScan so deferred cleanup (registry, signal handler) unwinds before
// the process exits.
func doScan() (int, error) {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	target, err := parseTargetDate(flagDate)
	if err != nil {
		return ExitError, err
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return ExitError, fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	order := SortOrder(strings.ToLower(flagSort))
	if order != SortByTournament && order != SortByStatus && order != SortByText {
		return ExitError, fmt.Errorf("invalid sort order: %s (must be 'tournament', 'status' or 'text')", flagSort)
	}

	cfg := config.Load()
	notify, err := buildNotifier(flagNotify, cfg)
	if err != nil {
		return ExitError, err
	}

	reg, err := registry.Open(cfg.DBPath)
	if err != nil {
		return ExitError, fmt.Errorf("opening tournament registry: %w", err)
	}
	defer reg.Close()

	tournaments, err := selectTournaments(reg, flagTournament)
	if err != nil {
		return ExitError, err
	}
	if len(tournaments) == 0 {
		return ExitError, fmt.Errorf("no active tournaments to scan; add one with 'fibascan tournaments add'")
	}

	headless := flagHeadless && cfg.Headless
	sess := browser.NewSession(headless)
	sc := scanner.New(sess)
	sc.PageTimeout = cfg.PageTimeout
	state := scanner.NewScanState()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// First signal requests a graceful stop at the next checkpoint;
		// the context stays live so in-flight work can finish.
		<-ctx.Done()
		state.RequestCancel()
	}()

	progress := func(msg string, pct int) {
		fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", pct, msg)
	}

	matches, err := sc.Scan(context.Background(), tournaments, target, state, progress)
	if err != nil {
		return ExitError, fmt.Errorf("scanning: %w", err)
	}

	sortMatches(matches, order)

	result := &OutputResult{
		ScannedAt:  time.Now().UTC(),
		TargetDate: target.Format("02/01/2006"),
		Matches:    matches,
		MatchCount: len(matches),
	}
	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return ExitError, fmt.Errorf("writing output: %w", err)
	}

	if notify != nil {
		if err := notify.Notify(matches, target); err != nil {
			return ExitError, fmt.Errorf("sending notification: %w", err)
		}
	}

	if len(matches) > 0 {
		return ExitMatches, nil
	}
	return ExitSuccess, nil
}

// selectTournaments returns the active tournaments to scan, narrowed to
// the best fuzzy name match when a filter is given.
func selectTournaments(reg *registry.Registry, filter string) ([]scanner.Tournament, error) {
	stored, err := reg.Active()
	if err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}

	if filter != "" {
		lookup := make(map[string]registry.Tournament)
		var namesLower []string
		for _, t := range stored {
			lower := strings.ToLower(t.Name)
			lookup[lower] = t
			namesLower = append(namesLower, lower)
		}

		ranks := fuzzy.RankFind(strings.ToLower(filter), namesLower)
		if len(ranks) == 0 {
			return nil, fmt.Errorf("no tournament matches %q", filter)
		}
		sort.Sort(ranks)
		best := ranks[0]
		for _, r := range ranks {
			if r.Target == strings.ToLower(filter) {
				best = r
			}
		}
		stored = []registry.Tournament{lookup[best.Target]}
	}

	out := make([]scanner.Tournament, 0, len(stored))
	for _, t := range stored {
		out = append(out, scanner.Tournament{Name: t.Name, URL: t.URL})
	}
	return out, nil
}

func buildNotifier(kind string, cfg *config.Config) (notifier.Notifier, error) {
	switch strings.ToLower(kind) {
	case "":
		return nil, nil
	case "dry-run":
		return notifier.NewDryRunNotifier(), nil
	case "telegram":
		return notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	case "twitter":
		return notifier.NewTwitterNotifier()
	default:
		return nil, fmt.Errorf("unknown notifier: %s (must be 'telegram', 'twitter' or 'dry-run')", kind)
	}
}
