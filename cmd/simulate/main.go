// Command simulate rolls a bonus rule many times and reports how often each
// entry pays out and which amounts it grants. The config file is never modified.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/config"
	"github.com/osse101/GatherBonus_Go/internal/logger"
)

type options struct {
	configPath string
	resource   string
	runs       int
	seed       uint64
	asJSON     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.ConfigPathGatherBonuses, "bonus config file")
	flag.StringVar(&opts.resource, "resource", "", "gathered item to simulate (default: every rule)")
	flag.IntVar(&opts.runs, "n", 10000, "number of gathers per rule")
	flag.Uint64Var(&opts.seed, "seed", 0, "RNG seed (0 uses the process RNG)")
	flag.BoolVar(&opts.asJSON, "json", false, "print the reports as JSON")
	flag.Parse()

	cfg := logger.DefaultConfig()
	cfg.Level = logger.LogLevelWarn
	logger.InitLoggerWithWriter(cfg, os.Stderr)

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	doc, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	rules := doc.Rules
	if opts.resource != "" {
		rules = nil
		for _, r := range doc.Rules {
			if r.Resource == opts.resource {
				rules = append(rules, r)
			}
		}
		if len(rules) == 0 {
			return fmt.Errorf("no bonus rule for %q", opts.resource)
		}
	}

	var rng bonus.RandomSource
	if opts.seed != 0 {
		rng = bonus.NewSeededSource(opts.seed)
	}

	reports := make([]bonus.SimulationReport, 0, len(rules))
	for _, rule := range rules {
		report, err := bonus.Simulate(ctx, rule, opts.runs, rng)
		if err != nil {
			return fmt.Errorf("simulate %s: %w", rule.Resource, err)
		}
		reports = append(reports, report)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for _, r := range reports {
		printReport(out, r)
	}
	return nil
}

// loadConfig parses the file read-only. A missing file means the built-in defaults.
func loadConfig(path string) (*bonus.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return bonus.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg, warnings, err := bonus.NewLoader().Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range warnings {
		logger.Warn("Config value clamped", "warning", w)
	}
	return cfg, nil
}

func printReport(out io.Writer, r bonus.SimulationReport) {
	fmt.Fprintf(out, "%s (%d gathers)\n", r.Resource, r.Runs)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tITEM\tCHANCE\tROLLED\tHITS\tRATE\tAMOUNTS")
	for i, e := range r.Entries {
		name := e.Shortname
		if e.DisplayName != "" {
			name = fmt.Sprintf("%s (%s)", e.Shortname, e.DisplayName)
		}
		fmt.Fprintf(tw, "  %d\t%s\t%d%%\t%d\t%d\t%.4f\t%s\n",
			i, name, e.Chance, e.Rolled, e.Hits, e.HitRate(), histogram(e.Amounts))
	}
	tw.Flush()

	fmt.Fprintf(out, "  grants per gather: %s\n\n", histogram(r.GrantsPerRun))
}

// histogram renders counts as "k:n k:n" in key order
func histogram(counts map[int]int) string {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d:%d", k, counts[k])
	}
	if s == "" {
		return "-"
	}
	return s
}
