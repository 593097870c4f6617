package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/pvminh/lichviet/internal/config"
	lichmcp "github.com/pvminh/lichviet/internal/mcp"
	"github.com/pvminh/lichviet/internal/nlp"
	"github.com/pvminh/lichviet/internal/remind"
	"github.com/pvminh/lichviet/internal/segment"
	"github.com/pvminh/lichviet/internal/store"
)

// cliFlags holds the flags shared by every subcommand.
type cliFlags struct {
	db       string
	vocab    string
	day      string
	interval string
	verbose  bool
	rest     []string
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		takesValue := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", arg)
			}
			i++
			return args[i], nil
		}

		var err error
		switch arg {
		case "--db":
			f.db, err = takesValue()
		case "--vocab":
			f.vocab, err = takesValue()
		case "--day":
			f.day, err = takesValue()
		case "--interval":
			f.interval, err = takesValue()
		case "--verbose":
			f.verbose = true
		default:
			if strings.HasPrefix(arg, "-") {
				return f, fmt.Errorf("unknown flag: %s", arg)
			}
			f.rest = append(f.rest, arg)
		}
		if err != nil {
			return f, err
		}
	}
	return f, nil
}

// resolve merges config sources and the parsed flags.
func resolve(f cliFlags) (config.ResolvedConfig, error) {
	cfg, err := config.ResolveConfig(config.ResolveOptions{
		CLIDBPath:    f.db,
		CLIVocabPath: f.vocab,
		CLIPollSecs:  f.interval,
	})
	if err != nil {
		return cfg, err
	}
	if f.verbose {
		printResolved(cfg)
	}
	return cfg, nil
}

// printResolved reports each effective setting and where it came from.
func printResolved(cfg config.ResolvedConfig) {
	settings := []struct {
		name string
		v    config.ResolvedValue
	}{
		{"db", cfg.DBPath},
		{"vocab", cfg.VocabPath},
		{"poll_secs", cfg.PollSecs},
		{"default_lead_mins", cfg.LeadMins},
	}
	for _, s := range settings {
		if s.v.Value == "" {
			continue
		}
		fmt.Fprintf(os.Stderr, "config: %s = %s (%s", s.name, s.v.Value, s.v.Source)
		if s.v.From != "" {
			fmt.Fprintf(os.Stderr, ": %s", s.v.From)
		}
		fmt.Fprintln(os.Stderr, ")")
	}
}

// newPipeline builds the extraction pipeline, attaching the tokenizer-backed
// segmenter when a vocab file is configured. A broken tokenizer degrades to
// whitespace segmentation rather than failing the command.
func newPipeline(cfg config.ResolvedConfig) *nlp.Pipeline {
	var seg nlp.Segmenter = segment.Whitespace{}
	if cfg.VocabPath.Value != "" {
		tk, err := segment.NewTokenizer(cfg.VocabPath.Value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (falling back to whitespace segmentation)\n", err)
		} else {
			seg = tk
		}
	}
	return nlp.New(nlp.WithSegmenter(seg))
}

func openStore(cfg config.ResolvedConfig) (*store.SQLiteStore, error) {
	s, err := store.Open(store.Config{DBPath: cfg.DBPath.Value})
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return s, nil
}

func runAdd(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.rest) == 0 {
		return fmt.Errorf("usage: lichviet add <text>")
	}
	text := strings.Join(f.rest, " ")

	cfg, err := resolve(f)
	if err != nil {
		return err
	}

	result, err := newPipeline(cfg).Extract(text)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	event := &store.Event{
		Name:            result.EventName,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Location:        result.Location,
		ReminderMinutes: result.ReminderMinutes,
	}
	// No explicit reminder clause: fall back to the configured default lead.
	if event.ReminderMinutes == 0 {
		event.ReminderMinutes = cfg.DefaultLeadMins()
	}
	id, err := s.AddEvent(context.Background(), event)
	if err != nil {
		return err
	}

	fmt.Printf("Added event %d: %s\n", id, formatEvent(event))
	return nil
}

func runParse(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.rest) == 0 {
		return fmt.Errorf("usage: lichviet parse <text>")
	}
	text := strings.Join(f.rest, " ")

	cfg, err := resolve(f)
	if err != nil {
		return err
	}

	result, err := newPipeline(cfg).Extract(text)
	if err != nil {
		return err
	}

	// Timestamps go out timezone-naive with minute precision, same as the
	// store keeps them.
	out := struct {
		Event           string `json:"event"`
		StartTime       string `json:"start_time"`
		EndTime         string `json:"end_time,omitempty"`
		Location        string `json:"location,omitempty"`
		ReminderMinutes int    `json:"reminder_minutes"`
	}{
		Event:           result.EventName,
		StartTime:       result.StartTime.Format(store.TimeLayout),
		Location:        result.Location,
		ReminderMinutes: result.ReminderMinutes,
	}
	if result.EndTime != nil {
		out.EndTime = result.EndTime.Format(store.TimeLayout)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runList(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(f)
	if err != nil {
		return err
	}

	opts := store.ListOpts{}
	if f.day != "" {
		day, err := time.ParseInLocation(store.DayLayout, f.day, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --day %q: want YYYY-MM-DD", f.day)
		}
		opts.Day = &day
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.ListEvents(context.Background(), opts)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events.")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%4d  %s\n", e.ID, formatEvent(e))
	}
	return nil
}

func runSearch(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.rest) == 0 {
		return fmt.Errorf("usage: lichviet search <keyword>")
	}
	keyword := strings.Join(f.rest, " ")

	cfg, err := resolve(f)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.SearchEvents(context.Background(), keyword, 20)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%4d  %s\n", e.ID, formatEvent(e))
	}
	return nil
}

func runDelete(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(f.rest) != 1 {
		return fmt.Errorf("usage: lichviet delete <id>")
	}
	id, err := strconv.ParseInt(f.rest[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", f.rest[0])
	}

	cfg, err := resolve(f)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteEvent(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Deleted event %d\n", id)
	return nil
}

func runRemind(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(f)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	notifier := remind.NotifierFunc(func(e store.Event) {
		fmt.Printf("Sắp diễn ra: %s\nThời gian: %s\n", e.Name, e.StartTime.Format("15:04 02/01/2006"))
		if e.Location != "" {
			fmt.Printf("Địa điểm: %s\n", e.Location)
		}
	})

	poller := remind.New(s, notifier,
		remind.WithInterval(time.Duration(cfg.PollInterval())*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Reminder loop running (every %ds). Ctrl-C to stop.\n", cfg.PollInterval())
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runServeMCP(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(f)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := lichmcp.NewServer(lichmcp.ServerConfig{
		Store:    s,
		Pipeline: newPipeline(cfg),
		Version:  version,
	})
	return mcpserver.ServeStdio(srv)
}

func runStats(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := resolve(f)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Events:    %d\n", stats.EventCount)
	fmt.Printf("Upcoming:  %d\n", stats.UpcomingCount)
	fmt.Printf("DB size:   %d bytes\n", stats.DBSizeBytes)
	return nil
}

func formatEvent(e *store.Event) string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteString(" — ")
	b.WriteString(e.StartTime.Format(store.TimeLayout))
	if e.EndTime != nil {
		b.WriteString(" → ")
		b.WriteString(e.EndTime.Format(store.TimeLayout))
	}
	if e.Location != "" {
		b.WriteString(" @ ")
		b.WriteString(e.Location)
	}
	if e.ReminderMinutes > 0 {
		fmt.Fprintf(&b, " (nhắc trước %d phút)", e.ReminderMinutes)
	}
	return b.String()
}
