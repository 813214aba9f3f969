// Command irtel inspects iRacing telemetry recordings and streams the live feed.
//
// Usage:
//
//	irtel vars <file>
//	irtel dump [-vars a,b] [-from N] [-n N] <file>
//	irtel session [-live] [<file>]
//	irtel stream [-config path] [-vars a,b] [-metrics-addr addr]
//	irtel compress [-type zstd|s2|lz4] <in> <out>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/irtelemetry"
	"github.com/arloliu/irtelemetry/errs"
	"github.com/arloliu/irtelemetry/format"
	"github.com/arloliu/irtelemetry/ibt"
	"github.com/arloliu/irtelemetry/live"
	"github.com/arloliu/irtelemetry/telemetry"
)

const usage = `usage: irtel <command> [flags] [args]

commands:
  vars      list the variables of a recording
  dump      print variable values of a recording, one record per line
  session   print the session info of a recording or of the running simulator
  stream    poll the running simulator and print variable values
  compress  pack a recording into a zstd, s2 or lz4 container
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "irtel: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "vars":
		return runVars(args, stdout, stderr)
	case "dump":
		return runDump(args, stdout, stderr)
	case "session":
		return runSession(args, stdout, stderr)
	case "stream":
		return runStream(ctx, args, stdout, stderr)
	case "compress":
		return runCompress(args, stderr)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func openArg(fs *flag.FlagSet) (*ibt.File, error) {
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%w: %s needs exactly one file", errUsage, fs.Name())
	}

	return ibt.Open(fs.Arg(0))
}

func runVars(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("vars", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := openArg(fs)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tCOUNT\tOFFSET\tUNIT\tDESCRIPTION")
	for v := range f.Vars().All() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", v.Name, v.Type, v.Count, v.Offset, v.Unit, v.Description)
	}

	return tw.Flush()
}

// selectVars resolves names against vars; no names selects every variable.
func selectVars(vars *telemetry.VarSet, names []string) ([]*telemetry.VarHeader, error) {
	if len(names) == 0 {
		return slices.Collect(vars.All()), nil
	}

	out := make([]*telemetry.VarHeader, 0, len(names))
	for _, name := range names {
		v, ok := vars.Var(name)
		if !ok {
			return nil, fmt.Errorf("no variable named %q", name)
		}
		out = append(out, v)
	}

	return out, nil
}

func writeRow(w io.Writer, prefix string, sample telemetry.Sample, vars []*telemetry.VarHeader) error {
	fields := make([]string, 0, len(vars)+1)
	fields = append(fields, prefix)

	for _, v := range vars {
		value, err := sample.Read(v)
		if err != nil {
			return err
		}
		fields = append(fields, value.String())
	}

	_, err := fmt.Fprintln(w, strings.Join(fields, "\t"))

	return err
}

func runDump(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("dump", stderr)
	names := fs.String("vars", "", "comma separated variables to print (default all)")
	from := fs.Int("from", 0, "first record")
	n := fs.Int("n", -1, "number of records (default all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := openArg(fs)
	if err != nil {
		return err
	}

	vars, err := selectVars(f.Vars(), splitList(*names))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	header := []string{"RECORD"}
	for _, v := range vars {
		header = append(header, v.Name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	end := f.RecordCount()
	if *n >= 0 {
		end = min(end, *from+*n)
	}

	for i := *from; i < end; i++ {
		sample, err := f.Sample(i)
		if err != nil {
			return err
		}

		if err := writeRow(tw, fmt.Sprint(i), sample, vars); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	return tw.Flush()
}

func runSession(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("session", stderr)
	fromLive := fs.Bool("live", false, "read from the running simulator")
	timeout := fs.Duration("timeout", live.DefaultTimeout, "wait for the simulator at most this long")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var info string
	if *fromLive {
		client, err := live.Connect(live.WithTimeout(*timeout))
		if err != nil {
			return err
		}
		defer client.Close()

		if info, err = client.SessionInfo(); err != nil {
			return err
		}
	} else {
		f, err := openArg(fs)
		if err != nil {
			return err
		}
		info = f.SessionInfo()
	}

	_, err := io.WriteString(stdout, info)

	return err
}

func runCompress(args []string, stderr io.Writer) error {
	fs := newFlagSet("compress", stderr)
	typeName := fs.String("type", "zstd", "container format: zstd, s2 or lz4")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 2 {
		return fmt.Errorf("%w: compress needs an input and an output file", errUsage)
	}

	ctype, err := format.ParseCompressionType(*typeName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	// Validate the input before packing it.
	if _, err := ibt.FromBytes(data); err != nil {
		return fmt.Errorf("%s is not a readable recording: %w", fs.Arg(0), err)
	}

	packed, err := irtelemetry.CompressFile(data, ctype)
	if err != nil {
		return err
	}

	return os.WriteFile(fs.Arg(1), packed, 0o644)
}

func runStream(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stream", stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	names := fs.String("vars", "", "comma separated variables to print (overrides config)")
	metricsAddr := fs.String("metrics-addr", "", "serve prometheus metrics on this address (overrides config)")
	timeout := fs.Duration("timeout", 0, "wait for each tick at most this long (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *names != "" {
		cfg.Vars = splitList(*names)
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	logger, closer, err := newLogger(cfg.Logs, stderr)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, reg, logger)
	}

	client, err := live.NewClient(live.WithTimeout(cfg.Timeout), live.WithLogger(logger))
	if err != nil {
		return err
	}
	defer client.Close()

	s := &streamer{cfg: cfg, client: client, metrics: m, logger: logger, out: stdout}

	return s.run(ctx)
}

type streamer struct {
	cfg     config
	client  *live.Client
	metrics *metrics
	logger  *slog.Logger
	out     io.Writer

	vars        []*telemetry.VarHeader
	lastPrinted time.Time
}

// run polls until ctx is done, reconnecting whenever the simulator goes away.
func (s *streamer) run(ctx context.Context) error {
	for ctx.Err() == nil {
		if s.client.State() != live.Connected {
			if err := s.client.Connect(); err != nil {
				if errors.Is(err, errs.ErrResource) {
					return err
				}

				s.metrics.polls.WithLabelValues(resultDisconnected).Inc()
				s.logger.Debug("simulator not available", slog.Any("error", err))
				sleep(ctx, s.cfg.ReconnectDelay)

				continue
			}

			if err := s.selectVars(); err != nil {
				return err
			}
		}

		if err := s.poll(); err != nil {
			return err
		}
	}

	return nil
}

func (s *streamer) selectVars() error {
	vars, err := selectVars(s.client.Vars(), s.cfg.Vars)
	if err != nil {
		return err
	}
	s.vars = vars

	return nil
}

func (s *streamer) poll() error {
	sample, err := s.client.Poll()
	switch {
	case errors.Is(err, errs.ErrTimeout):
		s.metrics.polls.WithLabelValues(resultTimeout).Inc()
		return nil
	case errors.Is(err, errs.ErrDisconnected):
		s.metrics.polls.WithLabelValues(resultDisconnected).Inc()
		return nil
	case errors.Is(err, errs.ErrResource):
		s.metrics.polls.WithLabelValues(resultError).Inc()
		return err
	case err != nil:
		s.metrics.polls.WithLabelValues(resultError).Inc()
		s.logger.Warn("poll failed", slog.Any("error", err))

		return nil
	}

	s.metrics.polls.WithLabelValues(resultOK).Inc()
	s.metrics.lastTick.Set(float64(s.client.LastTick()))

	if s.client.VarsChanged() {
		s.metrics.rebuilds.Inc()
		if err := s.selectVars(); err != nil {
			return err
		}
	}

	if now := time.Now(); now.Sub(s.lastPrinted) >= s.cfg.PollInterval {
		s.lastPrinted = now
		return writeRow(s.out, fmt.Sprint(s.client.LastTick()), sample, s.vars)
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
