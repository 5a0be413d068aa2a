// Package main provides a CLI tool for generating and checking CPF numbers.
// Generated numbers are valid by the check-digit rule only; they are not
// registered with any authority and are meant for test data.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/betafcc/cpf/internal/bulk"
	"github.com/betafcc/cpf/internal/platform/config"
	"github.com/betafcc/cpf/internal/platform/logger"
	"github.com/betafcc/cpf/pkg/cpf"
	"github.com/betafcc/cpf/pkg/validation"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type cpfOutput struct {
	Cpf     string   `json:"cpf"`
	Compact string   `json:"compact"`
	Ufs     []cpf.Uf `json:"possible_ufs"`
}

type validateOutput struct {
	Input string     `json:"input"`
	Valid bool       `json:"valid"`
	Cpf   *cpfOutput `json:"result,omitempty"`
	Error string     `json:"error,omitempty"`
}

type generateRequest struct {
	Count int    `json:"count" validate:"min=1,max=10000"`
	Uf    string `json:"uf" validate:"omitempty,uf"`
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    config.CLI
	log    *slog.Logger
}

func main() {
	cfg := config.FromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		cfg:    cfg,
		log:    logger.New(os.Stderr, cfg.LogLevel),
	}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		a.printUsage(a.stderr)
		return exitUsage
	}

	switch args[0] {
	case "generate":
		return a.generate(args[1:])
	case "validate":
		return a.validate(ctx, args[1:])
	case "format":
		return a.format(args[1:])
	case "ufs":
		return a.ufs(args[1:])
	case "help", "-h", "--help":
		a.printUsage(a.stdout)
		return exitOK
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", args[0])
		a.printUsage(a.stderr)
		return exitUsage
	}
}

func (a *app) printUsage(w io.Writer) {
	fmt.Fprintln(w, `cpfgen - Generate and check CPF numbers

Generated numbers satisfy the check-digit rule only. Use them as test data.

Usage:
  cpfgen <command> [flags]

Commands:
  generate  Generate random valid CPF numbers
  validate  Validate CPF numbers given as arguments or on stdin
  format    Complete and format a single CPF
  ufs       Show the uf table or the ufs that may have issued a CPF

Examples:
  # One random CPF
  cpfgen generate

  # Five reproducible CPFs from Rio de Janeiro, digits only
  cpfgen generate -n 5 -uf RJ -seed 42 -compact

  # Validate a file, one CPF per line
  cpfgen validate < cpfs.txt

  # Compute check digits for a base
  cpfgen format -uf RJ 453.178.28

  # Which ufs share a region digit
  cpfgen ufs -cpf 453.178.287-91

Environment:
  CPF_LOG_LEVEL   debug|info|warn|error (default info)
  CPF_DEFAULT_UF  uf used by generate when -uf is not given
  CPF_SEED        seed used by generate when -seed is not given
  CPF_WORKERS     concurrent validations (default 8)

Use "cpfgen <command> -h" for more information about a command.`)
}

func (a *app) generate(args []string) int {
	fs := a.flagSet("generate")
	count := fs.Int("n", 1, "How many numbers to generate")
	ufFlag := fs.String("uf", string(a.cfg.DefaultUf), "Uf of origin (random if empty)")
	seed := fs.Uint64("seed", a.cfg.Seed, "Seed for reproducible output (0 = random)")
	compact := fs.Bool("compact", false, "Print digits only")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	req := generateRequest{Count: *count, Uf: strings.ToUpper(strings.TrimSpace(*ufFlag))}
	if err := validation.Validate(req); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}

	gen := cpf.NewGenerator(nil)
	if *seed != 0 {
		gen = cpf.NewSeededGenerator(*seed)
	}

	out := make([]cpf.Cpf, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		c, err := gen.RandomIn(cpf.Uf(req.Uf))
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return exitUsage
		}
		out = append(out, c)
	}
	a.log.Debug("generated cpfs", "count", len(out), "uf", req.Uf, "seeded", *seed != 0)

	if *jsonOutput {
		docs := make([]cpfOutput, 0, len(out))
		for _, c := range out {
			docs = append(docs, toOutput(c))
		}
		return a.printJSON(docs)
	}
	for _, c := range out {
		fmt.Fprintln(a.stdout, render(c, *compact))
	}
	return exitOK
}

func (a *app) validate(ctx context.Context, args []string) int {
	fs := a.flagSet("validate")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	quiet := fs.Bool("q", false, "Print nothing, only set the exit status")
	showMetrics := fs.Bool("metrics", false, "Write Prometheus metrics to stderr when done")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		var err error
		if inputs, err = readLines(a.stdin); err != nil {
			fmt.Fprintf(a.stderr, "Error reading stdin: %v\n", err)
			return exitUsage
		}
	}

	reg := prometheus.NewRegistry()
	checker := bulk.New(
		bulk.WithWorkers(a.cfg.Workers),
		bulk.WithLogger(a.log),
		bulk.WithMetrics(bulk.NewMetrics(reg)),
	)
	results, err := checker.Check(ctx, inputs)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}
	if *showMetrics {
		defer a.writeMetrics(reg)
	}

	valid, invalid := bulk.Summary(results)
	a.log.Info("validation finished", "valid", valid, "invalid", invalid)

	status := exitOK
	if invalid > 0 {
		status = exitInvalid
	}
	if *quiet {
		return status
	}

	if *jsonOutput {
		docs := make([]validateOutput, 0, len(results))
		for _, r := range results {
			doc := validateOutput{Input: r.Input, Valid: r.Valid()}
			if r.Valid() {
				o := toOutput(r.Cpf)
				doc.Cpf = &o
			} else {
				doc.Error = r.Err.Error()
			}
			docs = append(docs, doc)
		}
		if code := a.printJSON(docs); code != exitOK {
			return code
		}
		return status
	}

	for _, r := range results {
		if r.Valid() {
			fmt.Fprintf(a.stdout, "OK       %s\n", r.Cpf.Format())
		} else {
			fmt.Fprintf(a.stdout, "INVALID  %s: %v\n", r.Input, r.Err)
		}
	}
	return status
}

func (a *app) writeMetrics(g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		a.log.Warn("gathering metrics failed", "error", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.stderr, mf); err != nil {
			a.log.Warn("writing metrics failed", "error", err)
			return
		}
	}
}

func (a *app) format(args []string) int {
	fs := a.flagSet("format")
	ufFlag := fs.String("uf", "", "Uf completing an 8-digit base")
	compact := fs.Bool("compact", false, "Print digits only")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "Error: format takes exactly one CPF")
		return exitUsage
	}
	if err := validation.CheckInputLength(fs.Arg(0)); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}

	var (
		c   cpf.Cpf
		err error
	)
	if *ufFlag != "" {
		c, err = cpf.FromUf(fs.Arg(0), cpf.Uf(strings.ToUpper(*ufFlag)))
	} else {
		c, err = cpf.From(fs.Arg(0))
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitInvalid
	}

	fmt.Fprintln(a.stdout, render(c, *compact))
	return exitOK
}

func (a *app) ufs(args []string) int {
	fs := a.flagSet("ufs")
	digit := fs.Int("digit", -1, "List the ufs mapped to this region digit")
	var target cpf.Cpf
	fs.TextVar(&target, "cpf", cpf.Cpf{}, "List the ufs that may have issued this CPF")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	var list []cpf.Uf
	switch {
	case !target.IsZero():
		list = target.PossibleUfs()
	case *digit >= 0:
		if *digit > 9 {
			fmt.Fprintln(a.stderr, "Error: digit must be between 0 and 9")
			return exitUsage
		}
		list = cpf.UfsForDigit(*digit)
	default:
		return a.printTable(*jsonOutput)
	}

	if *jsonOutput {
		return a.printJSON(list)
	}
	for _, u := range list {
		fmt.Fprintln(a.stdout, u)
	}
	return exitOK
}

func (a *app) printTable(jsonOutput bool) int {
	table := cpf.UfTable()
	if jsonOutput {
		return a.printJSON(table)
	}
	for _, u := range cpf.Ufs() {
		fmt.Fprintf(a.stdout, "%s  %d\n", u, table[u])
	}
	return exitOK
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) printJSON(v any) int {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(a.stderr, "Error encoding JSON: %v\n", err)
		return exitInvalid
	}
	return exitOK
}

func toOutput(c cpf.Cpf) cpfOutput {
	return cpfOutput{Cpf: c.Format(), Compact: c.Strip(), Ufs: c.PossibleUfs()}
}

func render(c cpf.Cpf, compact bool) string {
	if compact {
		return c.Strip()
	}
	return c.Format()
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
