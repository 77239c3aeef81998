// Command assess prints a RAG report for an exported assessment project.
//
//	assess [-no-color] [-priorities=false] project.json
//
// Use "-" to read the export from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"pp-governance/internal/assessment"
	"pp-governance/internal/models"
	"pp-governance/internal/scoring"

	"github.com/fatih/color"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"
)

type options struct {
	noColor    bool
	priorities bool
	path       string
}

func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("assess", flag.ContinueOnError)
	opts := &options{}
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.priorities, "priorities", true, "list red and amber items")

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("GOVERNANCE_ASSESS")); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("usage: assess [-no-color] [-priorities=false] project.json")
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.noColor {
		color.NoColor = true
	}

	p, err := load(opts.path)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	report(os.Stdout, p, opts.priorities)
}

func load(path string) (*models.Project, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	p, err := assessment.DecodeProject(data)
	if err != nil {
		return nil, err
	}
	return scoring.RescoreAll(p), nil
}

func ragColor(s models.RAGStatus) *color.Color {
	switch s {
	case models.RAGRed:
		return color.New(color.FgRed, color.Bold)
	case models.RAGAmber:
		return color.New(color.FgYellow, color.Bold)
	case models.RAGGreen:
		return color.New(color.FgGreen, color.Bold)
	}
	return color.New(color.FgHiBlack)
}

func report(w io.Writer, p *models.Project, withPriorities bool) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "%s\n", p.Name)
	if p.ClientRef != "" {
		fmt.Fprintf(w, "client: %s\n", p.ClientRef)
	}
	if !p.LastModified.IsZero() {
		fmt.Fprintf(w, "last modified: %s\n", p.LastModified.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w, strings.Repeat("━", 60))

	for _, std := range p.Standards {
		ragColor(std.RAGStatus).Fprintf(w, "%-6s", strings.ToUpper(string(std.RAGStatus)))
		fmt.Fprintf(w, " %-32s %5.1f%% done  maturity %.1f/5\n", std.Name, std.Completion, std.MaturityScore)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	overall := scoring.OverallRAG(p)
	fmt.Fprint(w, "overall: ")
	ragColor(overall).Fprintf(w, "%s", strings.ToUpper(string(overall)))
	fmt.Fprintf(w, "  progress %.1f%%  maturity %.1f/5\n", scoring.OverallProgress(p), scoring.OverallMaturity(p))

	prof := scoring.Profile(p)
	fmt.Fprintf(w, "risks: %d high, %d medium, %d low\n", prof.High, prof.Medium, prof.Low)

	if !withPriorities {
		return
	}
	areas := scoring.HighPriorityAreas(p)
	if len(areas) == 0 {
		color.New(color.FgGreen).Fprintln(w, "\nno high priority areas")
		return
	}
	color.New(color.FgYellow).Fprintln(w, "\nhigh priority areas:")
	for _, a := range areas {
		ragColor(a.RAGStatus).Fprintf(w, "  %-6s", strings.ToUpper(string(a.RAGStatus)))
		if a.Fallback {
			fmt.Fprintf(w, " %s (standard rated %s)\n", a.StandardName, a.RAGStatus)
			continue
		}
		fmt.Fprintf(w, " %s: %s", a.StandardName, a.QuestionText)
		if a.RiskOwner != "" {
			fmt.Fprintf(w, " [owner: %s]", a.RiskOwner)
		}
		fmt.Fprintln(w)
	}
}
