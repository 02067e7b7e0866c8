// Package console runs a questionnaire session over plain line-based I/O,
// for use when stdout is not a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/abhisek/tourpref/internal/session"
)

// Runner drives a session controller from an input stream.
type Runner struct {
	ctrl *session.Controller
	in   *bufio.Scanner
	out  io.Writer

	title *color.Color
	dim   *color.Color
	ok    *color.Color
	bad   *color.Color
}

// New creates a Runner reading answers from in and writing prompts to out.
func New(ctrl *session.Controller, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		ctrl:  ctrl,
		in:    bufio.NewScanner(in),
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		dim:   color.New(color.Faint),
		ok:    color.New(color.FgGreen, color.Bold),
		bad:   color.New(color.FgRed),
	}
}

// Run asks every question, waits for the submission, and prints the
// outcome. Entering "q" or closing the input leaves the session without
// submitting. The returned state is the session's final snapshot.
func (r *Runner) Run(ctx context.Context) (session.State, error) {
	for {
		state := r.ctrl.Snapshot()
		if state.Phase != session.PhaseInProgress {
			break
		}
		if !state.HasQuestion {
			break
		}

		r.printQuestion(state)
		choice, quit, err := r.readChoice(len(state.Question.Options))
		if err != nil {
			return state, err
		}
		if quit {
			r.ctrl.Leave(ctx)
			return r.ctrl.Snapshot(), nil
		}
		if err := r.ctrl.Answer(ctx, choice); err != nil {
			return r.ctrl.Snapshot(), fmt.Errorf("answer question %d: %w", state.Index+1, err)
		}
	}

	fmt.Fprintln(r.out, "Sending preferences...")
	if err := r.ctrl.Wait(ctx); err != nil && ctx.Err() != nil {
		return r.ctrl.Snapshot(), err
	}

	final := r.ctrl.Snapshot()
	r.printOutcome(final)
	r.ctrl.Leave(ctx)
	return final, nil
}

func (r *Runner) printQuestion(state session.State) {
	fmt.Fprintln(r.out)
	r.dim.Fprintf(r.out, "Question %d of %d\n", state.Index+1, state.Total)
	r.title.Fprintln(r.out, state.Question.Text)
	for i, opt := range state.Question.Options {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, opt.Text)
	}
}

// readChoice reads lines until one holds a valid 1-based option number.
func (r *Runner) readChoice(n int) (choice int, quit bool, err error) {
	for {
		fmt.Fprintf(r.out, "Choose 1-%d (q to leave): ", n)
		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return 0, false, fmt.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(r.out)
			return 0, true, nil
		}

		line := strings.TrimSpace(r.in.Text())
		if strings.EqualFold(line, "q") {
			return 0, true, nil
		}
		v, convErr := strconv.Atoi(line)
		if convErr != nil || v < 1 || v > n {
			r.bad.Fprintf(r.out, "Please enter a number between 1 and %d.\n", n)
			continue
		}
		return v - 1, false, nil
	}
}

func (r *Runner) printOutcome(state session.State) {
	fmt.Fprintln(r.out)
	switch state.Phase {
	case session.PhaseSucceeded:
		r.ok.Fprintln(r.out, "Thanks for answering!")
		fmt.Fprintln(r.out, "Your preferences have been saved.")
		if top := session.BuildSummary(state).Top(3); len(top) > 0 {
			fmt.Fprintln(r.out, "You seem to enjoy:")
			for _, cs := range top {
				fmt.Fprintf(r.out, "  %2d  %s\n", cs.Score, cs.Label)
			}
		}
	case session.PhaseFailed:
		r.bad.Fprintln(r.out, "Error sending: "+state.FailureMessage)
	}
}
