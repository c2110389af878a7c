package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
)

// Sentinel errors for the confirmation step.
var (
	ErrNotInteractive = errors.New("confirmation requires an interactive terminal")
	ErrCanceled       = errors.New("conversion canceled")
)

const canceledMessage = "Conversion canceled, nothing was converted."

// printArchiveList shows what is about to be converted.
func printArchiveList(w io.Writer, paths []string) {
	fmt.Fprintf(w, "Archives to convert (%d):\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

// confirmArchives lists the archives and asks the user to go ahead.
// assumeYes skips the prompt.
func confirmArchives(paths []string, assumeYes, quiet bool, env *Environment) error {
	if !quiet || !assumeYes {
		printArchiveList(env.Stdout, paths)
	}
	if assumeYes {
		return nil
	}
	if !env.IsTerminal() {
		return ErrNotInteractive
	}

	ok, err := env.Confirm(fmt.Sprintf("Convert %d archive(s)?", len(paths)))
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCanceled
		}
		return fmt.Errorf("confirmation prompt: %w", err)
	}
	if !ok {
		return ErrCanceled
	}
	return nil
}

// huhConfirm returns a yes/no prompt reading from in and drawing on out.
func huhConfirm(in io.Reader, out io.Writer) func(string) (bool, error) {
	return func(title string) (bool, error) {
		ok := true
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Affirmative("Convert").
					Negative("Cancel").
					Value(&ok),
			),
		).WithInput(in).WithOutput(out).Run()
		return ok, err
	}
}
