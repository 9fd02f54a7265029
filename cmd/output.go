package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/termtext"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	headingColor = color.New(color.FgYellow, color.Bold)
)

// printNotice strips terminal control sequences; messages quote
// user-entered names.
func printNotice(w io.Writer, n scores.Notice) {
	msg := termtext.Sanitize(n.Message)
	switch n.Kind {
	case scores.NoticeError:
		errorColor.Fprintln(w, msg)
	case scores.NoticeSuccess:
		successColor.Fprintln(w, msg)
	default:
		fmt.Fprintln(w, msg)
	}
}

func printError(w io.Writer, err error) {
	var verr *scores.ValidationError
	if errors.As(err, &verr) {
		errorColor.Fprintln(w, termtext.Sanitize(verr.Error()))
		return
	}
	errorColor.Fprintln(w, "Error:", termtext.Sanitize(err.Error()))
}

func printHeading(w io.Writer, s string) {
	headingColor.Fprintln(w, s)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func appendRow(table *tablewriter.Table, cells ...string) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = termtext.Sanitize(c)
	}
	table.Append(row)
}

// confirm asks question on the command's output and reads a y/N answer
// from its input. --yes answers for the user.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", termtext.Sanitize(question))
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	return false, nil
}
