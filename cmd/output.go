package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/inference-sim/boardsim/sim/scenario"
	"github.com/inference-sim/boardsim/sim/trace"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

// printReport renders the session outcomes, run totals, the trace summary
// when a trace was collected and, if asked, the stored messages.
func printReport(w io.Writer, report *scenario.Report, withBoard bool) {
	fmt.Fprintf(w, "=== Scenario %s ===\n", report.Scenario)

	outcomes := newTable(w, "Client", "Communication", "Status", "Reply", "Tick", "Detail")
	for _, o := range report.Outcomes {
		outcomes.Append([]string{
			o.Client,
			strconv.FormatInt(o.CommunicationID, 10),
			string(o.Status),
			o.Reply,
			tickString(o.Tick),
			outcomeDetail(o),
		})
	}
	outcomes.Render()

	fmt.Fprintf(w, "Final clock:  %d\n", report.FinalClock)
	fmt.Fprintf(w, "Stopped at:   %s\n", tickString(report.StoppedAt))
	fmt.Fprintf(w, "Timed out:    %t\n", report.TimedOut)
	fmt.Fprintf(w, "Dead letters: %d\n", report.DeadLetters)
	fmt.Fprintf(w, "Stored:       %d\n", len(report.Stored))
	fmt.Fprintf(w, "Banned:       %s\n", strings.Join(report.Banned, ","))
	for _, e := range report.Errors {
		fmt.Fprintf(w, "Error:        %s\n", e)
	}

	if report.Trace != nil {
		printTraceSummary(w, trace.Summarize(report.Trace))
	}
	if withBoard {
		messages := newTable(w, "ID", "Message")
		for _, m := range report.Stored {
			messages.Append([]string{strconv.FormatInt(m.ID, 10), m.String()})
		}
		messages.Render()
	}
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintf(w, "=== Trace Summary ===\n")
	fmt.Fprintf(w, "Deliveries: %d (sessions %d, last tick %d, busiest actor %d)\n",
		s.TotalDeliveries, s.UniqueSessions, s.LastClock, s.BusiestTarget)
	kinds := lo.Keys(s.KindDistribution)
	slices.Sort(kinds)
	table := newTable(w, "Kind", "Count")
	for _, k := range kinds {
		table.Append([]string{k, strconv.Itoa(s.KindDistribution[k])})
	}
	table.Render()
}

func outcomeDetail(o scenario.Outcome) string {
	switch {
	case o.Err != "":
		return o.Err
	case o.Reason != "":
		return o.Reason
	case o.Reply == "FoundMessages":
		return fmt.Sprintf("%d message(s)", o.Found)
	default:
		return ""
	}
}

func tickString(t int64) string {
	if t < 0 {
		return "-"
	}
	return strconv.FormatInt(t, 10)
}
