package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mcp-lazyload/lazyload/internal/cli/client"
	"github.com/mcp-lazyload/lazyload/internal/cli/errors"
	"github.com/mcp-lazyload/lazyload/internal/domain/registry"
	"github.com/olekukonko/tablewriter"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

type Formatter struct {
	format OutputFormat
	color  bool
}

func NewFormatter(format OutputFormat, useColor bool) *Formatter {
	return &Formatter{
		format: format,
		color:  useColor,
	}
}

func (f *Formatter) FormatError(err errors.ClassifiedError) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(err, "", "  ")
		return string(data)
	}

	var msg string
	if f.color {
		msg = color.RedString("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\n" + color.YellowString("Hint: %s", err.Hint)
		}
	} else {
		msg = fmt.Sprintf("Error [%s]: %s", err.Kind, err.Message)
		if err.Hint != "" {
			msg += "\nHint: " + err.Hint
		}
	}
	return msg
}

func (f *Formatter) FormatTools(tools []registry.ToolDescriptor) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(tools, "", "  ")
		fmt.Println(string(data))
		return ""
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Name", "Kind", "Cost", "Keywords"}),
	)

	for _, t := range tools {
		table.Append([]string{
			t.Name,
			string(t.Kind),
			strconv.Itoa(t.TokenCost),
			strings.Join(t.TriggerKeywords, ", "),
		})
	}

	table.Render()
	return "" // tablewriter writes directly to stdout
}

func (f *Formatter) FormatReport(rep *client.Report) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(rep, "", "  ")
		return string(data)
	}

	var b strings.Builder
	for _, name := range rep.Loaded {
		if f.color {
			b.WriteString(color.GreenString("loaded   %s\n", name))
		} else {
			fmt.Fprintf(&b, "loaded   %s\n", name)
		}
	}
	for _, name := range rep.AlreadyLoaded {
		fmt.Fprintf(&b, "cached   %s\n", name)
	}
	for name, msg := range rep.Failed {
		if f.color {
			b.WriteString(color.RedString("failed   %s: %s\n", name, msg))
		} else {
			fmt.Fprintf(&b, "failed   %s: %s\n", name, msg)
		}
	}
	if b.Len() == 0 {
		return "nothing to do"
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Formatter) FormatStats(stats *client.Stats) string {
	if f.format == FormatJSON {
		data, _ := json.MarshalIndent(stats, "", "  ")
		return string(data)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Loaded:    %d tool(s), %d tokens\n", stats.LoadedCount, stats.LoadedTokens)
	fmt.Fprintf(&b, "Available: %d tool(s), %d tokens\n", stats.AvailableCount, stats.AvailableTokens)
	if f.color {
		b.WriteString(color.GreenString("Saved:     %d tokens (%.1f%%)", stats.SavedTokens, stats.SavedPercent))
	} else {
		fmt.Fprintf(&b, "Saved:     %d tokens (%.1f%%)", stats.SavedTokens, stats.SavedPercent)
	}
	if len(stats.Loaded) > 0 {
		b.WriteString("\n")
		for _, tool := range stats.Loaded {
			fmt.Fprintf(&b, "  %-24s %6d tokens  since %s\n", tool.Name, tool.TokenCost, tool.LoadedAt.Format("15:04:05"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
