package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				MarginTop(1)

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(goodColor).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling.
// Help for a subcommand lists its own flags followed by the global ones.
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		sb.WriteString(helpTitleStyle.Render("biquad"))
		sb.WriteString("\n")

		desc := ctx.Model.Help
		if node != ctx.Model.Node && node.Help != "" {
			desc = node.Help
		}

		if desc != "" {
			sb.WriteString(helpDescStyle.Render(desc))
			sb.WriteString("\n")
		}

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(usage(ctx, node))
		sb.WriteString("\n")

		writeSection(&sb, "Commands:", helpCommandStyle, getCommands(node))
		writeSection(&sb, "Arguments:", helpArgStyle, getArguments(node))

		flags := getFlags(node, true)
		if node != ctx.Model.Node {
			flags = append(flags, getFlags(ctx.Model.Node, false)...)
		}

		writeSection(&sb, "Flags:", helpFlagStyle, flags)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

type entry struct {
	name       string
	help       string
	defaultVal string
}

func writeSection(sb *strings.Builder, title string, style lipgloss.Style, entries []entry) {
	if len(entries) == 0 {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")

	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(e.name))

		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}

		if e.defaultVal != "" {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(default: " + e.defaultVal + ")"))
		}

		sb.WriteString("\n")
	}
}

func usage(ctx *kong.Context, node *kong.Node) string {
	if node == ctx.Model.Node {
		return fmt.Sprintf("%s <command> [flags]", ctx.Model.Name)
	}

	var path []string
	for n := node; n != nil && n != ctx.Model.Node; n = n.Parent {
		path = append([]string{n.Name}, path...)
	}

	parts := append([]string{ctx.Model.Name}, path...)

	for _, arg := range node.Positional {
		parts = append(parts, arg.Summary())
	}

	return strings.Join(parts, " ") + " [flags]"
}

func getCommands(node *kong.Node) []entry {
	var cmds []entry

	for _, child := range node.Children {
		if child.Hidden {
			continue
		}

		cmds = append(cmds, entry{name: child.Name, help: child.Help})
	}

	return cmds
}

func getArguments(node *kong.Node) []entry {
	var args []entry

	for _, arg := range node.Positional {
		args = append(args, entry{name: arg.Summary(), help: arg.Help})
	}

	return args
}

func getFlags(node *kong.Node, withHelp bool) []entry {
	var flags []entry

	if withHelp {
		flags = append(flags, entry{
			name: "-h, --help",
			help: "Show context-sensitive help.",
		})
	}

	for _, f := range node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		flagStr := ""
		if f.Short != 0 {
			flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		} else {
			flagStr = fmt.Sprintf("--%s", f.Name)
		}

		if !f.IsBool() && f.PlaceHolder != "" {
			flagStr += "=" + strings.ToUpper(f.PlaceHolder)
		}

		flags = append(flags, entry{
			name:       flagStr,
			help:       f.Help,
			defaultVal: f.Default,
		})
	}

	return flags
}
