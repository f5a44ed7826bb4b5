package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ue4-rocket-build/ue4rb/internal/application/services"
	"github.com/ue4-rocket-build/ue4rb/internal/core/domain"
)

const ruleWidth = 36

// ConsoleReporter prints the build banner and the final status block
type ConsoleReporter struct {
	out     io.Writer
	rule    lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewConsoleReporter creates a reporter writing to out. Styling is dropped
// automatically when out is not a color terminal.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	renderer := lipgloss.NewRenderer(out)

	return &ConsoleReporter{
		out:     out,
		rule:    renderer.NewStyle().Foreground(lipgloss.Color("240")),
		label:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		success: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		failure: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// BuildStarting prints the resolved engine, plugin, staging and RunUAT paths
func (r *ConsoleReporter) BuildStarting(build domain.BuildContext, descriptor *domain.PluginDescriptor) {
	lines := []string{
		r.field("Engine", fmt.Sprintf("%s (%s)", build.EngineVersion, build.EngineDir)),
	}
	if descriptor != nil {
		if name := descriptor.DisplayName(); name != "" {
			lines = append(lines, r.field("Name", name))
		}
	}
	lines = append(lines,
		r.field("Plugin", build.PluginPath),
		r.field("Staging", build.StagingDir),
		r.field("UAT", build.RunUAT),
	)
	if len(build.ExtraArgs) > 0 {
		lines = append(lines, r.field("Extra", strings.Join(build.ExtraArgs, " ")))
	}

	fmt.Fprintln(r.out, "Running Rocket Build ...")
	r.block(lines...)
}

// BuildFinished prints the success or failure block for exitCode
func (r *ConsoleReporter) BuildFinished(build domain.BuildContext, exitCode int) {
	if exitCode == 0 {
		r.block(
			r.success.Render("Build Success"),
			"",
			fmt.Sprintf("Plugin has been packaged in %s", build.StagingDir),
		)
		return
	}

	r.block(
		r.failure.Render("Build Error"),
		"",
		"Something went wrong, check stderr",
	)
}

func (r *ConsoleReporter) field(name, value string) string {
	return r.label.Render(name+":") + " " + value
}

// block prints lines between two rules, surrounded by blank lines
func (r *ConsoleReporter) block(lines ...string) {
	rule := r.rule.Render(strings.Repeat("-", ruleWidth))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(rule + "\n")
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString(rule + "\n")
	fmt.Fprintln(r.out, b.String())
}

var _ services.BuildReporter = (*ConsoleReporter)(nil)
