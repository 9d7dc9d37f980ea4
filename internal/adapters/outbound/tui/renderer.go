package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecfix/ecfix/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	ruleStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	imageStyle    = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderViolations formats an extracted violation list for humans.
func RenderViolations(violations []domain.Violation) string {
	var b strings.Builder

	if len(violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s\n\n", titleStyle.Render(fmt.Sprintf("Found %d violation(s)", len(violations))))
	for i, v := range violations {
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render(fmt.Sprintf("#%d", i+1)), ruleStyle.Render(v.Rule))
		renderField(&b, "ImageRef", v.ImageRef)
		renderField(&b, "Message", v.Message)
		renderField(&b, "Term", v.Term)
		renderField(&b, "Title", v.Title)
		renderField(&b, "Description", v.Description)
		renderField(&b, "Solution", v.Solution)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderPolicy formats an extracted policy config for humans.
func RenderPolicy(cfg *domain.PolicyConfig) string {
	var b strings.Builder

	if cfg == nil {
		b.WriteString("  " + warnTagStyle.Render("No policy configuration found.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s\n\n", titleStyle.Render(fmt.Sprintf("Policy: %d source(s)", len(cfg.Sources))))
	for i, src := range cfg.Sources {
		label := src.Name
		if label == "" {
			label = fmt.Sprintf("source %d", i+1)
		}
		fmt.Fprintf(&b, "  %s\n", ruleStyle.Render(label))
		for _, u := range src.PolicyURLs {
			fmt.Fprintf(&b, "    policy  %s\n", dimStyle.Render(u))
		}
		for _, u := range src.DataURLs {
			fmt.Fprintf(&b, "    data    %s\n", dimStyle.Render(u))
		}
		if len(src.Include) > 0 {
			fmt.Fprintf(&b, "    include %s\n", dimStyle.Render(strings.Join(src.Include, ", ")))
		}
		if len(src.Exclude) > 0 {
			fmt.Fprintf(&b, "    exclude %s\n", dimStyle.Render(strings.Join(src.Exclude, ", ")))
		}
		for _, ve := range src.VolatileExclude {
			line := ve.Value
			if ve.EffectiveUntil != nil {
				line += "  until " + ve.EffectiveUntil.Format("2006-01-02")
			}
			fmt.Fprintf(&b, "    volatile %s\n", dimStyle.Render(line))
		}
	}
	if cfg.PublicKey != "" {
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render("public key present"))
	}

	return b.String()
}

// RenderComponents formats extracted components for humans.
func RenderComponents(components []domain.Component) string {
	var b strings.Builder

	if len(components) == 0 {
		b.WriteString("  " + warnTagStyle.Render("No components found.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s\n\n", titleStyle.Render(fmt.Sprintf("Found %d component(s)", len(components))))
	for _, c := range components {
		fmt.Fprintf(&b, "  %s\n", ruleStyle.Render(c.Name))
		renderField(&b, "Image", c.ContainerImage)
		renderField(&b, "Git URL", c.GitURL)
		renderField(&b, "Revision", c.GitRevision)
		renderField(&b, "Dockerfile", c.DockerfilePath)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderReport formats a full pipeline run: the grouped violations, what was
// resolved for each rule, and any proposals the external driver produced.
func RenderReport(report *domain.ResolveReport) string {
	var b strings.Builder

	title := headerStyle.Render("ecfix")
	subtitle := dimStyle.Render(report.LogFile)
	count := len(report.Resolutions)
	countStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(countColor(count)).
		Render(fmt.Sprintf("%d rule(s) violated", count))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + countStyled))
	b.WriteString("\n\n")

	for i, res := range report.Resolutions {
		renderResolution(&b, i+1, count, res)
		if i < count-1 {
			b.WriteString("  " + separatorLine + "\n\n")
		}
	}

	if len(report.Warnings) > 0 || (report.Extraction != nil && len(report.Extraction.Warnings) > 0) {
		b.WriteString("  " + separatorLine + "\n\n")
		for _, w := range report.Extraction.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", warnTagStyle.Render("warn"), dimStyle.Render(w))
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", warnTagStyle.Render("warn"), dimStyle.Render(w))
		}
	}

	return b.String()
}

func renderResolution(b *strings.Builder, idx, total int, res domain.RuleResolution) {
	fmt.Fprintf(b, "  %s %s",
		dimStyle.Render(fmt.Sprintf("[%d/%d]", idx, total)),
		ruleStyle.Render(res.Group.Rule))
	if res.Group.Count() > 1 {
		fmt.Fprintf(b, " %s", dimStyle.Render(fmt.Sprintf("(%d violations)", res.Group.Count())))
	}
	b.WriteString("\n")

	if res.Group.RepresentativeImage != "" {
		fmt.Fprintf(b, "       %s\n", imageStyle.Render(res.Group.RepresentativeImage))
	} else {
		fmt.Fprintf(b, "       %s\n", faintStyle.Render("image unknown"))
	}
	if res.Component != nil {
		fmt.Fprintf(b, "       component %s\n", dimStyle.Render(res.Component.Name))
	}

	renderArtifact(b, "rule source", res.Context.SourceCode != "")
	renderArtifact(b, "rule tests", res.Context.TestCode != "")
	renderArtifact(b, "CRD schema", res.Context.SchemaFragment != "")

	if res.Proposal != "" {
		b.WriteString("\n")
		fmt.Fprintf(b, "  %s\n", titleStyle.Render("Proposal"))
		for _, line := range strings.Split(res.Proposal, "\n") {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
	b.WriteString("\n")
}

func renderArtifact(b *strings.Builder, name string, present bool) {
	if present {
		fmt.Fprintf(b, "       %s %s\n", passStyle.Render("●"), dimStyle.Render(name))
	} else {
		fmt.Fprintf(b, "       %s %s\n", faintStyle.Render("○"), faintStyle.Render(name+" unavailable"))
	}
}

func renderField(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "     %s %s\n", dimStyle.Render(name+":"), value)
}

func countColor(n int) lipgloss.Color {
	if n == 0 {
		return success
	}
	return danger
}
