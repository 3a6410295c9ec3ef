package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
)

// Theme colors
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Display is how a closed enum value is shown in the terminal.
type Display struct {
	Label string
	Color lipgloss.Color
}

func (d Display) Render() string {
	return lipgloss.NewStyle().Foreground(d.Color).Bold(true).Render(d.Label)
}

var unknownDisplay = Display{Label: "UNKNOWN", Color: ColorTextDim}

var priorityDisplay = map[finance.Priority]Display{
	finance.PriorityHigh:   {Label: "HIGH", Color: ColorRed},
	finance.PriorityMedium: {Label: "MEDIUM", Color: ColorYellow},
	finance.PriorityLow:    {Label: "LOW", Color: ColorGreen},
}

var approvalDisplay = map[finance.ApprovalStatus]Display{
	finance.ApprovalDraft:    {Label: "DRAFT", Color: ColorTextMuted},
	finance.ApprovalPending:  {Label: "PENDING REVIEW", Color: ColorYellow},
	finance.ApprovalApproved: {Label: "APPROVED", Color: ColorGreen},
	finance.ApprovalRejected: {Label: "REJECTED", Color: ColorRed},
}

var expenditureDisplay = map[finance.ExpenditureStatus]Display{
	finance.ExpenditurePending:  {Label: "PENDING", Color: ColorYellow},
	finance.ExpenditureApproved: {Label: "APPROVED", Color: ColorBlue},
	finance.ExpenditurePaid:     {Label: "PAID", Color: ColorGreen},
	finance.ExpenditureRejected: {Label: "REJECTED", Color: ColorRed},
}

func PriorityDisplay(p finance.Priority) Display {
	if d, ok := priorityDisplay[p]; ok {
		return d
	}
	return unknownDisplay
}

func ApprovalDisplay(s finance.ApprovalStatus) Display {
	if d, ok := approvalDisplay[s]; ok {
		return d
	}
	return unknownDisplay
}

func ExpenditureDisplay(s finance.ExpenditureStatus) Display {
	if d, ok := expenditureDisplay[s]; ok {
		return d
	}
	return unknownDisplay
}

// UtilizationColor picks the bar color for a utilization ratio: red once over allocation.
func UtilizationColor(ratio float64) lipgloss.Color {
	switch {
	case ratio > 1:
		return ColorRed
	case ratio >= 0.9:
		return ColorOrange
	default:
		return ColorGreen
	}
}

// Bar returns an unstyled bar of width cells for a ratio clamped to [0, 1].
func Bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderProgressBar renders a colored bar followed by the unclamped percentage.
func RenderProgressBar(ratio float64, width int) string {
	bar := lipgloss.NewStyle().Foreground(UtilizationColor(ratio)).Render(Bar(ratio, width))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(ratio))
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

func renderRows(b *strings.Builder, rows [][2]string) {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, row[0])))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(row[1]))
		b.WriteString("\n")
	}
}

// RenderSummary renders the financial picture of one event.
func RenderSummary(data finance.EventFinancialData) string {
	var b strings.Builder
	if data.Summary == nil {
		return ""
	}
	s := data.Summary
	currency := s.Currency

	b.WriteString(RenderTitle(fmt.Sprintf("EVENT FINANCES  %s", s.EventID)))
	b.WriteString("\n\n")

	if data.Budget != nil {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render("Budget"))
		b.WriteString("  ")
		b.WriteString(ApprovalDisplay(data.Budget.ApprovalStatus).Render())
		b.WriteString("\n")
		renderRows(&b, [][2]string{
			{"Total", FormatMoney(s.TotalBudget, currency)},
			{"Allocated", FormatMoney(s.TotalAllocated, currency)},
			{"Contingency", FormatMoney(s.Contingency, currency)},
			{"Unallocated", FormatMoney(s.Unallocated, currency)},
			{"Spent", FormatMoney(s.TotalSpent, currency)},
			{"Committed", FormatMoney(s.TotalCommitted, currency)},
			{"Pending", FormatMoney(s.TotalPending, currency)},
			{"Remaining", FormatMoney(s.RemainingBudget, currency)},
			{"Utilization", RenderProgressBar(s.BudgetUtilization, 20)},
		})
		b.WriteString("\n")
	} else {
		b.WriteString(dimStyle.Render("  No budget yet."))
		b.WriteString("\n\n")
	}

	if len(s.Categories) > 0 {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render("Categories"))
		b.WriteString("\n")
		for _, c := range s.Categories {
			b.WriteString(fmt.Sprintf("  %-20s %s  %s / %s  %s\n",
				c.Name,
				PriorityDisplay(c.Priority).Render(),
				FormatMoney(c.Spent, ""),
				FormatMoney(c.Allocated, currency),
				RenderProgressBar(c.Utilization, 15),
			))
		}
		b.WriteString("\n")
	}

	if data.Fundraising != nil {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render("Fundraising"))
		b.WriteString("\n")
		renderRows(&b, [][2]string{
			{"Raised", FormatMoney(s.TotalRaised, currency)},
			{"Target", FormatMoney(s.TargetAmount, currency)},
			{"To goal", FormatMoney(s.RemainingToGoal, currency)},
			{"Funded", fmt.Sprintf("[%s] %s", Bar(s.FundraisingProgress/100, 20), FormatPercentValue(s.FundedPercent))},
		})
		for _, m := range data.Fundraising.FundraisingMethods {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %-14s %s  %s", m.Method, FormatMoney(m.Amount, currency), FormatPercentValue(m.Percentage))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	renderRows(&b, [][2]string{{"Net position", FormatMoney(s.NetPosition, currency)}})

	if len(s.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range s.Warnings {
			line := fmt.Sprintf("  ! %s", w.Kind)
			if w.CategoryID != "" {
				line += fmt.Sprintf(" (%s)", w.CategoryID)
			}
			line += fmt.Sprintf(": %s > %s", FormatMoney(w.Actual, ""), FormatMoney(w.Limit, ""))
			b.WriteString(warnStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderExpenditures renders expenditures one per line.
func RenderExpenditures(expenditures []finance.EventExpenditure) string {
	if len(expenditures) == 0 {
		return dimStyle.Render("  No expenditures.") + "\n"
	}
	var b strings.Builder
	for _, e := range expenditures {
		b.WriteString(fmt.Sprintf("  %s  %-10s %-16s %s  %s\n",
			e.Date.Format("2006-01-02"),
			e.BudgetCategoryID,
			FormatMoney(e.Amount, e.Currency),
			ExpenditureDisplay(e.Status).Render(),
			e.Description,
		))
	}
	return b.String()
}
