// Package tui provides the interactive Bubble Tea dashboard for cashplan.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"cashplan/internal/cli"
	"cashplan/internal/config"
	"cashplan/internal/engine"
	"cashplan/internal/match"
	"cashplan/internal/model"
	"cashplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

type tab int

const (
	tabOverview tab = iota
	tabTimeline
	tabVariance
	tabForecast
)

var tabNames = []string{"Overview", "Timeline", "Variance", "Forecast"}

type keyMap struct {
	NextTab    key.Binding
	PrevTab    key.Binding
	NextPeriod key.Binding
	PrevPeriod key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab:    key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("shift+tab", "prev tab")),
		NextPeriod: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next period")),
		PrevPeriod: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev period")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.NextPeriod, k.PrevPeriod, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.NextPeriod, k.PrevPeriod},
		{k.Help, k.Quit},
	}
}

// App is the root Bubble Tea model. All engine results for the shown
// period are recomputed up front on every period switch; the engine is
// cheap at dashboard scale and holds no state of its own.
type App struct {
	plan     *model.Plan
	cfg      config.Config
	currency string

	periods   []model.Period
	periodIdx int
	active    tab

	width  int
	height int
	keys   keyMap
	help   help.Model

	// engine results for the active period
	starting decimal.Decimal
	timeline []model.TimelineRow
	risk     model.RiskReport
	riskOK   bool
	variance map[string]model.Variance
	bills    map[string]model.Variance
	savings  model.Variance
	forecast model.ForecastReport
}

// New builds the dashboard model for a loaded plan.
func New(plan *model.Plan, cfg config.Config) App {
	theme.SetActive(cfg.Appearance.Theme)

	periods := engine.Sorted(plan)
	idx := 0
	for i, p := range periods {
		if p.ID == plan.Setup.SelectedPeriod {
			idx = i
			break
		}
	}

	a := App{
		plan:      plan,
		cfg:       cfg,
		currency:  cfg.General.Currency,
		periods:   periods,
		periodIdx: idx,
		keys:      defaultKeys(),
		help:      help.New(),
	}
	a.recompute()
	return a
}

// Run starts the dashboard program.
func Run(plan *model.Plan, cfg config.Config) error {
	p := tea.NewProgram(New(plan, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) recompute() {
	if len(a.periods) == 0 {
		return
	}
	periodID := a.periods[a.periodIdx].ID

	a.starting = engine.StartingBalance(a.plan, periodID)
	a.timeline = engine.BuildTimeline(a.plan, periodID, a.starting)
	a.risk, a.riskOK = engine.Risk(a.plan, a.timeline)

	tol := a.cfg.Variance.Tolerance
	a.variance = engine.VarianceByCategory(a.plan, periodID, tol)
	a.bills = engine.VarianceByBill(a.plan, periodID, tol, match.New(a.cfg.Variance.MatchConfidence))
	a.savings = engine.SavingsReconciliation(a.plan, periodID, tol)
	a.forecast = engine.Scenarios(a.plan, periodID)
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextTab):
			a.active = (a.active + 1) % tab(len(tabNames))
		case key.Matches(msg, a.keys.PrevTab):
			a.active = (a.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
		case key.Matches(msg, a.keys.NextPeriod):
			if a.periodIdx < len(a.periods)-1 {
				a.periodIdx++
				a.recompute()
			}
		case key.Matches(msg, a.keys.PrevPeriod):
			if a.periodIdx > 0 {
				a.periodIdx--
				a.recompute()
			}
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	}
	return a, nil
}

func (a App) View() string {
	if len(a.periods) == 0 {
		return "\n  No periods in the plan. Import one with `cashplan import`.\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.active {
	case tabTimeline:
		b.WriteString(a.viewTimeline())
	case tabVariance:
		b.WriteString(a.viewVariance())
	case tabForecast:
		b.WriteString(a.viewForecast())
	default:
		b.WriteString(a.viewOverview())
	}

	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a App) renderTabs() string {
	t := theme.Active
	period := a.periods[a.periodIdx]

	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	idleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
	periodStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	parts := make([]string, 0, len(tabNames)+1)
	for i, name := range tabNames {
		if tab(i) == a.active {
			parts = append(parts, activeStyle.Render(name))
		} else {
			parts = append(parts, idleStyle.Render(name))
		}
	}

	tabs := strings.Join(parts, lipgloss.NewStyle().Foreground(t.TextDim).Render("│"))
	return fmt.Sprintf("  %s   %s", tabs, periodStyle.Render(period.Label))
}

func (a App) viewOverview() string {
	period := a.periods[a.periodIdx]
	ending := engine.EndingBalance(a.timeline, a.starting)

	var plannedIncome, plannedOutflow decimal.Decimal
	for _, ev := range engine.GenerateEvents(a.plan, period.ID) {
		if ev.Kind == model.EventIncome {
			plannedIncome = plannedIncome.Add(ev.Amount)
		} else {
			plannedOutflow = plannedOutflow.Add(ev.Amount)
		}
	}

	rows := [][]string{
		{"Dates", cli.FormatDateRange(period.Start, period.End)},
		{"Starting Balance", cli.FormatMoney(a.currency, a.starting)},
		{"Planned Income", cli.FormatMoney(a.currency, plannedIncome)},
		{"Planned Outflow", cli.FormatMoney(a.currency, plannedOutflow)},
		{"Projected End", cli.FormatMoney(a.currency, ending)},
	}
	if a.riskOK {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Lowest Point", fmt.Sprintf("%s on %s",
			cli.FormatMoney(a.currency, a.risk.MinPoint.Balance),
			cli.FormatDate(a.risk.MinPoint.Date))})
		rows = append(rows, []string{"Days Below Min", fmt.Sprintf("%d of %d", a.risk.RiskDays, len(a.timeline))})
	}

	pace := a.forecast.Pace
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Progress", cli.FormatPercent(pace.TimeProgress)})
	rows = append(rows, []string{"Income So Far", cli.FormatMoney(a.currency, pace.ActualIncome)})
	rows = append(rows, []string{"Spent So Far", cli.FormatMoney(a.currency, pace.ActualSpending)})

	return cli.RenderTable(cli.Table{Headers: []string{"Metric", "Value"}, Rows: rows})
}

func (a App) viewTimeline() string {
	width := a.width - 4
	if width < 20 {
		width = 60
	}

	var b strings.Builder
	b.WriteString(balanceChart(a.timeline, width, 8))
	b.WriteString("\n\n")

	if min, ok := engine.MinPoint(a.timeline); ok {
		b.WriteString(fmt.Sprintf("  Low %s on %s",
			cli.FormatMoney(a.currency, min.Balance), cli.FormatDate(min.Date)))
		if a.riskOK && a.risk.FirstRiskDay != nil {
			b.WriteString(fmt.Sprintf("   first risk day %s", cli.FormatDate(*a.risk.FirstRiskDay)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) viewVariance() string {
	var b strings.Builder
	b.WriteString(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Budget", "Actual", "Variance", "Status"},
		Rows:    varianceTableRows(a.currency, a.variance),
	}))
	b.WriteString("\n")
	if len(a.bills) > 0 {
		overBills := 0
		for _, v := range a.bills {
			if v.Status == model.StatusOver {
				overBills++
			}
		}
		b.WriteString(fmt.Sprintf("  Bills over budget: %d of %d\n", overBills, len(a.bills)))
	}
	b.WriteString(fmt.Sprintf("  Savings transfers: %s of %s budgeted (%s)\n",
		cli.FormatMoney(a.currency, a.savings.Actual),
		cli.FormatMoney(a.currency, a.savings.Budgeted),
		a.savings.Status))
	return b.String()
}

func (a App) viewForecast() string {
	rows := make([][]string, 0, len(a.forecast.Scenarios))
	for _, s := range a.forecast.Scenarios {
		rows = append(rows, []string{
			s.Name,
			cli.FormatMoney(a.currency, s.Income),
			cli.FormatMoney(a.currency, s.Spending),
			cli.FormatMoney(a.currency, s.EndBalance),
			cli.FormatSignedMoney(a.currency, s.BufferDelta),
		})
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Income", "Spending", "End Balance", "Buffer"},
		Rows:    rows,
	})
}

func varianceTableRows(currency string, byKey map[string]model.Variance) [][]string {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := byKey[keys[i]], byKey[keys[j]]
		if !a.Budgeted.Equal(b.Budgeted) {
			return a.Budgeted.GreaterThan(b.Budgeted)
		}
		return keys[i] < keys[j]
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v := byKey[k]
		rows = append(rows, []string{
			k,
			cli.FormatMoney(currency, v.Budgeted),
			cli.FormatMoney(currency, v.Actual),
			cli.FormatSignedMoney(currency, v.Variance),
			string(v.Status),
		})
	}
	return rows
}
