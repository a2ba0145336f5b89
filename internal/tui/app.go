// Package tui provides the interactive dashboard: a product table with
// run-out status plus a spend/budget summary.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfigueredo/smarket/internal/cli"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
	"github.com/mfigueredo/smarket/internal/store"
)

// DataLoadedMsg is sent when the snapshot load finishes.
type DataLoadedMsg struct {
	Products []model.Product
	Settings model.AppSettings
	Err      error
}

type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	loc   *time.Location

	products []model.Product
	settings model.AppSettings
	loaded   bool
	loadErr  error

	table  table.Model
	width  int
	height int
}

// New builds the dashboard model.
func New(st *store.Store, loc *time.Location) App {
	columns := []table.Column{
		{Title: "Name", Width: 26},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 12},
		{Title: "Runs out", Width: 13},
		{Title: "Status", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(cli.ColorAccent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cli.ColorBorder).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(cli.ColorText).
		Background(cli.ColorBorder).
		Bold(false)
	t.SetStyles(styles)

	return App{store: st, loc: loc, table: t}
}

// Init loads data and starts the minute tick that keeps statuses fresh.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadData, tickEvery())
}

func (a App) loadData() tea.Msg {
	products, err := a.store.ListProducts()
	if err != nil {
		return DataLoadedMsg{Err: err}
	}
	settings, err := a.store.Settings()
	if err != nil {
		return DataLoadedMsg{Err: err}
	}
	return DataLoadedMsg{Products: products, Settings: settings}
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return a, tea.Quit
		case "r":
			return a, a.loadData
		}

	case DataLoadedMsg:
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.products = msg.Products
		a.settings = msg.Settings
		a.loaded = true
		a.loadErr = nil
		a.table.SetRows(a.rows())
		return a, nil

	case tickMsg:
		// Statuses depend on the clock; re-render and reload.
		return a, tea.Batch(a.loadData, tickEvery())
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

func (a App) rows() []table.Row {
	now := time.Now()
	rows := make([]table.Row, 0, len(a.products))
	for _, p := range a.products {
		days := forecast.DaysUntil(p, now, a.loc)
		status := forecast.StatusFor(days, a.settings.HeadsUpDays)
		rows = append(rows, table.Row{
			cli.Truncate(p.Name, 26),
			string(p.Category),
			money.Format(p.PriceLatest, a.settings.Currency),
			cli.FormatShortDate(forecast.NextRunOut(p, a.loc)),
			cli.StatusStyle(status).Render(cli.DueLabel(days)),
		})
	}
	return rows
}

// View renders the dashboard.
func (a App) View() string {
	if a.loadErr != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", a.loadErr)
	}
	if !a.loaded {
		return "\n  Loading...\n"
	}

	total := forecast.TotalMonthly(a.products)
	footer := fmt.Sprintf("  %d products · est. %s/month",
		len(a.products), money.Format(total, a.settings.Currency))
	if a.settings.BudgetEnabled {
		if total >= a.settings.BudgetAmount {
			footer += cli.StatusStyle(forecast.StatusOverdue).
				Render(fmt.Sprintf(" · over budget (%s)", money.Format(a.settings.BudgetAmount, a.settings.Currency)))
		} else {
			footer += fmt.Sprintf(" · budget %s", money.Format(a.settings.BudgetAmount, a.settings.Currency))
		}
	}

	help := cli.MutedStyle.Render("  r refresh · q quit")

	return fmt.Sprintf("\n%s\n\n%s\n\n%s\n%s\n",
		cli.RenderTitle("smarket"),
		a.table.View(),
		footer,
		help,
	)
}
