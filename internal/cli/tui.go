package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiTickInterval is the delay between host ticks in the job table.
const tuiTickInterval = 100 * time.Millisecond

// =============================================================================
// ImportModel - Interactive import job table
// =============================================================================

// tickMsg asks the model to advance the host by one tick.
type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ImportModel is the bubbletea model that drives a host and shows the jobs
// submitted to it. The host is only touched from Update, so it stays on
// one goroutine.
type ImportModel struct {
	Host     *pipeline.Host
	Jobs     []*pipeline.Job
	Interval time.Duration
	Cursor   int
	Quit     bool // user stopped the host before every job finished

	frame int
}

// NewImportModel creates a model around host showing jobs.
func NewImportModel(host *pipeline.Host, jobs []*pipeline.Job) ImportModel {
	return ImportModel{Host: host, Jobs: jobs, Interval: tuiTickInterval}
}

func (m ImportModel) Init() tea.Cmd {
	return tickCmd(m.Interval)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Host.Pending() > 0 {
				m.Host.Stop()
				m.Quit = true
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Jobs)-1 {
				m.Cursor++
			}
		}
	case tickMsg:
		m.frame++
		if m.Host.Pending() == 0 {
			return m, tea.Quit
		}
		m.Host.Tick()
		if m.Host.Pending() == 0 {
			return m, tea.Quit
		}
		return m, tickCmd(m.Interval)
	}
	return m, nil
}

func (m ImportModel) View() string {
	var b strings.Builder
	jobs := m.Jobs

	b.WriteString(StyleTitle.Render("Importing Documents"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q stop"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(jobs))
	for i, job := range jobs {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			job.ShortID(),
			job.DocPath,
			m.stateLabel(job.State),
			fmt.Sprintf("%d", job.Stats.Assets),
			fmt.Sprintf("%d", job.Stats.Ticks),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Job", "Document", "State", "Assets", "Ticks").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(jobs) {
				return lipgloss.NewStyle()
			}
			job := jobs[row]
			base := lipgloss.NewStyle()
			if col == 3 {
				switch job.State {
				case pipeline.StateDone:
					base = base.Foreground(colorGreen)
				case pipeline.StateFailed:
					base = base.Foreground(colorRed)
				case pipeline.StateCanceled:
					base = base.Foreground(colorYellow)
				default:
					base = base.Foreground(colorCyan)
				}
			}
			if row == m.Cursor {
				if col == 3 {
					return base.Bold(true)
				}
				return listSelectedStyle
			}
			if col == 3 {
				return base
			}
			if job.State.Final() {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	if m.Cursor < len(jobs) && jobs[m.Cursor].Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + jobs[m.Cursor].Err.Error())
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  tick %d · %d pending", m.Host.Ticks(), m.Host.Pending())))

	return b.String()
}

func (m ImportModel) stateLabel(s pipeline.State) string {
	if s.Final() {
		return s.String()
	}
	return spinnerFrames[m.frame%len(spinnerFrames)] + " " + s.String()
}

// runImportTUI submits every document to one host and drives it from the
// job table, so imports advance side by side.
func (c *CLI) runImportTUI(cmd *cobra.Command, docs []string, opts importOpts) error {
	runner, cleanup, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	// Job logs would tear the table; keep only errors.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(LogError)
	defer c.Logger.SetLevel(level)

	host := pipeline.NewHost(runner.Registry, c.Logger)
	jobs := make([]*pipeline.Job, 0, len(docs))
	for _, doc := range docs {
		job, err := runner.Submit(cmd.Context(), host, doc, opts.canvas)
		if err != nil {
			host.Stop()
			return err
		}
		jobs = append(jobs, job)
	}

	final, err := tea.NewProgram(NewImportModel(host, jobs), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		host.Stop()
		return err
	}

	var failed int
	for _, job := range jobs {
		switch job.State {
		case pipeline.StateDone:
			printSuccess("Imported %s", job.DocPath)
			printJobStats(job)
		default:
			printError("Import %s: %s", job.State, job.DocPath)
			if job.Err != nil {
				printDetail("%v", job.Err)
			}
			failed++
		}
	}
	if m, ok := final.(ImportModel); ok && m.Quit {
		return fmt.Errorf("import stopped")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(docs))
	}
	return nil
}
