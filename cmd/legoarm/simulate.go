package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/mmp819/robotic-lego-arm/pkg/arm"
	"github.com/mmp819/robotic-lego-arm/pkg/brick"
	"github.com/mmp819/robotic-lego-arm/pkg/brick/sim"
)

type SimulateCommand struct{}

const (
	headerHeight = 2
	panelHeight  = 4
	footerHeight = 7
	borderSize   = 2
	maxLogs      = 5

	keyPressTime    = 400 * time.Millisecond
	togglePressTime = 200 * time.Millisecond
	sensorPulseTime = 600 * time.Millisecond
	uiTickTime      = 100 * time.Millisecond
)

var motorColors = map[string]string{
	"rotation":  "196", // red
	"elevation": "226", // yellow
	"claw":      "51",  // cyan
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

type simModel struct {
	b        *sim.Brick
	ctrl     *arm.Controller
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	runErr   error
	quitting bool
}

type uiTickMsg time.Time
type simLogMsg string
type runDoneMsg struct{ err error }

func uiTick() tea.Cmd {
	return tea.Tick(uiTickTime, func(t time.Time) tea.Msg {
		return uiTickMsg(t)
	})
}

func waitForControllerLog(ctrl *arm.Controller) tea.Cmd {
	return func() tea.Msg {
		return simLogMsg(<-ctrl.Logs())
	}
}

func newSimModel(b *sim.Brick, ctrl *arm.Controller) simModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-500, 500),
	)
	for name, color := range motorColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}
	return simModel{b: b, ctrl: ctrl, chart: &chart}
}

func (m *simModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *simModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - panelHeight - footerHeight - borderSize
	if height < 8 {
		height = 8
	}
	return width, height
}

func (m simModel) Init() tea.Cmd {
	return tea.Batch(uiTick(), waitForControllerLog(m.ctrl))
}

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.chartSize()
		m.chart.Resize(w, h)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.ctrl.Stop()
			return m, tea.Quit
		case "esc":
			m.b.Keys.Press(brick.KeyBack, togglePressTime)
		case "left":
			m.b.Keys.Press(brick.KeyLeft, keyPressTime)
		case "right":
			m.b.Keys.Press(brick.KeyRight, keyPressTime)
		case "up":
			m.b.Keys.Press(brick.KeyUp, keyPressTime)
		case "down":
			m.b.Keys.Press(brick.KeyDown, keyPressTime)
		case "enter", " ":
			m.b.Keys.Press(brick.KeyCenter, togglePressTime)
		case "t":
			m.b.Touch.Pulse(1, sensorPulseTime)
		case "c":
			m.b.Color.Pulse(100, sensorPulseTime)
		}
		return m, nil

	case uiTickMsg:
		for name, motor := range map[string]*sim.Motor{
			"rotation":  m.b.Rotation,
			"elevation": m.b.Elevation,
			"claw":      m.b.Claw,
		} {
			if pos, err := motor.Position(); err == nil {
				m.chart.PushDataSet(name, float64(pos))
			}
		}
		m.chart.DrawAll()
		return m, uiTick()

	case simLogMsg:
		m.addLog(string(msg))
		return m, waitForControllerLog(m.ctrl)

	case runDoneMsg:
		m.runErr = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m simModel) View() string {
	if m.quitting {
		return "Simulation stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("legoarm simulate"))
	sb.WriteString(statusStyle.Render("  arrows move · enter toggles claw · t touch · c color · esc back · q quit"))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderBrickPanel())
	sb.WriteString("\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)
	logLines := statusStyle.Render("waiting for controller...")
	if len(m.logs) > 0 {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

// renderBrickPanel shows the LEDs and a summary of the simulated LCD frame.
func (m simModel) renderBrickPanel() string {
	led := func(side brick.Side) string {
		if m.b.LEDs.Level(side, brick.Red) > 0 {
			return redStyle.Render("●")
		}
		if m.b.LEDs.Level(side, brick.Green) > 0 {
			return greenStyle.Render("●")
		}
		return statusStyle.Render("○")
	}

	frame := m.b.LCD.Snapshot()
	claw := "open"
	for _, c := range frame.Circles {
		if c.Filled {
			claw = "closed"
		}
	}
	var texts []string
	for _, t := range frame.Texts {
		texts = append(texts, t.S)
	}

	return fmt.Sprintf("  leds %s %s   claw %s   lcd %s",
		led(brick.LeftLED), led(brick.RightLED), claw, statusStyle.Render(strings.Join(texts, " | ")))
}

func renderLegend() string {
	items := make([]string, 0, len(motorColors))
	for _, name := range []string{"rotation", "elevation", "claw"} {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(motorColors[name])).Bold(true)
		items = append(items, style.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func (c *SimulateCommand) Execute(args []string) error {
	b := sim.New()
	b.WireArm()

	ctrl := arm.New(arm.Config{
		Rotation:  b.Rotation,
		Elevation: b.Elevation,
		Claw:      b.Claw,
		Color:     b.Color,
		Touch:     b.Touch,
		Buttons:   b.Keys,
		LEDs:      b.LEDs,
		Display:   b.LCD,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(newSimModel(b, ctrl), tea.WithAltScreen())

	go func() {
		err := ctrl.Run(ctx)
		p.Send(runDoneMsg{err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		log.Fatalf("Error running program: %v", err)
	}
	ctrl.Stop()

	if m, ok := finalModel.(simModel); ok && m.runErr != nil {
		return m.runErr
	}
	return nil
}
