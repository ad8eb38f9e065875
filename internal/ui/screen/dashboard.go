package screen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rovshanmuradov/esports-earnings/internal/export"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"github.com/rovshanmuradov/esports-earnings/internal/session"
	"github.com/rovshanmuradov/esports-earnings/internal/summary"
	"github.com/rovshanmuradov/esports-earnings/internal/ui"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/component"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/router"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/style"
	"go.uber.org/zap"
)

// Fixed rows above the chart: header, slider, status and a spacer.
// Mouse coordinates are translated with these offsets.
const (
	donutTop  = 4
	donutLeft = 1
)

type inputFocus int

const (
	focusNone inputFocus = iota
	focusPath
	focusThreshold
)

// DashboardScreen shows the donut chart with its legend or summary, the
// filter slider and the import and export controls.
type DashboardScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	services ui.ServiceProvider
	session  *session.Session
	logger   *zap.Logger

	// UI components
	donut   *component.Donut
	legend  *component.Legend
	slider  *component.Slider
	helpBar *component.HelpBar

	pathInput      textinput.Model
	thresholdInput textinput.Model
	focus          inputFocus

	// State
	initialPath string
	loadedPath  string
	loading     bool
	showSummary bool
	status      string
	statusErr   bool
	statusOK    bool
	tickID      int
	panelWidth  int
	panelHeight int

	// Styling
	statusStyle lipgloss.Style
	panelStyle  lipgloss.Style
}

// NewDashboardScreen creates the dashboard. A non-empty initialPath is
// imported when the screen starts.
func NewDashboardScreen(services ui.ServiceProvider, initialPath string) *DashboardScreen {
	cfg := services.GetConfig()

	pathInput := textinput.New()
	pathInput.Prompt = "Open: "
	pathInput.Placeholder = "path/to/earnings.csv"
	pathInput.CharLimit = 4096
	pathInput.SetValue(initialPath)

	thresholdInput := textinput.New()
	thresholdInput.Prompt = "Threshold: $"
	thresholdInput.Placeholder = "0"
	thresholdInput.CharLimit = 32

	s := &DashboardScreen{
		keyMap:         ui.DefaultKeyMap(),
		services:       services,
		session:        services.GetSession(),
		logger:         services.GetLogger().Named("dashboard"),
		donut:          component.NewDonut(cfg.InnerRadiusRatio),
		legend:         component.NewLegend(),
		slider:         component.NewSlider(30),
		helpBar:        component.NewHelpBar(),
		pathInput:      pathInput,
		thresholdInput: thresholdInput,
		initialPath:    initialPath,
		status:         "Press o to open an earnings CSV file",

		statusStyle: style.MutedStyle,
		panelStyle:  style.PanelStyle,
	}
	s.refreshHelp()
	return s
}

// Init initializes the dashboard
func (s *DashboardScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if s.initialPath != "" {
		cmds = append(cmds, s.load(s.initialPath))
		s.initialPath = ""
	}
	if !s.session.Clock().Done() {
		cmds = append(cmds, s.startAnimation())
	}
	return tea.Batch(cmds...)
}

// Update handles screen updates
func (s *DashboardScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.focus != focusNone {
			return s, s.updateInput(msg)
		}
		return s, s.handleKey(msg)

	case tea.MouseMsg:
		s.handleMouse(msg)
		return s, nil

	case ui.AnimationTickMsg:
		if msg.ID != s.tickID {
			return s, nil
		}
		if s.session.Tick() && !s.session.Clock().Done() {
			return s, ui.AnimationTickCmd(s.tickID, s.session.Clock().Interval())
		}
		return s, nil

	case ui.FileLoadedMsg:
		s.loading = false
		s.session.Replace(msg.Data)
		s.loadedPath = msg.Path
		s.setStatus(fmt.Sprintf("Imported %d games from %s (%d rows skipped)",
			msg.Data.Len(), filepath.Base(msg.Path), msg.Stats.Skipped), false)
		s.statusOK = true
		return s, s.startAnimation()

	case ui.ExportedMsg:
		if len(msg.Paths) == 1 {
			s.setStatus("Exported "+msg.Paths[0], false)
		} else {
			s.setStatus(fmt.Sprintf("Exported %d files to %s", len(msg.Paths), s.services.GetConfig().ExportDir), false)
		}
		s.statusOK = true
		return s, nil

	case ui.ErrorMsg:
		s.loading = false
		s.setStatus(msg.Describe(), true)
		return s, nil
	}

	return s, nil
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return tea.Quit

	case key.Matches(msg, s.keyMap.Open):
		s.focusInput(focusPath)
		return textinput.Blink

	case key.Matches(msg, s.keyMap.ToggleMode):
		mode := s.session.ToggleMode()
		s.setStatus("Filter mode: "+s.slider.SetRange(mode, s.session.State().Range).Label(), false)
		return s.startAnimation()

	case key.Matches(msg, s.keyMap.Left):
		s.session.Step(-1)
		return s.startAnimation()

	case key.Matches(msg, s.keyMap.Right):
		s.session.Step(1)
		return s.startAnimation()

	case key.Matches(msg, s.keyMap.Threshold):
		if s.session.Filter().Mode != filter.ModeThreshold {
			s.setStatus("Switch to Threshold mode (m) to type a threshold", true)
			return nil
		}
		s.thresholdInput.SetValue(fmt.Sprintf("%.2f", s.session.Filter().Threshold))
		s.focusInput(focusThreshold)
		return textinput.Blink

	case key.Matches(msg, s.keyMap.ToggleSummary):
		s.showSummary = !s.showSummary

	case key.Matches(msg, s.keyMap.Logs):
		return func() tea.Msg { return ui.RouterMsg{To: ui.RouteLogs} }

	case key.Matches(msg, s.keyMap.ExportAll):
		return s.exportAll()

	case key.Matches(msg, s.keyMap.ExportCSV):
		return s.exportOne(export.FormatCSV)

	case key.Matches(msg, s.keyMap.ExportPNG):
		return s.exportOne(export.FormatPNG)

	case key.Matches(msg, s.keyMap.ExportJPEG):
		return s.exportOne(export.FormatJPEG)

	case key.Matches(msg, s.keyMap.ExportHTML):
		return s.exportOne(export.FormatHTML)
	}
	return nil
}

func (s *DashboardScreen) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Back):
		s.blurInputs()
		return nil

	case key.Matches(msg, s.keyMap.Enter):
		focus := s.focus
		s.blurInputs()
		if focus == focusPath {
			path := strings.TrimSpace(s.pathInput.Value())
			if path == "" {
				return nil
			}
			return s.load(path)
		}
		// text that is not a number is dropped without a message
		if err := s.session.SetThresholdText(s.thresholdInput.Value()); err != nil {
			return nil
		}
		s.setStatus("Threshold set to "+summary.Currency(s.session.Filter().Threshold), false)
		return s.startAnimation()
	}

	var cmd tea.Cmd
	if s.focus == focusPath {
		s.pathInput, cmd = s.pathInput.Update(msg)
	} else {
		s.thresholdInput, cmd = s.thresholdInput.Update(msg)
	}
	return cmd
}

func (s *DashboardScreen) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-donutLeft, msg.Y-donutTop
	if !s.donut.Contains(col, row) {
		s.session.SetHover(-1)
		return
	}
	s.session.HoverAt(s.donut.CellPoint(col, row), s.donut.Ring())
}

func (s *DashboardScreen) load(path string) tea.Cmd {
	s.loading = true
	s.setStatus("Loading "+path+"…", false)
	return ui.SafeCmd(s.logger, "load", ui.LoadFileCmd(s.services.GetIngestor(), path))
}

func (s *DashboardScreen) snapshot() export.Snapshot {
	return export.Snapshot{
		Data:    s.session.Data(),
		Entries: s.session.State().Entries,
		Filter:  s.session.Filter(),
	}
}

func (s *DashboardScreen) exportOne(format export.Format) tea.Cmd {
	s.setStatus("Exporting "+string(format)+"…", false)
	return ui.SafeCmd(s.logger, "export", ui.ExportCmd(s.services.GetExporter(), format, s.services.GetConfig().ExportDir, s.snapshot()))
}

func (s *DashboardScreen) exportAll() tea.Cmd {
	s.setStatus("Exporting all formats…", false)
	return ui.SafeCmd(s.logger, "export all", ui.ExportAllCmd(s.services.GetContext(), s.services.GetExporter(),
		s.services.GetConfig().ExportDir, s.snapshot()))
}

func (s *DashboardScreen) startAnimation() tea.Cmd {
	s.tickID++
	return ui.AnimationTickCmd(s.tickID, s.session.Clock().Interval())
}

func (s *DashboardScreen) focusInput(f inputFocus) {
	s.blurInputs()
	s.focus = f
	if f == focusPath {
		s.pathInput.Focus()
	} else {
		s.thresholdInput.Focus()
	}
	s.refreshHelp()
}

func (s *DashboardScreen) blurInputs() {
	s.focus = focusNone
	s.pathInput.Blur()
	s.thresholdInput.Blur()
	s.refreshHelp()
}

func (s *DashboardScreen) refreshHelp() {
	if s.focus != focusNone {
		s.helpBar.SetKeyBindings(s.keyMap.InputHelp())
	} else {
		s.helpBar.SetKeyBindings(s.keyMap.ContextualHelp(ui.RouteDashboard))
	}
	s.layout()
}

func (s *DashboardScreen) setStatus(text string, isErr bool) {
	s.status = text
	s.statusErr = isErr
	s.statusOK = false
	if isErr {
		s.logger.Warn(text)
	}
}

// SetSize sets the screen dimensions
func (s *DashboardScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	s.pathInput.Width = max(width-len(s.pathInput.Prompt)-4, 10)
	s.layout()
}

// layout splits the body between the donut and the side panel.
func (s *DashboardScreen) layout() {
	if s.width == 0 || s.height == 0 {
		return
	}
	// input row plus help
	bodyHeight := max(s.height-donutTop-1-s.helpBar.Lines(), 4)

	donutWidth := min(bodyHeight*2, s.width*55/100)
	donutWidth -= donutWidth % 2
	s.donut.SetSize(donutWidth, donutWidth/2)

	// panel border and padding take four columns and two rows
	s.panelWidth = max(s.width-donutLeft-donutWidth-2-4, 10)
	s.panelHeight = max(bodyHeight-2, 1)
	s.legend.SetSize(s.panelWidth, s.panelHeight)
	s.slider.SetWidth(max(min(s.width/3, 40), 10))
}

// View renders the dashboard
func (s *DashboardScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	state := s.session.State()
	s.slider.SetRange(state.Config.Mode, state.Range)

	var b strings.Builder
	b.WriteString(s.fit(s.renderHeader(state)))
	b.WriteString("\n")
	b.WriteString(s.fit(" " + s.slider.View()))
	b.WriteString("\n")
	b.WriteString(s.fit(" " + s.renderStatus()))
	b.WriteString("\n\n")

	// Narrow terminals get the panel below the chart; the chart keeps its
	// position either way, so mouse offsets stay valid.
	chartBlock := strings.Repeat(" ", donutLeft) + strings.ReplaceAll(s.renderChart(state), "\n", "\n"+strings.Repeat(" ", donutLeft))
	b.WriteString(style.AdaptiveJoinHorizontal(s.width, chartBlock, "  ", s.renderPanel(state)))
	b.WriteString("\n")

	b.WriteString(s.fit(" " + s.renderInput()))
	b.WriteString("\n")
	b.WriteString(s.helpBar.View())
	return b.String()
}

func (s *DashboardScreen) renderHeader(state session.RenderState) string {
	title := style.HeaderStyle.Render("Esports Earnings")

	file := "no file loaded"
	if s.loadedPath != "" {
		file = filepath.Base(s.loadedPath)
	}
	info := fmt.Sprintf(" %s • %d games • %s mode • showing %s",
		file, s.session.Data().Len(), state.Config.Mode, summary.Currency(state.Total))
	return title + style.MutedStyle.Render(info)
}

func (s *DashboardScreen) renderStatus() string {
	if s.statusErr {
		return style.ErrorStyle.Render(s.status)
	}
	if s.statusOK {
		return style.SuccessStyle.Render(s.status)
	}
	if s.loading {
		return style.InfoStyle.Render(s.status)
	}
	return s.statusStyle.Render(s.status)
}

func (s *DashboardScreen) renderChart(state session.RenderState) string {
	w, h := s.donut.Size()
	if state.Empty() {
		banner := component.Banner("Esports", w)
		hint := style.MutedStyle.Render("No data to chart")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, banner, "", hint))
	}

	var tooltip []string
	if _, e, ok := s.session.Hovered(); ok {
		tooltip = summary.Tooltip(e, state.Total, s.session.Hint(e.Label))
	}
	return s.donut.View(s.session.Visible(), s.session.Hover(), tooltip)
}

func (s *DashboardScreen) renderPanel(state session.RenderState) string {
	var content string
	if s.showSummary {
		lines := strings.Split(state.Summary, "\n")
		if len(lines) > s.panelHeight {
			lines = lines[len(lines)-s.panelHeight:]
		}
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, s.panelWidth, "…")
		}
		content = strings.Join(lines, "\n")
	} else {
		content = s.legend.
			SetEntries(state.Entries, state.Total).
			SetHover(s.session.Hover()).
			View()
	}

	panel := s.panelStyle
	if _, ok := s.session.Hover().Index(); ok {
		panel = style.ActivePanelStyle
	}
	return panel.Width(s.panelWidth + 2).Render(content)
}

func (s *DashboardScreen) renderInput() string {
	switch s.focus {
	case focusPath:
		return s.pathInput.View()
	case focusThreshold:
		return s.thresholdInput.View()
	default:
		if s.loadedPath != "" {
			return style.MutedStyle.Render("File: " + s.loadedPath)
		}
		return ""
	}
}

// fit truncates a line to the screen width.
func (s *DashboardScreen) fit(line string) string {
	return ansi.Truncate(line, s.width, "…")
}
