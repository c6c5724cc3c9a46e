package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/collide"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/integrate"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	trailCapacity   = 4000
)

type TickMsg time.Time

// Model drives the interactive terminal view: it owns its copy of the body
// set and steps the engine once per frame.
type Model struct {
	params        gravity.Params
	initialParams gravity.Params
	integ         integrate.Integrator
	bodies        body.Bodies
	initial       body.Bodies
	t, dt         float64

	canvas     *Canvas
	viewport   *Viewport
	trail      []body.Vec2
	energyHist []float64
	merges     int

	running   bool
	recording bool
	showHelp  bool
	frames    []*image.Paletted
	notice    string
}

func NewModel(cfg *config.Config, integ integrate.Integrator) Model {
	b := cfg.InitialBodies()
	return Model{
		params:        cfg.Params(),
		initialParams: cfg.Params(),
		integ:         integ,
		bodies:        b,
		initial:       b.Clone(),
		dt:            cfg.Dt,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		viewport:      NewViewport(-4, 4, -4, 4, canvasWidth, canvasHeight),
		trail:         make([]body.Vec2, 0, trailCapacity),
		energyHist:    make([]float64, 0, historyCapacity),
		running:       true,
	}
}

// RunLive starts the bubbletea program and blocks until the user quits.
func RunLive(cfg *config.Config, integ integrate.Integrator) error {
	p := tea.NewProgram(NewModel(cfg, integ), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.params.G *= 1.05
		case "down", "j":
			m.params.G *= 0.95
		case "g":
			if m.recording {
				m.notice = m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.notice = ""
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.bodies = m.integ.Step(m.bodies, m.params, m.dt)

	var merges []collide.Merge
	m.bodies, merges = collide.Resolve(m.bodies, m.params.Epsilon)
	m.merges += len(merges)

	m.t += m.dt

	for i := 0; i < m.bodies.N(); i++ {
		m.trail = append(m.trail, m.bodies.Pos[i])
	}
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[len(m.trail)-trailCapacity:]
	}

	m.energyHist = append(m.energyHist, gravity.TotalEnergy(m.bodies, m.params))
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.merges = 0
	m.bodies = m.initial.Clone()
	m.params = m.initialParams
	m.trail = m.trail[:0]
	m.energyHist = m.energyHist[:0]
	m.notice = ""
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, p := range m.trail {
		m.canvas.Set(m.viewport.Project(p.X, p.Y))
	}
	for i := 0; i < m.bodies.N(); i++ {
		x, y := m.viewport.Project(m.bodies.Pos[i].X, m.bodies.Pos[i].Y)
		m.canvas.Dot(x, y, 2)
	}
}

func (m Model) View() string {
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recording {
		status += " ● REC"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("GRAVSIM") + "\n")
	s.WriteString(status + "\n\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHist) > 0 {
		energy = m.energyHist[len(m.energyHist)-1]
	}
	mom := m.bodies.TotalMomentum()

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.bodies.N())) + "\n")
	s.WriteString(labelStyle.Render("Merges") + valueStyle.Render(fmt.Sprintf("%d", m.merges)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", mom.X, mom.Y)) + "\n")
	s.WriteString(labelStyle.Render("G") + valueStyle.Render(fmt.Sprintf("%.3f", m.params.G)) + "\n")

	if m.notice != "" {
		s.WriteString("\n" + alertStyle.Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nG:Record ↑↓:Gravity ?:Help"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Up/K     - Increase G (+5%)         ║
║  Down/J   - Decrease G (-5%)         ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := canvasWidth*charW, canvasHeight*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})

	for row := 0; row < canvasHeight; row++ {
		for col := 0; col < canvasWidth; col++ {
			r := m.canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := r - 0x2800
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}

	m.frames = append(m.frames, img)
}

// saveGIF writes the recorded frames and returns a user-facing notice. Export
// failure is recoverable: the simulation keeps running.
func (m *Model) saveGIF() string {
	if len(m.frames) == 0 {
		return "no frames recorded"
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}

	f, err := os.Create("gravsim.gif")
	if err != nil {
		return fmt.Sprintf("gif export failed: %v", err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Sprintf("gif export failed: %v", err)
	}
	return "saved gravsim.gif"
}
