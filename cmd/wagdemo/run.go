// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wagui/wag/app"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/pointer"
	"github.com/wagui/wag/io/system"
	"github.com/wagui/wag/visual"
	"github.com/wagui/wag/widget"
)

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

func newRunCmd() *cobra.Command {
	var (
		cfgPath string
		logPath string
		buttons int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show a row of buttons in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf := app.DefaultConfig()
			if cfgPath != "" {
				var err error
				if cnf, err = app.LoadConfig(cfgPath); err != nil {
					return err
				}
			}
			level, err := app.ParseLevel(cnf.LogLevel)
			if err != nil {
				return err
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = log.DebugLevel
			}
			// The terminal belongs to the program; log elsewhere.
			var out io.Writer = io.Discard
			if logPath != "" {
				f, err := os.Create(logPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			ctx := log.WithContext(cmd.Context(), app.NewLogger(out, level))
			return runDemo(ctx, cnf, buttons)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().StringVar(&logPath, "log-file", "", "write logs to this file")
	cmd.Flags().IntVarP(&buttons, "buttons", "n", 3, "number of buttons")
	return cmd
}

func runDemo(ctx context.Context, cnf app.Config, buttons int) error {
	comp := visual.NewMemCompositor()
	pool := app.NewPool(ctx, cnf.Workers)
	defer pool.Close()

	w, err := app.NewWindow(comp, cnf)
	if err != nil {
		return err
	}
	defer w.Close()
	s, err := newScene(ctx, comp, pool, cnf, buttons)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := w.SetItem(ctx, s.stack); err != nil {
		return err
	}
	updates := make(chan any, 16)
	if err := s.watch(pool, w, updates); err != nil {
		return err
	}
	if err := pool.Spawn(w.Run); err != nil {
		return err
	}

	m := model{
		w:       w,
		root:    w.Root().(*visual.MemNode),
		updates: updates,
		clicks:  make([]int, buttons),
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(pool.Context()))
	_, err = p.Run()
	return err
}

type redrawMsg struct{}

type clickMsg struct {
	button int
	event  widget.ButtonEvent
}

type model struct {
	w       *app.Window
	root    *visual.MemNode
	updates <-chan any
	clicks  []int
	width   int
	height  int
	status  string
}

func (m model) Init() tea.Cmd {
	return m.wait()
}

func (m model) wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// The last line is the status line.
		return m, m.queue(system.ResizeEvent{Size: image.Pt(msg.Width, max(msg.Height-1, 0))})
	case tea.MouseMsg:
		pos := f32.Pt(float32(msg.X)+.5, float32(msg.Y)+.5)
		if cmd := m.queue(system.CursorEvent{Position: pos}); cmd != nil {
			return m, cmd
		}
		btn, ok := mouseButton(msg.Button)
		if !ok {
			return m, nil
		}
		switch msg.Action {
		case tea.MouseActionPress:
			return m, m.queue(system.MouseEvent{State: pointer.Pressed, Button: btn})
		case tea.MouseActionRelease:
			return m, m.queue(system.MouseEvent{State: pointer.Released, Button: btn})
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.w.Queue(system.CloseEvent{})
			return m, tea.Quit
		}
	case redrawMsg:
		return m, m.wait()
	case clickMsg:
		if msg.event == widget.ButtonClicked {
			m.clicks[msg.button]++
		}
		m.status = fmt.Sprintf("button %d %s", msg.button+1, msg.event)
		return m, m.wait()
	}
	return m, nil
}

// queue hands e to the window, quitting if it is gone.
func (m model) queue(e system.Event) tea.Cmd {
	if err := m.w.Queue(e); err != nil {
		return tea.Quit
	}
	return nil
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(render(m.root, m.width, m.height-1))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("clicks %v  %s  (q to quit)", m.clicks, m.status)))
	return b.String()
}

func mouseButton(b tea.MouseButton) (pointer.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return pointer.ButtonPrimary, true
	case tea.MouseButtonRight:
		return pointer.ButtonSecondary, true
	case tea.MouseButtonMiddle:
		return pointer.ButtonTertiary, true
	default:
		return 0, false
	}
}
