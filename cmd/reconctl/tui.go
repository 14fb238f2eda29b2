package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/doctree/reconciler/pkg/buffer"
	"github.com/doctree/reconciler/pkg/document"
	"github.com/doctree/reconciler/pkg/frontend"
	"github.com/doctree/reconciler/pkg/reconcile"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactively edit a single paragraph and watch the RangeIndex update live",
	RunE:  runTUI,
}

var (
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	inspectorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

// tuiModel pairs an editable bubbles/textarea with a live view of the
// reconciler's buffer and RangeIndex, updating on every keystroke the same
// way internal/repl.BubbleModel pairs its textarea with the chat history
// pane — here the "history" is the reconciler's own internal state.
type tuiModel struct {
	textarea textarea.Model
	builder  *document.Builder
	textKey  document.Key
	rec      *reconcile.Reconciler
	width    int
	height   int
	lastPath string
	err      error
}

func runTUI(cmd *cobra.Command, args []string) error {
	ti := textarea.New()
	ti.Placeholder = "Type to edit the paragraph..."
	ti.Focus()
	ti.Prompt = "> "
	ti.ShowLineNumbers = false
	ti.SetWidth(60)
	ti.SetHeight(3)

	b := document.NewBuilder()
	root := b.State().RootKey
	para := b.Element(root, "", "\n")
	textKey := b.Text(para, "")

	rec := reconcile.New(buffer.NewStringBuffer(), frontend.NoOp{})
	empty := document.NewEditorState(root)
	if _, err := rec.Reconcile(context.Background(), empty, b.State(), reconcile.Options{}); err != nil {
		return fmt.Errorf("seeding document: %w", err)
	}

	m := tuiModel{
		textarea: ti,
		builder:  b,
		textKey:  textKey,
		rec:      rec,
		lastPath: "fresh-hydration",
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m tuiModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width - 4)
	}

	prevValue := m.textarea.Value()
	m.textarea, cmd = m.textarea.Update(msg)
	newValue := m.textarea.Value()

	if newValue != prevValue {
		prev := m.builder.State()
		next := m.builder.Clone()
		node, _ := next.State().Get(m.textKey)
		node.Text = newValue
		next.MarkDirty(m.textKey, "tui-edit")

		stats, err := m.rec.Reconcile(context.Background(), prev, next.State(), reconcile.Options{ReconcileSelection: true})
		if err != nil {
			m.err = err
		} else {
			m.err = nil
			m.lastPath = stats.PathLabel
			m.builder = next
		}
	}

	return m, cmd
}

func (m tuiModel) View() string {
	input := inputBoxStyle.Width(m.widthOr(64)).Render(m.textarea.View())

	var sb strings.Builder
	sb.WriteString(headingStyle.Render("last path: "))
	sb.WriteString(m.lastPath)
	sb.WriteString("\n")

	node, _ := m.builder.State().Get(m.textKey)
	if node != nil {
		fmt.Fprintf(&sb, "text:    %q\n", node.Text)
	}
	if sbuf, ok := m.rec.Buffer.(*buffer.StringBuffer); ok {
		fmt.Fprintf(&sb, "buffer:  %q\n", sbuf.String())
	}
	if it, ok := m.rec.Index.Get(m.textKey); ok {
		fmt.Fprintf(&sb, "range:   location=%d text_length=%d entire_length=%d\n",
			m.rec.Index.AbsoluteLocation(it), it.TextLength, it.EntireLength())
	}
	if cfg != nil && cfg.DebugInvariants {
		fmt.Fprintf(&sb, "fenwick_lazy_threshold: %d\n", cfg.FenwickLazyThreshold)
	}
	if m.err != nil {
		fmt.Fprintf(&sb, "error:   %v\n", m.err)
	}
	inspector := inspectorStyle.Width(m.widthOr(64)).Render(sb.String())

	return lipgloss.JoinVertical(lipgloss.Left, input, inspector, "ctrl+c to quit")
}

func (m tuiModel) widthOr(fallback int) int {
	if m.width > 4 {
		return m.width - 4
	}
	return fallback
}
