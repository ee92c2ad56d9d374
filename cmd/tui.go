// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Thermoquad/framescope/pkg/framer"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for anomalies, false for info
}

// TUI model
type model struct {
	connInfo      string
	framing       string
	showAll       bool
	stats         framer.Statistics
	lastFrame     *framer.Frame
	eventLog      []eventLogEntry
	maxLogEntries int
	logView       viewport.Model
	synchronized  bool
	skippedBytes  uint64
	streamEnded   bool
	width         int
	height        int
	quitting      bool
}

// Messages
type tickMsg time.Time
type frameMsg struct {
	frame   *framer.Frame
	dropped uint64 // Dropped bytes when the frame completed
}
type statsMsg struct {
	stats framer.Statistics
}
type eventMsg struct {
	message string
	isError bool
}
type streamEndMsg struct {
	err error
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func initialModel(connInfo, framing string, showAll bool) model {
	return model{
		connInfo:      connInfo,
		framing:       framing,
		showAll:       showAll,
		stats:         *framer.NewStatistics(),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		logView:       viewport.New(76, 8),
		width:         80,
		height:        24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLog()

	case tickMsg:
		return m, tickCmd()

	case statsMsg:
		m.stats = msg.stats

	case frameMsg:
		m.lastFrame = msg.frame
		if !m.synchronized {
			m.synchronized = true
			m.skippedBytes = msg.dropped
			if msg.dropped > 0 {
				m.addLogEntry(fmt.Sprintf("Synchronized after skipping %d bytes", msg.dropped), false)
			} else {
				m.addLogEntry("Synchronized", false)
			}
		}
		if m.showAll {
			m.addLogEntry(framer.FormatSummary(msg.frame), false)
		}

	case eventMsg:
		m.addLogEntry(msg.message, msg.isError)

	case streamEndMsg:
		m.streamEnded = true
		if msg.err != nil && !errors.Is(msg.err, io.EOF) {
			m.addLogEntry(fmt.Sprintf("Stream ended: %v", msg.err), true)
		} else {
			m.addLogEntry("Stream ended", false)
		}
	}

	return m, nil
}

func (m *model) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}

	m.logView.SetContent(m.renderLog())
	m.logView.GotoBottom()
}

// resizeLog fits the event log viewport below the stats and frame boxes
func (m *model) resizeLog() {
	logHeight := m.height - 18
	if logHeight < 5 {
		logHeight = 5
	}
	m.logView.Width = m.width - 6
	m.logView.Height = logHeight
	m.logView.SetContent(m.renderLog())
}

func (m model) renderLog() string {
	if len(m.eventLog) == 0 {
		return headerStyle.Render("  (no events yet)")
	}

	var s strings.Builder
	for _, entry := range m.eventLog {
		timestamp := headerStyle.Render(entry.timestamp.Format("01/02/06 15:04:05.000"))
		if entry.isError {
			fmt.Fprintf(&s, "%s %s\n", timestamp, errorStyle.Render("✗ "+entry.message))
		} else {
			fmt.Fprintf(&s, "%s %s\n", timestamp, warningStyle.Render("ℹ "+entry.message))
		}
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (m model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("FRAMESCOPE - MONITOR"))
	s.WriteString("\n")
	mode := "Anomalies only"
	if m.showAll {
		mode = "All frames"
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | %s | Mode: %s | Press 'q' to quit",
		m.connInfo, m.framing, mode)))
	s.WriteString("\n\n")

	// Sync status
	switch {
	case m.streamEnded:
		s.WriteString(errorStyle.Render("■ Stream ended"))
	case !m.synchronized:
		s.WriteString(warningStyle.Render("⏳ Waiting for first frame..."))
	default:
		s.WriteString(valueStyle.Render("✓ Synchronized"))
		if m.skippedBytes > 0 {
			s.WriteString(headerStyle.Render(fmt.Sprintf(" (skipped %d bytes)", m.skippedBytes)))
		}
	}
	s.WriteString("\n\n")

	s.WriteString(boxStyle.Render(m.renderStats()))
	s.WriteString("\n\n")

	if m.lastFrame != nil {
		s.WriteString(labelStyle.Render("Latest Frame:"))
		s.WriteString("\n")
		frameContent := fmt.Sprintf("%s %s   %s %d bytes\n%s %s",
			labelStyle.Render("Time:"), valueStyle.Render(m.lastFrame.Timestamp().Format("15:04:05.000")),
			labelStyle.Render("Length:"), m.lastFrame.Length(),
			labelStyle.Render("Payload:"), valueStyle.Render(strconv.Quote(m.lastFrame.String())),
		)
		s.WriteString(boxStyle.Render(frameContent))
		s.WriteString("\n\n")
	}

	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")
	s.WriteString(boxStyle.Width(m.width - 4).Render(m.logView.View()))

	return s.String()
}

func (m model) renderStats() string {
	st := m.stats

	var droppedPercent float64
	if st.BytesRead > 0 {
		droppedPercent = float64(st.DroppedBytes()) * 100.0 / float64(st.BytesRead)
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%s %s   %s %s   %s %s\n",
		labelStyle.Render("Frames:"), valueStyle.Render(fmt.Sprintf("%d", st.Frames)),
		labelStyle.Render("Bytes:"), valueStyle.Render(fmt.Sprintf("%d", st.BytesRead)),
		labelStyle.Render("Dropped:"), warningStyle.Render(fmt.Sprintf("%d (%.1f%%)", st.DroppedBytes(), droppedPercent)),
	)

	if st.Overflows > 0 || st.PrematureStarts > 0 {
		fmt.Fprintf(&s, "%s %s   %s %s\n",
			labelStyle.Render("Overflows:"), errorStyle.Render(fmt.Sprintf("%d", st.Overflows)),
			labelStyle.Render("Premature Starts:"), warningStyle.Render(fmt.Sprintf("%d", st.PrematureStarts)),
		)
	}

	fmt.Fprintf(&s, "%s %s   %s %s",
		labelStyle.Render("Frame Rate:"), valueStyle.Render(fmt.Sprintf("%.1f frames/s", st.FrameRate)),
		labelStyle.Render("Byte Rate:"), valueStyle.Render(fmt.Sprintf("%.1f B/s", st.ByteRate)),
	)

	return s.String()
}
