package generator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConflictResolution is the decision for one generated file that already exists.
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel

	// SkipAll and OverwriteAll apply to this file and every later conflict
	// handled by the same Resolver.
	SkipAll
	OverwriteAll
)

func (r ConflictResolution) String() string {
	switch r {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	case SkipAll:
		return "skip all"
	case OverwriteAll:
		return "overwrite all"
	default:
		return "cancel"
	}
}

// ConflictStrategy decides what happens to an existing file.
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver applies a strategy to each conflicting file of a run and
// remembers SkipAll/OverwriteAll answers.
type Resolver struct {
	strategy ConflictStrategy
	sticky   *ConflictResolution
}

var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	plusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	minusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// NewResolver builds the resolver for the --skip, --diff and --ask flags.
// Without a flag every existing file is overwritten. The flags are mutually
// exclusive. Diffs shown by --diff are written to w.
func NewResolver(w io.Writer, skip, diff, ask bool) (*Resolver, error) {
	var chosen []string
	var strategy ConflictStrategy = &ForceStrategy{}
	if skip {
		chosen = append(chosen, "--skip")
		strategy = &SkipStrategy{}
	}
	if diff {
		chosen = append(chosen, "--diff")
		strategy = &DiffStrategy{Writer: w}
	}
	if ask {
		chosen = append(chosen, "--ask")
		strategy = &InteractiveStrategy{}
	}
	if len(chosen) > 1 {
		return nil, fmt.Errorf("%s cannot be combined", strings.Join(chosen, ", "))
	}
	return NewResolverWithStrategy(strategy), nil
}

// NewResolverWithStrategy creates a resolver around a custom strategy.
func NewResolverWithStrategy(s ConflictStrategy) *Resolver {
	return &Resolver{strategy: s}
}

// ResolveConflict returns Skip, Overwrite, ShowDiff or Cancel for path.
// The "all" answers are turned into their single-file form and reused for
// every later call.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	if r.sticky != nil {
		return *r.sticky, nil
	}

	res, err := r.strategy.Resolve(path, existing, newer)
	if err != nil {
		return Cancel, err
	}

	switch res {
	case SkipAll:
		res = Skip
		r.sticky = &res
	case OverwriteAll:
		res = Overwrite
		r.sticky = &res
	}
	return res, nil
}

// ForceStrategy overwrites every existing file.
type ForceStrategy struct{}

func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy keeps every existing file.
type SkipStrategy struct{}

func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// pagerThreshold is the diff length, in lines, above which DiffStrategy
// opens a scrollable pager instead of printing.
const pagerThreshold = 20

// DiffStrategy prints the diff for each conflict and then asks.
type DiffStrategy struct {
	Writer io.Writer
	Ask    ConflictStrategy // nil means InteractiveStrategy

	differ *DiffGenerator
}

func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if s.differ == nil {
		s.differ = NewDiffGenerator()
	}
	diff := s.differ.GenerateDiffDefault(path, path, existing, newer)

	if s.Writer == os.Stdout && strings.Count(diff, "\n") > pagerThreshold {
		final, err := tea.NewProgram(newDiffPager(path, diff), tea.WithAltScreen()).Run()
		if err != nil {
			return Cancel, fmt.Errorf("showing diff for %s: %w", path, err)
		}
		if final.(diffPager).aborted {
			return Cancel, nil
		}
	} else {
		fmt.Fprint(s.Writer, diff)
	}

	ask := s.Ask
	if ask == nil {
		ask = &InteractiveStrategy{}
	}
	for {
		res, err := ask.Resolve(path, existing, newer)
		if err != nil || res != ShowDiff {
			return res, err
		}
	}
}

// InteractiveStrategy asks with an arrow-key menu. It shows when the
// existing file was last changed and how many lines would change.
type InteractiveStrategy struct{}

func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	m := newConflictMenu(path)
	if info, err := os.Stat(path); err == nil {
		m.modified = info.ModTime()
	}
	m.added, m.removed = NewDiffGenerator().Stat(existing, newer)

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return Cancel, fmt.Errorf("asking about %s: %w", path, err)
	}
	choice := final.(conflictMenu).chosen
	if choice == nil {
		return Cancel, nil
	}
	return *choice, nil
}

type menuItem struct {
	label      string
	resolution ConflictResolution
}

var conflictMenuItems = []menuItem{
	{"Show diff", ShowDiff},
	{"Skip this file", Skip},
	{"Overwrite this file", Overwrite},
	{"Skip all remaining conflicts", SkipAll},
	{"Overwrite all remaining conflicts", OverwriteAll},
	{"Cancel generation", Cancel},
}

type conflictMenu struct {
	path           string
	modified       time.Time
	added, removed int
	cursor         int
	chosen         *ConflictResolution
}

func newConflictMenu(path string) conflictMenu {
	return conflictMenu{path: path}
}

func (m conflictMenu) Init() tea.Cmd {
	return nil
}

func (m conflictMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor + len(conflictMenuItems) - 1) % len(conflictMenuItems)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(conflictMenuItems)
	case "d":
		return m.choose(ShowDiff)
	case "s":
		return m.choose(Skip)
	case "o":
		return m.choose(Overwrite)
	case "enter":
		return m.choose(conflictMenuItems[m.cursor].resolution)
	}
	return m, nil
}

func (m conflictMenu) choose(r ConflictResolution) (tea.Model, tea.Cmd) {
	m.chosen = &r
	return m, tea.Quit
}

func (m conflictMenu) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("Already exists: ") + pathStyle.Render(m.path) + "\n")
	details := []string{plusStyle.Render(fmt.Sprintf("+%d", m.added)) + " " + minusStyle.Render(fmt.Sprintf("-%d", m.removed)) + " lines"}
	if !m.modified.IsZero() {
		details = append(details, "modified "+ago(time.Since(m.modified)))
	}
	b.WriteString("  " + strings.Join(details, mutedStyle.Render("  ·  ")) + "\n\n")

	for i, item := range conflictMenuItems {
		if i == m.cursor {
			b.WriteString("  " + selectedStyle.Render("> "+item.label) + "\n")
			continue
		}
		b.WriteString("    " + item.label + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("  ↑/↓ move · enter select · d/s/o shortcut · q cancel") + "\n")
	return b.String()
}

// diffPager shows a long diff full screen until the user leaves it.
type diffPager struct {
	title   string
	body    string
	view    viewport.Model
	sized   bool
	aborted bool
}

func newDiffPager(path, diff string) diffPager {
	return diffPager{title: path, body: diff}
}

func (p diffPager) Init() tea.Cmd {
	return nil
}

func (p diffPager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			p.aborted = true
			return p, tea.Quit
		case "q", "esc", "enter":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		h := max(msg.Height-2, 1) // title and status line
		if !p.sized {
			p.view = viewport.New(msg.Width, h)
			p.view.SetContent(p.body)
			p.sized = true
		} else {
			p.view.Width, p.view.Height = msg.Width, h
		}
	}

	var cmd tea.Cmd
	p.view, cmd = p.view.Update(msg)
	return p, cmd
}

func (p diffPager) View() string {
	if !p.sized {
		return ""
	}
	status := fmt.Sprintf("%s  %3.0f%%  q: back to menu", p.title, p.view.ScrollPercent()*100)
	return pathStyle.Render(p.title) + "\n" + p.view.View() + "\n" + mutedStyle.Render(status)
}

// ago renders d the way a file listing would: "just now", "5 minutes ago".
func ago(d time.Duration) string {
	units := []struct {
		name string
		size time.Duration
	}{
		{"year", 365 * 24 * time.Hour},
		{"month", 30 * 24 * time.Hour},
		{"week", 7 * 24 * time.Hour},
		{"day", 24 * time.Hour},
		{"hour", time.Hour},
		{"minute", time.Minute},
	}
	for _, u := range units {
		if n := int(d / u.size); n >= 1 {
			if n == 1 {
				return "1 " + u.name + " ago"
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}
