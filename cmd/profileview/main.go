// Command profileview previews a reaction profile in the terminal and
// redraws it whenever the input file changes.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/sgostarter/i/l"

	"github.com/ha1tch/profile-toolkit/pkg/profile"
	"github.com/ha1tch/profile-toolkit/pkg/profilefile"
	"github.com/ha1tch/profile-toolkit/pkg/render"
)

// curvinessStep is the change applied by the + and - keys.
const curvinessStep = 0.05

// reloadRequest is posted by the file watcher.
type reloadRequest struct{}

// Viewer holds the previewer state
type Viewer struct {
	screen    tcell.Screen
	renderer  *render.Renderer
	logger    l.Wrapper
	path      string
	styleName string
	overrides map[string]any

	pathways []profile.Pathway
	diagram  *render.Diagram
	message  string
	isError  bool
}

// NewViewer creates a viewer for the profile at path.
func NewViewer(screen tcell.Screen, path, styleName string, logger l.Wrapper) *Viewer {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Viewer{
		screen:    screen,
		renderer:  render.NewRenderer(nil, logger),
		logger:    logger.WithFields(l.StringField(l.ClsKey, "Viewer")),
		path:      path,
		styleName: styleName,
		overrides: map[string]any{},
	}
}

func main() {
	var path, styleName string
	verbose := false
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--style":
			if i+1 < len(args) {
				styleName = args[i+1]
				i++
			}
		case "-v", "--verbose":
			verbose = true
		default:
			path = args[i]
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: profileview <file.json> [--style name] [--verbose]")
		os.Exit(1)
	}

	logger := l.NewNopLoggerWrapper()
	if verbose {
		logger = l.NewConsoleLoggerWrapper()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}

	vw := NewViewer(screen, path, styleName, logger)
	if err := vw.reload(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}

	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}

	watcher, err := vw.watch()
	if err != nil {
		vw.showError(fmt.Sprintf("Not watching: %v", err))
	} else {
		defer watcher.Close()
	}

	vw.run()
	screen.Fini()
}

// watch posts a reload event whenever the input file is written. The
// directory is watched so that editors replacing the file are seen too.
func (vw *Viewer) watch() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(vw.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(vw.path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) == target && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					vw.screen.PostEvent(tcell.NewEventInterrupt(reloadRequest{}))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				vw.logger.WithFields(l.ErrorField(err)).Error("watch failed")
			}
		}
	}()
	return watcher, nil
}

func (vw *Viewer) run() {
	for {
		vw.draw()
		vw.screen.Show()

		ev := vw.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			vw.screen.Sync()
		case *tcell.EventKey:
			if vw.handleKey(ev) {
				return
			}
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(reloadRequest); ok {
				if err := vw.reload(); err != nil {
					vw.showError(err.Error())
				} else {
					vw.showMessage("Reloaded")
				}
			}
		}
	}
}

// handleKey applies one key press. It returns true when the viewer should exit.
func (vw *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case '+', '=':
		vw.setCurviness(vw.curviness() + curvinessStep)
	case '-', '_':
		vw.setCurviness(vw.curviness() - curvinessStep)
	case 'l', 'L':
		labels := true
		if vw.diagram != nil {
			labels = !vw.diagram.Options.Labels
		}
		vw.overrides["labels"] = labels
		vw.relayout()
		if labels {
			vw.showMessage("Labels on")
		} else {
			vw.showMessage("Labels off")
		}
	case 'r', 'R':
		if err := vw.reload(); err != nil {
			vw.showError(err.Error())
		} else {
			vw.showMessage("Reloaded")
		}
	}
	return false
}

func (vw *Viewer) curviness() float64 {
	if vw.diagram != nil {
		return vw.diagram.Options.Curviness
	}
	return profile.DefaultCurviness
}

func (vw *Viewer) setCurviness(c float64) {
	c = math.Max(0, math.Round(c*100)/100)
	vw.overrides["curviness"] = c
	vw.relayout()
	vw.showMessage(fmt.Sprintf("Curviness %.2f", c))
}

// reload reads the input file again and lays it out.
func (vw *Viewer) reload() error {
	pathways, err := profilefile.ReadFile(vw.path)
	if err != nil {
		return err
	}
	vw.pathways = pathways
	return vw.layout()
}

func (vw *Viewer) layout() error {
	o, err := vw.renderer.Options(vw.styleName, vw.overrides)
	if err != nil {
		return err
	}
	d, err := vw.renderer.Layout(vw.pathways, o)
	if err != nil {
		return err
	}
	vw.diagram = d
	return nil
}

func (vw *Viewer) relayout() {
	if err := vw.layout(); err != nil {
		vw.showError(err.Error())
	}
}

func (vw *Viewer) showMessage(msg string) {
	vw.message = msg
	vw.isError = false
}

func (vw *Viewer) showError(msg string) {
	vw.message = strings.TrimSpace(msg)
	vw.isError = true
}
