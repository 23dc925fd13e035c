package desktop

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-clippy/internal/imaging"
	"github.com/mj1618/desktop-clippy/internal/platform"
)

// Options tunes the screenshot attached to a vision snapshot.
type Options struct {
	Scale    float64 // downscale factor in (0, 1]; 0 keeps full size
	Annotate bool    // outline interactive elements on the screenshot
}

// Snapshotter builds DesktopState snapshots from the platform backends.
// It keeps no state between captures.
type Snapshotter struct {
	access platform.Accessibility
	procs  platform.ProcessLister
	screen platform.Screenshotter
	opts   Options
	logger *zap.Logger
}

// NewSnapshotter creates a Snapshotter. Any backend may be nil: a missing
// accessibility backend behaves like "no focused window", a missing process
// lister yields no apps and a missing screenshotter yields no screenshot.
func NewSnapshotter(access platform.Accessibility, procs platform.ProcessLister, screen platform.Screenshotter, opts Options, logger *zap.Logger) *Snapshotter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshotter{
		access: access,
		procs:  procs,
		screen: screen,
		opts:   opts,
		logger: logger,
	}
}

// NewSnapshotterFromProvider wires a Snapshotter to a platform Provider.
func NewSnapshotterFromProvider(p *platform.Provider, opts Options, logger *zap.Logger) *Snapshotter {
	return NewSnapshotter(p.Accessibility, p.Processes, p.Screenshotter, opts, logger)
}

// CaptureState takes one snapshot. It never fails: faults degrade the result
// to partial data, and anything unexpected collapses it to the ErrorApp
// sentinel state.
func (s *Snapshotter) CaptureState(useVision bool) (state DesktopState) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("desktop state capture panicked", zap.Any("panic", r))
			state = errorState()
		}
	}()

	state, err := s.capture(useVision)
	if err != nil {
		s.logger.Warn("desktop state capture failed", zap.Error(err))
		return errorState()
	}
	return state
}

func (s *Snapshotter) capture(useVision bool) (DesktopState, error) {
	window, activeApp, err := s.foreground()
	if err != nil {
		return DesktopState{}, err
	}

	apps, err := s.runningApps()
	if err != nil {
		return DesktopState{}, err
	}

	var tree TreeState
	if window != nil {
		tree = s.collectTree(window)
	}

	var screenshot []byte
	if useVision {
		screenshot = s.captureScreen(tree)
	}

	return DesktopState{
		ActiveApp:  activeApp,
		Apps:       apps,
		Tree:       tree,
		Screenshot: screenshot,
	}, nil
}

func (s *Snapshotter) foreground() (platform.Window, string, error) {
	if s.access == nil {
		return nil, UnknownApp, nil
	}
	window, err := s.access.ForegroundWindow()
	if err != nil {
		return nil, "", fmt.Errorf("foreground window: %w", err)
	}
	if window == nil {
		return nil, UnknownApp, nil
	}
	name, err := window.Name()
	if err != nil {
		return nil, "", fmt.Errorf("foreground window name: %w", err)
	}
	return window, name, nil
}

// runningApps lists process display names in first-seen order without
// duplicates. Only .exe images are listed; entries the OS could not describe
// are skipped.
func (s *Snapshotter) runningApps() ([]string, error) {
	apps := []string{}
	if s.procs == nil {
		return apps, nil
	}
	procs, err := s.procs.Processes()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	seen := make(map[string]bool, len(procs))
	skipped := 0
	for _, p := range procs {
		if p.Err != nil || p.ImageName == "" {
			skipped++
			continue
		}
		if !hasExeSuffix(p.ImageName) {
			continue
		}
		name := AppName(p.ImageName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		apps = append(apps, name)
	}
	if skipped > 0 {
		s.logger.Debug("skipped inaccessible processes", zap.Int("count", skipped))
	}
	return apps, nil
}

const exeSuffix = ".exe"

// hasExeSuffix reports whether imageName names an executable image. Kernel
// pseudo-processes such as "System" and "Registry" do not.
func hasExeSuffix(imageName string) bool {
	return len(imageName) >= len(exeSuffix) &&
		strings.EqualFold(imageName[len(imageName)-len(exeSuffix):], exeSuffix)
}

// AppName strips the executable suffix from a process image name.
func AppName(imageName string) string {
	if hasExeSuffix(imageName) {
		return imageName[:len(imageName)-len(exeSuffix)]
	}
	return imageName
}

var errChildrenPanic = errors.New("children query panicked")

// collectTree fetches the window's direct children once per category. Any
// failure empties all three categories.
func (s *Snapshotter) collectTree(window platform.Window) TreeState {
	var tree TreeState
	var err error
	if tree.Interactive, err = fetchChildren(window, InteractiveTypes, MaxInteractive); err != nil {
		return s.treeUnavailable(err)
	}
	if tree.Informative, err = fetchChildren(window, InformativeTypes, MaxInformative); err != nil {
		return s.treeUnavailable(err)
	}
	if tree.Scrollable, err = fetchChildren(window, ScrollableTypes, MaxScrollable); err != nil {
		return s.treeUnavailable(err)
	}
	return tree
}

func (s *Snapshotter) treeUnavailable(err error) TreeState {
	s.logger.Debug("accessibility tree unavailable", zap.Error(err))
	return TreeState{}
}

func fetchChildren(window platform.Window, types ControlTypeSet, limit int) (children []platform.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			children, err = nil, fmt.Errorf("%w: %v", errChildrenPanic, r)
		}
	}()
	children, err = window.Children(types.Matcher())
	if err != nil {
		return nil, err
	}
	if len(children) > limit {
		children = children[:limit:limit]
	}
	return children, nil
}

// captureScreen grabs and encodes the screen. Failures yield nil.
func (s *Snapshotter) captureScreen(tree TreeState) (data []byte) {
	if s.screen == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("screen capture panicked", zap.Any("panic", r))
			data = nil
		}
	}()

	img, err := s.screen.CaptureScreen()
	if err != nil {
		s.logger.Debug("screen capture failed", zap.Error(err))
		return nil
	}
	if s.opts.Annotate {
		img = imaging.Annotate(img, annotationBoxes(tree))
	}
	data, err = imaging.EncodePNG(img, s.opts.Scale)
	if err != nil {
		s.logger.Debug("screenshot encoding failed", zap.Error(err))
		return nil
	}
	return data
}

func annotationBoxes(tree TreeState) []imaging.Box {
	views := tree.InteractiveViews()
	boxes := make([]imaging.Box, 0, len(views))
	for _, v := range views {
		x, y, w, h := v.Bounds[0], v.Bounds[1], v.Bounds[2], v.Bounds[3]
		boxes = append(boxes, imaging.Box{
			Rect:  image.Rect(x, y, x+w, y+h),
			Label: fmt.Sprintf("(%d,%d)", x, y),
		})
	}
	return boxes
}
