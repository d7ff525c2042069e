package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/levelgen"
	"github.com/lixenwraith/roomfield/navigation"
	"github.com/lixenwraith/roomfield/parameter"
	"github.com/lixenwraith/roomfield/parameter/visual"
	"github.com/lixenwraith/roomfield/region"
	"github.com/lixenwraith/roomfield/render"
	"github.com/lixenwraith/roomfield/vmath"
)

const helpLine = "arrows move  space stamp  x erase  HJKL drag  +/- brush  g generate  c clear  q quit"

type Viewer struct {
	screen tcell.Screen
	field  *navigation.RoomDistanceMap
	logger *zap.Logger

	tiles core.Point
	rooms []*region.Region // Insertion order, last drawn on top

	// Cursor state
	cursor          core.Point
	brush           int
	cursorError     bool
	cursorErrorTime time.Time

	// Audio
	audioInit bool
}

func NewViewer(field *navigation.RoomDistanceMap, logger *zap.Logger) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &Viewer{
		screen: screen,
		field:  field,
		logger: logger,
		tiles:  field.Tiles(),
		brush:  parameter.ViewerBrushDefault,
	}
	v.cursor = core.Point{X: v.tiles.X / 2, Y: v.tiles.Y / 2}
	core.SetCrashRestore(screen.Fini)

	// Non-fatal, the viewer can run without sound
	if err := v.initAudio(); err != nil {
		logger.Warn("audio initialization failed", zap.Error(err))
	}
	return v, nil
}

func (v *Viewer) initAudio() error {
	sampleRate := beep.SampleRate(parameter.ViewerAudioSampleHz)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/parameter.ViewerAudioBufferDiv))
	if err == nil {
		v.audioInit = true
	}
	return err
}

func (v *Viewer) playErrorTone() {
	if !v.audioInit {
		return
	}
	sampleRate := beep.SampleRate(parameter.ViewerAudioSampleHz)
	sine, err := generators.SineTone(sampleRate, parameter.ViewerToneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(parameter.ViewerToneDuration), sine))
}

// reject flashes the cursor and plays the error cue
func (v *Viewer) reject(reason string) {
	v.cursorError = true
	v.cursorErrorTime = time.Now()
	v.playErrorTone()
	v.logger.Debug("edit rejected", zap.String("reason", reason), zap.Stringer("cursor", v.cursor))
}

// --- Editing ---

// roomAt returns the index of the topmost room covering tile, -1 if none
func (v *Viewer) roomAt(tile core.Point) int {
	for i := len(v.rooms) - 1; i >= 0; i-- {
		if v.rooms[i].Contains(tile) {
			return i
		}
	}
	return -1
}

func (v *Viewer) inMap(r *region.Region) bool {
	for _, t := range r.Tiles {
		if !t.In(v.tiles) {
			return false
		}
	}
	return true
}

func (v *Viewer) stamp() {
	area := core.Area{X: v.cursor.X, Y: v.cursor.Y, Width: v.brush, Height: v.brush}
	var tiles []core.Point
	for _, t := range area.Points() {
		if t.In(v.tiles) {
			tiles = append(tiles, t)
		}
	}
	r := region.New(tiles)
	v.field.Insert(r)
	v.rooms = append(v.rooms, r)
}

func (v *Viewer) erase() {
	i := v.roomAt(v.cursor)
	if i < 0 {
		v.reject("no room under cursor")
		return
	}
	v.field.Delete(v.rooms[i])
	v.rooms = slices.Delete(v.rooms, i, i+1)
}

func (v *Viewer) drag(d core.Point) {
	i := v.roomAt(v.cursor)
	if i < 0 {
		v.reject("no room under cursor")
		return
	}
	next := v.rooms[i].Translate(d.X, d.Y)
	if !v.inMap(next) {
		v.reject("room would leave the map")
		return
	}
	v.field.Update(v.rooms[i], next)
	v.rooms[i] = next
	v.cursor = v.cursor.Add(d)
}

func (v *Viewer) clear() {
	for _, r := range v.rooms {
		v.field.Delete(r)
	}
	v.rooms = v.rooms[:0]
}

func (v *Viewer) generate() {
	v.clear()
	cfg := levelgen.DefaultConfig()
	cfg.Width, cfg.Height = v.tiles.X, v.tiles.Y
	res := levelgen.Generate(cfg)
	for _, r := range res.Regions {
		v.field.Insert(r)
	}
	v.rooms = append(v.rooms, res.Regions...)
	v.logger.Info("level generated", zap.Int64("seed", res.Seed), zap.Int("rooms", len(res.Regions)))
}

func (v *Viewer) moveCursor(d core.Point) {
	next := v.cursor.Add(d)
	if !next.In(v.tiles) {
		v.reject("cursor at map edge")
		return
	}
	v.cursor = next
}

// --- Drawing ---

func (v *Viewer) draw() {
	v.screen.Clear()
	maxDist := v.field.MaxDistance()
	cx, cy := parameter.ViewerCellsPerTileX, parameter.ViewerCellsPerTileY

	for sy := 0; sy < v.tiles.Y*cy; sy++ {
		for sx := 0; sx < v.tiles.X*cx; sx++ {
			pos := vmath.V((float64(sx)+0.5)/float64(cx), (float64(sy)+0.5)/float64(cy))
			c := render.FromDistance(v.field.GetDistanceAt(pos), maxDist)
			v.screen.SetContent(sx, sy, render.Shade(c, maxDist), nil, render.Style(c, maxDist))
		}
	}

	// Cursor
	if time.Since(v.cursorErrorTime) > parameter.ViewerErrorFlash {
		v.cursorError = false
	}
	rgb := visual.RgbCursor
	if v.cursorError {
		rgb = visual.RgbCursorError
	}
	cursorStyle := tcell.StyleDefault.Foreground(render.Color(rgb)).Reverse(true)
	for i := 0; i < cx; i++ {
		v.screen.SetContent(v.cursor.X*cx+i, v.cursor.Y*cy, visual.CharCursor, nil, cursorStyle)
	}

	v.drawStatus(v.tiles.Y * cy)
	v.screen.Show()
}

func (v *Viewer) drawStatus(row int) {
	s := v.field.LastStats()
	bg := visual.RgbStatusBg
	if v.cursorError {
		bg = visual.RgbStatusBgWarn
	}
	style := tcell.StyleDefault.Foreground(render.Color(visual.RgbStatusText)).Background(render.Color(bg))

	status := fmt.Sprintf(" tile %v  brush %d  rooms %d  last %s +%d/-%d tiles %d pops %v ",
		v.cursor, v.brush, len(v.rooms), s.Op, s.TilesActivated, s.TilesDeactivated, s.PointsProcessed, s.Duration)
	drawText(v.screen, 0, row, status, style)
	drawText(v.screen, 0, row+1, helpLine, tcell.StyleDefault)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// --- Input ---

var cursorKeys = map[tcell.Key]core.Point{
	tcell.KeyUp:    {X: 0, Y: -1},
	tcell.KeyDown:  {X: 0, Y: 1},
	tcell.KeyLeft:  {X: -1, Y: 0},
	tcell.KeyRight: {X: 1, Y: 0},
}

var dragRunes = map[rune]core.Point{
	'K': {X: 0, Y: -1},
	'J': {X: 0, Y: 1},
	'H': {X: -1, Y: 0},
	'L': {X: 1, Y: 0},
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if d, ok := cursorKeys[ev.Key()]; ok {
			v.moveCursor(d)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		r := ev.Rune()
		if d, ok := dragRunes[r]; ok {
			v.drag(d)
			return true
		}
		switch r {
		case 'q':
			return false
		case 'k':
			v.moveCursor(cursorKeys[tcell.KeyUp])
		case 'j':
			v.moveCursor(cursorKeys[tcell.KeyDown])
		case 'h':
			v.moveCursor(cursorKeys[tcell.KeyLeft])
		case 'l':
			v.moveCursor(cursorKeys[tcell.KeyRight])
		case ' ':
			v.stamp()
		case 'x':
			v.erase()
		case '+', '=':
			v.brush = min(v.brush+1, parameter.ViewerBrushMax)
		case '-':
			v.brush = max(v.brush-1, parameter.ViewerBrushMin)
		case 'g':
			v.generate()
		case 'c':
			v.clear()
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) run() {
	ticker := time.NewTicker(parameter.ViewerFrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, parameter.ViewerEventBuffer)
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func (v *Viewer) cleanup() {
	core.SetCrashRestore(nil)
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
}
