// Package terminal is the keyboard-driven front-end. It draws a session's
// board with tcell and steps the world on a fixed tick.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/wild-wild-trader/game/service"
	"github.com/wricardo/wild-wild-trader/pkg/logger"
)

// DefaultTick is how often pending inputs are resolved into a turn.
const DefaultTick = 150 * time.Millisecond

// Game binds a screen to one session of the game service.
type Game struct {
	screen    tcell.Screen
	svc       service.GameService
	sessionID string
	tick      time.Duration

	view    *service.BoardView
	turn    int
	lastErr string
	message string
}

// New creates a game for sessionID. A zero tick uses DefaultTick.
func New(screen tcell.Screen, svc service.GameService, sessionID string, tick time.Duration) *Game {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Game{screen: screen, svc: svc, sessionID: sessionID, tick: tick}
}

// pumpEvents forwards polled events until poll returns nil or ctx is done.
func pumpEvents(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run initializes the screen and plays until the user quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	if err := g.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer g.screen.Fini()
	g.screen.HideCursor()

	info, err := g.svc.GetSession(ctx, g.sessionID)
	if err != nil {
		return err
	}
	g.view, g.turn, g.lastErr = info.Board, info.Turn, info.LastError
	g.draw()

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	pumpCtx, stopPump := context.WithCancel(ctx)
	defer stopPump()
	events := make(chan tcell.Event, 100)
	go pumpEvents(pumpCtx, g.screen.PollEvent, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			quit, err := g.handleEvent(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			g.draw()
		case <-ticker.C:
			changed, err := g.step(ctx)
			if err != nil {
				return err
			}
			if changed {
				g.draw()
			}
		}
	}
}

func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		cmd, ok := Translate(ev)
		if !ok {
			return false, nil
		}
		return g.apply(ctx, cmd)
	}
	return false, nil
}

// apply executes one command against the service.
func (g *Game) apply(ctx context.Context, cmd Command) (bool, error) {
	switch {
	case cmd.Quit:
		return true, nil
	case cmd.Reset:
		info, err := g.svc.Reset(ctx, g.sessionID)
		if err != nil {
			return false, err
		}
		g.view, g.turn, g.lastErr = info.Board, info.Turn, ""
		g.message = "map reset"
	default:
		if g.view != nil && Outcome(g.view) != "" {
			return false, nil
		}
		if err := g.svc.SubmitInput(ctx, g.sessionID, cmd.Slot, cmd.Direction); err != nil {
			g.message = err.Error()
			logger.Component("terminal").WithError(err).Debug("Input rejected.")
			return false, nil
		}
		g.message = ""
	}
	return false, nil
}

// step runs one turn if anything is pending and reports whether it did.
func (g *Game) step(ctx context.Context) (bool, error) {
	result, err := g.svc.Step(ctx, g.sessionID)
	if err != nil {
		return false, err
	}
	if !result.Executed {
		return false, nil
	}
	g.view, g.turn, g.lastErr = result.Board, result.Turn, result.Error
	if n := len(result.Events); n > 0 {
		g.message = result.Events[n-1].Message
	}
	return true, nil
}

func (g *Game) draw() {
	g.screen.Clear()
	if g.view == nil {
		g.screen.Show()
		return
	}

	y := 0
	g.drawText(0, y, styleTitle, "Wild Wild Trader")
	y += 2

	for row, cells := range BoardCells(g.view) {
		for col, c := range cells {
			g.screen.SetContent(col, y+row, c.Rune, nil, c.Style)
		}
	}
	y += g.view.Height + 3

	g.drawText(0, y, styleText, StatusLine(g.turn, g.view))
	y++
	if banner := Outcome(g.view); banner != "" {
		g.drawText(0, y, styleTitle, banner)
		y++
	}
	if g.lastErr != "" {
		g.drawText(0, y, styleError, "last turn failed: "+g.lastErr)
		y++
	}
	if g.message != "" {
		g.drawText(0, y, styleText, g.message)
		y++
	}
	g.drawText(0, y+1, styleHelp, helpLine)
	g.screen.Show()
}

func (g *Game) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
