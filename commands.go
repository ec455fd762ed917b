package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/wild-wild-trader/frontend/terminal"
	"github.com/wricardo/wild-wild-trader/game/service"
	"github.com/wricardo/wild-wild-trader/pkg/logger"
)

var errMissingSession = errors.New("missing session id")

// play runs the interactive terminal game.
func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	info, err := a.openSession(ctx, cmd.String("session"), cmd.String("map"))
	if err != nil {
		return err
	}

	// The screen owns the terminal; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := cmd.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger.Init(logger.Options{Level: a.settings.LogLevel, Format: a.settings.LogFormat, Output: logOut})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sessionCleanupRoutine(ctx, a.sessions, time.Hour, a.settings.SessionMaxAge)

	if err := terminal.New(screen, a.svc, info.ID, cmd.Duration("tick")).Run(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer(cmd), "session %s saved at turn %d\n", info.ID, currentTurn(ctx, a.svc, info.ID))
	return err
}

func currentTurn(ctx context.Context, svc service.GameService, id string) int {
	info, err := svc.GetSession(context.WithoutCancel(ctx), id)
	if err != nil {
		return 0
	}
	return info.Turn
}

// turn submits the given inputs and resolves one turn.
func (a *app) turn(ctx context.Context, cmd *cli.Command) error {
	info, err := a.openSession(ctx, cmd.String("session"), cmd.String("map"))
	if err != nil {
		return err
	}

	for _, raw := range cmd.StringSlice("input") {
		slot, dir, err := parseInput(raw)
		if err != nil {
			return err
		}
		if err := a.svc.SubmitInput(ctx, info.ID, slot, dir); err != nil {
			return err
		}
	}

	result, err := a.svc.Step(ctx, info.ID)
	if err != nil {
		return err
	}

	w := writer(cmd)
	if cmd.Bool("json") {
		return writeJSON(w, result)
	}
	return printTurn(w, result)
}

// board prints the current board of a session.
func (a *app) board(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("session")
	if id == "" {
		return errMissingSession
	}
	info, err := a.svc.GetSession(ctx, id)
	if err != nil {
		return err
	}

	w := writer(cmd)
	if cmd.Bool("json") {
		return writeJSON(w, info)
	}
	fmt.Fprintf(w, "session %s  map %s  turn %d\n", info.ID, info.ConfigID, info.Turn)
	if info.LastError != "" {
		fmt.Fprintf(w, "last turn failed: %s\n", info.LastError)
	}
	return printBoard(w, info.Board)
}

// maps lists the available map configurations.
func (a *app) maps(ctx context.Context, cmd *cli.Command) error {
	infos, err := a.svc.ListConfigs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(writer(cmd), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tPLAYERS\tBANDITS\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%d\t%s\n",
			info.ConfigID, info.Name, info.Width, info.Height, info.Players, info.Enemies, info.Description)
	}
	return tw.Flush()
}

func (a *app) listSessions(ctx context.Context, cmd *cli.Command) error {
	infos, err := a.svc.ListSessions(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(writer(cmd), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMAP\tTURN\tLAST ACCESSED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			info.ID, info.ConfigID, info.Turn, info.LastAccessedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func (a *app) deleteSession(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return errMissingSession
	}
	if err := a.svc.DeleteSession(ctx, id); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer(cmd), "deleted session %s\n", id)
	return err
}

func (a *app) cleanupSessions(ctx context.Context, cmd *cli.Command) error {
	removed := a.sessions.CleanupExpiredSessions(cmd.Duration("max-age"))
	_, err := fmt.Fprintf(writer(cmd), "removed %d expired sessions\n", removed)
	return err
}

// parseInput splits "slot:direction" into its parts.
func parseInput(raw string) (int32, string, error) {
	slotText, dir, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, "", fmt.Errorf("%w: %q, want slot:direction", service.ErrInvalidInput, raw)
	}
	slot, err := strconv.ParseInt(strings.TrimSpace(slotText), 10, 32)
	if err != nil || slot < 1 || slot > 9 {
		return 0, "", fmt.Errorf("%w: bad player slot in %q", service.ErrInvalidInput, raw)
	}
	return int32(slot), strings.TrimSpace(dir), nil
}

func printTurn(w io.Writer, result *service.TurnResult) error {
	if !result.Executed {
		fmt.Fprintf(w, "session %s: nothing to do at turn %d\n", result.SessionID, result.Turn)
		return printBoard(w, result.Board)
	}
	fmt.Fprintf(w, "session %s: turn %d\n", result.SessionID, result.Turn)
	for _, ev := range result.Events {
		fmt.Fprintf(w, "  %s\n", ev.Message)
	}
	if result.Error != "" {
		fmt.Fprintf(w, "  turn failed: %s\n", result.Error)
	}
	return printBoard(w, result.Board)
}

func printBoard(w io.Writer, view *service.BoardView) error {
	if view == nil {
		return nil
	}
	border := "+" + strings.Repeat("-", view.Width) + "+"
	fmt.Fprintln(w, border)
	for _, row := range view.Rows {
		fmt.Fprintf(w, "|%s|\n", row)
	}
	fmt.Fprintln(w, border)
	_, err := fmt.Fprintln(w, terminal.Roster(view))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
