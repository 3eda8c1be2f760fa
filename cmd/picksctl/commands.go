package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/magentamen/picks/external/picksapi"
)

// api is the subset of the picks client the console drives.
type api interface {
	Games(ctx context.Context, week int) []picksapi.Game
	Picks(ctx context.Context, week int) picksapi.Sheet
	Options(ctx context.Context, week int, player string) picksapi.WeekOptions
	Board(ctx context.Context, week int) picksapi.WeekBoard
	Results(ctx context.Context, week int) picksapi.ResultSheet
	GameResults(ctx context.Context, week int) []picksapi.GameResult
	Leaderboard(ctx context.Context) []picksapi.Standing
	Starters(ctx context.Context, teams []string) []picksapi.Starter
	LockStatus(ctx context.Context, week int) picksapi.LockStatus
	SavePick(ctx context.Context, req picksapi.PickRequest) error
	SaveOutcome(ctx context.Context, req picksapi.OutcomeRequest) error
	RefreshGames(ctx context.Context, week int) (picksapi.Status, error)
	RefreshResults(ctx context.Context, week int) (picksapi.Status, error)
	Calculate(ctx context.Context, week int) (picksapi.Status, error)
	LockWeek(ctx context.Context, week int, lockedBy string) (picksapi.Status, error)
	UnlockWeek(ctx context.Context, week int) (picksapi.Status, error)
}

type console struct {
	api api
	out io.Writer
}

type commandArgs struct {
	week     int
	player   string
	category string
	value    string
	outcome  string
	teams    string
	by       string
}

func (c *console) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	rest := args[1:]
	if name == "refresh" {
		if len(rest) == 0 {
			return usageError("refresh requires games or results")
		}
		name = "refresh-" + strings.ToLower(strings.TrimSpace(rest[0]))
		rest = rest[1:]
	}

	parsed, err := parseFlags(name, rest)
	if err != nil {
		return err
	}

	switch name {
	case "games":
		return c.games(ctx, parsed)
	case "options":
		return c.options(ctx, parsed)
	case "board":
		return c.board(ctx, parsed)
	case "picks":
		return c.picks(ctx, parsed)
	case "results":
		return c.results(ctx, parsed)
	case "scores":
		return c.scores(ctx, parsed)
	case "leaderboard":
		return c.leaderboard(ctx)
	case "starters":
		return c.starters(ctx, parsed)
	case "pick":
		if parsed.player == "" || parsed.category == "" {
			return usageError("pick requires -player and -category")
		}
		if err := c.api.SavePick(ctx, picksapi.PickRequest{
			Week:     parsed.week,
			Player:   parsed.player,
			Category: parsed.category,
			Value:    parsed.value,
		}); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "saved %s %s pick for week %d\n", parsed.player, parsed.category, parsed.week)
		return nil
	case "outcome":
		if parsed.player == "" || parsed.category == "" {
			return usageError("outcome requires -player and -category")
		}
		if err := c.api.SaveOutcome(ctx, picksapi.OutcomeRequest{
			Week:     parsed.week,
			Player:   parsed.player,
			Category: parsed.category,
			Outcome:  strings.ToUpper(parsed.outcome),
		}); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "saved %s %s outcome for week %d\n", parsed.player, parsed.category, parsed.week)
		return nil
	case "refresh-games":
		return c.printStatus(c.api.RefreshGames(ctx, parsed.week))
	case "refresh-results":
		return c.printStatus(c.api.RefreshResults(ctx, parsed.week))
	case "calculate":
		return c.printStatus(c.api.Calculate(ctx, parsed.week))
	case "lock":
		return c.printStatus(c.api.LockWeek(ctx, parsed.week, parsed.by))
	case "unlock":
		return c.printStatus(c.api.UnlockWeek(ctx, parsed.week))
	case "status":
		status := c.api.LockStatus(ctx, parsed.week)
		if !status.Locked {
			fmt.Fprintf(c.out, "week %d: open\n", parsed.week)
			return nil
		}
		fmt.Fprintf(c.out, "week %d: locked at %s by %s\n", parsed.week, status.LockedAt, firstNonEmpty(status.LockedBy, "unknown"))
		return nil
	default:
		return usageError("unknown command " + name)
	}
}

func parseFlags(name string, args []string) (commandArgs, error) {
	var out commandArgs
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&out.week, "week", 0, "week number")
	fs.StringVar(&out.player, "player", "", "pool player")
	fs.StringVar(&out.category, "category", "", "pick category")
	fs.StringVar(&out.value, "value", "", "pick value")
	fs.StringVar(&out.outcome, "outcome", "", "W, L, P or empty")
	fs.StringVar(&out.teams, "teams", "", "comma separated team names")
	fs.StringVar(&out.by, "by", "", "who locked the week")
	if err := fs.Parse(args); err != nil {
		return commandArgs{}, usageError(fmt.Sprintf("%s: %v", name, err))
	}

	out.player = strings.TrimSpace(out.player)
	out.category = strings.TrimSpace(out.category)
	out.outcome = strings.TrimSpace(out.outcome)

	switch name {
	case "leaderboard", "starters":
	default:
		if out.week < 1 {
			return commandArgs{}, usageError(name + " requires -week >= 1")
		}
	}
	return out, nil
}

func (c *console) games(ctx context.Context, args commandArgs) error {
	games := c.api.Games(ctx, args.week)
	if len(games) == 0 {
		fmt.Fprintf(c.out, "no games for week %d\n", args.week)
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCHUP\tKICKOFF\tBOOKS")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", g.Matchup(), g.CommenceTime, len(g.Bookmakers))
	}
	return tw.Flush()
}

func (c *console) options(ctx context.Context, args commandArgs) error {
	options := c.api.Options(ctx, args.week, args.player)
	if len(options.Categories) == 0 {
		fmt.Fprintf(c.out, "no options for week %d\n", args.week)
		return nil
	}
	for _, category := range options.Categories {
		header := category.Category
		if category.Fallback {
			header += " (all teams)"
		}
		fmt.Fprintln(c.out, header)
		for _, choice := range category.Choices {
			marker := " "
			if choice.Taken {
				marker = "x"
			}
			line := fmt.Sprintf("  [%s] %s", marker, choice.Label)
			if choice.TakenBy != "" {
				line += " (" + choice.TakenBy + ")"
			}
			fmt.Fprintln(c.out, line)
		}
	}
	return nil
}

func (c *console) board(ctx context.Context, args commandArgs) error {
	board := c.api.Board(ctx, args.week)
	fmt.Fprintf(c.out, "week %d, %d final games\n", args.week, board.FinalGames)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tCATEGORY\tPICK\tLIVE\tSTORED")
	for _, entry := range board.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", entry.Player, entry.Category, entry.Pick, dash(entry.Live), dash(entry.Stored))
	}
	return tw.Flush()
}

func (c *console) picks(ctx context.Context, args commandArgs) error {
	sheet := c.api.Picks(ctx, args.week)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tCATEGORY\tPICK")
	for _, player := range sortedKeys(sheet) {
		for _, category := range sortedKeys(sheet[player]) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", player, category, sheet[player][category])
		}
	}
	return tw.Flush()
}

func (c *console) results(ctx context.Context, args commandArgs) error {
	sheet := c.api.Results(ctx, args.week)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tCATEGORY\tPICK\tOUTCOME")
	for _, player := range sortedKeys(sheet) {
		for _, category := range sortedKeys(sheet[player]) {
			row := sheet[player][category]
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", player, category, row.Pick, dash(row.Outcome))
		}
	}
	return tw.Flush()
}

func (c *console) scores(ctx context.Context, args commandArgs) error {
	rows := c.api.GameResults(ctx, args.week)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GAME\tSCORE\tFINAL\tSPREAD\tTOTAL")
	for _, row := range rows {
		score := "-"
		if row.HomeScore != nil && row.AwayScore != nil {
			score = fmt.Sprintf("%d-%d", *row.AwayScore, *row.HomeScore)
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", row.Game, score, row.Final, floatOrDash(row.Spread), floatOrDash(row.Total))
	}
	return tw.Flush()
}

func (c *console) leaderboard(ctx context.Context) error {
	standings := c.api.Leaderboard(ctx)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tPTS\tRECORD\tWIN%\tLAST3\tLAST5")
	for i, row := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%.1f\t%d (%s)\t%d (%s)\n",
			i+1, row.Player, row.TotalPoints, row.Record, row.WinPct,
			row.Last3Points, row.Last3Record, row.Last5Points, row.Last5Record,
		)
	}
	return tw.Flush()
}

func (c *console) starters(ctx context.Context, args commandArgs) error {
	var teams []string
	for _, raw := range strings.Split(args.teams, ",") {
		if team := strings.TrimSpace(raw); team != "" {
			teams = append(teams, team)
		}
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOS\tTEAM")
	for _, starter := range c.api.Starters(ctx, teams) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", starter.Name, starter.Pos, starter.Team)
	}
	return tw.Flush()
}

func (c *console) printStatus(status picksapi.Status, err error) error {
	if err != nil {
		return err
	}
	msg := firstNonEmpty(status.Message, "ok")
	fmt.Fprintln(c.out, msg)

	var counters []string
	for _, counter := range []struct {
		name  string
		value int
	}{
		{"updated", status.UpdatedCount},
		{"games", status.GamesUpdated},
		{"picks", status.PicksUpdated},
		{"results", status.ResultsUpdated},
	} {
		if counter.value > 0 {
			counters = append(counters, fmt.Sprintf("%s=%d", counter.name, counter.value))
		}
	}
	if len(counters) > 0 {
		fmt.Fprintln(c.out, strings.Join(counters, " "))
	}
	if status.LockedAt != "" {
		fmt.Fprintf(c.out, "locked_at=%s\n", status.LockedAt)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func floatOrDash(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
