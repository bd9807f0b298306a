// Package display renders hands, evaluations and simulation reports as
// styled terminal text.
package display

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/poker"
)

// Printer writes styled output. In plain mode colours are disabled and cards
// use letter suits.
type Printer struct {
	out    io.Writer
	plain  bool
	styles Styles
}

// NewPrinter creates a printer for out. Colours are used when out is a
// terminal that supports them, unless plain is set.
func NewPrinter(out io.Writer, plain bool) *Printer {
	var opts []termenv.OutputOption
	if plain {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	r := lipgloss.NewRenderer(out, opts...)
	return &Printer{out: out, plain: plain, styles: NewStyles(r)}
}

// Styles returns the printer's palette.
func (p *Printer) Styles() Styles { return p.styles }

// Cards formats cards with colours, e.g. "[A♠ K♥]".
func (p *Printer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return ""
	}
	formatted := make([]string, len(cards))
	for i, card := range cards {
		text := card.Pretty()
		if p.plain {
			text = card.String()
		}
		if card.Suit.IsRed() {
			formatted[i] = p.styles.RedCard.Render(text)
		} else {
			formatted[i] = p.styles.BlackCard.Render(text)
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Event formats one action.
func (p *Printer) Event(ev game.ActionEvent) string {
	style := p.styles.Action
	switch ev.Kind {
	case game.Fold:
		style = p.styles.Fold
	case game.Bet, game.Raise, game.AllInAction:
		style = p.styles.Aggressive
	}
	line := p.styles.Player.Render(ev.Name) + " " + style.Render(strings.TrimPrefix(ev.String(), ev.Name+" "))
	if ev.Clamped {
		line += " " + p.styles.Warning.Render("(clamped)")
	}
	if ev.Reason != "" {
		line += " " + p.styles.Info.Render("("+ev.Reason+")")
	}
	return line
}

// Award formats a pot payout.
func (p *Printer) Award(a game.Award, pots int, names map[int]string) string {
	label := "main pot"
	if a.Pot > 0 {
		label = fmt.Sprintf("side pot %d", a.Pot)
	}
	if pots == 1 {
		label = "pot"
	}

	winners := make([]string, len(a.Shares))
	for i, s := range a.Shares {
		winners[i] = fmt.Sprintf("%s %d", names[s.Seat], s.Amount)
	}
	who := p.styles.Success.Render(strings.Join(winners, ", "))

	switch {
	case a.Refunded:
		return fmt.Sprintf("%s (%d) refunded to %s", label, a.Amount, who)
	case a.Contest:
		return fmt.Sprintf("%s (%d) won by %s with %s %s", label, a.Amount, who,
			a.Hand.Category, p.Cards(a.Hand.Cards()))
	default:
		return fmt.Sprintf("%s (%d) won by %s uncontested", label, a.Amount, who)
	}
}

// Hand writes the full log of a finished hand.
func (p *Printer) Hand(result game.HandResult) {
	names := make(map[int]string, len(result.Seats))
	buttonName := ""
	for _, s := range result.Seats {
		names[s.ID] = s.Name
		if s.ID == result.Button {
			buttonName = s.Name
		}
	}

	fmt.Fprintln(p.out, p.styles.Header.Render(fmt.Sprintf(" Hand %s ", result.ID)))
	fmt.Fprintln(p.out, p.styles.Info.Render(fmt.Sprintf("button: %s (seat %d)", buttonName, result.Button)))

	for _, street := range result.Streets {
		heading := "*** " + strings.ToUpper(street.Round.String()) + " ***"
		if n := min(street.Round.BoardSize(), len(result.Board)); n > 0 {
			heading += " " + p.Cards(result.Board[:n])
		}
		fmt.Fprintln(p.out, p.styles.Street.Render(heading))
		for _, ev := range street.Events {
			fmt.Fprintln(p.out, "  "+p.Event(ev))
		}
	}

	if result.Showdown {
		fmt.Fprintln(p.out, p.styles.Street.Render("*** SHOWDOWN *** "+p.Cards(result.Board)))
		for _, s := range result.Seats {
			if s.Status == game.Folded {
				continue
			}
			fmt.Fprintf(p.out, "  %s shows %s\n", p.styles.Player.Render(s.Name), p.Cards(s.Hole))
		}
	}

	pots := len(game.MergePots(result.Pots))
	for _, a := range game.MergeAwards(result.Awards, result.Pots) {
		fmt.Fprintln(p.out, p.Award(a, pots, names))
	}
}

// Standings writes the players still seated and those who busted.
func (p *Printer) Standings(players, busted []game.Player) {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b game.Player) int { return b.Stack - a.Stack })

	fmt.Fprintln(p.out, p.styles.Header.Render(" Standings "))
	for _, pl := range sorted {
		fmt.Fprintf(p.out, "  %-12s seat %-2d %6d\n", pl.Name, pl.Seat, pl.Stack)
	}
	for _, pl := range busted {
		fmt.Fprintf(p.out, "  %-12s seat %-2d %s\n", pl.Name, pl.Seat, p.styles.Error.Render("busted"))
	}
}

// Evaluation writes the best hand made from cards.
func (p *Printer) Evaluation(cards []poker.Card, hand poker.EvaluatedHand) {
	fmt.Fprintf(p.out, "%s → %s %s", p.Cards(cards), p.styles.Success.Render(hand.Category.String()), p.Cards(hand.Primary))
	if len(hand.Kickers) > 0 {
		fmt.Fprintf(p.out, " kickers %s", p.Cards(hand.Kickers))
	}
	fmt.Fprintln(p.out)
}

// Report writes the summary of a simulation run.
func (p *Printer) Report(report *simulator.Report) {
	fmt.Fprintln(p.out, p.styles.Header.Render(fmt.Sprintf(" Simulation (seed %d) ", report.Seed)))
	finished := 0
	for _, t := range report.Tables {
		if t.Finished {
			finished++
		}
	}
	fmt.Fprintf(p.out, "Tables: %d (%d finished early)\n", len(report.Tables), finished)
	fmt.Fprintf(p.out, "Hands played: %d\n", report.Hands)
	if report.Hands > 0 {
		fmt.Fprintf(p.out, "Showdowns: %d (%.1f%%)\n", report.Showdowns, pct(report.Showdowns, report.Hands))
		fmt.Fprintf(p.out, "Hands with side pots: %d (%.1f%%)\n", report.SidePots, pct(report.SidePots, report.Hands))
	}
	fmt.Fprintf(p.out, "Split pots: %d, refunded pots: %d\n", report.SplitPots, report.Refunds)

	kinds := make([]string, 0, len(report.ByBot))
	for kind := range report.ByBot {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.Street.Render(fmt.Sprintf("%-10s %8s %10s %10s %10s %18s", "bot", "hands", "net", "bb/100", "sd/nsd", "95% CI bb/hand")))
	for _, kind := range kinds {
		stats := report.ByBot[kind]
		low, high := stats.ConfidenceInterval95()
		style := p.styles.Success
		if stats.Net < 0 {
			style = p.styles.Error
		}
		fmt.Fprintf(p.out, "%-10s %8d %s %10.2f %10s %18s\n",
			kind,
			stats.Hands,
			style.Render(fmt.Sprintf("%10d", stats.Net)),
			stats.BB100(),
			fmt.Sprintf("%d/%d", stats.ShowdownWins, stats.NonShowdownWins),
			fmt.Sprintf("[%.3f, %.3f]", low, high))
	}
}

func pct(n, of int) float64 {
	return float64(n) / float64(of) * 100
}
