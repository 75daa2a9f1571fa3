package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// MatchPrompt is a pending disambiguation menu. The descriptor's next input
// line picks an entry by number, 'c' cancels, anything else cancels with a
// message.
type MatchPrompt struct {
	Input    string
	Matches  []gamedb.DBRef
	Continue func(obj gamedb.DBRef)
}

// extraInfo returns disambiguation detail for a match: whether the looker
// is wearing or carrying it.
func (g *Game) extraInfo(looker gamedb.DBRef, ref gamedb.DBRef) string {
	obj := g.DB.Get(ref)
	if obj == nil || obj.Location != looker {
		return ""
	}
	if lookerObj := g.DB.Get(looker); lookerObj != nil && g.IsWorn(lookerObj, ref) {
		return " (worn)"
	}
	return " (carried)"
}

// promptMultimatch shows the numbered menu and parks the continuation on
// the descriptor.
func (g *Game) promptMultimatch(d *Descriptor, input string, matches []gamedb.DBRef, cont func(gamedb.DBRef)) {
	var lines []string
	for i, ref := range matches {
		lines = append(lines, fmt.Sprintf(" %d. %s%s", i+1, g.PlayerName(ref), g.extraInfo(d.Player, ref)))
	}
	d.Sendf("Which %s do you mean?\n%s", input, strings.Join(lines, "\n"))
	d.Send("Enter a number (or c to cancel):")
	d.Pending = &MatchPrompt{Input: input, Matches: matches, Continue: cont}
}

// HandlePendingMatch consumes one input line for an outstanding prompt.
func (g *Game) HandlePendingMatch(d *Descriptor, line string) {
	prompt := d.Pending
	d.Pending = nil
	if prompt == nil {
		return
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "c") {
		d.Send("Action cancelled.")
		return
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(prompt.Matches) {
		d.Send("Invalid option, cancelling.")
		return
	}
	prompt.Continue(prompt.Matches[n-1])
}

// Resolve narrows a match list to one object: zero matches report notFound,
// one match continues immediately, several raise the interactive menu.
func (g *Game) Resolve(d *Descriptor, input string, matches []gamedb.DBRef, notFound string, cont func(gamedb.DBRef)) {
	switch len(matches) {
	case 0:
		d.Send(notFound)
	case 1:
		cont(matches[0])
	default:
		g.promptMultimatch(d, input, matches, cont)
	}
}
