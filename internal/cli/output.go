package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case PlayableList:
		o.printPlayableList(v)
	case OwnerList:
		for _, owner := range v.Items {
			fmt.Fprintln(o.w, owner)
		}
	case Message:
		fmt.Fprintln(o.w, v.Message)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s (%s)\n", v.Status, v.Timestamp)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Fprintf(o.w, "ID:          %s\n", g.ID)
	fmt.Fprintf(o.w, "Name:        %s\n", g.Name)
	fmt.Fprintf(o.w, "Max players: %d\n", g.Capacity)
	fmt.Fprintf(o.w, "Owners:      %s\n", strings.Join(g.Owners, ", "))
	fmt.Fprintf(o.w, "Modes:       %s\n", modes(g))
}

func (o *Output) printGameList(list GameList) {
	if len(list.Items) == 0 {
		fmt.Fprintln(o.w, "No games found")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPLAYERS\tMODES\tOWNERS")
	for _, g := range list.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", g.ID, g.Name, g.Capacity, modes(g), strings.Join(g.Owners, ", "))
	}
	_ = tw.Flush()
}

func (o *Output) printPlayableList(list PlayableList) {
	if len(list.Items) == 0 {
		fmt.Fprintf(o.w, "No games playable by %s\n", strings.Join(list.Players, ", "))
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPLAYERS\tMODES\tOWNED BY")
	for _, g := range list.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", g.Name, g.Capacity, modes(g.Game), strings.Join(g.MatchedOwners, ", "))
	}
	_ = tw.Flush()
}

func modes(g Game) string {
	var m []string
	if g.FullPartyOnly {
		m = append(m, "full-party")
	}
	if g.RemotePlayEnabled {
		m = append(m, "remote")
	}
	if len(m) == 0 {
		return "-"
	}
	return strings.Join(m, ",")
}
