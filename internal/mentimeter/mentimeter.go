// Package mentimeter builds the HTML used to embed Mentimeter voting and
// results pages side by side in a notebook cell.
package mentimeter

import (
	"fmt"
	"html"
)

// Embed holds the voting page and results page links. Either may be empty.
type Embed struct {
	Vote   string
	Result string
}

// HTML returns a single div containing an iframe for each link that is set.
// The vote frame comes first. Frame widths depend on whether both are shown.
func (e Embed) HTML() string {
	return fmt.Sprintf("<div style='width:100%%; height:40vh;'> %s%s </div>", e.voteFrame(), e.resultFrame())
}

// Empty reports whether neither link is set.
func (e Embed) Empty() bool {
	return e.Vote == "" && e.Result == ""
}

func (e Embed) voteFrame() string {
	if e.Vote == "" {
		return ""
	}
	width := "70%"
	if e.Result != "" {
		width = "30%"
	}
	return iframe(e.Vote, width)
}

func (e Embed) resultFrame() string {
	if e.Result == "" {
		return ""
	}
	width := "90%"
	if e.Vote != "" {
		width = "69%"
	}
	return iframe(e.Result, width)
}

func iframe(src, width string) string {
	return fmt.Sprintf(`<iframe src="%s" height=100%% width=%s></iframe>`, html.EscapeString(src), width)
}
