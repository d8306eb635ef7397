// Package mini implements a lightweight, minimalist interface for music search and playback.
package mini

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/melodia-cli/melodia/color"
	"github.com/melodia-cli/melodia/icon"
	"github.com/melodia-cli/melodia/style"
	"github.com/melodia-cli/melodia/util"
	"github.com/samber/lo"
)

// bind is a selectable menu action, as opposed to a domain entry.
type bind struct {
	label string
}

func (b *bind) String() string {
	return b.label
}

func (b *bind) eq(other *bind) bool {
	return b == other
}

var (
	quit        = &bind{"Quit"}
	back        = &bind{"Back"}
	search      = &bind{"Search"}
	next        = &bind{"Next Track"}
	prev        = &bind{"Previous Track"}
	replay      = &bind{"Replay"}
	pauseResume = &bind{"Pause / Resume"}
	stop        = &bind{"Stop Playback"}
)

func title(s string) {
	fmt.Println(style.New().Bold(true).Foreground(color.HiPurple).Render(s))
}

func fail(s string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), style.Fg(color.Red)(s))
}

func progress(s string) func() {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), s))
}

type input struct {
	value string
}

// getInput prompts for a line and re-asks until the validator accepts it.
func getInput(validate func(string) bool) (*input, error) {
	var value string

	err := survey.AskOne(&survey.Input{Message: ">"}, &value, survey.WithValidator(func(answer interface{}) error {
		s, _ := answer.(string)
		if !validate(s) {
			return fmt.Errorf("invalid input")
		}
		return nil
	}))
	if err != nil {
		return nil, err
	}

	return &input{value: value}, nil
}

// menu renders a select prompt over domain entries followed by the given
// action binds. Quit is always available as the last option. Exactly one of
// the returned bind and entry is meaningful; the bind is nil when a domain
// entry was picked.
func menu[T fmt.Stringer](entries []T, binds ...*bind) (*bind, T, error) {
	var zero T

	binds = append(binds, quit)

	options := make([]string, 0, len(entries)+len(binds))
	for _, entry := range entries {
		options = append(options, style.Truncate(truncateAt)(entry.String()))
	}
	for _, b := range binds {
		options = append(options, b.String())
	}

	var answer string
	err := survey.AskOne(&survey.Select{
		Message:  "Choose",
		Options:  options,
		PageSize: 10,
	}, &answer)
	if err != nil {
		return nil, zero, err
	}

	index := lo.IndexOf(options, answer)
	if index < 0 {
		return quit, zero, nil
	}

	if index < len(entries) {
		return nil, entries[index], nil
	}

	return binds[index-len(entries)], zero, nil
}
