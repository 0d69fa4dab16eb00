package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/hwmon/internal/errors"
)

// HostChoice is one selectable host in the picker.
type HostChoice struct {
	Hostname string
	Online   bool
	Known    bool    // false when the latest snapshot has no sample for the host
	CPU      float64 // percent, from the latest sample
}

// HostOptions builds the picker options, sorted by hostname.
func HostOptions(choices []HostChoice) []huh.Option[string] {
	sorted := make([]HostChoice, len(choices))
	copy(sorted, choices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hostname < sorted[j].Hostname })

	options := make([]huh.Option[string], len(sorted))
	for i, c := range sorted {
		options[i] = huh.NewOption(choiceLabel(c), c.Hostname)
	}
	return options
}

func choiceLabel(c HostChoice) string {
	if !c.Known {
		return c.Hostname + " " + Muted("(no recent sample)")
	}
	return fmt.Sprintf("%s  %s  %s", c.Hostname, HostStatus(c.Online), Muted(fmt.Sprintf("cpu %.1f%%", c.CPU)))
}

// PickHost asks the user to choose a host. A single host is returned without
// prompting.
func PickHost(ctx context.Context, choices []HostChoice) (string, error) {
	switch len(choices) {
	case 0:
		return "", errors.New(errors.ErrConfig,
			"The server hasn't reported any hosts yet",
			"Start an agent with 'hwmon agent' or pass a hostname directly.")
	case 1:
		return choices[0].Hostname, nil
	}

	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a host").
				Options(HostOptions(choices)...).
				Value(&name),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't get your selection",
			"Try again or use: hwmon host <hostname>")
	}
	return name, nil
}
