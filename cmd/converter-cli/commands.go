package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlexZav1327/currency-converter/internal/currency"
	"github.com/AlexZav1327/currency-converter/internal/session"
)

var (
	errQuit           = errors.New("quit")
	errUnknownCommand = errors.New("unknown command")
)

type controller interface {
	SetAmount(text string)
	SetFrom(code string)
	SetTo(code string)
	Swap()
	Clear()
	Convert()
}

// apply maps one input line onto the session. Anything that is not a command
// is taken as the new amount text.
func apply(c controller, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return errQuit
	case "swap":
		c.Swap()
	case "clear":
		c.Clear()
	case "convert":
		c.Convert()
	case "from", "to":
		if len(fields) != 2 {
			return fmt.Errorf("%w: usage %s XXX", errUnknownCommand, fields[0])
		}

		code := strings.ToUpper(fields[1])

		err := currency.Validate(code)
		if err != nil {
			return fmt.Errorf("currency.Validate: %w", err)
		}

		if strings.EqualFold(fields[0], "from") {
			c.SetFrom(code)
		} else {
			c.SetTo(code)
		}
	default:
		c.SetAmount(strings.TrimSpace(line))
	}

	return nil
}

type printer struct {
	out io.Writer
}

func (p *printer) Render(view session.View) {
	var line string

	switch {
	case view.Busy:
		line = fmt.Sprintf("%s %s -> %s: converting...", view.AmountText, view.From, view.To)
	case view.Error != "":
		line = view.Error
	case view.Result != nil:
		line = fmt.Sprintf("%s = %s  (%s)", view.FromAmount, view.ToAmount, view.RateLine)
	default:
		line = fmt.Sprintf("%s %s -> %s", view.AmountText, view.From, view.To)
	}

	_, _ = fmt.Fprintln(p.out, line)
}
