package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tartampluch/contactbook/internal/config"
)

// splitMode tells how the text after a command prefix becomes arguments.
type splitMode int

const (
	splitFields splitMode = iota // Whitespace separated positional arguments.
	splitRest                    // First word, then the rest of the line as one argument.
	splitWhole                   // The whole remainder as one argument (file paths).
)

type route struct {
	prefix   string
	split    splitMode
	keepCase bool // Arguments keep the letter case typed by the user (file paths).
	exit     bool
	handler  handlerFunc
}

// routes is checked top to bottom and the first matching prefix wins,
// so a prefix must come before any shorter prefix of it.
var routes = []route{
	{prefix: config.CmdAdd, handler: addContact},
	{prefix: config.CmdBirthday, split: splitRest, handler: addBirthday},
	{prefix: config.CmdHello, handler: hello},
	{prefix: config.CmdHelp, handler: hello},
	{prefix: config.CmdWhen, handler: daysToBirthday},
	{prefix: config.CmdFind, split: splitRest, handler: find},
	{prefix: config.CmdChange, handler: changePhone},
	{prefix: config.CmdCalendar, split: splitWhole, keepCase: true, handler: writeCalendar},
	{prefix: config.CmdDelete, handler: deletePhone},
	{prefix: config.CmdRemove, handler: removeContact},
	{prefix: config.CmdPhone, handler: showPhone},
	{prefix: config.CmdShowAll, handler: showAll},
	{prefix: config.CmdSave, handler: save},
	{prefix: config.CmdLoad, handler: load},
	{prefix: config.CmdExport, split: splitWhole, keepCase: true, handler: exportVCards},
	{prefix: config.CmdImport, split: splitWhole, keepCase: true, handler: importVCards},
	{prefix: config.CmdExit, exit: true, handler: end},
	{prefix: config.CmdClose, exit: true, handler: end},
	{prefix: config.CmdGoodBye, exit: true, handler: end},
}

var unknownRoute = route{prefix: config.CmdUnknown, handler: unknown}

// Command is a parsed input line.
type Command struct {
	Name  string // Matched prefix, or config.CmdUnknown.
	Args  []string
	route route
}

// Parse matches line against the command prefixes, ignoring case, and splits the arguments.
// Arguments are lower-cased except for commands taking file paths.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	for _, r := range routes {
		if !strings.HasPrefix(lower, r.prefix) {
			continue
		}

		rest := lower[len(r.prefix):]
		// Prefixes are ASCII; the original text is only used when its prefix bytes line up.
		if r.keepCase && len(line) >= len(r.prefix) && strings.EqualFold(line[:len(r.prefix)], r.prefix) {
			rest = line[len(r.prefix):]
		}
		return Command{Name: r.prefix, Args: splitArgs(strings.TrimSpace(rest), r.split), route: r}
	}

	return Command{Name: unknownRoute.prefix, route: unknownRoute}
}

func splitArgs(rest string, mode splitMode) []string {
	switch mode {
	case splitRest:
		return strings.SplitN(rest, config.ArgSeparator, 2)
	case splitWhole:
		return []string{rest}
	default:
		return strings.Fields(rest)
	}
}

// Execute parses and runs one input line.
func (s *Session) Execute(ctx context.Context, line string) Reply {
	cmd := Parse(line)

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompAssistant,
		config.LogKeyCommand, cmd.Name,
		config.LogKeyArgs, len(cmd.Args),
	)

	text, err := cmd.route.handler(ctx, s, cmd.Args)
	if err != nil {
		text = s.translate(cmd.Name, err)
	}
	return Reply{Text: text, Exit: cmd.route.exit}
}
