package consoleiface

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/riking/joycon/joycond/ctlrmgr"
)

func filterCtrlZ(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// Run reads commands from the terminal until EOF, an interrupt on an empty
// line, or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[1m[joycond]\033[m> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		FuncFilterInputRune: filterCtrlZ,
	})
	if err != nil {
		return errors.Wrap(err, "initialize console")
	}
	defer l.Close()
	c.ctx = ctx
	c.out = l.Stdout()

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		} else if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read console")
		}

		c.handleCommand(strings.Fields(line))
	}
	return nil
}

func findCommand(name string) commandMeta {
	for _, v := range commands {
		for _, cName := range v.Aliases {
			if name == cName {
				return v
			}
		}
	}
	return commandMeta{}
}

func (c *Console) handleCommand(argv []string) {
	if len(argv) == 0 {
		return
	}
	meta := findCommand(argv[0])
	if meta.F == nil {
		fmt.Fprintln(c.out, "unknown command", argv[0])
		return
	}
	meta.F(c, argv[1:])
}

func printStatus(w io.Writer, st ctlrmgr.Status) {
	fmt.Fprintln(w, "Unpaired controllers:")
	if len(st.Unpaired) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, path := range st.Unpaired {
		pending := ""
		switch path {
		case st.Left:
			pending = " [waiting as left]"
		case st.Right:
			pending = " [waiting as right]"
		}
		fmt.Fprintf(w, "  u%d: %s%s\n", i+1, path, pending)
	}

	fmt.Fprintln(w, "Controllers:")
	if len(st.Slots) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, slot := range st.Slots {
		if slot.Empty() {
			fmt.Fprintf(w, "  c%d: (free)\n", slot.Index+1)
			continue
		}
		fmt.Fprintf(w, "  c%d: player %d %s %s\n", slot.Index+1, slot.Player, slot.Kind, slot.ID)
		for _, path := range slot.Members {
			fmt.Fprintf(w, "      %s\n", path)
		}
	}
	fmt.Fprintln(w)
}

type commandMeta struct {
	F       func(*Console, []string)
	Aliases []string
	Help    string
}

func (m *commandMeta) Name() string {
	return m.Aliases[0]
}

var commands []commandMeta

func addCommand(F func(*Console, []string), help string, names ...string) struct{} {
	commands = append(commands, commandMeta{
		F:       F,
		Help:    help,
		Aliases: names,
	})
	return struct{}{}
}

func cmdHelp(c *Console, argv []string) {
	fmt.Fprintln(c.out, "Commands:")
	for _, v := range commands {
		fmt.Fprintf(c.out, "  %s - %s\n", v.Name(), v.Help)
	}
}

var _ = addCommand(cmdHelp, "Display this help text.", "help", "?", "hlep")
var _ = addCommand(cmdList, "Show unpaired controllers and player slots.", "list", "ls")
var _ = addCommand(cmdQuit, "Stop the daemon.", "quit", "exit")

func cmdList(c *Console, argv []string) {
	st, err := c.status()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("console: list")
		}
		fmt.Fprintln(c.out, "manager not running:", err)
		return
	}
	printStatus(c.out, st)
}

func cmdQuit(c *Console, argv []string) {
	if c.quit != nil {
		c.quit()
	}
}
