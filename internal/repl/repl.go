// Package repl provides an interactive shell over a loaded DataFrame: a
// readline loop dispatching a fixed verb set (load/run/run-onchange/get/
// set/show/quit) instead of free-text intents.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/afero"

	"github.com/flowtable/compute/internal/dataframe"
	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/resolve"
	"github.com/flowtable/compute/internal/schedule"
	"github.com/flowtable/compute/internal/source"
)

// REPL holds the engine state a shell session operates on. DataFrame and
// Scheduler are nil until a `load` command succeeds.
type REPL struct {
	Registry *registry.Registry
	Resolver *resolve.Resolver
	Log      *enginelog.Logger
	FS       afero.Fs

	Interface *ifacecfg.Interface
	DataFrame *dataframe.DataFrame
	Scheduler *schedule.Scheduler

	rl *readline.Instance
}

// New builds a REPL. reg and resolver back every compute verb; fs
// defaults to the OS filesystem when nil.
func New(reg *registry.Registry, resolver *resolve.Resolver, log *enginelog.Logger, fs afero.Fs) (*REPL, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mengine>\033[0m ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("repl: readline: %w", err)
	}
	return &REPL{Registry: reg, Resolver: resolver, Log: log, FS: fs, rl: rl}, nil
}

// Run blocks, reading and dispatching commands until quit, EOF, or a
// terminating signal.
func (r *REPL) Run() error {
	defer r.rl.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sigCh
		cancel()
		r.rl.Close()
	}()

	for {
		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.dispatch(ctx, line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Printf("\033[31merror: %v\033[0m\n", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func (r *REPL) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	verb, args := fields[0], fields[1:]

	switch verb {
	case "quit", "exit":
		return errQuit
	case "help":
		r.printHelp()
		return nil
	case "load":
		return r.cmdLoad(ctx, args)
	case "run":
		return r.cmdRun()
	case "run-onchange":
		return r.cmdRunOnChange(args)
	case "get":
		return r.cmdGet(args)
	case "set":
		return r.cmdSet(args)
	case "show":
		return r.cmdShow()
	default:
		return fmt.Errorf("unknown command %q (try: load, run, run-onchange, get, set, show, quit)", verb)
	}
}

func (r *REPL) printHelp() {
	fmt.Println(`commands:
  load <interface.yaml>           load an Interface descriptor and build its DataFrame
  run                              run_all over the loaded DataFrame
  run-onchange <primary> <column>  re-run steps that depend on <column> for <primary>
  get <primary> <column>           print a cell's value
  set <primary> <column> <value>   write a cell's value
  show                              print the DataFrame's shape and columns
  quit                              exit`)
}

func (r *REPL) cmdLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <interface.yaml>")
	}
	iface, err := ifacecfg.Load(args[0])
	if err != nil {
		return err
	}
	df, err := source.Load(ctx, r.FS, iface)
	if err != nil {
		return err
	}
	r.Interface = iface
	r.DataFrame = df
	r.Scheduler = schedule.New(df, r.Registry, r.Resolver, iface.Compute, r.Log)
	rows, cols := df.Shape()
	fmt.Printf("loaded %s: %d rows, %d columns\n", args[0], rows, cols)
	return nil
}

func (r *REPL) requireLoaded() error {
	if r.DataFrame == nil {
		return fmt.Errorf("no DataFrame loaded; use `load <interface.yaml>` first")
	}
	return nil
}

func (r *REPL) cmdRun() error {
	if err := r.requireLoaded(); err != nil {
		return err
	}
	if err := r.Scheduler.RunAll(); err != nil {
		return err
	}
	fmt.Println("run_all complete")
	return nil
}

func (r *REPL) cmdRunOnChange(args []string) error {
	if err := r.requireLoaded(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: run-onchange <primary> <column>")
	}
	if err := r.Scheduler.RunOnChange(args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("run_onchange complete")
	return nil
}

func (r *REPL) cmdGet(args []string) error {
	if err := r.requireLoaded(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: get <primary> <column>")
	}
	if err := r.DataFrame.SetFocus(args[0]); err != nil {
		return err
	}
	v, err := r.DataFrame.GetValue(args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", v)
	return nil
}

func (r *REPL) cmdSet(args []string) error {
	if err := r.requireLoaded(); err != nil {
		return err
	}
	if len(args) < 3 {
		return fmt.Errorf("usage: set <primary> <column> <value>")
	}
	if err := r.DataFrame.SetFocus(args[0]); err != nil {
		return err
	}
	value := strings.Join(args[2:], " ")
	if err := r.DataFrame.SetValue(args[1], value); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func (r *REPL) cmdShow() error {
	if err := r.requireLoaded(); err != nil {
		return err
	}
	rows, cols := r.DataFrame.Shape()
	fmt.Printf("%d rows, %d columns\n", rows, cols)
	for kind, names := range r.DataFrame.Columns() {
		fmt.Printf("  %s: %s\n", kind, strings.Join(names, ", "))
	}
	return nil
}
