// Command enginectl drives the declarative compute engine: load an
// Interface descriptor, run its compute phases, serve its HTTP API, or
// open an interactive shell over it.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/ifacecfg"
	"github.com/flowtable/compute/internal/registry"
	"github.com/flowtable/compute/internal/repl"
	"github.com/flowtable/compute/internal/resolve"
	"github.com/flowtable/compute/internal/schedule"
	"github.com/flowtable/compute/internal/server"
	"github.com/flowtable/compute/internal/sink"
	"github.com/flowtable/compute/internal/source"
	"github.com/flowtable/compute/internal/watch"
)

const version = "0.1.0"

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:     "enginectl",
		Short:   "Run and serve declarative compute engine interfaces",
		Version: version,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(runCmd(&debug))
	rootCmd.AddCommand(runOnChangeCmd(&debug))
	rootCmd.AddCommand(serveCmd(&debug))
	rootCmd.AddCommand(replCmd(&debug))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "enginectl: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *enginelog.Logger {
	log, err := enginelog.New(debug)
	if err != nil {
		return enginelog.NewNop()
	}
	return log
}

func runCmd(debug *bool) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "run <interface.yaml>",
		Short: "Load an interface and run its full compute phases once",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := newLogger(*debug)
			defer log.Sync()

			liquidEngine := registry.NewLiquidEngine("")
			reg := registry.New(
				registry.BaseGroup(liquidEngine),
				registry.TextGroup(),
				registry.ListMathGroup(),
				registry.DataFrameGroup(),
				registry.TypeCoercionGroup(),
				registry.DatesGroup(),
			)
			resolver := resolve.New(reg, liquidEngine)

			iface, err := ifacecfg.Load(args[0])
			if err != nil {
				return err
			}
			df, err := source.Load(context.Background(), nil, iface)
			if err != nil {
				return err
			}
			sched := schedule.New(df, reg, resolver, iface.Compute, log)
			if err := sched.RunAll(); err != nil {
				return err
			}
			rows, cols := df.Shape()
			fmt.Printf("run_all complete: %d rows, %d columns\n", rows, cols)

			if write {
				return sink.Write(context.Background(), nil, df, iface.Output)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the output after computing")
	return cmd
}

func runOnChangeCmd(debug *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-onchange <interface.yaml> <primary_key> <column>",
		Short: "Load an interface and run only the steps that <column> feeds for one row",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			log := newLogger(*debug)
			defer log.Sync()

			liquidEngine := registry.NewLiquidEngine("")
			reg := registry.New(
				registry.BaseGroup(liquidEngine),
				registry.TextGroup(),
				registry.ListMathGroup(),
				registry.DataFrameGroup(),
				registry.TypeCoercionGroup(),
				registry.DatesGroup(),
			)
			resolver := resolve.New(reg, liquidEngine)

			iface, err := ifacecfg.Load(args[0])
			if err != nil {
				return err
			}
			df, err := source.Load(context.Background(), nil, iface)
			if err != nil {
				return err
			}
			sched := schedule.New(df, reg, resolver, iface.Compute, log)
			if err := sched.RunOnChange(args[1], args[2]); err != nil {
				return err
			}
			fmt.Println("run_onchange complete")
			return nil
		},
	}
	return cmd
}

func serveCmd(debug *bool) *cobra.Command {
	var (
		addr        string
		dbPath      string
		lockPath    string
		idleTimeout time.Duration
		watchPath   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API over sessions created via /api/read_data",
		RunE: func(_ *cobra.Command, _ []string) error {
			log := newLogger(*debug)
			defer log.Sync()

			lock := server.NewLockfile(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("serve: another instance already holds %s", lockPath)
			}
			defer lock.Unlock()

			store, err := server.OpenStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			liquidEngine := registry.NewLiquidEngine("")
			reg := registry.New(
				registry.BaseGroup(liquidEngine),
				registry.TextGroup(),
				registry.ListMathGroup(),
				registry.DataFrameGroup(),
				registry.TypeCoercionGroup(),
				registry.DatesGroup(),
			)
			resolver := resolve.New(reg, liquidEngine)

			srv := server.New(store, reg, resolver, log, nil, idleTimeout)
			fmt.Printf("enginectl serving on %s; endpoints:\n", addr)
			for _, e := range server.Endpoints {
				fmt.Printf("  %s\n", e)
			}

			if watchPath != "" {
				go func() {
					iface, err := ifacecfg.Load(watchPath)
					if err != nil {
						log.Fatal("watch: initial load failed: " + err.Error())
						return
					}
					df, err := source.Load(context.Background(), nil, iface)
					if err != nil {
						log.Fatal("watch: initial build failed: " + err.Error())
						return
					}
					sched := schedule.New(df, reg, resolver, iface.Compute, log)
					w := watch.New(watchPath, df, sched, log)
					_ = w.Run(context.Background())
				}()
			}

			return srv.Serve(context.Background(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8420", "address to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "enginectl_sessions.db", "sqlite session store path")
	cmd.Flags().StringVar(&lockPath, "lockfile", "enginectl.lock", "single-writer lockfile path")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 0, "auto-shutdown after this much idle time (0 disables)")
	cmd.Flags().StringVar(&watchPath, "watch", "", "interface YAML file to watch; each write is re-validated and triggers a full recompute")
	return cmd
}

func replCmd(debug *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Open an interactive shell over a DataFrame",
		RunE: func(_ *cobra.Command, _ []string) error {
			log := newLogger(*debug)
			defer log.Sync()

			liquidEngine := registry.NewLiquidEngine("")
			reg := registry.New(
				registry.BaseGroup(liquidEngine),
				registry.TextGroup(),
				registry.ListMathGroup(),
				registry.DataFrameGroup(),
				registry.TypeCoercionGroup(),
				registry.DatesGroup(),
			)
			resolver := resolve.New(reg, liquidEngine)

			shell, err := repl.New(reg, resolver, log, nil)
			if err != nil {
				return err
			}
			return shell.Run()
		},
	}
	return cmd
}
