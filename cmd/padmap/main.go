package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/synrais/padmap/pkg/config"
	"github.com/synrais/padmap/pkg/hook"
)

type options struct {
	iniPath   string
	gdbPath   string
	storePath string
	exe       string
	format    string
	verbose   bool
}

func usage() {
	fmt.Println("Usage: padmap <command> [flags] [args]")
	fmt.Println("Commands:")
	fmt.Println("  -init                 write default x360ce.ini and x360ce.gdb if missing")
	fmt.Println("  -dump                 resolve hooks and pad mappings and print them")
	fmt.Println("  -watch                like -dump, again on every change of the ini")
	fmt.Println("  -gdb-import <file>    import an x360ce.gdb or .csv file into the game store")
	fmt.Println("  -gdb-export [file]    export the game store as CSV (stdout by default)")
	fmt.Println("  -gdb-lookup <query>   list game store entries whose name contains query,")
	fmt.Println("                        or starts with it when query ends in '*'")
	fmt.Println("  -gdb-delete <exe>     remove an executable from the game store")
}

func parseFlags(args []string) (*options, []string, error) {
	iniDefault, err := config.IniPath()
	if err != nil {
		return nil, nil, err
	}
	gdbDefault, err := config.GameDbPath()
	if err != nil {
		return nil, nil, err
	}
	storeDefault, err := config.GameStorePath()
	if err != nil {
		return nil, nil, err
	}

	opts := &options{}
	fs := flag.NewFlagSet("padmap", flag.ContinueOnError)
	fs.StringVar(&opts.iniPath, "ini", iniDefault, "path of x360ce.ini")
	fs.StringVar(&opts.gdbPath, "gdb", gdbDefault, "path of the x360ce.gdb game database")
	fs.StringVar(&opts.storePath, "store", storeDefault, "path of the game store")
	fs.StringVar(&opts.exe, "exe", "", "executable name used for the game database lookup")
	fs.StringVarP(&opts.format, "format", "f", "text", "output format: text, json, yaml or spew")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr at debug level")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs.Args(), nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// A .env next to the working directory may set PADMAP_CONFIG and friends.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "[MAIN] Failed to read .env:", err)
	}

	cmd := os.Args[1]
	opts, args, err := parseFlags(os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "[MAIN]", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch cmd {
	case "-init":
		err = runInit(opts)
	case "-dump":
		err = runDump(ctx, opts, os.Stdout)
	case "-watch":
		err = runWatch(ctx, opts)
	case "-gdb-import":
		if len(args) < 1 {
			err = errors.New("-gdb-import needs a file")
			break
		}
		err = runImport(opts, args[0])
	case "-gdb-export":
		out := ""
		if len(args) > 0 {
			out = args[0]
		}
		err = runExport(opts, out)
	case "-gdb-lookup":
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		err = runLookup(opts, os.Stdout, query)
	case "-gdb-delete":
		if len(args) < 1 {
			err = errors.New("-gdb-delete needs an executable name")
			break
		}
		err = runDelete(opts, args[0])
	case "-h", "-help", "--help":
		usage()
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if errors.Is(err, hook.ErrDisabled) {
		fmt.Println("[MAIN] x360ce is disabled in", filepath.Base(opts.iniPath))
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "[MAIN]", cmd, "failed:", err)
		os.Exit(1)
	}
}
