package main

import (
	"errors"
	"flag"
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/0xRadioAc7iv/go-quickdata/core"
	"github.com/0xRadioAc7iv/go-quickdata/internal"
	"github.com/0xRadioAc7iv/go-quickdata/internal/utils"
	"github.com/0xRadioAc7iv/go-quickdata/pkg/metrics"
)

func main() {
	cfg, err := utils.HandleCLIInputs("quickdata-cli", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	existed := utils.PathExists(cfg.Path)
	registry := metrics.NewRegistry()
	store, err := core.Open(cfg.Path,
		core.WithLogger(internal.NewLogger(cfg, os.Stderr)),
		core.WithMetrics(registry),
		core.WithSyncMode(cfg.SyncMode()),
	)
	if err != nil {
		fmt.Println("Error while opening store:", err)
		os.Exit(1)
	}
	defer store.Close()

	go func() {
		utils.ListenForProcessInterruptOrKill()
		store.Close()
		os.Exit(0)
	}()

	if existed {
		fmt.Printf("Opened %s (%d keys)\n", cfg.Path, store.Len())
	} else {
		fmt.Printf("Created %s\n", cfg.Path)
	}
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	shell := &shell{store: store, registry: registry, out: os.Stdout}
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				fmt.Println("input error:", err)
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !shell.execute(line) {
			return
		}
	}
}

type shell struct {
	store    *core.Store
	registry *metrics.Registry
	out      io.Writer
}

// execute runs one input line and reports whether the shell should keep
// reading.
func (sh *shell) execute(line string) bool {
	cmd, args, err := utils.SplitStringIntoCommandAndArguments(line)
	if err != nil {
		fmt.Fprintln(sh.out, "parse error:", err)
		return true
	}

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		fmt.Fprintln(sh.out, strings.TrimSpace(helpText))
	case "set":
		sh.handleSet(args)
	case "get":
		sh.handleGet(args)
	case "type":
		sh.handleType(args)
	case "keys":
		sh.handleKeys()
	case "count":
		fmt.Fprintln(sh.out, sh.store.Len())
	case "size":
		sh.handleSize()
	case "defrag":
		sh.reply(sh.store.Defragment())
	case "clear":
		sh.reply(sh.store.Clear())
	case "stats":
		sh.handleStats()
	default:
		fmt.Fprintln(sh.out, "Invalid Command")
	}
	return true
}

func (sh *shell) reply(err error) {
	if err != nil {
		fmt.Fprintln(sh.out, "error:", err)
		return
	}
	fmt.Fprintln(sh.out, "ok")
}

func (sh *shell) handleSet(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(sh.out, "usage: set <type> <key> <value>")
		return
	}

	tag, err := core.ParseTag(args[0])
	if err != nil {
		fmt.Fprintln(sh.out, "error:", err)
		return
	}
	v, err := core.ParseValue(tag, args[2])
	if err != nil {
		fmt.Fprintln(sh.out, "error:", err)
		return
	}
	sh.reply(sh.store.Save(args[1], v))
}

func (sh *shell) handleGet(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "usage: get <key>")
		return
	}

	v, err := sh.store.Load(args[0])
	if err != nil {
		fmt.Fprintln(sh.out, "nil")
		return
	}
	if v.Tag == core.TagString {
		fmt.Fprintln(sh.out, strconv.Quote(v.Text()))
		return
	}
	fmt.Fprintln(sh.out, v)
}

func (sh *shell) handleType(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "usage: type <key>")
		return
	}
	fmt.Fprintln(sh.out, sh.store.TypeOf(args[0]))
}

func (sh *shell) handleKeys() {
	keys := sh.store.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(sh.out, "nil")
		return
	}
	fmt.Fprintln(sh.out, "----- KEYS START -----\n"+strings.Join(keys, "\n")+"\n----- KEYS END -----")
}

func (sh *shell) handleSize() {
	size, err := sh.store.Size()
	if err != nil {
		fmt.Fprintln(sh.out, "error:", err)
		return
	}
	fmt.Fprintf(sh.out, "%d bytes\n", size)
}

func (sh *shell) handleStats() {
	samples, err := sh.registry.Snapshot()
	if err != nil {
		fmt.Fprintln(sh.out, "error:", err)
		return
	}
	for _, s := range samples {
		fmt.Fprintln(sh.out, s)
	}
}

const helpText = `
Available Commands:

SET <type> <key> <value>
  Store a value of the given type: byte, short, int, long, float,
  double, bool or string. Quote values containing spaces.
  Response: ok

GET <key>
  Retrieve the value stored under the key.
  Response: value | nil

TYPE <key>
  Show the type of the value stored under the key.
  Response: type | absent

KEYS
  List all stored keys.
  Response: list of keys | nil

COUNT
  Return the total number of keys stored.
  Response: integer

SIZE
  Return the store file size, dead space included.
  Response: bytes

DEFRAG
  Rewrite the store file without dead space.
  Response: ok

CLEAR
  Remove every key.
  Response: ok

STATS
  Show store metrics.

HELP
  Show this help message.

EXIT
  Close the store and quit.
`
