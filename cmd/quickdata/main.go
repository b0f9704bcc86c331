package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/0xRadioAc7iv/go-quickdata/core"
	"github.com/0xRadioAc7iv/go-quickdata/internal"
	"github.com/0xRadioAc7iv/go-quickdata/internal/utils"
)

func main() {
	cfg, err := utils.HandleCLIInputs("quickdata", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(cfg *internal.Config) error {
	store, err := core.Open(cfg.Path,
		core.WithLogger(internal.NewLogger(cfg, os.Stderr)),
		core.WithSyncMode(cfg.SyncMode()),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}

	steps := []struct {
		key   string
		value core.Value
	}{
		{"test", core.StringValue("Hello, World!")},
		{"hi", core.StringValue("test")},
		{"test", core.StringValue("Hi!")},
		{"number", core.IntValue(21)},
		{"pi", core.DoubleValue(math.Pi)},
	}
	for _, step := range steps {
		if err := store.Save(step.key, step.value); err != nil {
			return err
		}
	}

	for _, key := range store.Keys() {
		v, err := store.Load(key)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) = %s\n", key, v.Tag, v)
	}

	size, err := store.Size()
	if err != nil {
		return err
	}
	fmt.Printf("%d keys, %d bytes in %s\n", store.Len(), size, cfg.Path)
	return nil
}
