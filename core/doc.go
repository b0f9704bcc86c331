// Package core implements quickdata, an embedded typed key/value store kept
// in a single random-access file.
//
// Every key maps to one scalar: byte, short, int, long, float, double, bool
// or text. Saves overwrite the existing record in place whenever the new
// value fits its slot and append otherwise; opening a store compacts the
// file so every key holds exactly one packed record.
//
// Example:
//
//	store, err := core.Open("settings.qdt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.SaveString("greeting", "Hello, World!")
//	n, err := store.LoadInt("number")
package core
