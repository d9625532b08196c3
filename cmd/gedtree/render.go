package main

import (
	"fmt"

	"github.com/gedtree/gedtree/formats"
)

// printResult renders v with the configured output format.
func printResult(v interface{}) error {
	out, err := formats.Render(cfg.GetString("format"), v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
