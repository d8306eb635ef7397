// Package main is the entry point for the melodia application.
package main

import (
	"github.com/melodia-cli/melodia/cmd"
	"github.com/melodia-cli/melodia/config"
	"github.com/melodia-cli/melodia/internal/cache"
	"github.com/melodia-cli/melodia/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background cache maintenance.
	cache.CollectGarbage()

	cmd.Execute()
}
