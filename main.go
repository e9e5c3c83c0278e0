// Package main is the entry point of the year2018 CLI.
package main

import (
	"github.com/baijiangliang/year2018/cmd"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/internal/iocache"
)

func main() {
	defer iocache.CloseCaching()
	cmd.SetCacheManager(iocache.Manager)

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("year2018 failed", err)
	}
}
