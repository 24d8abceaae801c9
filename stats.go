package main

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

const (
	/// StatsAddress is where the runtime stats server listens.
	///
	StatsAddress = "localhost:12600"

	statsURL = "/debug/statsview"
)

/// LaunchStats starts a goroutine serving runtime charts of the emulator.
///
func LaunchStats() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(StatsAddress))

		mgr := statsview.New()
		mgr.Start()
	}()

	Logger.Info("Stats server available", log.String("url", "http://"+StatsAddress+statsURL))
}
