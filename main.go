package main

import (
	"time"

	"activity-tracker-system/cmd/server"
	"activity-tracker-system/internal/global/sentry"
)

func main() {
	server.Init()
	defer sentry.Flush(2 * time.Second)
	server.Run()
}
