package main

import (
	"github.com/Abraxas-365/resumeforge/pkg/config"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
)

func main() {
	// 1. Configuration (.env is read here, before the logger looks at LOG_*)
	cfg, err := config.Load()

	// 2. Logger
	logx.SetDefault(logx.NewLogger(logx.LoadFromEnv()))
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}

	logx.Infof("🚀 Starting %s %s (%s)...", cfg.Server.AppName, cfg.Server.Version, cfg.Server.Environment)

	// 3. Dependency container
	container := NewContainer(cfg)
	defer container.Cleanup()

	// 4. HTTP server
	app := newApp(container)
	printRouteSummary(container)

	// 5. Serve until SIGINT/SIGTERM
	startServer(app, container)
}
