// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/portable/internal/adapters/casedb"
	_ "go.trai.ch/portable/internal/adapters/config"
	_ "go.trai.ch/portable/internal/adapters/contentstore"
	_ "go.trai.ch/portable/internal/adapters/fs"
	_ "go.trai.ch/portable/internal/adapters/logger"
	_ "go.trai.ch/portable/internal/adapters/telemetry"
	_ "go.trai.ch/portable/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/portable/internal/app"
	_ "go.trai.ch/portable/internal/engine/builder"
)
