package form

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/vertex-scatter/internal/config"
	"github.com/Faultbox/vertex-scatter/internal/logger"
	"github.com/Faultbox/vertex-scatter/pkg/host"
)

// Open is the entry point for a host integration. It loads preferences from
// configPath (empty searches ./scatter.yaml and the user config directory),
// initializes logging from their logging section and opens the tool.
//
// Every successful scatter saves the remembered field values back to
// configPath, or to the user config directory when configPath is empty.
func Open(h host.Scene, configPath string) (*Tool, error) {
	prefs, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(prefs.Logging.Level, prefs.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	t, err := New(h, prefs, logger.Log)
	if err != nil {
		return nil, err
	}
	t.persist = true
	t.savePath = configPath

	logger.Info("scatter tool opened",
		zap.String("config", configPath),
		zap.String("level", prefs.Logging.Level),
		zap.String("log_file", prefs.Logging.LogFile))
	return t, nil
}

// Close flushes buffered log entries. Call it when the host closes the window.
func (t *Tool) Close() {
	logger.Sync()
}

// save writes the preferences after a successful run. A failed save is
// logged and does not fail the scatter.
func (t *Tool) save() {
	if !t.persist {
		return
	}

	var err error
	if t.savePath != "" {
		err = t.prefs.SaveTo(t.savePath)
	} else {
		err = t.prefs.Save()
	}
	if err != nil {
		logger.Warn("saving preferences", zap.String("path", t.savePath), zap.Error(err))
	}
}
