package fsvisit

import "go.uber.org/zap"

// loggingObserver logs every notification at debug level.
type loggingObserver struct {
	logger *zap.Logger
}

// NewLoggingObserver returns an Observer that logs each notification.
func NewLoggingObserver(logger *zap.Logger) Observer {
	return loggingObserver{logger: logger}
}

func (o loggingObserver) OnStart(*Control) {
	o.logger.Debug("search started")
}

func (o loggingObserver) OnFinish(c *Control) {
	o.logger.Debug("search finished", zap.Bool("stopped", c.Stopping()))
}

func (o loggingObserver) OnFileFound(_ *Control, path string) {
	o.logger.Debug("file found", zap.String("path", path))
}

func (o loggingObserver) OnDirectoryFound(_ *Control, path string) {
	o.logger.Debug("directory found", zap.String("path", path))
}

func (o loggingObserver) OnFilteredFileFound(_ *Control, path string) {
	o.logger.Debug("filtered file found", zap.String("path", path))
}

func (o loggingObserver) OnFilteredDirectoryFound(_ *Control, path string) {
	o.logger.Debug("filtered directory found", zap.String("path", path))
}
