package logging

import (
	"io"
	"net"
	"os"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/nutrilog/internal/config"
	"gopkg.in/go-extras/elogrus.v7"
)

const serviceName = "nutrilog"

// New builds the process logger. Remote hooks that cannot be attached are
// reported at debug level and skipped.
func New(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	logger := logrus.New()
	logger.Out = out
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Elk.Enable {
		attachElasticHook(logger, cfg.Elk, level)
	}
	if cfg.Logstash.Enable {
		attachLogstashHook(logger, cfg.Logstash)
	}
	return logger
}

func attachElasticHook(logger *logrus.Logger, cfg config.ElkConfig, level logrus.Level) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
	})
	if err != nil {
		logger.WithError(err).Debug("elasticsearch client unavailable")
		return
	}
	hook, err := elogrus.NewAsyncElasticHook(client, serviceName, level, cfg.Index)
	if err != nil {
		logger.WithError(err).Debug("elasticsearch hook unavailable")
		return
	}
	logger.Hooks.Add(hook)
}

func attachLogstashHook(logger *logrus.Logger, cfg config.LogstashConfig) {
	conn, err := net.Dial("udp", cfg.URL)
	if err != nil {
		logger.WithError(err).Debug("logstash connection unavailable")
		return
	}
	hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": serviceName}))
	logger.Hooks.Add(hook)
}
