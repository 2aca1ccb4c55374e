package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/rocketbot/internal/config"
	"github.com/zeusync/rocketbot/internal/core/agent"
	"github.com/zeusync/rocketbot/internal/core/events/bus"
	"github.com/zeusync/rocketbot/internal/core/observability/log"
	"github.com/zeusync/rocketbot/internal/core/strategy"
	"github.com/zeusync/rocketbot/internal/replay"
)

// Runtime is everything the replay command needs.
type Runtime struct {
	Config   *config.Config
	Logger   log.Log
	NewAgent replay.AgentFactory
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideAgentFactory,
	wire.Struct(new(Runtime), "*"),
)

func ProvideLogger(cfg *config.Config) log.Log {
	return log.NewWithConfig(cfg.LogConfig())
}

// ProvideAgentFactory builds one agent per recording, each with its own
// strategy instance and event bus. The car index comes from the recording.
func ProvideAgentFactory(cfg *config.Config, logger log.Log) (replay.AgentFactory, error) {
	if _, err := strategy.New(cfg.Agent.Strategy); err != nil {
		return nil, err
	}
	return func(rec *replay.Recording) (*agent.Agent, error) {
		s, err := strategy.New(cfg.Agent.Strategy)
		if err != nil {
			return nil, err
		}
		settings := cfg.AgentSettings()
		settings.CarIndex = rec.CarIndex
		return agent.New(settings, s, bus.New(), logger.With(log.String("recording", rec.Name))), nil
	}, nil
}
