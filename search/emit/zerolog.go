package emit

import (
	"github.com/rs/zerolog"
)

// ZerologEmitter implements Emitter by writing events through a zerolog.Logger.
//
// Events carrying an "error" meta key are logged at error level, goal and
// exhaustion events at info, and per-node events at debug so that a
// normal run stays quiet unless the logger level is lowered.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	emitter := emit.NewZerologEmitter(logger.With().Str("component", "search").Logger())
type ZerologEmitter struct {
	logger zerolog.Logger
}

// NewZerologEmitter creates a ZerologEmitter writing to logger.
func NewZerologEmitter(logger zerolog.Logger) *ZerologEmitter {
	return &ZerologEmitter{logger: logger}
}

// Emit logs the event.
func (z *ZerologEmitter) Emit(event Event) {
	var ev *zerolog.Event
	if _, failed := event.Meta["error"]; failed {
		ev = z.logger.Error()
	} else {
		switch event.Msg {
		case "goal_found", "frontier_exhausted", "search_init":
			ev = z.logger.Info()
		default:
			ev = z.logger.Debug()
		}
	}

	ev = ev.Str("run_id", event.RunID).Int("step", event.Step).Int("node", event.Node)
	for k, v := range event.Meta {
		ev = ev.Interface(k, v)
	}
	ev.Msg(event.Msg)
}
