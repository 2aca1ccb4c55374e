package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zeusync/rocketbot/internal/core/agent"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

var registry = map[string]func() agent.Strategy{
	"solo":     func() agent.Strategy { return NewSolo() },
	"practice": func() agent.Strategy { return NewPractice() },
}

// New returns the strategy registered under name.
func New(name string) (agent.Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, Names())
	}
	return ctor(), nil
}

// Names lists the registered strategies in order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
