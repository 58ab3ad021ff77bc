package command

import (
	"fmt"
	"foodbot/internal/core/domain"
	"foodbot/internal/core/port"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"
)

// Registry maps commands such as /order to their handlers. Aliases are registered as separate
// handlers. It is filled once at startup and only read afterwards.
type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	if _, ok := r.commands[handler.GetCommand()]; ok {
		log.Warn().Str("handler", handler.GetCommand()).Msg("replacing command handler in registry")
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

// Get returns the handler of command, or an error wrapping domain.ErrUnknownCommand.
func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	handler, ok := r.commands[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, command)
	}

	return handler, nil
}

// ListCommands returns the registered commands in alphabetical order.
func (r *Registry) ListCommands() []string {
	return slices.Sorted(maps.Keys(r.commands))
}
