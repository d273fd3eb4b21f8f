package bot

import "github.com/hashicorp/go-multierror"

// Bot is the top-level orchestrator a game driver talks to: the async
// search Interface plus whatever auxiliary resources (replay loggers, file
// handles) were registered alongside it.
type Bot struct {
	Iface   *Interface
	closers []func() error
}

// New wraps iface as a Bot ready to have auxiliary closers registered.
func New(iface *Interface) *Bot {
	return &Bot{Iface: iface}
}

// RegisterCloser adds a resource that must be closed alongside the bot,
// such as a battle.ReplayLogger backing this bot's diagnostic trace.
func (b *Bot) RegisterCloser(f func() error) {
	b.closers = append(b.closers, f)
}

// Close stops the search goroutine and closes every registered resource,
// aggregating any failures instead of stopping at the first one.
func (b *Bot) Close() error {
	b.Iface.Close()

	var errs error
	for _, closer := range b.closers {
		if err := closer(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}
