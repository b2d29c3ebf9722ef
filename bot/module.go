package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Event names the dispatcher routes. Listeners subscribe by name; the
// client bridges the matching gateway events into the listener table.
const (
	EventMemberRemove = "guildMemberRemove"
	EventMemberBan    = "guildBanAdd"
)

// Command pairs a slash command definition with its handler
type Command struct {
	Definition *discordgo.ApplicationCommand
	Handler    func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// Listener reacts to one named platform event. Errors are logged and
// swallowed at the dispatch boundary; one listener failing never stops the
// remaining listeners for the same event.
type Listener struct {
	Event   string
	Handler func(ctx context.Context, evt any) error
}

// Task is a periodically-fired unit of work. The scheduler provides no
// deduplication: a task that must act once per calendar minute has to track
// its own last-acted minute and skip otherwise.
type Task struct {
	Name     string
	Interval time.Duration

	// RequiresReady suspends the first firing until the transport session
	// is connected. The wait happens once per process, not per firing.
	RequiresReady bool

	Run func(ctx context.Context) error
}

// Module is a self-contained feature bundle of commands, event listeners
// and periodic tasks. Modules are plain data: the client is polymorphic
// over these three lists, not over a type hierarchy. A module is owned by
// the client once registered and must not be mutated afterwards.
type Module struct {
	Name      string
	Commands  []Command
	Listeners []Listener
	Tasks     []Task
}
