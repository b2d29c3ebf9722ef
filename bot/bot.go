package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token string
}

// Client aggregates feature modules and routes inbound platform traffic to
// their handlers. It has exactly two states: before Start, registration is
// allowed and dispatch is inert; after Start, dispatch is active and
// registration is refused. The transition is one-way.
type Client struct {
	config    Config
	session   *discordgo.Session
	scheduler *Scheduler

	mu        sync.Mutex
	running   bool
	modules   []*Module
	commands  map[string]Command
	listeners map[string][]Listener
	taskNames map[string]struct{}

	ready chan struct{}
	once  sync.Once
}

// New creates a client with a configured but unopened session
func New(config Config) (*Client, error) {
	session, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildBans |
		discordgo.IntentsGuildMessages

	c := &Client{
		config:    config,
		session:   session,
		commands:  make(map[string]Command),
		listeners: make(map[string][]Listener),
		taskNames: make(map[string]struct{}),
		ready:     make(chan struct{}),
	}
	c.scheduler = newScheduler(c.waitUntilReady)

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.once.Do(func() { close(c.ready) })
	})
	session.AddHandler(c.handleInteraction)
	session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
		c.Dispatch(EventMemberRemove, e)
	})
	session.AddHandler(func(s *discordgo.Session, e *discordgo.GuildBanAdd) {
		c.Dispatch(EventMemberBan, e)
	})

	return c, nil
}

// Register adds a module to the client. Refused once the client is running.
func (c *Client) Register(module *Module) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("cannot register module %q: client already started", module.Name)
	}
	for _, m := range c.modules {
		if m.Name == module.Name {
			return fmt.Errorf("module %q already registered", module.Name)
		}
	}
	for _, cmd := range module.Commands {
		if _, ok := c.commands[cmd.Definition.Name]; ok {
			return fmt.Errorf("module %q: command %q already registered", module.Name, cmd.Definition.Name)
		}
	}
	for _, task := range module.Tasks {
		if _, ok := c.taskNames[task.Name]; ok {
			return fmt.Errorf("module %q: task %q already registered", module.Name, task.Name)
		}
	}

	c.modules = append(c.modules, module)
	for _, cmd := range module.Commands {
		c.commands[cmd.Definition.Name] = cmd
	}
	for _, l := range module.Listeners {
		c.listeners[l.Event] = append(c.listeners[l.Event], l)
	}
	for _, task := range module.Tasks {
		c.taskNames[task.Name] = struct{}{}
	}

	log.Infof("Registered module %s (%d commands, %d listeners, %d tasks)",
		module.Name, len(module.Commands), len(module.Listeners), len(module.Tasks))
	return nil
}

// Start opens the gateway connection, registers slash commands with the
// platform, and starts every module task. Registration is closed from here on.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("client already started")
	}
	c.running = true
	modules := c.modules
	c.mu.Unlock()

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := c.registerCommands(); err != nil {
		c.session.Close()
		return fmt.Errorf("error registering commands: %w", err)
	}

	for _, module := range modules {
		for _, task := range module.Tasks {
			c.scheduler.Start(ctx, task)
		}
	}

	log.Info("Bot started")
	return nil
}

// Close stops the scheduler and the gateway session
func (c *Client) Close() error {
	c.scheduler.Stop()
	return c.session.Close()
}

// Session returns the underlying Discord session
func (c *Client) Session() *discordgo.Session {
	return c.session
}

// Dispatch invokes every listener registered for the event, sequentially,
// in registration order. Each invocation is independently fault-isolated:
// an error or panic is logged and the remaining listeners still run.
func (c *Client) Dispatch(event string, evt any) {
	c.mu.Lock()
	matched := c.listeners[event]
	c.mu.Unlock()

	ctx := context.Background()
	for _, l := range matched {
		c.invokeListener(ctx, event, l, evt)
	}
}

func (c *Client) invokeListener(ctx context.Context, event string, l Listener, evt any) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Listener for %s panicked: %v", event, r)
		}
	}()
	if err := l.Handler(ctx, evt); err != nil {
		log.Errorf("Listener for %s failed: %v", event, err)
	}
}

// handleInteraction routes slash commands to the owning module's handler.
// Unmatched names are not an error here; the platform gateway owns those.
func (c *Client) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	c.mu.Lock()
	cmd, ok := c.commands[i.ApplicationCommandData().Name]
	c.mu.Unlock()
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Command %s panicked: %v", i.ApplicationCommandData().Name, r)
		}
	}()
	cmd.Handler(s, i)
}

// registerCommands registers all module slash commands with Discord
func (c *Client) registerCommands() error {
	c.mu.Lock()
	definitions := make([]*discordgo.ApplicationCommand, 0, len(c.commands))
	for _, cmd := range c.commands {
		definitions = append(definitions, cmd.Definition)
	}
	c.mu.Unlock()

	_, err := c.session.ApplicationCommandBulkOverwrite(c.session.State.User.ID, "", definitions)
	if err != nil {
		return fmt.Errorf("failed to overwrite application commands: %w", err)
	}
	log.Infof("Registered %d slash commands", len(definitions))
	return nil
}

// waitUntilReady blocks until the gateway session reported ready
func (c *Client) waitUntilReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
