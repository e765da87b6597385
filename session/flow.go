package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tbxark/docform/artifact"
	"github.com/tbxark/docform/command"
	"github.com/tbxark/docform/form"
	"github.com/tbxark/docform/logger"
	"github.com/tbxark/docform/render"
	"github.com/tbxark/docform/types"
)

type Config struct {
	Machine   *form.Machine
	Parser    command.Parser
	States    StateReadWriter
	Engine    *render.Engine
	Namer     artifact.Namer
	OutputDir string
	Messages  Messages
	Logger    *logger.Logger
}

// Flow routes one user message through command recognition, the form machine and, on
// completion, the renderer. Calls for the same state key must not overlap.
type Flow struct {
	machine   *form.Machine
	parser    command.Parser
	states    StateReadWriter
	engine    *render.Engine
	namer     artifact.Namer
	outputDir string
	messages  Messages
	log       *logger.Logger
}

func NewFlow(cfg Config) (*Flow, error) {
	if cfg.Machine == nil {
		return nil, errors.New("form machine is required")
	}
	if cfg.States == nil {
		return nil, errors.New("state store is required")
	}
	if cfg.Engine == nil {
		return nil, errors.New("render engine is required")
	}
	if cfg.Parser == nil {
		cfg.Parser = command.NewLocalCommandParser()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Namer.PrimaryKey == "" {
		cfg.Namer.PrimaryKey = cfg.Machine.Schema().PrimaryKey()
	}
	return &Flow{
		machine:   cfg.Machine,
		parser:    cfg.Parser,
		states:    cfg.States,
		engine:    cfg.Engine,
		namer:     cfg.Namer,
		outputDir: cfg.OutputDir,
		messages:  cfg.Messages.WithDefaults(),
		log:       cfg.Logger,
	}, nil
}

func (f *Flow) Messages() Messages {
	return f.messages
}

func (f *Flow) Invoke(ctx context.Context, input *Request) (*Response, error) {
	if input == nil {
		return nil, errors.New("nil request")
	}
	log := f.log.With("session", routingKey(ctx))

	cmd, err := f.parser.ParseCommand(ctx, input.UserInput)
	if err != nil {
		return f.handleError(ctx, log, fmt.Errorf("parse command: %w", err)), nil
	}
	log.Debug("parsed command", "command", cmd)

	switch cmd {
	case command.Greet:
		return f.greet(ctx, log), nil
	case command.Start:
		return f.start(ctx, log), nil
	case command.Cancel:
		return f.cancel(ctx, log), nil
	default:
		return f.submit(ctx, log, input.UserInput), nil
	}
}

func (f *Flow) greet(ctx context.Context, log *logger.Logger) *Response {
	if err := f.states.Remove(ctx); err != nil {
		return f.handleError(ctx, log, fmt.Errorf("remove session: %w", err))
	}
	return &Response{
		Replies: []Reply{{Text: f.messages.Greeting, Keyboard: f.messages.MainKeyboard()}},
	}
}

func (f *Flow) start(ctx context.Context, log *logger.Logger) *Response {
	s, res := f.machine.Start()
	if err := f.states.Write(ctx, s); err != nil {
		return f.handleError(ctx, log, fmt.Errorf("write session: %w", err))
	}
	log.Debug("session started", "field", res.Field.Key)
	return &Response{
		Replies:   []Reply{{Text: res.Message}},
		Outcome:   res.Outcome,
		Lifecycle: s.Lifecycle,
	}
}

func (f *Flow) cancel(ctx context.Context, log *logger.Logger) *Response {
	s, err := f.states.Read(ctx)
	if err != nil {
		log.Warn("read session on cancel", "error", err)
	}
	if s != nil {
		res := f.machine.Cancel(s)
		log.Debug("session cancelled", "outcome", res.Outcome)
	}
	if err := f.states.Remove(ctx); err != nil {
		return f.handleError(ctx, log, fmt.Errorf("remove session: %w", err))
	}
	return &Response{
		Replies:   []Reply{{Text: f.messages.Cancelled, Keyboard: f.messages.MainKeyboard()}},
		Outcome:   form.OutcomeCancelled,
		Lifecycle: types.LifecycleCancelled,
	}
}

func (f *Flow) submit(ctx context.Context, log *logger.Logger, raw string) *Response {
	s, err := f.states.Read(ctx)
	if err != nil {
		return f.handleError(ctx, log, fmt.Errorf("read session: %w", err))
	}
	if !s.Active() {
		log.Debug("message outside a session", "error", types.ErrNoActiveSession)
		return &Response{
			Replies: []Reply{{Text: f.messages.NoSession, Keyboard: f.messages.MainKeyboard()}},
			Outcome: form.OutcomeNoActiveSession,
		}
	}

	res, err := f.machine.Submit(s, raw)
	if err != nil {
		return f.handleError(ctx, log, err)
	}
	switch res.Outcome {
	case form.OutcomeRejected:
		log.Debug("answer rejected", "field", res.Field.Key, "cursor", s.Cursor)
		return &Response{
			Replies:   []Reply{{Text: res.Message}},
			Outcome:   res.Outcome,
			Lifecycle: s.Lifecycle,
		}
	case form.OutcomeNext:
		if err := f.states.Write(ctx, s); err != nil {
			return f.handleError(ctx, log, fmt.Errorf("write session: %w", err))
		}
		log.Debug("answer accepted", "cursor", s.Cursor, "next", res.Field.Key)
		return &Response{
			Replies:   []Reply{{Text: res.Message}},
			Outcome:   res.Outcome,
			Lifecycle: s.Lifecycle,
		}
	case form.OutcomeCancelled:
		return f.cancel(ctx, log)
	case form.OutcomeCompleted:
		if err := f.states.Remove(ctx); err != nil {
			log.Warn("remove completed session", "error", err)
		}
		return f.complete(ctx, log, res.Collected)
	default:
		return &Response{
			Replies: []Reply{{Text: f.messages.NoSession, Keyboard: f.messages.MainKeyboard()}},
			Outcome: res.Outcome,
		}
	}
}

func (f *Flow) complete(ctx context.Context, log *logger.Logger, collected map[string]string) *Response {
	fields := f.machine.Schema().Fields()
	log.Info("form completed", "values", len(collected))
	log.Debug("collected values\n" + types.FormatSummary(fields, collected))

	outPath := filepath.Join(f.outputDir, f.namer.FileName())
	placeholders := render.NewPlaceholderMap(f.machine.Schema().Keys(), collected)
	stats, err := f.engine.Render(ctx, placeholders, outPath)
	if err != nil {
		log.Error("render document", "error", err, "path", outPath)
		return &Response{
			Replies:   []Reply{{Text: f.messages.RenderFailed, Keyboard: f.messages.MainKeyboard()}},
			Outcome:   form.OutcomeCompleted,
			Lifecycle: types.LifecycleCompleted,
			Metadata:  map[string]string{"error": err.Error()},
		}
	}

	display := f.namer.DisplayName(collected)
	log.Info("document rendered", "path", outPath, "display_name", display,
		"paragraphs", stats.Paragraphs, "changed", stats.Changed)
	return &Response{
		Replies: []Reply{
			{Document: &Artifact{Path: outPath, DisplayName: display}},
			{Text: fmt.Sprintf(f.messages.Done, display), Keyboard: f.messages.MainKeyboard()},
		},
		Outcome:   form.OutcomeCompleted,
		Lifecycle: types.LifecycleCompleted,
		Metadata:  map[string]string{"summary": types.FormatSummary(fields, collected)},
	}
}

// handleError ends the conversation's session and answers with a generic message.
func (f *Flow) handleError(ctx context.Context, log *logger.Logger, err error) *Response {
	log.Error("session failed", "error", err)
	if rmErr := f.states.Remove(ctx); rmErr != nil {
		log.Warn("remove failed session", "error", rmErr)
	}
	return &Response{
		Replies:  []Reply{{Text: f.messages.Failure, Keyboard: f.messages.MainKeyboard()}},
		Metadata: map[string]string{"error": err.Error()},
	}
}
