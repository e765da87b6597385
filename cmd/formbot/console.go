package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/spf13/cobra"
	"github.com/tbxark/docform/session"
)

func newConsoleCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Fill the form interactively on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return runConsole(cmd.Context(), a.flow, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConsole(ctx context.Context, flow *session.Flow, in io.Reader, out io.Writer) error {
	formAgent := session.NewAgent(
		"InvoiceFiller",
		"Collects invoice fields and renders the Word template",
		flow,
	)
	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent: formAgent,
	})
	chatCtx := session.WithStateKey(ctx, "console")
	reader := bufio.NewReader(in)

	_, _ = fmt.Fprintln(out, flow.Messages().Greeting)
	for {
		_, _ = fmt.Fprint(out, "> ")
		input, rErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			if err := consoleTurn(chatCtx, runner, input, out); err != nil {
				return err
			}
		}
		if rErr != nil {
			_, _ = fmt.Fprintln(out)
			return nil
		}
	}
}

func consoleTurn(ctx context.Context, runner *adk.Runner, input string, out io.Writer) error {
	iter := runner.Run(ctx, []*schema.Message{schema.UserMessage(input)})
	for {
		event, ok := iter.Next()
		if !ok {
			return nil
		}
		if event.Err != nil {
			return event.Err
		}
		msg, err := event.Output.MessageOutput.GetMessage()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, msg.Content)
		if summary, ok := msg.Extra[session.ExtraSummary].(string); ok {
			_, _ = fmt.Fprintln(out, summary)
		}
		if path, ok := msg.Extra[session.ExtraDocument].(string); ok {
			_, _ = fmt.Fprintf(out, "saved %s\n", path)
		}
	}
}
