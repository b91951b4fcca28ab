// Command goldchat is a terminal client for the gold market assistant.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/Vovarama1992/gold-assistant/internal/client"
)

func main() {
	url := flag.String("url", envOr("GOLDCHAT_URL", "http://localhost:8080"), "assistant server base URL")
	raw := flag.Bool("raw", false, "print responses without markdown rendering")
	flag.Parse()

	if err := run(*url, *raw); err != nil {
		fmt.Fprintln(os.Stderr, "goldchat:", err)
		os.Exit(1)
	}
}

func run(url string, raw bool) error {
	render := func(s string) string { return s }
	if !raw {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		render = func(s string) string {
			out, err := r.Render(s)
			if err != nil {
				return s
			}
			return out
		}
	}

	conv := client.NewConversation(client.New(url))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	welcome, err := conv.Start(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	fmt.Print(render(welcome))

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("you> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		text := strings.TrimSpace(input)
		if text == "" {
			continue
		}
		line.AppendHistory(input)
		if lower := strings.ToLower(text); lower == "bye" || lower == "exit" {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		reply, err := conv.Ask(ctx, input)
		cancel()
		if err != nil {
			fmt.Println("⚠️ Sorry, I encountered an error. Please try again.")
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Print(render(reply))
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
