package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tartampluch/contactbook/internal/config"
)

// Run prints the greeting and answers input lines until an exit command,
// the end of input, or cancellation of ctx.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	// The scanner blocks on in, so it runs apart from the loop to keep ctx responsive.
	// It stops at the next line once Run has returned.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			case <-done:
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	if _, err := fmt.Fprintln(out, s.msg(config.TKeyGreeting, nil)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}

	for {
		if _, err := fmt.Fprint(out, config.Prompt); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompAssistant)
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			if err := <-readErr; err != nil {
				return fmt.Errorf("%s: %w", config.ErrReadInput, err)
			}
			slog.Info(config.MsgInputClosed, config.LogKeyComponent, config.CompAssistant)
			return nil
		}

		reply := s.Execute(ctx, line)
		if _, err := fmt.Fprintln(out, reply.Text); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
		if reply.Exit {
			return nil
		}
	}
}
