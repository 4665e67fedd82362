package gate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers from the terminal one line at a time.
type prompter struct {
	r *bufio.Reader
}

func newPrompter(r io.Reader) *prompter {
	return &prompter{r: bufio.NewReader(r)}
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next line without its terminator. The read runs in
// its own goroutine so cancelling ctx unblocks the caller; the pending read
// ends when the terminal is closed. A final line without a newline is
// returned as is; end of input is an error.
func (p *prompter) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.r.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.line != "" {
				return strings.TrimRight(res.line, "\r\n"), nil
			}
			return "", fmt.Errorf("%w: %w", ErrTerminal, res.err)
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
