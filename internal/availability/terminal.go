package availability

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// TerminalModal renders dialogs as line prompts. An empty answer or EOF at a
// date prompt dismisses the dialog.
type TerminalModal struct {
	in      *bufio.Scanner
	out     io.Writer
	BaseURL string
}

func NewTerminalModal(in io.Reader, out io.Writer, baseURL string) *TerminalModal {
	return &TerminalModal{
		in:      bufio.NewScanner(in),
		out:     out,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (m *TerminalModal) MultiInput(ctx context.Context, opts MultiInputOptions) ([]string, bool, error) {
	if opts.WillOpen != nil {
		if err := opts.WillOpen(); err != nil {
			return nil, false, err
		}
	}
	fmt.Fprintf(m.out, "%s\n", opts.Title)
	if opts.DidOpen != nil {
		if err := opts.DidOpen(); err != nil {
			return nil, false, err
		}
	}

	for _, field := range opts.Form.Fields() {
		ok, err := m.ask(ctx, opts.Form, field)
		if err != nil || !ok {
			return nil, false, err
		}
	}

	if opts.PreConfirm == nil {
		in, out := opts.Form.Values()
		return []string{in, out}, true, nil
	}
	values, err := opts.PreConfirm()
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (m *TerminalModal) ask(ctx context.Context, form *DateForm, field Field) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(m.out, "%s (%s): ", field.Placeholder, DateLayoutHint)
		if !m.in.Scan() {
			return false, m.in.Err()
		}
		value := strings.TrimSpace(m.in.Text())
		if value == "" {
			return false, nil
		}
		if err := form.Set(field.Name, value); err != nil {
			fmt.Fprintf(m.out, "  %v\n", err)
			continue
		}
		return true, nil
	}
}

func (m *TerminalModal) Success(ctx context.Context, n Notice) error {
	fmt.Fprintf(m.out, "[%s] %s\n", n.Icon, n.Message)
	if n.Link != nil {
		fmt.Fprintf(m.out, "%s: %s%s\n", n.Link.Label, m.BaseURL, n.Link.Href)
	}
	return nil
}

func (m *TerminalModal) Error(ctx context.Context, n Notice) error {
	fmt.Fprintf(m.out, "[%s] %s\n", n.Icon, n.Message)
	return nil
}

// DateLayoutHint is DateLayout spelled for humans.
const DateLayoutHint = "MM/DD/YYYY"
