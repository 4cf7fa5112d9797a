package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter abstracts user interaction so batch logic can run against
// scripted answers in tests instead of a live terminal.
type Prompter interface {
	// Input asks a free-form question and returns the trimmed answer.
	Input(question string) (string, error)

	// Confirm asks a yes/no question. Only an explicit "y"/"yes" answer
	// returns true; empty input means no.
	Confirm(question string) (bool, error)

	// Select displays a numbered menu and returns the chosen index.
	// Entering "q" aborts with util.ErrUserDeclined semantics via the
	// returned error.
	Select(header string, options []string) (int, error)

	// Password reads a secret without echoing when attached to a terminal.
	Password(question string) (string, error)
}

// ErrQuit is returned by Select when the user enters "q".
var ErrQuit = fmt.Errorf("quit")

// ConsolePrompter reads answers from an io.Reader (normally stdin) and
// writes questions to an io.Writer (normally stdout).
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsolePrompter creates a prompter over stdin/stdout.
func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewPrompterFrom creates a prompter over arbitrary streams.
func NewPrompterFrom(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) Input(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *ConsolePrompter) Confirm(question string) (bool, error) {
	answer, err := p.Input(question + " (y/N)? ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *ConsolePrompter) Select(header string, options []string) (int, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, Center("", 80, '-'))
	for {
		if header != "" {
			fmt.Fprintln(p.out, header)
		}
		for i, entry := range options {
			fmt.Fprintf(p.out, "%d) %s\n", i, entry)
		}
		answer, err := p.Input(fmt.Sprintf("Please select an option (0-%d, q to quit): ", len(options)-1))
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(answer, "q") {
			return 0, ErrQuit
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p.out, Red("Please enter a number"))
			continue
		}
		if n < 0 || n >= len(options) {
			fmt.Fprintln(p.out, Red(fmt.Sprintf("Please enter a number between 0 and %d.", len(options)-1)))
			continue
		}
		return n, nil
	}
}

func (p *ConsolePrompter) Password(question string) (string, error) {
	fmt.Fprint(p.out, question)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
	// Piped input (tests, CI): fall back to a plain line read.
	return p.Input("")
}
