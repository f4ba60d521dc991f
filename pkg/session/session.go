// Package session runs the interactive prompt loop: read a domain, fetch
// its links, save them, repeat until the user types the exit command.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/linkdump/internal/models"
	"github.com/amosWeiskopf/linkdump/pkg/crawler"
	"github.com/amosWeiskopf/linkdump/pkg/utils"
)

// Prompt is printed before every read
const Prompt = "Enter the URL of the domain to scrape (or type 'e' to quit): "

// State is a step of the prompt loop
type State int

const (
	StateAwaitingInput State = iota
	StateNormalizing
	StateFetching
	StatePersisting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateNormalizing:
		return "normalizing"
	case StateFetching:
		return "fetching"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Saver persists the URLs found for a domain
type Saver interface {
	Path(domain string) string
	SaveURLs(urls *models.LinkSet, filename string)
}

// Session drives one interactive run
type Session struct {
	in      *bufio.Reader
	out     io.Writer
	fetcher crawler.Fetcher
	saver   Saver
	logger  zerolog.Logger

	state  State
	input  string
	domain string
	urls   *models.LinkSet
}

// New creates a Session reading commands from in and printing prompts to out
func New(in io.Reader, out io.Writer, fetcher crawler.Fetcher, saver Saver, logger zerolog.Logger) *Session {
	return &Session{
		in:      bufio.NewReader(in),
		out:     out,
		fetcher: fetcher,
		saver:   saver,
		logger:  logger,
		state:   StateAwaitingInput,
	}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Run loops until the exit command is read or input ends. Fetch and save
// failures are logged and never stop the loop; only a failing input
// stream is returned as an error.
func (s *Session) Run(ctx context.Context) error {
	for {
		next, err := s.step(ctx)
		if err != nil {
			return err
		}

		if next != s.state {
			s.logger.Debug().Stringer("from", s.state).Stringer("to", next).Msg("state change")
		}
		s.state = next

		if s.state == StateDone {
			return nil
		}
	}
}

func (s *Session) step(ctx context.Context) (State, error) {
	switch s.state {
	case StateAwaitingInput:
		return s.awaitInput()

	case StateNormalizing:
		s.domain = utils.NormalizeDomain(s.input)
		return StateFetching, nil

	case StateFetching:
		result := s.fetcher.Crawl(ctx, s.domain)
		if result.Failed() {
			s.logger.Error().Err(result.Err).Str("domain", s.domain).Msg("Failed to fetch URLs")
		}
		if result.URLs.IsEmpty() {
			s.logger.Info().Msg("No URLs found to save.")
			return StateAwaitingInput, nil
		}
		s.urls = result.URLs
		return StatePersisting, nil

	case StatePersisting:
		s.saver.SaveURLs(s.urls, s.saver.Path(s.domain))
		s.urls = nil
		return StateAwaitingInput, nil

	case StateDone:
		return StateDone, nil
	}

	return StateDone, fmt.Errorf("unknown state %v", s.state)
}

func (s *Session) awaitInput() (State, error) {
	fmt.Fprint(s.out, Prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return StateDone, fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(s.out)
			s.logger.Info().Msg("End of input, exiting.")
			return StateDone, nil
		}
	}

	s.input = strings.TrimSpace(line)
	if utils.IsExitCommand(s.input) {
		s.logger.Info().Msg("Exiting the script.")
		return StateDone, nil
	}

	return StateNormalizing, nil
}
