// Command vocab runs the vocabulary pipeline on a Dutch text: extract
// candidate lemmas, generate definitions for the ones the user does not
// know yet, persist everything, and collect the words into a deck.
//
// The text is read from the file given with -input, or from stdin.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/openai"
	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres"
	deckrepo "github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/deck"
	definitionrepo "github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/definition"
	knownwordrepo "github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/knownword"
	userrepo "github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/user"
	wordrepo "github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/mydutch-backend/internal/adapter/tagger/spacy"
	"github.com/heartmarshall/mydutch-backend/internal/app"
	"github.com/heartmarshall/mydutch-backend/internal/config"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
	"github.com/heartmarshall/mydutch-backend/internal/nlp"
	accountsvc "github.com/heartmarshall/mydutch-backend/internal/service/account"
	vocabularysvc "github.com/heartmarshall/mydutch-backend/internal/service/vocabulary"
)

type options struct {
	input       string
	email       string
	password    string
	register    bool
	extractOnly bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "input", "", "path to a text file (default: stdin)")
	flag.StringVar(&opts.email, "user", "", "account email owning the run (required)")
	flag.StringVar(&opts.password, "password", "", "account password (required with -register)")
	flag.BoolVar(&opts.register, "register", false, "create the account if it does not exist")
	flag.BoolVar(&opts.extractOnly, "extract-only", false, "print lemma frequencies without enrichment")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger, opts); err != nil {
		logger.Error("vocab run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, opts options) error {
	if opts.email == "" {
		return errors.New("missing -user flag")
	}

	text, err := readText(opts.input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	defClient, err := openai.NewClient(logger, cfg.Provider)
	if err != nil {
		return err
	}

	tagger := spacy.NewClient(logger, cfg.Tagger)
	extractor := nlp.NewExtractor(logger, tagger, cfg.Vocabulary)

	users := userrepo.New(pool)
	accounts := accountsvc.NewService(logger, users)
	vocab := vocabularysvc.NewService(
		logger,
		extractor,
		defClient,
		wordrepo.New(pool),
		definitionrepo.New(pool),
		knownwordrepo.New(pool),
		deckrepo.New(pool),
		postgres.NewTxManager(pool),
		domain.Language(cfg.Tagger.Language),
		cfg.Vocabulary.DeckNamePrefix,
	)

	account, err := resolveAccount(ctx, accounts, opts)
	if err != nil {
		return err
	}

	if opts.extractOnly {
		frequencies, err := vocab.ProcessText(ctx, account.ID, text)
		if err != nil {
			return err
		}
		return printJSON(frequencies)
	}

	deck, results, err := vocab.ProcessTextWithAutoDeck(ctx, account.ID, text)
	if err != nil {
		return err
	}

	return printJSON(struct {
		Deck  *domain.Deck                `json:"deck"`
		Words []domain.WordWithDefinition `json:"words"`
	}{Deck: deck, Words: results})
}

// resolveAccount loads the account for -user, registering it first when
// -register is set.
func resolveAccount(ctx context.Context, accounts *accountsvc.Service, opts options) (*domain.User, error) {
	if opts.register {
		user, err := accounts.Register(ctx, opts.email, opts.password)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
	}

	if opts.password != "" {
		return accounts.Authenticate(ctx, opts.email, opts.password)
	}

	user, err := accounts.GetByEmail(ctx, opts.email)
	if err != nil {
		return nil, fmt.Errorf("no account for %q, run with -register: %w", opts.email, err)
	}
	return user, nil
}

func readText(input string) (string, error) {
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
