// Command token prints a bearer token for an existing user.
//
//	token -email organizer@eventmanager.com -ttl 2h
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"eventmanager/config"
	"eventmanager/internal/adapters/auth"
	"eventmanager/internal/domain"
	"eventmanager/internal/repository"
)

type options struct {
	email string
	ttl   time.Duration
}

func parseFlags(fs *flag.FlagSet, args []string, defaultTTL time.Duration) (options, error) {
	var opts options
	fs.StringVar(&opts.email, "email", "", "email of the user to mint a token for")
	fs.DurationVar(&opts.ttl, "ttl", defaultTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.email == "" {
		return options{}, errors.New("-email is required")
	}
	if opts.ttl <= 0 {
		return options{}, errors.New("-ttl must be positive")
	}
	return opts, nil
}

func run(ctx context.Context, users domain.UserRepository, issuer domain.TokenIssuer, opts options, out io.Writer) error {
	user, err := users.GetByEmail(ctx, opts.email)
	if err != nil {
		return fmt.Errorf("look up %s: %w", opts.email, err)
	}
	token, err := issuer.Issue(user.ID, user.Email, opts.ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	opts, err := parseFlags(flag.CommandLine, os.Args[1:], cfg.TokenExpiry)
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx := context.Background()
	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	err = run(ctx, repos.Users, auth.NewJWT(cfg.JWTSecret), opts, os.Stdout)
	_ = repos.Close()
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}
}
