package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iris_registry/cache"
	"iris_registry/config"
	"iris_registry/form"
	"iris_registry/services"
	"iris_registry/session"
	"iris_registry/utils"

	"github.com/umputun/go-flags"
	"go.uber.org/zap"
)

type options struct {
	Server    string        `short:"s" long:"server" description:"registry server url"`
	Cache     string        `short:"c" long:"cache" description:"local cache file"`
	NoPersist bool          `long:"no-persist" description:"keep cached entries in memory only"`
	Token     string        `long:"token" description:"bearer token for the registry api"`
	Secret    string        `long:"secret" description:"shared secret used to mint a bearer token"`
	Timeout   time.Duration `long:"timeout" description:"submission timeout"`
	PageSize  int           `long:"page-size" description:"entries per page"`
	List      bool          `short:"l" long:"list" description:"print cached entries and exit"`
	Page      int           `short:"p" long:"page" default:"1" description:"page to print with --list"`
	LogFile   string        `long:"log-file" description:"write logs to this file"`
	Dbg       bool          `long:"dbg" description:"debug logging"`
}

func main() {
	cfg := config.LoadClientConfig()
	opts := options{
		Server:   cfg.ServerURL,
		Cache:    cfg.CachePath,
		Token:    cfg.APIToken,
		Secret:   cfg.JWTSecret,
		Timeout:  cfg.Timeout,
		PageSize: cfg.PageSize,
	}
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}

	level := "warn"
	if opts.Dbg {
		level = "debug"
	}
	if err := utils.InitLogger(level, opts.LogFile); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.Logger.Sync() //nolint:errcheck

	if err := run(opts); err != nil {
		utils.Logger.Error("regform failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	var store cache.Storage = cache.NewMemoryStorage()
	if !opts.NoPersist {
		sqliteStore, err := cache.OpenSQLite(opts.Cache)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	token := opts.Token
	if token == "" && opts.Secret != "" {
		var err error
		if token, err = services.NewToken(opts.Secret, "regform", time.Hour); err != nil {
			return err
		}
	}

	gateway := services.NewGateway(opts.Server, token, opts.Timeout)
	sess := session.New(form.New(), cache.New(store), gateway, opts.PageSize)
	if err := sess.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if opts.List {
		sess.GoToPage(opts.Page)
		renderTable(os.Stdout, sess)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return newUI(sess, os.Stdin, os.Stdout).Run(ctx)
}
