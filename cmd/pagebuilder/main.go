package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-pagebuilder"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

var moduleBuilder = pagebuilder.New

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("pagebuilder: %v", err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	command := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	switch command {
	case "serve":
		return serve(ctx, args)
	case "render":
		return render(ctx, args, stdin, stdout)
	default:
		return fmt.Errorf("unknown command %q (expected serve or render)", command)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (pagebuilder.Config, error) {
	configPath := fs.String("config", os.Getenv(runtimeconfig.EnvPrefix+"_CONFIG"), "Path to a config file (toml, yaml or json)")
	if err := fs.Parse(args); err != nil {
		return pagebuilder.Config{}, err
	}
	return runtimeconfig.Load(*configPath)
}

func serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "Listen address, overrides http.addr")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.HTTP.Addr = trimmed
	}
	if !cfg.Features.HTTP {
		return errors.New("http adapter is disabled (http.enabled=false)")
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("mount routes: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("pagebuilder: listening on %s%s", cfg.HTTP.Addr, cfg.HTTP.BasePath)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return module.Close(shutdownCtx)
}

func render(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	filePath := fs.String("file", "", "Markdown file to render (reads stdin when empty)")
	withTitle := fs.Bool("title", false, "Prepend the front matter title as a heading")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	var source []byte
	if *filePath != "" {
		source, err = os.ReadFile(*filePath)
	} else {
		source, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}
	meta, body, err := markdown.SplitFrontMatter(source)
	if err != nil {
		return err
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if *withTitle && meta.Title != "" {
		body = append([]byte("# "+meta.Title+"\n\n"), body...)
	}
	_, err = fmt.Fprintln(stdout, module.Markdown().Render(ctx, string(body)))
	return err
}
