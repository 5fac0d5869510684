package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/adaptlearn/internal/e2etest"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/logging"
)

// testTracking logs in a throwaway user and verifies the tracking state comes
// back with the achievement catalogue.
func testTracking(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	email := fmt.Sprintf("smoketest+%d@example.com", time.Now().UnixNano())
	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}
	if err := client.Login(ctx, email); err != nil {
		return errors.Wrap(err, "login user")
	}
	snapshot, err := client.State(ctx)
	if err != nil {
		return errors.Wrap(err, "fetch state")
	}
	if len(snapshot.Achievements) == 0 {
		return errors.New("state has no achievements")
	}
	if err = client.Logout(ctx); err != nil {
		return errors.Wrap(err, "logout user")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = testTracking(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing tracking", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
