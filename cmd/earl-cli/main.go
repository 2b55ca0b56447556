package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"chatbot-backend/cmd/earl-cli/commands"
	"chatbot-backend/internal/telemetry"
	"chatbot-backend/lib/serviceutil"
	otelsetup "chatbot-backend/lib/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	telemetry.InitSlog(false)

	// a .env file is optional, it usually holds YOUTUBE_API_KEY.
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		serviceutil.Fatal("failed to read .env", err)
	}

	ctx := serviceutil.SignalContext(context.Background())
	tel, err := otelsetup.SetupFromEnv(ctx, "earl-cli")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := tel.Shutdown(shutdownCtx); serr != nil {
		slog.Warn("failed to flush telemetry", "err", serr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
