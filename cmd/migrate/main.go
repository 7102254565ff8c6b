// Package main applies the schema migrations and exits. With -hash it instead
// reads a password from stdin and prints the bcrypt value for PASS_<CODE>.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brt-intranet/backend/config"
	"github.com/brt-intranet/backend/pkg/database"
	"github.com/brt-intranet/backend/pkg/utils"
)

func main() {
	hash := flag.Bool("hash", false, "hash a password read from stdin and exit")
	flag.Parse()

	if *hash {
		if err := writeHash(os.Stdin, os.Stdout); err != nil {
			newLogger().Fatal("hash password", zap.Error(err))
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		newLogger().Fatal("load config", zap.Error(err))
	}
	logger := newLogger()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), 1, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	logger.Info("migrations applied")
}

// writeHash hashes the first line of r and writes the digest to w.
func writeHash(r io.Reader, w io.Writer) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("empty password")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hashed)
	return err
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
