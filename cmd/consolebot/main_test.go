package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"consolebot/internal/config"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "consolebot.yaml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"config", "init", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote default configuration to "+path) {
		t.Fatalf("unexpected output: %s", out.String())
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.BotPrefix != "!" || loaded.Username() != config.DefaultUsername {
		t.Fatalf("unexpected config: %+v", loaded)
	}

	rootCmd.SetArgs([]string{"config", "init", path})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error when the file exists")
	}

	rootCmd.SetArgs([]string{"config", "init", "--force", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, "!")

	if !strings.Contains(buf.String(), "!help") {
		t.Fatalf("banner does not mention help: %s", buf.String())
	}
	if !strings.Contains(buf.String(), strings.Repeat("─", 60)) {
		t.Fatalf("banner has no rule: %s", buf.String())
	}
}

func TestRunConsoleRejectsBadUser(t *testing.T) {
	cfg = config.DefaultConfig()
	logger = zap.NewNop()
	asUser = "nobody"
	defer func() { asUser = "" }()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(&bytes.Buffer{})

	err := runConsole(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "starting user") {
		t.Fatalf("expected starting user error, got %v", err)
	}
}

func TestMain(m *testing.M) {
	for _, key := range []string{"CONSOLEBOT_ADMINS", "CONSOLEBOT_USERNAME", "CONSOLEBOT_DEMO_MODE", "CONSOLEBOT_PREFIX", "CONSOLEBOT_LOG_LEVEL"} {
		os.Unsetenv(key)
	}
	os.Exit(m.Run())
}
