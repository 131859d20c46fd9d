package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/ledgerwire/internal/testutil/ledgertest"
	"github.com/danmuck/ledgerwire/internal/testutil/testlog"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("ledgerctl %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestCommandsAgainstLedger(t *testing.T) {
	testlog.Start(t)

	srv := ledgertest.NewServer()
	path := filepath.Join(t.TempDir(), "ledgerctl.toml")
	content := "address = \"" + srv.Listen(t) + "\"\nrequest_timeout = \"5s\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out := run(t, "--config", path, "register")
	if !strings.Contains(out, "session=1") {
		t.Fatalf("register output: %q", out)
	}

	out = run(t, "--config", path, "create-accounts", "--ledger", "700", "--code", "10", "--flags", "8", "1", "2", "2")
	if !strings.Contains(out, "account id=1 result=ok") || !strings.Contains(out, "account id=2 result=exists") {
		t.Fatalf("create-accounts output: %q", out)
	}

	out = run(t, "--config", path, "create-transfers", "--id", "50", "--debit", "1", "--credit", "2", "--amount", "40", "--ledger", "700")
	if !strings.Contains(out, "transfer id=50 result=ok") {
		t.Fatalf("create-transfers output: %q", out)
	}

	out = run(t, "--config", path, "lookup-accounts", "1", "0x2")
	if !strings.Contains(out, "account id=1 ledger=700 code=10 debits_pending=0 debits_posted=40") {
		t.Fatalf("lookup-accounts output: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected two accounts: %q", out)
	}

	out = run(t, "--config", path, "lookup-transfers", "50")
	if !strings.Contains(out, "transfer id=50 debit=1 credit=2 amount=40") {
		t.Fatalf("lookup-transfers output: %q", out)
	}

	out = run(t, "--config", path, "transfers", "--account", "2")
	if !strings.Contains(out, "transfer id=50") {
		t.Fatalf("transfers output: %q", out)
	}

	out = run(t, "--config", path, "balances", "--account", "1")
	if !strings.Contains(out, "debits_posted=40") {
		t.Fatalf("balances output: %q", out)
	}
}

func TestConfigSubcommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerctl.toml")
	if out := run(t, "config", "init", path); !strings.Contains(out, "wrote") {
		t.Fatalf("init output: %q", out)
	}
	if out := run(t, "config", "validate", path); !strings.Contains(out, "valid") {
		t.Fatalf("validate output: %q", out)
	}
	if _, err := loadCLIConfig(path); err != nil {
		t.Fatalf("template does not load: %v", err)
	}
}
