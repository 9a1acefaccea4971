package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandRequiresTwoArgs(t *testing.T) {
	for _, args := range [][]string{{}, {"in.png"}, {"a", "b", "c"}} {
		cmd := NewRootCommand()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); err == nil {
			t.Errorf("args %v: expected an error", args)
		}
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "no-config"))
	infile := filepath.Join(dir, "hi-mom.png")
	outfile := filepath.Join(dir, "hi-mom.scad")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"-g", "Hi Mom", "-v", infile, outfile})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(infile); err != nil {
		t.Errorf("generated bitmap missing: %v", err)
	}
	script, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatalf("read outfile: %v", err)
	}
	if len(script) == 0 {
		t.Error("geometry script is empty")
	}

	// -v echoes the script to stdout.
	if !strings.Contains(stdout.String(), "qr_code_size = ") {
		t.Errorf("stdout missing script echo:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), outfile) {
		t.Errorf("stderr missing summary:\n%s", stderr.String())
	}
}

func TestRenderFlagAppendsInvocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "no-config"))
	infile := filepath.Join(dir, "code.png")
	outfile := filepath.Join(dir, "code.scad")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--generate", "Hi Mom", "--render", infile, outfile})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	script, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(script), "qr_code();") {
		t.Error("script does not end with a qr_code() invocation")
	}
}

func TestBuildOptionsPrecedence(t *testing.T) {
	size := 2.5
	padding := 0.2
	border := 0
	var cfg Config
	cfg.Block.Size = &size
	cfg.Block.Padding = &padding
	cfg.Generate.Border = &border

	cmd := NewRootCommand()
	// Simulate an explicit flag; block-padding and border stay at
	// their defaults so the config values apply.
	if err := cmd.Flags().Set("block-size", "4"); err != nil {
		t.Fatal(err)
	}

	opts := convertOpts{
		blockSize:    4,
		blockPadding: 0.01,
		border:       4,
	}
	popts := buildOptions(cmd, cfg, []string{"in.png", "out.scad"}, &opts)

	if popts.BlockSize != 4 {
		t.Errorf("BlockSize = %g, flag should win over config", popts.BlockSize)
	}
	if popts.BlockPadding != 0.2 {
		t.Errorf("BlockPadding = %g, config should win over default", popts.BlockPadding)
	}
	if popts.QR.Border != 0 {
		t.Errorf("QR.Border = %d, explicit config zero should apply", popts.QR.Border)
	}
	if popts.Infile != "in.png" || popts.Outfile != "out.scad" {
		t.Errorf("paths = %q, %q", popts.Infile, popts.Outfile)
	}
}
