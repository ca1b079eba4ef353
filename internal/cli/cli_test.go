package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/PriceSort/internal/config"
	"github.com/JonMunkholm/PriceSort/internal/core"
)

const prices = "分類,名前,回数,状態,買値,売値,備考,人工\n" +
	"杖,一時しのぎの杖,4,ふつう,800,280,,\n" +
	"草,薬草,-,呪い,100,35,,\n" +
	"草,薬草,-,祝福,100,35,,\n"

// testApp returns an app whose configuration points at dir.
func testApp(t *testing.T, dir string) *app {
	t.Helper()
	return &app{
		loadConfig: func() (*config.Config, error) {
			return &config.Config{
				Files: config.FilesConfig{
					Input:  filepath.Join(dir, "prices.csv"),
					Output: filepath.Join(dir, "sorted_prices.csv"),
				},
				Server: config.ServerConfig{
					Host:            "127.0.0.1",
					Port:            0,
					ShutdownTimeout: time.Second,
					RequestTimeout:  time.Second,
				},
				Logging: config.LoggingConfig{Level: "error", Format: "text"},
			}, nil
		},
	}
}

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := a.rootCmd("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootSortsAndPrintsNotice(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prices.csv"), []byte(prices), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, testApp(t, dir))
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	want := "並び替えが完了しました。'sorted_prices.csv' を確認してください。\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}

	got, err := os.ReadFile(filepath.Join(dir, "sorted_prices.csv"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	wantCSV := "分類,名前,回数,状態,買値,売値,備考,人工\n" +
		"草,薬草,-,祝福,100,35,,\n" +
		"草,薬草,-,呪い,100,35,,\n" +
		"杖,一時しのぎの杖,4,ふつう,800,280,,\n"
	if string(got) != wantCSV {
		t.Errorf("output =\n%s\nwant\n%s", got, wantCSV)
	}
}

func TestRootMissingInput(t *testing.T) {
	out, err := execute(t, testApp(t, t.TempDir()))
	if !errors.Is(err, core.ErrMissingInput) {
		t.Fatalf("execute() error = %v, want ErrMissingInput", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing on failure", out)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := execute(t, testApp(t, t.TempDir()), "extra.csv")
	if err == nil {
		t.Fatal("execute() error = nil, want error for positional args")
	}
}

func TestRootConfigError(t *testing.T) {
	a := &app{loadConfig: func() (*config.Config, error) {
		return nil, errors.New("config validation: bad")
	}}
	_, err := execute(t, a)
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Errorf("execute() error = %v, want config error", err)
	}
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prices.csv"), []byte(prices), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, testApp(t, dir), "lookup", "--price", "35", "--target", core.TargetSell)
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(out, "薬草") || !strings.Contains(out, "祝福") || !strings.Contains(out, "呪い") {
		t.Errorf("lookup output missing matches:\n%s", out)
	}
	if strings.Contains(out, "一時しのぎの杖") {
		t.Errorf("lookup output has non-matching row:\n%s", out)
	}
	if strings.Index(out, "祝福") > strings.Index(out, "呪い") {
		t.Errorf("lookup output not in sort order:\n%s", out)
	}
}

func TestLookup_UnsortableListStillSearchable(t *testing.T) {
	dir := t.TempDir()
	content := prices + "指輪,謎の指輪,-,ふつう,100,35,,\n"
	if err := os.WriteFile(filepath.Join(dir, "prices.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, testApp(t, dir), "lookup", "--price", "100", "--target", core.TargetBuy)
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if !strings.Contains(out, "謎の指輪") || !strings.Contains(out, "薬草") {
		t.Errorf("lookup output missing rows:\n%s", out)
	}

	// The batch sort stays strict on the same file.
	if _, err := execute(t, testApp(t, dir)); !errors.Is(err, core.ErrUnknownCategory) {
		t.Errorf("sort error = %v, want ErrUnknownCategory", err)
	}
}

func TestLookup_NoResults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prices.csv"), []byte(prices), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, testApp(t, dir), "lookup", "--price", "12345")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if out != "該当する道具が見つかりませんでした。\n" {
		t.Errorf("output = %q", out)
	}
}

func TestLookup_InvalidTarget(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prices.csv"), []byte(prices), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, testApp(t, dir), "lookup", "--target", "定価")
	if !errors.Is(err, core.ErrInvalidQuery) {
		t.Errorf("execute() error = %v, want ErrInvalidQuery", err)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "prices.csv"), []byte(prices), 0o644); err != nil {
		t.Fatal(err)
	}

	a := testApp(t, dir)
	if err := a.setup(); err != nil {
		t.Fatalf("setup() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve() did not stop after cancel")
	}
}

func TestServe_MissingInput(t *testing.T) {
	a := testApp(t, t.TempDir())
	if err := a.setup(); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if err := a.serve(context.Background()); !errors.Is(err, core.ErrMissingInput) {
		t.Errorf("serve() error = %v, want ErrMissingInput", err)
	}
}

func TestPrintItems(t *testing.T) {
	var buf bytes.Buffer
	items := []core.Item{{Category: "壺", Name: "保存の壺", Uses: "5", State: "祝福", Buy: "1,200", Sell: "420"}}
	if err := printItems(&buf, items); err != nil {
		t.Fatalf("printItems() error = %v", err)
	}
	for _, want := range []string{"分類", "保存の壺", "1,200", "420"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table missing %q:\n%s", want, buf.String())
		}
	}
}
