package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/config"
	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/logging"
	"boardshelf/backend/internal/store"
)

func setupCatalogue(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalogue.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", dbPath)
	t.Setenv("CATEGORY_OPTIONS", "Strategy,Cooperative,Family")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	db, err := database.Setup(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	st := store.New(db)
	rating := 8.0
	for _, rec := range []catalog.Record{
		{ID: "13", Name: "Catan", MinPlayers: 3, MaxPlayers: 4, Categories: []string{"Strategy"}, Owners: []string{"anna"}},
		{ID: "30549", Name: "Pandemic", MinPlayers: 2, MaxPlayers: 4, Rating: &rating, Categories: []string{"Strategy", "Cooperative"}, Owners: []string{"ben"}},
		{Name: "Azul", MinPlayers: 2, MaxPlayers: 4, Categories: []string{"Family"}, Owners: []string{"anna"}},
	} {
		if _, err := st.CreateGame(context.Background(), rec, nil); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestGamesList(t *testing.T) {
	dir := setupCatalogue(t)

	out := runCLI(t, "--env-dir", dir, "games", "list", "--category", "Strategy,Cooperative", "--and")
	if !strings.Contains(out, "Pandemic") || strings.Contains(out, "Catan") {
		t.Errorf("AND listing:\n%s", out)
	}
	if !strings.Contains(out, "1 of 3 games") {
		t.Errorf("missing summary:\n%s", out)
	}

	out = runCLI(t, "--env-dir", dir, "games", "list", "--owner", "anna", "--players", "2")
	if !strings.Contains(out, "Azul") || strings.Contains(out, "Catan") || strings.Contains(out, "Pandemic") {
		t.Errorf("owner listing:\n%s", out)
	}

	out = runCLI(t, "--env-dir", dir, "games", "list", "--rating", "9")
	if !strings.Contains(out, "No games match") {
		t.Errorf("empty listing:\n%s", out)
	}
}

func TestGamesDupes(t *testing.T) {
	dir := setupCatalogue(t)

	out := runCLI(t, "--env-dir", dir, "games", "dupes", "--name", "CATAN")
	if !strings.Contains(out, "Catan") || !strings.Contains(out, "1.000") {
		t.Errorf("name match:\n%s", out)
	}

	out = runCLI(t, "--env-dir", dir, "games", "dupes", "--id", "30549", "--name", "Catan")
	if !strings.Contains(out, "Pandemic") || strings.Contains(out, "Catan") {
		t.Errorf("id match:\n%s", out)
	}

	out = runCLI(t, "--env-dir", dir, "games", "dupes", "--name", "Ticket to Ride")
	if !strings.Contains(out, "No duplicates found") {
		t.Errorf("no match:\n%s", out)
	}
}

func TestGamesDupesNeedsNameOrID(t *testing.T) {
	dir := setupCatalogue(t)

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-dir", dir, "games", "dupes"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error without --name or --id")
	}
}
