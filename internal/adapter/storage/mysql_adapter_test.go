package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/smartpos?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func TestMySQLPreference_Upsert(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema failed: %v", err)
	}

	// Cleanup old test rows
	db.ExecContext(ctx, `DELETE FROM preferences WHERE pref_key LIKE 'test-%'`)

	if err := adapter.Set(ctx, "test-settings", `{"theme":"green"}`); err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	if err := adapter.Set(ctx, "test-settings", `{"theme":"black"}`); err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	// Verify
	val, ok, err := adapter.Get(ctx, "test-settings")
	if err != nil || !ok {
		t.Fatalf("expected stored value, ok=%v err=%v", ok, err)
	}
	if val != `{"theme":"black"}` {
		t.Errorf("unexpected value %q", val)
	}

	// Each overwrite bumps the row version
	var version int
	if err := db.QueryRowContext(ctx, `SELECT version FROM preferences WHERE pref_key = ?`, "test-settings").Scan(&version); err != nil {
		t.Fatalf("version query failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}
}

func TestMySQLPreference_Missing(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema failed: %v", err)
	}

	_, ok, err := adapter.Get(ctx, "test-never-written")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestMySQLAsset_CacheLifecycle(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	db.ExecContext(ctx, `DELETE FROM cached_assets WHERE cache_name LIKE 'test-%'`)

	if err := adapter.PutAsset(ctx, "test-old", domain.Asset{Path: "/index.html", ContentType: "text/html", Body: []byte("old")}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := adapter.PutAsset(ctx, "test-new", domain.Asset{Path: "/index.html", ContentType: "text/html", Body: []byte("new")}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := adapter.GetAsset(ctx, "test-new", "/index.html")
	if err != nil || got == nil {
		t.Fatalf("expected hit, err=%v", err)
	}
	if string(got.Body) != "new" || got.ContentType != "text/html" {
		t.Errorf("unexpected asset %+v", got)
	}

	if _, err := adapter.DeleteOtherCaches(ctx, "test-new"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	old, err := adapter.GetAsset(ctx, "test-old", "/index.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if old != nil {
		t.Error("expected old cache removed")
	}
}
