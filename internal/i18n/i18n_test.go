package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalizeDefaults(t *testing.T) {
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := tr.Localize(MsgSaleAdded, nil); got != "Sale added!" {
		t.Fatalf("unexpected message %q", got)
	}
	got := tr.Localize(MsgInsufficientStock, map[string]any{"Available": 4})
	if got != "Insufficient stock! Only 4 bottles available." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := tr.Localize("NoSuchMessage", nil); got != "NoSuchMessage" {
		t.Fatalf("unknown ids must echo, got %q", got)
	}
}

func TestLoadDirOverridesLanguage(t *testing.T) {
	dir := t.TempDir()
	body := `{"SaleAdded": "Farokht shamil!"}`
	if err := os.WriteFile(filepath.Join(dir, "active.ur.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write locale: %v", err)
	}

	tr, err := New("ur")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tr.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if got := tr.Localize(MsgSaleAdded, nil); got != "Farokht shamil!" {
		t.Fatalf("expected override, got %q", got)
	}
	// Messages missing from the locale fall back to English.
	if got := tr.Localize(MsgSaleDeleted, nil); !strings.HasPrefix(got, "Sale deleted") {
		t.Fatalf("expected english fallback, got %q", got)
	}
}
