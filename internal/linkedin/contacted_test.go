package linkedin

import (
	"path/filepath"
	"testing"
	"time"
)

func TestContactedListRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacted.json")

	list, err := ContactedFromFile(path)
	if err != nil {
		t.Fatalf("missing file must yield empty list: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("expected empty list")
	}

	list.AppendProfiles([]*Profile{
		{LinkedInURL: "https://www.linkedin.com/in/jane-doe", FullName: "Jane Doe"},
	}, time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC))

	if err := list.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := ContactedFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(loaded.Items))
	}
	if loaded.Items[0].URL != "https://www.linkedin.com/in/jane-doe" {
		t.Fatalf("unexpected url: %q", loaded.Items[0].URL)
	}

	urls := loaded.URLs()
	if len(urls) != 1 || urls[0] != loaded.Items[0].URL {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestContactedFromFileEmptyPath(t *testing.T) {
	list, err := ContactedFromFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("expected empty list")
	}
}
