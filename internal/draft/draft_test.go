package draft

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/ratecraft/internal/catalog"
	"github.com/mmynk/ratecraft/internal/models"
)

func pngReader(t *testing.T) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return &buf
}

func wait(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("image decode did not complete")
		return nil
	}
}

func TestBeginCreate(t *testing.T) {
	b := New()
	b.SetField(FieldName, "x")
	b.BeginCreate()

	d := b.Snapshot()
	if d.Name != "" || d.Rate != "" || d.Unit != models.DefaultUnit {
		t.Errorf("unexpected draft after BeginCreate: %+v", d)
	}
	if _, editing := b.Editing(); editing {
		t.Error("expected no edit target")
	}
}

func TestBeginEdit_CopiesItem(t *testing.T) {
	b := New()
	item := models.Item{ID: "a", Name: "Recording", Unit: "per hour", Rate: 1250.5, Image: "data:image/png;base64,AA=="}
	b.BeginEdit(item)

	d := b.Snapshot()
	if d.Name != "Recording" || d.Unit != "per hour" || d.Rate != "1250.5" || d.Image != item.Image {
		t.Errorf("unexpected draft: %+v", d)
	}
	if id, editing := b.Editing(); !editing || id != "a" {
		t.Errorf("Editing() = (%q, %v), want (a, true)", id, editing)
	}
}

func TestSetField(t *testing.T) {
	b := New()
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{FieldName, "Mixing", false},
		{FieldUnit, "per track", false},
		{FieldRate, "12abc", false}, // no validation while typing
		{"image", "nope", true},
		{"", "nope", true},
	}
	for _, tt := range tests {
		err := b.SetField(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetField(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
	}
	d := b.Snapshot()
	if d.Name != "Mixing" || d.Unit != "per track" || d.Rate != "12abc" {
		t.Errorf("unexpected draft: %+v", d)
	}
}

func TestCancel_LeavesRepositoryUntouched(t *testing.T) {
	repo := catalog.NewRepository()
	a, _ := repo.Add(models.Draft{Name: "A", Unit: "per hour", Rate: "1000"})

	b := New()
	b.BeginEdit(a)
	b.SetField(FieldRate, "2000")
	b.Cancel()

	got, _ := repo.Get(a.ID)
	if got.Rate != 1000 {
		t.Errorf("rate = %v, want 1000", got.Rate)
	}
	if _, editing := b.Editing(); editing {
		t.Error("expected edit mode to be cancelled")
	}
	if d := b.Snapshot(); d.Rate != "" {
		t.Errorf("expected cleared draft, got %+v", d)
	}
}

func TestSetImage_MergesWithConcurrentEdits(t *testing.T) {
	b := New()
	pr, pw := io.Pipe()

	done := b.SetImage(context.Background(), pr)

	// Decode is blocked on the pipe; edit another field meanwhile.
	if err := b.SetField(FieldName, "X"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}
	if d := b.Snapshot(); d.Image != "" {
		t.Fatal("image set before decode completed")
	}

	img := pngReader(t)
	go func() {
		io.Copy(pw, img)
		pw.Close()
	}()

	if err := wait(t, done); err != nil {
		t.Fatalf("SetImage failed: %v", err)
	}
	d := b.Snapshot()
	if d.Name != "X" {
		t.Errorf("name lost, got %q", d.Name)
	}
	if !strings.HasPrefix(d.Image, "data:image/png;base64,") {
		t.Errorf("image not set: %.30q", d.Image)
	}
}

func TestSetImage_NilClears(t *testing.T) {
	b := New()
	if err := wait(t, b.SetImage(context.Background(), pngReader(t))); err != nil {
		t.Fatalf("SetImage failed: %v", err)
	}
	if err := wait(t, b.SetImage(context.Background(), nil)); err != nil {
		t.Fatalf("SetImage(nil) failed: %v", err)
	}
	if d := b.Snapshot(); d.Image != "" {
		t.Error("expected image to be cleared")
	}
}

func TestSetImage_InvalidPayload(t *testing.T) {
	b := New()
	err := wait(t, b.SetImage(context.Background(), strings.NewReader("not an image")))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if d := b.Snapshot(); d.Image != "" {
		t.Error("image should stay empty after failed decode")
	}
}

func TestSetImage_NewerUploadWins(t *testing.T) {
	b := New()
	pr, pw := io.Pipe()

	slow := b.SetImage(context.Background(), pr)
	b.ClearImage()

	img := pngReader(t)
	go func() {
		io.Copy(pw, img)
		pw.Close()
	}()

	if err := wait(t, slow); !errors.Is(err, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded, got %v", err)
	}
	if d := b.Snapshot(); d.Image != "" {
		t.Error("stale decode overwrote a newer image change")
	}
}

func TestSetImage_CancelledContext(t *testing.T) {
	b := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wait(t, b.SetImage(ctx, pngReader(t)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if d := b.Snapshot(); d.Image != "" {
		t.Error("image applied despite cancelled context")
	}
}

func TestSetImage_DroppedWhenDraftReplaced(t *testing.T) {
	tests := []struct {
		name        string
		replace     func(b *Buffer)
		wantEditing string
		wantImage   string
	}{
		{"cancel", func(b *Buffer) { b.Cancel() }, "", ""},
		{"begin create", func(b *Buffer) { b.BeginCreate() }, "", ""},
		{
			"begin edit",
			func(b *Buffer) {
				b.BeginEdit(models.Item{ID: "b", Name: "B", Unit: "u", Rate: 2, Image: "data:image/png;base64,OLD"})
			},
			"b",
			"data:image/png;base64,OLD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			pr, pw := io.Pipe()
			pending := b.SetImage(context.Background(), pr)

			tt.replace(b)

			img := pngReader(t)
			go func() {
				io.Copy(pw, img)
				pw.Close()
			}()

			if err := wait(t, pending); !errors.Is(err, ErrSuperseded) {
				t.Errorf("expected ErrSuperseded, got %v", err)
			}
			if d := b.Snapshot(); d.Image != tt.wantImage {
				t.Errorf("image = %.40q, want %q", d.Image, tt.wantImage)
			}
			if id, _ := b.Editing(); id != tt.wantEditing {
				t.Errorf("editing = %q, want %q", id, tt.wantEditing)
			}
		})
	}
}

func TestSetImage_AfterBeginEditApplies(t *testing.T) {
	b := New()
	b.BeginEdit(models.Item{ID: "a", Name: "A", Unit: "u", Rate: 1})
	if err := wait(t, b.SetImage(context.Background(), pngReader(t))); err != nil {
		t.Fatalf("SetImage failed: %v", err)
	}
	if d := b.Snapshot(); !strings.HasPrefix(d.Image, "data:image/png;base64,") {
		t.Errorf("image not set: %.30q", d.Image)
	}
}
