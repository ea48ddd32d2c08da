package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/export"
	"github.com/mmynk/ratecraft/internal/middleware"
	"github.com/mmynk/ratecraft/internal/persist"
	"github.com/mmynk/ratecraft/internal/storage/sqlite"
	"github.com/mmynk/ratecraft/pkg/api"
	"github.com/mmynk/ratecraft/pkg/api/apiconnect"
)

type testClients struct {
	editor   apiconnect.EditorServiceClient
	settings apiconnect.SettingsServiceClient
	export   apiconnect.ExportServiceClient
	url      string
	session  *editor.Session
}

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	session := editor.New(persist.New(store, ""))
	session.Load(context.Background())

	downloads := export.NewDownloads(time.Minute)
	exporter := export.New(export.WithDownloads(downloads))

	interceptors := connect.WithInterceptors(middleware.RequestID(), middleware.LoggingInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewEditorServiceHandler(NewEditorService(session), interceptors))
	mux.Handle(apiconnect.NewSettingsServiceHandler(NewSettingsService(session), interceptors))
	mux.Handle(apiconnect.NewExportServiceHandler(NewExportService(session, exporter), interceptors))
	mux.Handle("GET "+DownloadsPath+"{token}", downloads)
	mux.Handle("GET /{$}", NewPreviewHandler(session))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		editor:   apiconnect.NewEditorServiceClient(http.DefaultClient, server.URL),
		settings: apiconnect.NewSettingsServiceClient(http.DefaultClient, server.URL),
		export:   apiconnect.NewExportServiceClient(http.DefaultClient, server.URL),
		url:      server.URL,
		session:  session,
	}
}

func empty() *connect.Request[emptypb.Empty] {
	return connect.NewRequest(&emptypb.Empty{})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func addItem(t *testing.T, c *testClients, name, unit, rate string) *api.ItemResponse {
	t.Helper()
	resp, err := c.editor.AddItem(context.Background(), connect.NewRequest(&api.AddItemRequest{
		Draft: api.Draft{Name: name, Unit: unit, Rate: rate},
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	return resp.Msg
}

func TestAddItem(t *testing.T) {
	c := setupTestServer(t)

	res := addItem(t, c, " Recording ", "per hour", "1000")
	if !res.Accepted || res.Item == nil {
		t.Fatalf("AddItem not accepted: %+v", res)
	}
	if res.Item.Name != "Recording" || res.Item.Rate != 1000 || res.Item.ID == "" {
		t.Errorf("item = %+v", res.Item)
	}

	rejected := addItem(t, c, "", "x", "5")
	if rejected.Accepted || rejected.Reason == "" {
		t.Errorf("empty name accepted: %+v", rejected)
	}
	if len(rejected.State.Items) != 1 {
		t.Errorf("expected 1 item after rejection, got %d", len(rejected.State.Items))
	}
}

func TestDraftFlow(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	a := addItem(t, c, "Mixing", "per song", "1500").Item

	begin, err := c.editor.BeginEdit(ctx, connect.NewRequest(&api.BeginEditRequest{ID: a.ID}))
	if err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	if begin.Msg.EditingID != a.ID || begin.Msg.Draft.Rate != "1500" {
		t.Errorf("draft = %+v", begin.Msg)
	}

	if _, err := c.editor.SetDraftField(ctx, connect.NewRequest(&api.SetDraftFieldRequest{Field: "rate", Value: "2000"})); err != nil {
		t.Fatalf("SetDraftField failed: %v", err)
	}
	img, err := c.editor.SetDraftImage(ctx, connect.NewRequest(&api.SetDraftImageRequest{Data: pngBytes(t)}))
	if err != nil {
		t.Fatalf("SetDraftImage failed: %v", err)
	}
	if !strings.HasPrefix(img.Msg.Draft.Image, "data:image/png;base64,") || img.Msg.Draft.Rate != "2000" {
		t.Errorf("draft after image = %+v", img.Msg.Draft)
	}

	submit, err := c.editor.SubmitDraft(ctx, empty())
	if err != nil {
		t.Fatalf("SubmitDraft failed: %v", err)
	}
	if !submit.Msg.Accepted || submit.Msg.Item.ID != a.ID || submit.Msg.Item.Rate != 2000 {
		t.Errorf("submit = %+v", submit.Msg)
	}
	if submit.Msg.State.EditingID != "" {
		t.Error("still editing after submit")
	}
}

func TestCancelEditLeavesItem(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	a := addItem(t, c, "A", "u", "10").Item

	c.editor.BeginEdit(ctx, connect.NewRequest(&api.BeginEditRequest{ID: a.ID}))
	c.editor.SetDraftField(ctx, connect.NewRequest(&api.SetDraftFieldRequest{Field: "rate", Value: "99"}))
	if _, err := c.editor.CancelEdit(ctx, empty()); err != nil {
		t.Fatalf("CancelEdit failed: %v", err)
	}

	state, err := c.editor.GetState(ctx, empty())
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if got := state.Msg.State.Items[0].Rate; got != 10 {
		t.Errorf("rate = %v, want 10", got)
	}
	if state.Msg.State.Draft.Unit != "per unit" {
		t.Errorf("draft = %+v, want cleared", state.Msg.State.Draft)
	}
}

func TestErrorCodes(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want connect.Code
	}{
		{"begin edit unknown id", func() error {
			_, err := c.editor.BeginEdit(ctx, connect.NewRequest(&api.BeginEditRequest{ID: "missing"}))
			return err
		}, connect.CodeNotFound},
		{"unknown draft field", func() error {
			_, err := c.editor.SetDraftField(ctx, connect.NewRequest(&api.SetDraftFieldRequest{Field: "price"}))
			return err
		}, connect.CodeInvalidArgument},
		{"bad direction", func() error {
			_, err := c.editor.MoveItem(ctx, connect.NewRequest(&api.MoveItemRequest{ID: "x", Direction: "left"}))
			return err
		}, connect.CodeInvalidArgument},
		{"draft image not an image", func() error {
			_, err := c.editor.SetDraftImage(ctx, connect.NewRequest(&api.SetDraftImageRequest{Data: []byte("text")}))
			return err
		}, connect.CodeInvalidArgument},
		{"invalid accent", func() error {
			accent := "red"
			_, err := c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{Accent: &accent}))
			return err
		}, connect.CodeInvalidArgument},
		{"logo not an image", func() error {
			_, err := c.settings.SetLogo(ctx, connect.NewRequest(&api.SetLogoRequest{Data: []byte("text")}))
			return err
		}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if got := connect.CodeOf(err); err == nil || got != tt.want {
				t.Fatalf("code = %v (err %v), want %v", got, err, tt.want)
			}
			var ce *connect.Error
			if !errors.As(err, &ce) || ce.Meta().Get(middleware.RequestIDHeader) == "" {
				t.Errorf("error carries no %s", middleware.RequestIDHeader)
			}
		})
	}
}

func TestMoveAndReorder(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	a := addItem(t, c, "A", "u", "1").Item
	b := addItem(t, c, "B", "u", "2").Item

	up, err := c.editor.MoveItem(ctx, connect.NewRequest(&api.MoveItemRequest{ID: a.ID, Direction: "up"}))
	if err != nil {
		t.Fatalf("MoveItem failed: %v", err)
	}
	if up.Msg.Accepted {
		t.Error("moving the first item up was accepted")
	}

	reorder, err := c.editor.ReorderItems(ctx, connect.NewRequest(&api.ReorderItemsRequest{IDs: []string{b.ID, a.ID}}))
	if err != nil {
		t.Fatalf("ReorderItems failed: %v", err)
	}
	items := reorder.Msg.State.Items
	if !reorder.Msg.Accepted || items[0].ID != b.ID || items[1].ID != a.ID {
		t.Errorf("reorder = %+v", reorder.Msg)
	}

	subset, err := c.editor.ReorderItems(ctx, connect.NewRequest(&api.ReorderItemsRequest{IDs: []string{a.ID}}))
	if err != nil {
		t.Fatalf("ReorderItems(subset) failed: %v", err)
	}
	if subset.Msg.Accepted || len(subset.Msg.State.Items) != 2 {
		t.Errorf("subset reorder = %+v", subset.Msg)
	}

	removed, err := c.editor.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{ID: a.ID}))
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if !removed.Msg.Accepted || len(removed.Msg.State.Items) != 1 {
		t.Errorf("remove = %+v", removed.Msg)
	}
	again, _ := c.editor.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{ID: a.ID}))
	if again.Msg.Accepted {
		t.Error("second remove was accepted")
	}
}

func TestSettings(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	got, err := c.settings.GetSettings(ctx, empty())
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Msg.Settings.Title != "Your Service Title" || got.Msg.Settings.Align != "right" {
		t.Errorf("defaults = %+v", got.Msg.Settings)
	}

	title, tmpl, size := "Acme", "billboard", 32.0
	updated, err := c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{
		Title:     &title,
		Template:  &tmpl,
		PriceSize: &size,
	}))
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	s := updated.Msg.Settings
	if s.Title != "Acme" || s.Template != "billboard" || s.PriceSize != 32 || s.Density != "cozy" {
		t.Errorf("updated = %+v", s)
	}

	logo, err := c.settings.SetLogo(ctx, connect.NewRequest(&api.SetLogoRequest{Data: pngBytes(t)}))
	if err != nil {
		t.Fatalf("SetLogo failed: %v", err)
	}
	if !strings.HasPrefix(logo.Msg.Settings.Logo, "data:image/png") {
		t.Error("logo not set")
	}

	currencies, err := c.settings.ListCurrencies(ctx, empty())
	if err != nil {
		t.Fatalf("ListCurrencies failed: %v", err)
	}
	if len(currencies.Msg.Currencies) != 7 || currencies.Msg.Currencies[0].Code != "INR" {
		t.Errorf("currencies = %+v", currencies.Msg.Currencies)
	}
}

func TestReset(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	addItem(t, c, "A", "u", "1")
	title := "Acme"
	c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{Title: &title}))

	res, err := c.editor.Reset(ctx, empty())
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(res.Msg.State.Items) != 0 || res.Msg.State.Settings.Title != "Your Service Title" {
		t.Errorf("state after reset = %+v", res.Msg.State)
	}
}

func TestExport(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	addItem(t, c, "Logo design", "per logo", "4999")
	title := "Acme Studio"
	c.settings.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{Title: &title}))

	pngRes, err := c.export.ExportPNG(ctx, connect.NewRequest(&api.ExportRequest{}))
	if err != nil {
		t.Fatalf("ExportPNG failed: %v", err)
	}
	if !pngRes.Msg.Exported || pngRes.Msg.Filename != "Acme Studio.png" || pngRes.Msg.ContentType != "image/png" {
		t.Errorf("png = %q %q", pngRes.Msg.Filename, pngRes.Msg.ContentType)
	}

	stem := "quote"
	pdf, err := c.export.ExportPDF(ctx, connect.NewRequest(&api.ExportRequest{Filename: &stem}))
	if err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	if pdf.Msg.Filename != "quote.pdf" || !bytes.HasPrefix(pdf.Msg.Data, []byte("%PDF-")) {
		t.Errorf("pdf = %q", pdf.Msg.Filename)
	}

	resp, err := http.Get(c.url + pdf.Msg.DownloadURL)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !bytes.Equal(body, pdf.Msg.Data) {
		t.Errorf("download status = %d, %d bytes", resp.StatusCode, len(body))
	}

	status, err := c.export.GetExportStatus(ctx, empty())
	if err != nil {
		t.Fatalf("GetExportStatus failed: %v", err)
	}
	if status.Msg.Busy || status.Msg.State != "idle" {
		t.Errorf("status = %+v", status.Msg)
	}
}

func TestPreview(t *testing.T) {
	c := setupTestServer(t)
	addItem(t, c, "Reel edit", "per reel", "1200")

	resp, err := http.Get(c.url + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Reel edit") || !strings.Contains(string(body), "₹1,200") {
		t.Error("preview missing item")
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestImageErrorCode(t *testing.T) {
	if got := imageErrorCode(errors.New("disk")); got != connect.CodeInternal {
		t.Errorf("imageErrorCode(other) = %v, want internal", got)
	}
	if got := imageErrorCode(context.Canceled); got != connect.CodeCanceled {
		t.Errorf("imageErrorCode(canceled) = %v, want canceled", got)
	}
}
