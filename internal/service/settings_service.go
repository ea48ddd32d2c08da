package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/media"
	"github.com/mmynk/ratecraft/internal/render"
	"github.com/mmynk/ratecraft/pkg/api"
	"github.com/mmynk/ratecraft/pkg/api/apiconnect"
)

// SettingsService implements the Connect SettingsService
type SettingsService struct {
	apiconnect.UnimplementedSettingsServiceHandler
	session *editor.Session
}

// NewSettingsService creates a new SettingsService over the given session.
func NewSettingsService(session *editor.Session) *SettingsService {
	return &SettingsService{session: session}
}

// GetSettings returns the presentation settings.
func (s *SettingsService) GetSettings(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.SettingsResponse], error) {
	slog.Debug("GetSettings request received")
	return connect.NewResponse(&api.SettingsResponse{Settings: toSettings(s.session.Settings())}), nil
}

// UpdateSettings applies a partial update. Any invalid field rejects the
// whole request.
func (s *SettingsService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.SettingsResponse], error) {
	slog.Info("UpdateSettings request received")

	settings, err := s.session.UpdateSettings(ctx, toPatch(req.Msg))
	if err != nil {
		if errors.Is(err, editor.ErrInvalidSetting) {
			slog.Warn("UpdateSettings rejected", "error", err)
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		slog.Error("UpdateSettings failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("UpdateSettings successful", "title", settings.Title, "template", settings.Template)
	return connect.NewResponse(&api.SettingsResponse{Settings: toSettings(settings)}), nil
}

// SetLogo stores an uploaded logo; empty data removes it.
func (s *SettingsService) SetLogo(ctx context.Context, req *connect.Request[api.SetLogoRequest]) (*connect.Response[api.SettingsResponse], error) {
	slog.Info("SetLogo request received", "bytes", len(req.Msg.Data))

	var r io.Reader
	if len(req.Msg.Data) > 0 {
		r = bytes.NewReader(req.Msg.Data)
	}
	if err := s.session.SetLogo(ctx, r); err != nil {
		slog.Warn("SetLogo failed", "error", err)
		code := connect.CodeInternal
		if errors.Is(err, media.ErrNotImage) || errors.Is(err, media.ErrTooLarge) {
			code = connect.CodeInvalidArgument
		}
		return nil, connect.NewError(code, err)
	}
	return connect.NewResponse(&api.SettingsResponse{Settings: toSettings(s.session.Settings())}), nil
}

// ListCurrencies returns the built-in currency choices.
func (s *SettingsService) ListCurrencies(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListCurrenciesResponse], error) {
	out := make([]api.Currency, len(render.Currencies))
	for i, c := range render.Currencies {
		out[i] = api.Currency{Code: c.Code, Symbol: c.Symbol, Label: c.Label}
	}
	return connect.NewResponse(&api.ListCurrenciesResponse{Currencies: out}), nil
}
