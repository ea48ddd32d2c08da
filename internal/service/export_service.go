package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/export"
	"github.com/mmynk/ratecraft/pkg/api"
	"github.com/mmynk/ratecraft/pkg/api/apiconnect"
)

// DownloadsPath is where download handles are served.
const DownloadsPath = "/downloads/"

// ExportService implements the Connect ExportService
type ExportService struct {
	apiconnect.UnimplementedExportServiceHandler
	session  *editor.Session
	exporter *export.Exporter
}

// NewExportService creates a new ExportService. Artifacts are captured from
// the session's current surface.
func NewExportService(session *editor.Session, exporter *export.Exporter) *ExportService {
	return &ExportService{session: session, exporter: exporter}
}

type exportFunc func(context.Context, export.SurfaceSource, string) (*export.Artifact, error)

// ExportPNG captures the card as a PNG.
func (s *ExportService) ExportPNG(ctx context.Context, req *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	return s.export(ctx, "ExportPNG", req.Msg, s.exporter.ExportRaster)
}

// ExportPDF captures the card as a one-page PDF.
func (s *ExportService) ExportPDF(ctx context.Context, req *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	return s.export(ctx, "ExportPDF", req.Msg, s.exporter.ExportDocument)
}

func (s *ExportService) export(ctx context.Context, op string, msg *api.ExportRequest, run exportFunc) (*connect.Response[api.ExportResponse], error) {
	stem := s.session.Title()
	if msg.Filename != nil {
		stem = *msg.Filename
	}
	slog.Info(op+" request received", "stem", stem)

	art, err := run(ctx, s.session, stem)
	switch {
	case errors.Is(err, export.ErrBusy):
		slog.Warn(op+" rejected, export in progress")
		return nil, connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, connect.NewError(connect.CodeCanceled, err)
	case err != nil:
		return nil, connect.NewError(connect.CodeInternal, err)
	case art == nil:
		slog.Info(op + " skipped, nothing to capture")
		return connect.NewResponse(&api.ExportResponse{}), nil
	}

	res := &api.ExportResponse{
		Exported:    true,
		Filename:    art.Filename,
		ContentType: art.ContentType,
		Data:        art.Data,
		Width:       art.Width,
		Height:      art.Height,
	}
	if art.Token != "" {
		res.DownloadURL = DownloadsPath + art.Token
	}
	return connect.NewResponse(res), nil
}

// GetExportStatus reports where the exporter is in its state machine.
func (s *ExportService) GetExportStatus(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ExportStatusResponse], error) {
	state := s.exporter.State()
	return connect.NewResponse(&api.ExportStatusResponse{State: state.String(), Busy: state != export.Idle}), nil
}
