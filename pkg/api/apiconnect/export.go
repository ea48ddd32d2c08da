package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/pkg/api"
)

// ExportServiceName is the fully-qualified name of the ExportService service.
const ExportServiceName = "ratecraft.v1.ExportService"

// Procedure paths, used in handler routing and interceptors.
const (
	ExportServiceExportPNGProcedure       = "/ratecraft.v1.ExportService/ExportPNG"
	ExportServiceExportPDFProcedure       = "/ratecraft.v1.ExportService/ExportPDF"
	ExportServiceGetExportStatusProcedure = "/ratecraft.v1.ExportService/GetExportStatus"
)

// ExportServiceClient is a client for the ratecraft.v1.ExportService service.
type ExportServiceClient interface {
	// ExportPNG captures the rate card as a PNG.
	ExportPNG(context.Context, *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error)
	// ExportPDF captures the rate card as a single-page PDF.
	ExportPDF(context.Context, *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error)
	// GetExportStatus reports the export state machine position.
	GetExportStatus(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ExportStatusResponse], error)
}

// NewExportServiceClient constructs a client for the ratecraft.v1.ExportService service. It
// always speaks JSON, so baseURL may point at any server built from this package.
func NewExportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExportServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec)}, opts...)
	return &exportServiceClient{
		exportPNG:       connect.NewClient[api.ExportRequest, api.ExportResponse](httpClient, baseURL+ExportServiceExportPNGProcedure, opts...),
		exportPDF:       connect.NewClient[api.ExportRequest, api.ExportResponse](httpClient, baseURL+ExportServiceExportPDFProcedure, opts...),
		getExportStatus: connect.NewClient[emptypb.Empty, api.ExportStatusResponse](httpClient, baseURL+ExportServiceGetExportStatusProcedure, opts...),
	}
}

type exportServiceClient struct {
	exportPNG       *connect.Client[api.ExportRequest, api.ExportResponse]
	exportPDF       *connect.Client[api.ExportRequest, api.ExportResponse]
	getExportStatus *connect.Client[emptypb.Empty, api.ExportStatusResponse]
}

func (c *exportServiceClient) ExportPNG(ctx context.Context, req *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	return c.exportPNG.CallUnary(ctx, req)
}

func (c *exportServiceClient) ExportPDF(ctx context.Context, req *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	return c.exportPDF.CallUnary(ctx, req)
}

func (c *exportServiceClient) GetExportStatus(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ExportStatusResponse], error) {
	return c.getExportStatus.CallUnary(ctx, req)
}

// ExportServiceHandler is implemented by servers of the ratecraft.v1.ExportService service.
type ExportServiceHandler interface {
	ExportPNG(context.Context, *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error)
	ExportPDF(context.Context, *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error)
	GetExportStatus(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ExportStatusResponse], error)
}

// NewExportServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewExportServiceHandler(svc ExportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec), connect.WithCodec(api.JSONCharsetCodec)}, opts...)
	exportPNGHandler := connect.NewUnaryHandler(ExportServiceExportPNGProcedure, svc.ExportPNG, opts...)
	exportPDFHandler := connect.NewUnaryHandler(ExportServiceExportPDFProcedure, svc.ExportPDF, opts...)
	getExportStatusHandler := connect.NewUnaryHandler(ExportServiceGetExportStatusProcedure, svc.GetExportStatus, opts...)
	return "/ratecraft.v1.ExportService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExportServiceExportPNGProcedure:
			exportPNGHandler.ServeHTTP(w, r)
		case ExportServiceExportPDFProcedure:
			exportPDFHandler.ServeHTTP(w, r)
		case ExportServiceGetExportStatusProcedure:
			getExportStatusHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedExportServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExportServiceHandler struct{}

func (UnimplementedExportServiceHandler) ExportPNG(context.Context, *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.ExportService.ExportPNG is not implemented"))
}

func (UnimplementedExportServiceHandler) ExportPDF(context.Context, *connect.Request[api.ExportRequest]) (*connect.Response[api.ExportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.ExportService.ExportPDF is not implemented"))
}

func (UnimplementedExportServiceHandler) GetExportStatus(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ExportStatusResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.ExportService.GetExportStatus is not implemented"))
}
