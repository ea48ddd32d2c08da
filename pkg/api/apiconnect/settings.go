package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/pkg/api"
)

// SettingsServiceName is the fully-qualified name of the SettingsService service.
const SettingsServiceName = "ratecraft.v1.SettingsService"

// Procedure paths, used in handler routing and interceptors.
const (
	SettingsServiceGetSettingsProcedure    = "/ratecraft.v1.SettingsService/GetSettings"
	SettingsServiceUpdateSettingsProcedure = "/ratecraft.v1.SettingsService/UpdateSettings"
	SettingsServiceSetLogoProcedure        = "/ratecraft.v1.SettingsService/SetLogo"
	SettingsServiceListCurrenciesProcedure = "/ratecraft.v1.SettingsService/ListCurrencies"
)

// SettingsServiceClient is a client for the ratecraft.v1.SettingsService service.
type SettingsServiceClient interface {
	// GetSettings returns the presentation settings.
	GetSettings(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.SettingsResponse], error)
	// UpdateSettings applies a partial settings update.
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.SettingsResponse], error)
	// SetLogo sets or removes the logo.
	SetLogo(context.Context, *connect.Request[api.SetLogoRequest]) (*connect.Response[api.SettingsResponse], error)
	// ListCurrencies lists the built-in currency choices.
	ListCurrencies(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListCurrenciesResponse], error)
}

// NewSettingsServiceClient constructs a client for the ratecraft.v1.SettingsService service. It
// always speaks JSON, so baseURL may point at any server built from this package.
func NewSettingsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettingsServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec)}, opts...)
	return &settingsServiceClient{
		getSettings:    connect.NewClient[emptypb.Empty, api.SettingsResponse](httpClient, baseURL+SettingsServiceGetSettingsProcedure, opts...),
		updateSettings: connect.NewClient[api.UpdateSettingsRequest, api.SettingsResponse](httpClient, baseURL+SettingsServiceUpdateSettingsProcedure, opts...),
		setLogo:        connect.NewClient[api.SetLogoRequest, api.SettingsResponse](httpClient, baseURL+SettingsServiceSetLogoProcedure, opts...),
		listCurrencies: connect.NewClient[emptypb.Empty, api.ListCurrenciesResponse](httpClient, baseURL+SettingsServiceListCurrenciesProcedure, opts...),
	}
}

type settingsServiceClient struct {
	getSettings    *connect.Client[emptypb.Empty, api.SettingsResponse]
	updateSettings *connect.Client[api.UpdateSettingsRequest, api.SettingsResponse]
	setLogo        *connect.Client[api.SetLogoRequest, api.SettingsResponse]
	listCurrencies *connect.Client[emptypb.Empty, api.ListCurrenciesResponse]
}

func (c *settingsServiceClient) GetSettings(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.SettingsResponse], error) {
	return c.getSettings.CallUnary(ctx, req)
}

func (c *settingsServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.SettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

func (c *settingsServiceClient) SetLogo(ctx context.Context, req *connect.Request[api.SetLogoRequest]) (*connect.Response[api.SettingsResponse], error) {
	return c.setLogo.CallUnary(ctx, req)
}

func (c *settingsServiceClient) ListCurrencies(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListCurrenciesResponse], error) {
	return c.listCurrencies.CallUnary(ctx, req)
}

// SettingsServiceHandler is implemented by servers of the ratecraft.v1.SettingsService service.
type SettingsServiceHandler interface {
	GetSettings(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.SettingsResponse], error)
	UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.SettingsResponse], error)
	SetLogo(context.Context, *connect.Request[api.SetLogoRequest]) (*connect.Response[api.SettingsResponse], error)
	ListCurrencies(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListCurrenciesResponse], error)
}

// NewSettingsServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewSettingsServiceHandler(svc SettingsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec), connect.WithCodec(api.JSONCharsetCodec)}, opts...)
	getSettingsHandler := connect.NewUnaryHandler(SettingsServiceGetSettingsProcedure, svc.GetSettings, opts...)
	updateSettingsHandler := connect.NewUnaryHandler(SettingsServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...)
	setLogoHandler := connect.NewUnaryHandler(SettingsServiceSetLogoProcedure, svc.SetLogo, opts...)
	listCurrenciesHandler := connect.NewUnaryHandler(SettingsServiceListCurrenciesProcedure, svc.ListCurrencies, opts...)
	return "/ratecraft.v1.SettingsService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettingsServiceGetSettingsProcedure:
			getSettingsHandler.ServeHTTP(w, r)
		case SettingsServiceUpdateSettingsProcedure:
			updateSettingsHandler.ServeHTTP(w, r)
		case SettingsServiceSetLogoProcedure:
			setLogoHandler.ServeHTTP(w, r)
		case SettingsServiceListCurrenciesProcedure:
			listCurrenciesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSettingsServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettingsServiceHandler struct{}

func (UnimplementedSettingsServiceHandler) GetSettings(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.SettingsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.SettingsService.GetSettings is not implemented"))
}

func (UnimplementedSettingsServiceHandler) UpdateSettings(context.Context, *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.SettingsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.SettingsService.UpdateSettings is not implemented"))
}

func (UnimplementedSettingsServiceHandler) SetLogo(context.Context, *connect.Request[api.SetLogoRequest]) (*connect.Response[api.SettingsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.SettingsService.SetLogo is not implemented"))
}

func (UnimplementedSettingsServiceHandler) ListCurrencies(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListCurrenciesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.SettingsService.ListCurrencies is not implemented"))
}
