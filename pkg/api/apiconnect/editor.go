package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/pkg/api"
)

// EditorServiceName is the fully-qualified name of the EditorService service.
const EditorServiceName = "ratecraft.v1.EditorService"

// Procedure paths, used in handler routing and interceptors.
const (
	EditorServiceGetStateProcedure      = "/ratecraft.v1.EditorService/GetState"
	EditorServiceAddItemProcedure       = "/ratecraft.v1.EditorService/AddItem"
	EditorServiceUpdateItemProcedure    = "/ratecraft.v1.EditorService/UpdateItem"
	EditorServiceSubmitDraftProcedure   = "/ratecraft.v1.EditorService/SubmitDraft"
	EditorServiceRemoveItemProcedure    = "/ratecraft.v1.EditorService/RemoveItem"
	EditorServiceMoveItemProcedure      = "/ratecraft.v1.EditorService/MoveItem"
	EditorServiceReorderItemsProcedure  = "/ratecraft.v1.EditorService/ReorderItems"
	EditorServiceBeginCreateProcedure   = "/ratecraft.v1.EditorService/BeginCreate"
	EditorServiceBeginEditProcedure     = "/ratecraft.v1.EditorService/BeginEdit"
	EditorServiceCancelEditProcedure    = "/ratecraft.v1.EditorService/CancelEdit"
	EditorServiceSetDraftFieldProcedure = "/ratecraft.v1.EditorService/SetDraftField"
	EditorServiceSetDraftImageProcedure = "/ratecraft.v1.EditorService/SetDraftImage"
	EditorServiceResetProcedure         = "/ratecraft.v1.EditorService/Reset"
)

// EditorServiceClient is a client for the ratecraft.v1.EditorService service.
type EditorServiceClient interface {
	// GetState returns the full editor state.
	GetState(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error)
	// AddItem validates a draft and appends it as a new item.
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	// UpdateItem validates a draft and replaces an existing item's fields.
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error)
	// SubmitDraft commits the staged draft as an add or an update.
	SubmitDraft(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ItemResponse], error)
	// RemoveItem deletes an item.
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.MutationResponse], error)
	// MoveItem swaps an item with its neighbour.
	MoveItem(context.Context, *connect.Request[api.MoveItemRequest]) (*connect.Response[api.MutationResponse], error)
	// ReorderItems sets the item order from a full id permutation.
	ReorderItems(context.Context, *connect.Request[api.ReorderItemsRequest]) (*connect.Response[api.MutationResponse], error)
	// BeginCreate starts composing a new item.
	BeginCreate(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error)
	// BeginEdit loads an item into the draft.
	BeginEdit(context.Context, *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error)
	// CancelEdit discards the draft.
	CancelEdit(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error)
	// SetDraftField sets one text field of the draft.
	SetDraftField(context.Context, *connect.Request[api.SetDraftFieldRequest]) (*connect.Response[api.DraftResponse], error)
	// SetDraftImage sets or clears the draft image.
	SetDraftImage(context.Context, *connect.Request[api.SetDraftImageRequest]) (*connect.Response[api.DraftResponse], error)
	// Reset restores defaults and removes all persisted state.
	Reset(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error)
}

// NewEditorServiceClient constructs a client for the ratecraft.v1.EditorService service. It
// always speaks JSON, so baseURL may point at any server built from this package.
func NewEditorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EditorServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec)}, opts...)
	return &editorServiceClient{
		getState:      connect.NewClient[emptypb.Empty, api.GetStateResponse](httpClient, baseURL+EditorServiceGetStateProcedure, opts...),
		addItem:       connect.NewClient[api.AddItemRequest, api.ItemResponse](httpClient, baseURL+EditorServiceAddItemProcedure, opts...),
		updateItem:    connect.NewClient[api.UpdateItemRequest, api.ItemResponse](httpClient, baseURL+EditorServiceUpdateItemProcedure, opts...),
		submitDraft:   connect.NewClient[emptypb.Empty, api.ItemResponse](httpClient, baseURL+EditorServiceSubmitDraftProcedure, opts...),
		removeItem:    connect.NewClient[api.RemoveItemRequest, api.MutationResponse](httpClient, baseURL+EditorServiceRemoveItemProcedure, opts...),
		moveItem:      connect.NewClient[api.MoveItemRequest, api.MutationResponse](httpClient, baseURL+EditorServiceMoveItemProcedure, opts...),
		reorderItems:  connect.NewClient[api.ReorderItemsRequest, api.MutationResponse](httpClient, baseURL+EditorServiceReorderItemsProcedure, opts...),
		beginCreate:   connect.NewClient[emptypb.Empty, api.DraftResponse](httpClient, baseURL+EditorServiceBeginCreateProcedure, opts...),
		beginEdit:     connect.NewClient[api.BeginEditRequest, api.DraftResponse](httpClient, baseURL+EditorServiceBeginEditProcedure, opts...),
		cancelEdit:    connect.NewClient[emptypb.Empty, api.DraftResponse](httpClient, baseURL+EditorServiceCancelEditProcedure, opts...),
		setDraftField: connect.NewClient[api.SetDraftFieldRequest, api.DraftResponse](httpClient, baseURL+EditorServiceSetDraftFieldProcedure, opts...),
		setDraftImage: connect.NewClient[api.SetDraftImageRequest, api.DraftResponse](httpClient, baseURL+EditorServiceSetDraftImageProcedure, opts...),
		reset:         connect.NewClient[emptypb.Empty, api.GetStateResponse](httpClient, baseURL+EditorServiceResetProcedure, opts...),
	}
}

type editorServiceClient struct {
	getState      *connect.Client[emptypb.Empty, api.GetStateResponse]
	addItem       *connect.Client[api.AddItemRequest, api.ItemResponse]
	updateItem    *connect.Client[api.UpdateItemRequest, api.ItemResponse]
	submitDraft   *connect.Client[emptypb.Empty, api.ItemResponse]
	removeItem    *connect.Client[api.RemoveItemRequest, api.MutationResponse]
	moveItem      *connect.Client[api.MoveItemRequest, api.MutationResponse]
	reorderItems  *connect.Client[api.ReorderItemsRequest, api.MutationResponse]
	beginCreate   *connect.Client[emptypb.Empty, api.DraftResponse]
	beginEdit     *connect.Client[api.BeginEditRequest, api.DraftResponse]
	cancelEdit    *connect.Client[emptypb.Empty, api.DraftResponse]
	setDraftField *connect.Client[api.SetDraftFieldRequest, api.DraftResponse]
	setDraftImage *connect.Client[api.SetDraftImageRequest, api.DraftResponse]
	reset         *connect.Client[emptypb.Empty, api.GetStateResponse]
}

func (c *editorServiceClient) GetState(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *editorServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *editorServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *editorServiceClient) SubmitDraft(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ItemResponse], error) {
	return c.submitDraft.CallUnary(ctx, req)
}

func (c *editorServiceClient) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *editorServiceClient) MoveItem(ctx context.Context, req *connect.Request[api.MoveItemRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.moveItem.CallUnary(ctx, req)
}

func (c *editorServiceClient) ReorderItems(ctx context.Context, req *connect.Request[api.ReorderItemsRequest]) (*connect.Response[api.MutationResponse], error) {
	return c.reorderItems.CallUnary(ctx, req)
}

func (c *editorServiceClient) BeginCreate(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error) {
	return c.beginCreate.CallUnary(ctx, req)
}

func (c *editorServiceClient) BeginEdit(ctx context.Context, req *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.beginEdit.CallUnary(ctx, req)
}

func (c *editorServiceClient) CancelEdit(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error) {
	return c.cancelEdit.CallUnary(ctx, req)
}

func (c *editorServiceClient) SetDraftField(ctx context.Context, req *connect.Request[api.SetDraftFieldRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setDraftField.CallUnary(ctx, req)
}

func (c *editorServiceClient) SetDraftImage(ctx context.Context, req *connect.Request[api.SetDraftImageRequest]) (*connect.Response[api.DraftResponse], error) {
	return c.setDraftImage.CallUnary(ctx, req)
}

func (c *editorServiceClient) Reset(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error) {
	return c.reset.CallUnary(ctx, req)
}

// EditorServiceHandler is implemented by servers of the ratecraft.v1.EditorService service.
type EditorServiceHandler interface {
	GetState(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error)
	SubmitDraft(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ItemResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.MutationResponse], error)
	MoveItem(context.Context, *connect.Request[api.MoveItemRequest]) (*connect.Response[api.MutationResponse], error)
	ReorderItems(context.Context, *connect.Request[api.ReorderItemsRequest]) (*connect.Response[api.MutationResponse], error)
	BeginCreate(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error)
	BeginEdit(context.Context, *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error)
	CancelEdit(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error)
	SetDraftField(context.Context, *connect.Request[api.SetDraftFieldRequest]) (*connect.Response[api.DraftResponse], error)
	SetDraftImage(context.Context, *connect.Request[api.SetDraftImageRequest]) (*connect.Response[api.DraftResponse], error)
	Reset(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error)
}

// NewEditorServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewEditorServiceHandler(svc EditorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec), connect.WithCodec(api.JSONCharsetCodec)}, opts...)
	getStateHandler := connect.NewUnaryHandler(EditorServiceGetStateProcedure, svc.GetState, opts...)
	addItemHandler := connect.NewUnaryHandler(EditorServiceAddItemProcedure, svc.AddItem, opts...)
	updateItemHandler := connect.NewUnaryHandler(EditorServiceUpdateItemProcedure, svc.UpdateItem, opts...)
	submitDraftHandler := connect.NewUnaryHandler(EditorServiceSubmitDraftProcedure, svc.SubmitDraft, opts...)
	removeItemHandler := connect.NewUnaryHandler(EditorServiceRemoveItemProcedure, svc.RemoveItem, opts...)
	moveItemHandler := connect.NewUnaryHandler(EditorServiceMoveItemProcedure, svc.MoveItem, opts...)
	reorderItemsHandler := connect.NewUnaryHandler(EditorServiceReorderItemsProcedure, svc.ReorderItems, opts...)
	beginCreateHandler := connect.NewUnaryHandler(EditorServiceBeginCreateProcedure, svc.BeginCreate, opts...)
	beginEditHandler := connect.NewUnaryHandler(EditorServiceBeginEditProcedure, svc.BeginEdit, opts...)
	cancelEditHandler := connect.NewUnaryHandler(EditorServiceCancelEditProcedure, svc.CancelEdit, opts...)
	setDraftFieldHandler := connect.NewUnaryHandler(EditorServiceSetDraftFieldProcedure, svc.SetDraftField, opts...)
	setDraftImageHandler := connect.NewUnaryHandler(EditorServiceSetDraftImageProcedure, svc.SetDraftImage, opts...)
	resetHandler := connect.NewUnaryHandler(EditorServiceResetProcedure, svc.Reset, opts...)
	return "/ratecraft.v1.EditorService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EditorServiceGetStateProcedure:
			getStateHandler.ServeHTTP(w, r)
		case EditorServiceAddItemProcedure:
			addItemHandler.ServeHTTP(w, r)
		case EditorServiceUpdateItemProcedure:
			updateItemHandler.ServeHTTP(w, r)
		case EditorServiceSubmitDraftProcedure:
			submitDraftHandler.ServeHTTP(w, r)
		case EditorServiceRemoveItemProcedure:
			removeItemHandler.ServeHTTP(w, r)
		case EditorServiceMoveItemProcedure:
			moveItemHandler.ServeHTTP(w, r)
		case EditorServiceReorderItemsProcedure:
			reorderItemsHandler.ServeHTTP(w, r)
		case EditorServiceBeginCreateProcedure:
			beginCreateHandler.ServeHTTP(w, r)
		case EditorServiceBeginEditProcedure:
			beginEditHandler.ServeHTTP(w, r)
		case EditorServiceCancelEditProcedure:
			cancelEditHandler.ServeHTTP(w, r)
		case EditorServiceSetDraftFieldProcedure:
			setDraftFieldHandler.ServeHTTP(w, r)
		case EditorServiceSetDraftImageProcedure:
			setDraftImageHandler.ServeHTTP(w, r)
		case EditorServiceResetProcedure:
			resetHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedEditorServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedEditorServiceHandler struct{}

func (UnimplementedEditorServiceHandler) GetState(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.GetState is not implemented"))
}

func (UnimplementedEditorServiceHandler) AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.AddItem is not implemented"))
}

func (UnimplementedEditorServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.UpdateItem is not implemented"))
}

func (UnimplementedEditorServiceHandler) SubmitDraft(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.SubmitDraft is not implemented"))
}

func (UnimplementedEditorServiceHandler) RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.RemoveItem is not implemented"))
}

func (UnimplementedEditorServiceHandler) MoveItem(context.Context, *connect.Request[api.MoveItemRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.MoveItem is not implemented"))
}

func (UnimplementedEditorServiceHandler) ReorderItems(context.Context, *connect.Request[api.ReorderItemsRequest]) (*connect.Response[api.MutationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.ReorderItems is not implemented"))
}

func (UnimplementedEditorServiceHandler) BeginCreate(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.BeginCreate is not implemented"))
}

func (UnimplementedEditorServiceHandler) BeginEdit(context.Context, *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.BeginEdit is not implemented"))
}

func (UnimplementedEditorServiceHandler) CancelEdit(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.CancelEdit is not implemented"))
}

func (UnimplementedEditorServiceHandler) SetDraftField(context.Context, *connect.Request[api.SetDraftFieldRequest]) (*connect.Response[api.DraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.SetDraftField is not implemented"))
}

func (UnimplementedEditorServiceHandler) SetDraftImage(context.Context, *connect.Request[api.SetDraftImageRequest]) (*connect.Response[api.DraftResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.SetDraftImage is not implemented"))
}

func (UnimplementedEditorServiceHandler) Reset(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ratecraft.v1.EditorService.Reset is not implemented"))
}
