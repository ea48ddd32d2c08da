package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/internal/catalog"
	"github.com/mmynk/ratecraft/internal/draft"
	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/media"
	"github.com/mmynk/ratecraft/internal/models"
	"github.com/mmynk/ratecraft/pkg/api"
	"github.com/mmynk/ratecraft/pkg/api/apiconnect"
)

// EditorService implements the Connect EditorService
type EditorService struct {
	apiconnect.UnimplementedEditorServiceHandler
	session *editor.Session
}

// NewEditorService creates a new EditorService over the given session.
func NewEditorService(session *editor.Session) *EditorService {
	return &EditorService{session: session}
}

// GetState returns settings, items and the draft.
func (s *EditorService) GetState(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error) {
	slog.Debug("GetState request received")
	return connect.NewResponse(&api.GetStateResponse{State: toState(s.session.Snapshot())}), nil
}

// AddItem appends a validated item.
func (s *EditorService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	slog.Info("AddItem request received", "name", req.Msg.Draft.Name, "rate", req.Msg.Draft.Rate)

	item, err := s.session.AddItem(ctx, fromDraft(req.Msg.Draft))
	return s.itemResponse("AddItem", item, err)
}

// UpdateItem replaces an item's fields.
func (s *EditorService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	slog.Info("UpdateItem request received", "item_id", req.Msg.ID, "name", req.Msg.Draft.Name)

	item, err := s.session.UpdateItem(ctx, req.Msg.ID, fromDraft(req.Msg.Draft))
	return s.itemResponse("UpdateItem", item, err)
}

// SubmitDraft commits the staged draft.
func (s *EditorService) SubmitDraft(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ItemResponse], error) {
	slog.Info("SubmitDraft request received")

	item, err := s.session.Submit(ctx)
	return s.itemResponse("SubmitDraft", item, err)
}

// itemResponse turns a validation rejection into accepted=false.
func (s *EditorService) itemResponse(op string, item models.Item, err error) (*connect.Response[api.ItemResponse], error) {
	res := &api.ItemResponse{}
	switch {
	case err == nil:
		apiItem := toItem(item)
		res.Accepted, res.Item = true, &apiItem
		slog.Info(op+" successful", "item_id", item.ID)
	case isRejection(err):
		res.Reason = err.Error()
		slog.Info(op+" rejected", "reason", err)
	default:
		slog.Error(op+" failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	res.State = toState(s.session.Snapshot())
	return connect.NewResponse(res), nil
}

func isRejection(err error) bool {
	return errors.Is(err, catalog.ErrEmptyName) ||
		errors.Is(err, catalog.ErrEmptyUnit) ||
		errors.Is(err, catalog.ErrInvalidRate) ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, catalog.ErrIncompleteOrder)
}

// RemoveItem deletes an item; unknown ids are a no-op.
func (s *EditorService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("RemoveItem request received", "item_id", req.Msg.ID)

	res := &api.MutationResponse{Accepted: s.session.RemoveItem(ctx, req.Msg.ID)}
	if !res.Accepted {
		res.Reason = "item not found"
	}
	res.State = toState(s.session.Snapshot())
	return connect.NewResponse(res), nil
}

// MoveItem swaps an item with its neighbour.
func (s *EditorService) MoveItem(ctx context.Context, req *connect.Request[api.MoveItemRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("MoveItem request received", "item_id", req.Msg.ID, "direction", req.Msg.Direction)

	dir, ok := models.ParseDirection(req.Msg.Direction)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("direction must be up or down, got %q", req.Msg.Direction))
	}
	res := &api.MutationResponse{Accepted: s.session.MoveItem(ctx, req.Msg.ID, dir)}
	if !res.Accepted {
		res.Reason = "item not found or already at the " + dir.String() + " boundary"
	}
	res.State = toState(s.session.Snapshot())
	return connect.NewResponse(res), nil
}

// ReorderItems applies a full permutation of item ids.
func (s *EditorService) ReorderItems(ctx context.Context, req *connect.Request[api.ReorderItemsRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("ReorderItems request received", "ids_count", len(req.Msg.IDs))

	res := &api.MutationResponse{Accepted: true}
	if err := s.session.ReorderItems(ctx, req.Msg.IDs); err != nil {
		if !isRejection(err) {
			slog.Error("ReorderItems failed", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		slog.Info("ReorderItems rejected", "reason", err)
		res.Accepted, res.Reason = false, err.Error()
	}
	res.State = toState(s.session.Snapshot())
	return connect.NewResponse(res), nil
}

// BeginCreate starts a fresh draft.
func (s *EditorService) BeginCreate(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error) {
	slog.Info("BeginCreate request received")
	s.session.BeginCreate()
	return s.draftResponse(), nil
}

// BeginEdit copies an item into the draft.
func (s *EditorService) BeginEdit(ctx context.Context, req *connect.Request[api.BeginEditRequest]) (*connect.Response[api.DraftResponse], error) {
	slog.Info("BeginEdit request received", "item_id", req.Msg.ID)

	if err := s.session.BeginEdit(req.Msg.ID); err != nil {
		slog.Warn("BeginEdit failed", "item_id", req.Msg.ID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	return s.draftResponse(), nil
}

// CancelEdit discards the draft.
func (s *EditorService) CancelEdit(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.DraftResponse], error) {
	slog.Info("CancelEdit request received")
	s.session.CancelEdit()
	return s.draftResponse(), nil
}

// SetDraftField sets name, unit or rate text.
func (s *EditorService) SetDraftField(ctx context.Context, req *connect.Request[api.SetDraftFieldRequest]) (*connect.Response[api.DraftResponse], error) {
	slog.Debug("SetDraftField request received", "field", req.Msg.Field)

	if err := s.session.SetDraftField(req.Msg.Field, req.Msg.Value); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return s.draftResponse(), nil
}

// SetDraftImage decodes an uploaded image into the draft and waits for the
// merge. Empty data clears the image.
func (s *EditorService) SetDraftImage(ctx context.Context, req *connect.Request[api.SetDraftImageRequest]) (*connect.Response[api.DraftResponse], error) {
	slog.Info("SetDraftImage request received", "bytes", len(req.Msg.Data))

	var r io.Reader
	if len(req.Msg.Data) > 0 {
		r = bytes.NewReader(req.Msg.Data)
	}
	select {
	case err := <-s.session.SetDraftImage(ctx, r):
		if err != nil {
			slog.Warn("SetDraftImage failed", "error", err)
			return nil, connect.NewError(imageErrorCode(err), err)
		}
	case <-ctx.Done():
		return nil, connect.NewError(connect.CodeCanceled, ctx.Err())
	}
	return s.draftResponse(), nil
}

func imageErrorCode(err error) connect.Code {
	switch {
	case errors.Is(err, draft.ErrSuperseded):
		return connect.CodeAborted
	case errors.Is(err, media.ErrNotImage), errors.Is(err, media.ErrTooLarge):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}

func (s *EditorService) draftResponse() *connect.Response[api.DraftResponse] {
	d, editing := s.session.Draft()
	return connect.NewResponse(&api.DraftResponse{Draft: toDraft(d), EditingID: editing})
}

// Reset restores defaults and clears the store.
func (s *EditorService) Reset(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetStateResponse], error) {
	slog.Info("Reset request received")
	s.session.Reset(ctx)
	return connect.NewResponse(&api.GetStateResponse{State: toState(s.session.Snapshot())}), nil
}
