// Package api defines the ratecraft.v1 request and response messages.
//
// Messages are plain Go structs carried as JSON by the Connect protocol;
// parameterless calls take google.protobuf.Empty.
package api

// Item is one priced line on the rate card.
type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Rate  float64 `json:"rate"`
	Image string  `json:"image,omitempty"`
}

// Draft is the unvalidated form state. Rate is text.
type Draft struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Rate  string `json:"rate"`
	Image string `json:"image,omitempty"`
}

type Settings struct {
	Title     string  `json:"title"`
	Currency  string  `json:"currency"`
	Accent    string  `json:"accent"`
	Logo      string  `json:"logo,omitempty"`
	Template  string  `json:"template"`
	Density   string  `json:"density"`
	Note      string  `json:"note"`
	Font      string  `json:"font"`
	TitleSize float64 `json:"titleSize"`
	PriceSize float64 `json:"priceSize"`
	Align     string  `json:"align"`
}

// State is the whole editor state.
type State struct {
	Settings  Settings `json:"settings"`
	Items     []Item   `json:"items"`
	Draft     Draft    `json:"draft"`
	EditingID string   `json:"editingId,omitempty"`
}

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// EditorService

type GetStateResponse struct {
	State State `json:"state"`
}

type AddItemRequest struct {
	Draft Draft `json:"draft"`
}

type UpdateItemRequest struct {
	ID    string `json:"id"`
	Draft Draft  `json:"draft"`
}

// ItemResponse reports a commit. A draft that fails validation is not an
// error: Accepted is false and Reason says why.
type ItemResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Item     *Item  `json:"item,omitempty"`
	State    State  `json:"state"`
}

type RemoveItemRequest struct {
	ID string `json:"id"`
}

type MoveItemRequest struct {
	ID        string `json:"id"`
	Direction string `json:"direction"` // "up" or "down"
}

type ReorderItemsRequest struct {
	IDs []string `json:"ids"`
}

// MutationResponse reports a list change. Accepted is false for no-ops.
type MutationResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	State    State  `json:"state"`
}

type BeginEditRequest struct {
	ID string `json:"id"`
}

type SetDraftFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SetDraftImageRequest carries raw image bytes. Empty data clears the image.
type SetDraftImageRequest struct {
	Data []byte `json:"data,omitempty"`
}

type DraftResponse struct {
	Draft     Draft  `json:"draft"`
	EditingID string `json:"editingId,omitempty"`
}

// SettingsService

type SettingsResponse struct {
	Settings Settings `json:"settings"`
}

// UpdateSettingsRequest is a partial update; absent fields are unchanged.
type UpdateSettingsRequest struct {
	Title     *string  `json:"title,omitempty"`
	Currency  *string  `json:"currency,omitempty"`
	Accent    *string  `json:"accent,omitempty"`
	Note      *string  `json:"note,omitempty"`
	Template  *string  `json:"template,omitempty"`
	Density   *string  `json:"density,omitempty"`
	Font      *string  `json:"font,omitempty"`
	Align     *string  `json:"align,omitempty"`
	TitleSize *float64 `json:"titleSize,omitempty"`
	PriceSize *float64 `json:"priceSize,omitempty"`
}

// SetLogoRequest carries raw image bytes. Empty data removes the logo.
type SetLogoRequest struct {
	Data []byte `json:"data,omitempty"`
}

type ListCurrenciesResponse struct {
	Currencies []Currency `json:"currencies"`
}

// ExportService

type ExportRequest struct {
	// Filename overrides the live title as the artifact name stem.
	Filename *string `json:"filename,omitempty"`
}

// ExportResponse holds the artifact. Exported is false when there was
// nothing to capture.
type ExportResponse struct {
	Exported    bool   `json:"exported"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

type ExportStatusResponse struct {
	State string `json:"state"`
	Busy  bool   `json:"busy"`
}
