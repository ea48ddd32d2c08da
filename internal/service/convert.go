package service

import (
	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/models"
	"github.com/mmynk/ratecraft/pkg/api"
)

func toItem(it models.Item) api.Item {
	return api.Item{ID: it.ID, Name: it.Name, Unit: it.Unit, Rate: it.Rate, Image: it.Image}
}

func toItems(items []models.Item) []api.Item {
	out := make([]api.Item, len(items))
	for i, it := range items {
		out[i] = toItem(it)
	}
	return out
}

func toDraft(d models.Draft) api.Draft {
	return api.Draft{Name: d.Name, Unit: d.Unit, Rate: d.Rate, Image: d.Image}
}

func fromDraft(d api.Draft) models.Draft {
	return models.Draft{Name: d.Name, Unit: d.Unit, Rate: d.Rate, Image: d.Image}
}

func toSettings(s models.Settings) api.Settings {
	return api.Settings{
		Title:     s.Title,
		Currency:  s.Currency,
		Accent:    s.Accent,
		Logo:      s.Logo,
		Template:  string(s.Template),
		Density:   string(s.Density),
		Note:      s.Note,
		Font:      string(s.Font),
		TitleSize: s.TitleSize,
		PriceSize: s.PriceSize,
		Align:     string(s.Align),
	}
}

func toState(snap editor.Snapshot) api.State {
	return api.State{
		Settings:  toSettings(snap.Settings),
		Items:     toItems(snap.Items),
		Draft:     toDraft(snap.Draft),
		EditingID: snap.Editing,
	}
}

func toPatch(req *api.UpdateSettingsRequest) editor.Patch {
	p := editor.Patch{
		Title:     req.Title,
		Currency:  req.Currency,
		Accent:    req.Accent,
		Note:      req.Note,
		TitleSize: req.TitleSize,
		PriceSize: req.PriceSize,
	}
	if req.Template != nil {
		v := models.Template(*req.Template)
		p.Template = &v
	}
	if req.Density != nil {
		v := models.Density(*req.Density)
		p.Density = &v
	}
	if req.Font != nil {
		v := models.Font(*req.Font)
		p.Font = &v
	}
	if req.Align != nil {
		v := models.Align(*req.Align)
		p.Align = &v
	}
	return p
}
