package dto

// TownWire is a town as delivered by the API.
type TownWire struct {
	DominionWire
	RequiredTitle int64     `json:"RequiredTitle"`
	Districts     []RefWire `json:"Districts,omitempty"`
}

// TownView is the view shape of a town.
type TownView struct {
	DominionView
	RequiredTitle int64     `json:"requiredTitle"`
	Districts     []RefView `json:"districts"`
}

// TownCreate is the create payload for a town.
type TownCreate struct {
	DominionCreate
	RequiredTitle int64 `json:"RequiredTitle"`
}

// RefWire is a shallow id/name summary of another entity.
type RefWire struct {
	Id   int64  `json:"Id"`
	Name string `json:"Name"`
}

// RefView is the view shape of RefWire.
type RefView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TownFromWire(w *TownWire) *TownView {
	if w == nil {
		return nil
	}
	v := &TownView{
		DominionView:  DominionFromWire(w.DominionWire),
		RequiredTitle: w.RequiredTitle,
		Districts:     make([]RefView, 0, len(w.Districts)),
	}
	for _, d := range w.Districts {
		v.Districts = append(v.Districts, RefView{ID: d.Id, Name: d.Name})
	}
	return v
}

func TownToWire(v *TownView) *TownWire {
	if v == nil {
		return nil
	}
	w := &TownWire{
		DominionWire:  DominionToWire(v.DominionView),
		RequiredTitle: v.RequiredTitle,
	}
	for _, d := range v.Districts {
		w.Districts = append(w.Districts, RefWire{Id: d.ID, Name: d.Name})
	}
	return w
}

func TownToCreate(v *TownView) *TownCreate {
	if v == nil {
		return nil
	}
	return &TownCreate{
		DominionCreate: DominionToCreate(v.DominionView),
		RequiredTitle:  v.RequiredTitle,
	}
}
