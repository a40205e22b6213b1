package entity

type ReconcileEventRequest struct {
	EventID string `json:"event_id"`
}
