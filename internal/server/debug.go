package server

import (
	"encoding/json"
	"net/http"

	"underkingdom-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/world", h.handleWorldSummary)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
}

// /debug/world - размеры карты, тик и количество сущностей
func (h *DebugHandler) handleWorldSummary(w http.ResponseWriter, r *http.Request) {
	type WorldSummary struct {
		Width       int `json:"width"`
		Height      int `json:"height"`
		Tick        int `json:"tick"`
		EntityCount int `json:"entity_count"`
		Subscribers int `json:"subscribers"`
	}

	summary := WorldSummary{
		Width:       h.Service.World.Width,
		Height:      h.Service.World.Height,
		Tick:        h.Service.Tick(),
		EntityCount: len(h.Service.Entities),
		Subscribers: h.Service.Hub.SubscriberCount(),
	}
	writeJSON(w, summary)
}

// /debug/entities - слепок всех сущностей, включая скрытое состояние AI
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Snapshot())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
