package websocket

import (
	"log"
	"net/http"
	"time"

	"cryptofolio-backend/internal/domain"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Handler streams the market snapshot to dashboard clients: the full
// snapshot on connect, then again on every tick.
type Handler struct {
	repo domain.MarketRepository
}

func NewHandler(repo domain.MarketRepository) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	log.Println("New Client Connected")

	// Send initial data immediately
	markets := h.repo.GetMarkets()
	if err := conn.WriteJSON(markets); err != nil {
		log.Println("Write error:", err)
		return
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		current := h.repo.GetMarkets()
		if err := conn.WriteJSON(current); err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}
