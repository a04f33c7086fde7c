package handlers

import (
	"log"
	"net/http"

	"assessment-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ActivationPublisher receives an event after every successful activation.
type ActivationPublisher interface {
	PublishActivation(event ws.ActivationEvent)
}

var activationKinds = map[string]bool{
	ws.AllKinds:    true,
	"assessment":   true,
	"question_set": true,
	"option_set":   true,
}

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleActivations godoc
// @Summary      WebSocket feed of activations
// @Description  Receives {"type":"activated","data":{kind,id,scope_id,version}} whenever a version is activated
// @Tags         websocket
// @Param        kind query string false "assessment, question_set or option_set; all kinds when omitted"
// @Router       /ws/activations [get]
func (h *WSHandler) HandleActivations(c *gin.Context) {
	kind := c.DefaultQuery("kind", ws.AllKinds)
	if !activationKinds[kind] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid kind"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(kind, conn)
	defer h.hub.RemoveConnection(kind, conn)

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
