package handler

import (
	"sync"

	"github.com/shuchit-srx/stoory-backend-sub003/dto"
	"github.com/sirupsen/logrus"
)

// RoomConn is the part of a websocket connection the hub writes to.
type RoomConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type client struct {
	userID string
	conn   RoomConn
	mu     sync.Mutex
}

func (cl *client) write(msg interface{}) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(msg)
}

// Hub tracks live connections per engagement and fans room events out to
// them.
type Hub struct {
	sync.Mutex
	Clients map[string]map[RoomConn]*client // engagementId -> connections
	Log     *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		Clients: make(map[string]map[RoomConn]*client),
		Log:     logger,
	}
}

func (hub *Hub) Register(engagementID, userID string, conn RoomConn) {
	hub.Lock()
	defer hub.Unlock()

	if hub.Clients[engagementID] == nil {
		hub.Clients[engagementID] = make(map[RoomConn]*client)
	}
	hub.Clients[engagementID][conn] = &client{userID: userID, conn: conn}
	hub.Log.WithFields(logrus.Fields{
		"engagementId": engagementID,
		"userId":       userID,
		"connections":  len(hub.Clients[engagementID]),
	}).Info("Client joined chat room")
}

func (hub *Hub) Remove(engagementID string, conn RoomConn) {
	hub.Lock()
	defer hub.Unlock()
	hub.remove(engagementID, conn)
}

func (hub *Hub) remove(engagementID string, conn RoomConn) {
	if clients, ok := hub.Clients[engagementID]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(hub.Clients, engagementID)
		}
	}
}

// writeTo sends v to a single registered connection, serialized with
// broadcasts to it.
func (hub *Hub) writeTo(engagementID string, conn RoomConn, v interface{}) {
	hub.Lock()
	cl, ok := hub.Clients[engagementID][conn]
	hub.Unlock()
	if !ok {
		return
	}
	if err := cl.write(v); err != nil {
		hub.Log.WithError(err).WithField("engagementId", engagementID).Warn("Error writing to connection")
	}
}

// Connections counts the live connections of an engagement's room.
func (hub *Hub) Connections(engagementID string) int {
	hub.Lock()
	defer hub.Unlock()
	return len(hub.Clients[engagementID])
}

// Broadcast writes msg to every connection in the room and reports whether
// a connection of someone other than authorID received it. Connections that
// fail to accept the write are dropped.
func (hub *Hub) Broadcast(engagementID, authorID string, msg dto.BroadcastMessage) (deliveredToOther bool) {
	hub.Lock()
	targets := make([]*client, 0, len(hub.Clients[engagementID]))
	for _, cl := range hub.Clients[engagementID] {
		targets = append(targets, cl)
	}
	hub.Unlock()

	var failed []*client
	for _, cl := range targets {
		if err := cl.write(msg); err != nil {
			hub.Log.WithError(err).WithField("engagementId", engagementID).Warn("Error broadcasting message")
			failed = append(failed, cl)
			continue
		}
		if cl.userID != authorID {
			deliveredToOther = true
		}
	}

	if len(failed) > 0 {
		hub.Lock()
		for _, cl := range failed {
			_ = cl.conn.Close()
			hub.remove(engagementID, cl.conn)
		}
		hub.Unlock()
	}
	return deliveredToOther
}
