package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Room lifecycle
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rooms_created_total",
			Help: "Total chat rooms created",
		},
	)

	RoomCreateRaces = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_room_create_races_total",
			Help: "Room creations that lost the insert race and returned the existing room",
		},
	)

	RoomsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_rooms_closed_total",
			Help: "Total chat rooms closed",
		},
	)

	// Messages
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_sent_total",
			Help: "Total messages accepted",
		},
	)

	SequenceConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_sequence_conflicts_total",
			Help: "Message inserts retried after a (room_id, sequence_number) conflict",
		},
	)

	ReadReceipts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_read_receipts_total",
			Help: "Total read receipts recorded",
		},
	)

	// Notifications
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_notifications_total",
			Help: "Notification bridge outcomes",
		},
		[]string{"event", "outcome"}, // outcome: "sent", "suppressed", "failed"
	)
)
