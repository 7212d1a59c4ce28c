package websocket

import (
	"log"
	"net/http"
	"sync"

	"vitascreen/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotificationClient represents a client connected for live notification updates
type NotificationClient struct {
	Conn    *websocket.Conn
	Email   string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (nc *NotificationClient) SafeWriteJSON(v interface{}) error {
	nc.writeMu.Lock()
	defer nc.writeMu.Unlock()
	return nc.Conn.WriteJSON(v)
}

var (
	notificationClients = make(map[*NotificationClient]bool)
	notificationMutex   sync.RWMutex
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NotificationsHandler upgrades the connection and keeps it registered until
// the client disconnects. Auth middleware has already set userEmail.
func NotificationsHandler(c *gin.Context) {
	email := c.GetString("userEmail")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade notification websocket: %v", err)
		return
	}

	client := &NotificationClient{Conn: conn, Email: email}
	registerNotificationClient(client)
	defer unregisterNotificationClient(client)

	// Drain reads until the peer closes; the feed is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func registerNotificationClient(client *NotificationClient) {
	notificationMutex.Lock()
	defer notificationMutex.Unlock()
	notificationClients[client] = true
	log.Printf("Notification client registered. Total clients: %d", len(notificationClients))
}

func unregisterNotificationClient(client *NotificationClient) {
	notificationMutex.Lock()
	defer notificationMutex.Unlock()
	delete(notificationClients, client)
	client.Conn.Close()
	log.Printf("Notification client unregistered. Total clients: %d", len(notificationClients))
}

// BroadcastNotification pushes a new notification to the owning user's open
// connections. Delivery is best effort; the feed endpoint remains the source
// of truth.
func BroadcastNotification(notification models.Notification) {
	notificationMutex.RLock()
	defer notificationMutex.RUnlock()

	for client := range notificationClients {
		if client.Email != notification.Email {
			continue
		}
		if err := client.SafeWriteJSON(notification); err != nil {
			log.Printf("Error pushing notification to client: %v", err)
			go unregisterNotificationClient(client)
		}
	}
}
