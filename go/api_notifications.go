package storefrontserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	notifapp "github.com/Apurer/go-gin-storefront/internal/domains/notifications/application"
	notifdomain "github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
)

// NotificationFeed is the emitter surface the toaster needs.
type NotificationFeed interface {
	Active() []notifdomain.Notification
	Subscribe(handler notifapp.Handler) (unsubscribe func())
}

// NotificationsAPI renders active notifications.
type NotificationsAPI struct {
	feed NotificationFeed
}

func NewNotificationsAPI(feed NotificationFeed) NotificationsAPI {
	return NotificationsAPI{feed: feed}
}

// Get /v1/notifications
// Lists the active notifications in insertion order
func (api *NotificationsAPI) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, api.feed.Active())
}

// Get /v1/notifications/stream
// Streams the active set as server-sent events until the client goes away
func (api *NotificationsAPI) StreamNotifications(c *gin.Context) {
	updates := make(chan []notifdomain.Notification, 1)
	unsubscribe := api.feed.Subscribe(func(active []notifdomain.Notification) {
		// keep only the latest set; a slow client skips intermediate states
		for {
			select {
			case updates <- active:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case active := <-updates:
			c.SSEvent("notifications", active)
			return true
		}
	})
}
