package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContactAPI exposes the general support channels.
type ContactAPI struct {
	contact Contact
}

func NewContactAPI(contact Contact) ContactAPI {
	if contact.SupportWhatsApp != "" && contact.SupportWhatsAppLink == "" {
		contact.SupportWhatsAppLink = "https://wa.me/" + contact.SupportWhatsApp
	}
	return ContactAPI{contact: contact}
}

// Get /v1/contact
// Returns support contacts
func (api *ContactAPI) GetContact(c *gin.Context) {
	c.JSON(http.StatusOK, api.contact)
}
