package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

const (
	// DefaultBaseURL is the chat service deep-link prefix.
	DefaultBaseURL = "https://wa.me/"
	// Greeting opens every order message.
	Greeting = "Hello! I want to confirm my order:"
	// CurrencyLabel prefixes rendered prices.
	CurrencyLabel = "Rs"
	// EncodedNewline is the line-break token the chat service expects in links.
	EncodedNewline = "%0A"
	// EmptyCartMessage is surfaced when checkout is attempted on an empty cart.
	EmptyCartMessage = "Cart is empty"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidDestination = errors.New("destination must contain only digits and hyphens")
	ErrInvalidBaseURL     = errors.New("order link base URL must be an absolute http(s) URL")
)

// FormatPrice renders a whole-unit price with the currency label.
func FormatPrice(price int64) string {
	return CurrencyLabel + " " + strconv.FormatInt(price, 10)
}

// FormatLine renders the 1-indexed order line for item.
func FormatLine(position int, item cartdomain.CartItem) string {
	return fmt.Sprintf("%d) %s - %s", position, item.Name, FormatPrice(item.Price))
}

// FormatOrderMessage renders the order as plain text: the greeting, a blank
// line, then one line per item in cart order. Every line ends with "\n".
func FormatOrderMessage(items []cartdomain.CartItem) string {
	var b strings.Builder
	b.WriteString(Greeting)
	b.WriteString("\n\n")
	for i, item := range items {
		b.WriteString(FormatLine(i+1, item))
		b.WriteString("\n")
	}
	return b.String()
}

// EncodeMessage escapes text for a URL query component. Spaces become %20 and
// line-breaks become EncodedNewline.
func EncodeMessage(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// ValidateDestination accepts phone numbers in international format written
// as digits with optional hyphens, without "+" or spaces.
func ValidateDestination(destination string) error {
	if destination == "" || destination[0] == '-' || destination[len(destination)-1] == '-' {
		return ErrInvalidDestination
	}
	for _, r := range destination {
		if (r < '0' || r > '9') && r != '-' {
			return ErrInvalidDestination
		}
	}
	return nil
}

// ValidateBaseURL checks the deep-link prefix.
func ValidateBaseURL(base string) error {
	parsed, err := url.Parse(base)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}

// BuildCheckoutLink composes base + destination + "?text=" + the encoded
// order message. Callers refuse empty carts before getting here; the check
// is repeated so an empty link is never produced.
func BuildCheckoutLink(base, destination string, items []cartdomain.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if err := ValidateBaseURL(base); err != nil {
		return "", err
	}
	if err := ValidateDestination(destination); err != nil {
		return "", err
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + destination + "?text=" + EncodeMessage(FormatOrderMessage(items)), nil
}
