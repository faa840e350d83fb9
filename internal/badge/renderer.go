// Package badge renders the digital identity cards attached to badge
// emails. The production site layers richer branding on top; this default
// renderer covers the collaborator contract.
package badge

import (
	"fmt"
	"strings"
)

type Card struct {
	RecipientName string
	EventTitle    string
	EventDate     string
	EventLocation string
	BadgeType     string
}

// Renderer produces a vector image for a badge card.
type Renderer interface {
	Render(card Card) string
}

type colours struct {
	primary   string
	secondary string
}

var badgeColours = map[string]colours{
	"Attendee":  {primary: "#20b2aa", secondary: "#001f3f"},
	"Volunteer": {primary: "#3498db", secondary: "#001f3f"},
	"Speaker":   {primary: "#ffa500", secondary: "#001f3f"},
	"Sponsor":   {primary: "#9b59b6", secondary: "#001f3f"},
	"Organiser": {primary: "#e74c3c", secondary: "#001f3f"},
}

// SVGRenderer draws a 500x300 card with the community palette.
type SVGRenderer struct{}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

func (sr *SVGRenderer) Render(card Card) string {
	c, ok := badgeColours[card.BadgeType]
	if !ok {
		c = badgeColours["Attendee"]
	}

	name := escSVG(truncate(card.RecipientName, 40))
	title := escSVG(truncate(card.EventTitle, 50))
	date := escSVG(truncate(card.EventDate, 30))
	location := escSVG(truncate(card.EventLocation, 45))
	badgeType := escSVG(card.BadgeType)

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 300" width="500" height="300">
  <rect width="500" height="300" rx="16" fill="%s"/>
  <rect y="0" width="500" height="6" rx="3" fill="%s"/>
  <text x="30" y="42" font-family="system-ui, sans-serif" font-size="13" fill="#999" letter-spacing="2">GLOBAL SECURITY COMMUNITY</text>
  <text x="30" y="75" font-family="system-ui, sans-serif" font-size="13" fill="%s" font-weight="bold">%s</text>
  <text x="30" y="120" font-family="system-ui, sans-serif" font-size="28" fill="white" font-weight="bold">%s</text>
  <line x1="30" y1="140" x2="470" y2="140" stroke="%s" stroke-width="1" opacity="0.4"/>
  <text x="30" y="172" font-family="system-ui, sans-serif" font-size="16" fill="%s" font-weight="600">%s</text>
  <text x="30" y="200" font-family="system-ui, sans-serif" font-size="13" fill="#ccc">%s</text>
  <text x="30" y="222" font-family="system-ui, sans-serif" font-size="13" fill="#ccc">%s</text>
  <text x="30" y="272" font-family="system-ui, sans-serif" font-size="10" fill="#666">Verified by Global Security Community</text>
</svg>`,
		c.secondary, c.primary,
		c.primary, strings.ToUpper(badgeType),
		name,
		c.primary,
		c.primary, title,
		date, location)
}

func escSVG(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
