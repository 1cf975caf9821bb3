package widget

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
)

// GenerateEmbedScript renders the script tag a tenant pastes into their
// own site. The third-party loader parses this output literally, so
// attribute order, boolean formatting, and escaping are a fixed
// contract: attributes appear in the order below, booleans render as
// the strings "true"/"false", and the welcome message is HTML-escaped.
func GenerateEmbedScript(scriptURL, apiURL string, clientID uuid.UUID, cfg *models.WidgetConfig) string {
	position := cfg.Position
	if position == "" {
		position = "bottom-right"
	}
	color := cfg.PrimaryColor
	if color == "" {
		color = "#4F46E5"
	}

	enabled := "false"
	if cfg.Enabled {
		enabled = "true"
	}

	return fmt.Sprintf(
		`<script src="%s" data-client-id="%s" data-api-url="%s" data-position="%s" data-primary-color="%s" data-welcome-message="%s" data-logo-url="%s" data-enabled="%s" async></script>`,
		scriptURL,
		clientID.String(),
		apiURL,
		position,
		color,
		escapeAttr(cfg.WelcomeMessage),
		cfg.LogoURL,
		enabled,
	)
}

// escapeAttr escapes the characters that would break out of a
// double-quoted HTML attribute
func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"\"", "&quot;",
		"'", "&#39;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}
