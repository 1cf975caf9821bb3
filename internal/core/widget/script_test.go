package widget

import (
	"testing"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
)

func TestGenerateEmbedScriptExactOutput(t *testing.T) {
	clientID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	cfg := &models.WidgetConfig{
		Position:       "bottom-left",
		PrimaryColor:   "#FF0000",
		WelcomeMessage: `Hi! We're "open" <today>`,
		LogoURL:        "https://cdn.example.com/logo.png",
		Enabled:        true,
	}

	got := GenerateEmbedScript("https://app.example.com/widget.js", "https://api.example.com", clientID, cfg)
	want := `<script src="https://app.example.com/widget.js" data-client-id="6ba7b810-9dad-11d1-80b4-00c04fd430c8" data-api-url="https://api.example.com" data-position="bottom-left" data-primary-color="#FF0000" data-welcome-message="Hi! We&#39;re &quot;open&quot; &lt;today&gt;" data-logo-url="https://cdn.example.com/logo.png" data-enabled="true" async></script>`

	if got != want {
		t.Fatalf("embed script mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestGenerateEmbedScriptDefaultsAndDisabled(t *testing.T) {
	clientID := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	got := GenerateEmbedScript("https://app.example.com/widget.js", "https://api.example.com", clientID, &models.WidgetConfig{})
	want := `<script src="https://app.example.com/widget.js" data-client-id="6ba7b810-9dad-11d1-80b4-00c04fd430c8" data-api-url="https://api.example.com" data-position="bottom-right" data-primary-color="#4F46E5" data-welcome-message="" data-logo-url="" data-enabled="false" async></script>`

	if got != want {
		t.Fatalf("embed script mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestGenerateShareQR(t *testing.T) {
	png, err := GenerateShareQR("https://app.example.com", uuid.New(), 0)
	if err != nil {
		t.Fatalf("GenerateShareQR: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("QR PNG is empty")
	}
	// PNG magic bytes
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG, first bytes: %v", png[:4])
	}
}
