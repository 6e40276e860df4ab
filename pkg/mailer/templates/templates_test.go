package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-project-marketplace/config"
)

func testConfig() *config.Config {
	return &config.Config{AppName: "Marketplace", AppURL: "https://market.test/", CompanyName: "Acme"}
}

func TestRender_Welcome(t *testing.T) {
	data := NewWelcomeData(testConfig(), "Jane", "jane@example.com")

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Marketplace, Jane", subject)
	assert.Contains(t, text, "jane@example.com")
	assert.Contains(t, text, "Acme")
	assert.Contains(t, html, "https://market.test/")
	assert.NotContains(t, text, "<no value>")
}

func TestRender_ProjectPurchased(t *testing.T) {
	data := NewProjectPurchasedData(testConfig(), "Jane", "jane@example.com",
		WithProject("p1", "AI-powered Task Manager"),
		WithBuyer("John", "john@example.com"),
		WithAmount(50000, "usd"),
		WithPurchasedAt(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
	)

	subject, text, html, err := Render(ProjectPurchased, data)
	require.NoError(t, err)

	assert.Equal(t, `John is buying "AI-powered Task Manager"`, subject)
	assert.Contains(t, text, "500.00 USD")
	assert.Contains(t, text, "01 March 2024, 10:00 UTC")
	assert.Contains(t, text, "https://market.test/project/p1")
	assert.NotContains(t, text, "From:")
	assert.Contains(t, html, "john@example.com")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestWithAmount(t *testing.T) {
	var d EmailData
	WithAmount(1999, "eur")(&d)
	assert.Equal(t, "19.99 EUR", d.Amount)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", ""))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, "v", defaultFn("x", "v"))
	assert.Equal(t, 3, defaultFn("x", 3))
}
