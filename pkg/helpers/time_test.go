package helpers

import (
	"context"
	"errors"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"

	mailtpl "github.com/oksasatya/go-project-marketplace/pkg/mailer/templates"
)

type stubResolver struct {
	geo mailtpl.Geo
	err error
}

func (s stubResolver) Lookup(context.Context, string) (mailtpl.Geo, error) {
	return s.geo, s.err
}

func TestLocalizeTimesIfPossible(t *testing.T) {
	data := map[string]any{
		"IP":          "203.0.113.7",
		"PurchasedAt": "2024-03-01T10:00:00Z",
	}
	r := stubResolver{geo: mailtpl.Geo{City: "Jakarta", Country: "Indonesia", Timezone: "Asia/Jakarta"}}

	LocalizeTimesIfPossible(context.Background(), r, data)

	assert.Equal(t, "Jakarta, Indonesia", data["Location"])
	assert.Equal(t, "01 March 2024, 17:00 WIB", data["PurchasedAtText"])
}

func TestLocalizeTimesIfPossible_NoIPOrLookupFailure(t *testing.T) {
	data := map[string]any{"PurchasedAt": "2024-03-01T10:00:00Z", "PurchasedAtText": "orig"}
	LocalizeTimesIfPossible(context.Background(), stubResolver{}, data)
	assert.Equal(t, "orig", data["PurchasedAtText"])

	data["IP"] = "203.0.113.7"
	LocalizeTimesIfPossible(context.Background(), stubResolver{err: errors.New("timeout")}, data)
	assert.Equal(t, "orig", data["PurchasedAtText"])
	assert.NotContains(t, data, "Location")
}
