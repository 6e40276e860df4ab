package helpers

import (
	"context"
	"fmt"
	"strings"
	"time"

	mailtpl "github.com/oksasatya/go-project-marketplace/pkg/mailer/templates"
)

const emailTimeLayout = "02 January 2006, 15:04 MST"

// LocalizeTimesIfPossible rewrites PurchasedAtText in the timezone of the
// buyer IP and fills Location when it is empty. Lookup failures leave data untouched.
func LocalizeTimesIfPossible(ctx context.Context, resolver mailtpl.GeoResolver, data map[string]any) {
	if resolver == nil {
		return
	}
	ipVal, ok := data["IP"]
	if !ok || fmt.Sprintf("%v", ipVal) == "" {
		return
	}
	g, err := resolver.Lookup(ctx, fmt.Sprintf("%v", ipVal))
	if err != nil {
		return
	}
	if loc, ok := data["Location"]; !ok || fmt.Sprintf("%v", loc) == "" {
		data["Location"] = mailtpl.FormatGeo(g)
	}
	if strings.TrimSpace(g.Timezone) == "" {
		return
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return
	}
	if v, ok := data["PurchasedAt"]; ok {
		if t, ok2 := parseTimeAny(v); ok2 {
			data["PurchasedAtText"] = t.In(loc).Format(emailTimeLayout)
		}
	}
}

func parseTimeAny(v any) (time.Time, bool) {
	s := fmt.Sprintf("%v", v)
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05 -0700",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
