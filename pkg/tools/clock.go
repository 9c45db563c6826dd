package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ajvoice/go-aj/internal/log"
)

// timezones is the fuzzy-resolution list, sorted so the first substring
// hit is always the same zone.
var timezones = []string{
	"Africa/Cairo",
	"Africa/Casablanca",
	"Africa/Johannesburg",
	"Africa/Lagos",
	"Africa/Nairobi",
	"America/Anchorage",
	"America/Argentina/Buenos_Aires",
	"America/Bogota",
	"America/Caracas",
	"America/Chicago",
	"America/Denver",
	"America/Halifax",
	"America/Havana",
	"America/Lima",
	"America/Los_Angeles",
	"America/Mexico_City",
	"America/New_York",
	"America/Phoenix",
	"America/Santiago",
	"America/Sao_Paulo",
	"America/St_Johns",
	"America/Toronto",
	"America/Vancouver",
	"Asia/Baghdad",
	"Asia/Bangkok",
	"Asia/Beirut",
	"Asia/Colombo",
	"Asia/Dhaka",
	"Asia/Dubai",
	"Asia/Hong_Kong",
	"Asia/Istanbul",
	"Asia/Jakarta",
	"Asia/Jerusalem",
	"Asia/Kabul",
	"Asia/Karachi",
	"Asia/Kathmandu",
	"Asia/Kolkata",
	"Asia/Kuala_Lumpur",
	"Asia/Kuwait",
	"Asia/Manila",
	"Asia/Qatar",
	"Asia/Riyadh",
	"Asia/Seoul",
	"Asia/Shanghai",
	"Asia/Singapore",
	"Asia/Taipei",
	"Asia/Tashkent",
	"Asia/Tehran",
	"Asia/Tokyo",
	"Asia/Yangon",
	"Atlantic/Azores",
	"Atlantic/Reykjavik",
	"Australia/Adelaide",
	"Australia/Brisbane",
	"Australia/Darwin",
	"Australia/Hobart",
	"Australia/Melbourne",
	"Australia/Perth",
	"Australia/Sydney",
	"Europe/Amsterdam",
	"Europe/Athens",
	"Europe/Belgrade",
	"Europe/Berlin",
	"Europe/Brussels",
	"Europe/Bucharest",
	"Europe/Budapest",
	"Europe/Copenhagen",
	"Europe/Dublin",
	"Europe/Helsinki",
	"Europe/Kyiv",
	"Europe/Lisbon",
	"Europe/London",
	"Europe/Madrid",
	"Europe/Moscow",
	"Europe/Oslo",
	"Europe/Paris",
	"Europe/Prague",
	"Europe/Rome",
	"Europe/Stockholm",
	"Europe/Vienna",
	"Europe/Warsaw",
	"Europe/Zurich",
	"Pacific/Auckland",
	"Pacific/Fiji",
	"Pacific/Guam",
	"Pacific/Honolulu",
	"UTC",
}

// timeTool reports the current wall clock in a requested timezone.
func timeTool(cfg Config) Tool {
	return Tool{
		Name:        "get_time",
		Description: "Get the current time in a specific timezone.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"timezone": map[string]any{
					"type":        "string",
					"description": "Timezone name (e.g., \"America/New_York\", \"Europe/London\", \"Asia/Tokyo\")",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			name := strings.TrimSpace(stringArg(args, "timezone", "UTC"))
			if name == "" {
				name = "UTC"
			}

			zone, note := resolveTimezone(name)
			loc, err := time.LoadLocation(zone)
			if err != nil {
				log.Error("timezone load failed", "timezone", zone, "error", err)
				return fmt.Sprintf("An error occurred while getting time: %v", err), nil
			}

			result := fmt.Sprintf("Current time in %s: %s", zone, cfg.Now().In(loc).Format("2006-01-02 15:04:05 MST"))
			if note != "" {
				result += fmt.Sprintf(" (Note: %s)", note)
			}
			log.Debug("time reported", "timezone", zone)
			return result, nil
		},
	}
}

// resolveTimezone returns the zone to use and a note when the input was
// not an exact IANA name.
func resolveTimezone(name string) (zone, note string) {
	if _, err := time.LoadLocation(name); err == nil {
		return name, ""
	}
	lower := strings.ToLower(name)
	for _, tz := range timezones {
		if strings.Contains(strings.ToLower(tz), lower) {
			return tz, "Using closest match: " + tz
		}
	}
	return "UTC", "Invalid timezone. Using UTC instead."
}
