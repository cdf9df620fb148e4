package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatNaira renders a whole-naira amount with thousands separators,
// e.g. ₦12,500.
func FormatNaira(amount decimal.Decimal) string {
	return "₦" + groupThousands(amount.Round(0).StringFixed(0))
}

// FormatNairaDetailed renders an amount with kobo, e.g. ₦12,500.00.
func FormatNairaDetailed(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	return "₦" + groupThousands(parts[0]) + "." + parts[1]
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatCountdown buckets a time-to-close into a coarse human label.
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}

	totalMinutes := int(remaining.Minutes())
	days := totalMinutes / (60 * 24)
	hours := (totalMinutes % (60 * 24)) / 60
	mins := totalMinutes % 60

	if days > 0 {
		return fmt.Sprintf("Closes in %dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("Closes in %dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("Closes in %dm", mins)
	}
	return "Closes soon"
}

// FormatMinutesSeconds renders a short expiry countdown, e.g. "4m 09s",
// clamped at zero.
func FormatMinutesSeconds(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Seconds())
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}

// TimeAgo renders a relative timestamp for transaction rows.
func TimeAgo(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	if diff < time.Minute {
		return "Just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
}
