package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// printYAML пишет v в вывод как YAML документ
func (c *Cli) printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = c.io.Write(data)
	return err
}

func (c *Cli) yamlOutput() bool {
	return c.globals.Output == OutputYAML
}

// formatCents renders an amount in cents as 1,234.50.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// parseCents parses 12, 12.5 and 12.50 into cents.
func parseCents(s string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" || len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	units, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents uint64
	if frac != "" {
		frac += strings.Repeat("0", 2-len(frac))
		if cents, err = strconv.ParseUint(frac, 10, 8); err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	return int64(units*100 + cents), nil
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// pendingMark помечает записи, которые сервер ещё не подтвердил
func pendingMark(unconfirmed bool) string {
	if unconfirmed {
		return " (pending)"
	}
	return ""
}
