package power

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultSysfsRoot is where Linux exposes power supply devices.
const DefaultSysfsRoot = "/sys/class/power_supply"

// supply is one power supply directory parsed from sysfs.
type supply struct {
	name       string
	kind       string
	online     bool
	capacity   int
	hasCap     bool
	status     string
	energyNow  int64
	energyFull int64
}

// SysfsQuery returns a query reading power supplies under root.
func SysfsQuery(root string) QueryFunc {
	return func(context.Context) (Status, error) {
		return readSysfs(root)
	}
}

func readSysfs(root string) (Status, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Status{}, fmt.Errorf("list power supplies: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	var (
		batteries []supply
		mains     []supply
	)

	for _, name := range names {
		s := readSupply(filepath.Join(root, name))
		s.name = name

		switch s.kind {
		case "battery":
			// Peripheral batteries (mice, keyboards) report scope "Device".
			if strings.EqualFold(readString(filepath.Join(root, name, "scope")), "device") {
				continue
			}

			if s.hasCap || s.energyFull > 0 {
				batteries = append(batteries, s)
			}
		case "mains", "usb", "usb_c", "usb_pd":
			mains = append(mains, s)
		}
	}

	if len(batteries) == 0 {
		return Status{}, ErrNoBattery
	}

	return Status{
		Percent: combinedPercent(batteries),
		Plugged: isPlugged(mains, batteries),
	}, nil
}

func readSupply(dir string) supply {
	s := supply{
		kind:   strings.ToLower(readString(filepath.Join(dir, "type"))),
		status: strings.ToLower(readString(filepath.Join(dir, "status"))),
	}

	if v, err := readInt(filepath.Join(dir, "online")); err == nil {
		s.online = v == 1
	}

	if v, err := readInt(filepath.Join(dir, "capacity")); err == nil {
		s.capacity = int(v)
		s.hasCap = true
	}

	// Some firmware exposes charge_* (µAh) instead of energy_* (µWh).
	for _, prefix := range []string{"energy", "charge"} {
		now, errNow := readInt(filepath.Join(dir, prefix+"_now"))
		full, errFull := readInt(filepath.Join(dir, prefix+"_full"))

		if errNow == nil && errFull == nil && full > 0 {
			s.energyNow, s.energyFull = now, full
			break
		}
	}

	return s
}

// combinedPercent weights batteries by their full energy when every battery reports it.
func combinedPercent(batteries []supply) int {
	var (
		now, full int64
		weighted  = true
	)

	for _, b := range batteries {
		if b.energyFull <= 0 {
			weighted = false
			break
		}

		now += b.energyNow
		full += b.energyFull
	}

	if weighted && full > 0 {
		return int((now*100 + full/2) / full)
	}

	var sum, count int

	for _, b := range batteries {
		if b.hasCap {
			sum += b.capacity
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return (sum + count/2) / count
}

func isPlugged(mains, batteries []supply) bool {
	if len(mains) > 0 {
		for _, m := range mains {
			if m.online {
				return true
			}
		}

		return false
	}

	for _, b := range batteries {
		switch b.status {
		case "charging", "full", "not charging":
			return true
		}
	}

	return false
}

func readString(path string) string {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

var errEmptyValue = errors.New("empty value")

func readInt(path string) (int64, error) {
	s := readString(path)
	if s == "" {
		return 0, errEmptyValue
	}

	return strconv.ParseInt(s, 10, 64)
}
