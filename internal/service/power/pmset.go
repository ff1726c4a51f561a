package power

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// percentPattern matches the "85%;" token of a pmset battery line.
var percentPattern = regexp.MustCompile(`(\d{1,3})%`)

// PmsetQuery returns a query running `pmset -g batt` on macOS.
func PmsetQuery() QueryFunc {
	return func(ctx context.Context) (Status, error) {
		out, err := exec.CommandContext(ctx, "pmset", "-g", "batt").Output()
		if err != nil {
			return Status{}, fmt.Errorf("run pmset: %w", err)
		}

		return parsePmset(string(out))
	}
}

// parsePmset parses output such as:
//
//	Now drawing from 'AC Power'
//	 -InternalBattery-0 (id=4653155)	85%; charging; 1:02 remaining present: true
func parsePmset(out string) (Status, error) {
	var (
		status Status
		found  bool
	)

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "Now drawing from") {
			status.Plugged = strings.Contains(line, "'AC Power'")
			continue
		}

		if found || !strings.Contains(line, "InternalBattery") {
			continue
		}

		match := percentPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		percent, err := strconv.Atoi(match[1])
		if err != nil {
			return Status{}, fmt.Errorf("parse pmset percent: %w", err)
		}

		status.Percent = percent
		found = true
	}

	if err := scanner.Err(); err != nil {
		return Status{}, fmt.Errorf("scan pmset output: %w", err)
	}

	if !found {
		return Status{}, ErrNoBattery
	}

	return status, nil
}
