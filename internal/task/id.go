package task

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var planIDRegex = regexp.MustCompile(`^plan_[0-9]{10}_[0-9a-f]{8}$`)

// GeneratePlanID returns a sortable identifier for a planning run:
// plan_<unix seconds>_<8 random hex>.
func GeneratePlanID() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return fmt.Sprintf("plan_%010d_%s", time.Now().Unix(), hex.EncodeToString(randomBytes)), nil
}

func ValidPlanID(id string) bool {
	return planIDRegex.MatchString(id)
}

// PlanIDTimestamp extracts the creation time embedded in a plan id.
func PlanIDTimestamp(id string) (time.Time, error) {
	if !ValidPlanID(id) {
		return time.Time{}, fmt.Errorf("invalid plan id format: %s", id)
	}
	tsStr := id[len("plan_") : len("plan_")+10]
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp from plan id %s: %w", id, err)
	}
	return time.Unix(ts, 0), nil
}
