package repositories

import (
	"strings"
	"testing"
)

// The capacity report runs on every configured driver, and mysql is the
// default one. It has no FULL OUTER JOIN, so the query must build the part
// population from a union and left-join the aggregates onto it.
func TestCapacityVsDemandQueryIsDriverPortable(t *testing.T) {
	if strings.Contains(capacityVsDemandSQL, "FULL OUTER JOIN") {
		t.Fatal("capacity report query uses FULL OUTER JOIN, which mysql rejects")
	}
	if !strings.Contains(capacityVsDemandSQL, "UNION") {
		t.Error("capacity report query should union work order and sales order parts")
	}
	if got := strings.Count(capacityVsDemandSQL, "LEFT JOIN"); got != 2 {
		t.Errorf("capacity report query has %d LEFT JOINs, want 2", got)
	}
	if got := strings.Count(capacityVsDemandSQL, "?"); got != 4 {
		t.Errorf("capacity report query has %d domain placeholders, want 4", got)
	}
}
