package usecase

import (
	"strconv"
	"strings"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// ParseTarget extracts the target quantity (colli) from its raw import value.
// The second return is false when the value is not a usable integer.
func ParseTarget(o *model.Order) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(o.TargetQuantity))
	if err != nil {
		return 0, false
	}
	return n, true
}

// OrderComplete reports whether a line has been fully accounted for:
// target > 0 and scanned + reported >= target. This is the only place the
// completion arithmetic lives; the stored Completed flag is derived from it
// and never consulted here. Unparsable targets are never complete.
func OrderComplete(o *model.Order) bool {
	target, ok := ParseTarget(o)
	if !ok || target <= 0 {
		return false
	}
	return o.ScannedCount+o.ReportedMissing >= target
}

// CustomerPhaseComplete reports whether every order of the customer in the
// phase implied by the reference order is complete. An empty filtered set
// counts as complete.
func CustomerPhaseComplete(orders []model.Order, customer string, heavyNames []string, reference *model.Order) bool {
	heavyPhase := IsHeavy(reference, heavyNames)
	for i := range orders {
		o := &orders[i]
		if o.CustomerName != customer {
			continue
		}
		if IsHeavy(o, heavyNames) != heavyPhase {
			continue
		}
		if !OrderComplete(o) {
			return false
		}
	}
	return true
}

// VehicleModeComplete is CustomerPhaseComplete without the customer filter:
// it evaluates one phase across the whole vehicle.
func VehicleModeComplete(orders []model.Order, heavyNames []string, reference *model.Order) bool {
	heavyPhase := IsHeavy(reference, heavyNames)
	for i := range orders {
		o := &orders[i]
		if IsHeavy(o, heavyNames) != heavyPhase {
			continue
		}
		if !OrderComplete(o) {
			return false
		}
	}
	return true
}

// VehicleComplete reports whether every order of the set is complete,
// ignoring phase. An empty set counts as complete.
func VehicleComplete(orders []model.Order) bool {
	for i := range orders {
		if !OrderComplete(&orders[i]) {
			return false
		}
	}
	return true
}
