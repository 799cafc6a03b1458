package usecase

import (
	"strings"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// IsHeavy reports whether the article description matches any configured
// heavy product name, case-insensitively. Orders without a description are
// regular. Classification depends only on the description and the passed
// name list; callers fetch the list once per operation and pass it down.
func IsHeavy(o *model.Order, heavyNames []string) bool {
	if o == nil || o.ArticleDescription == "" {
		return false
	}
	desc := strings.ToLower(o.ArticleDescription)
	for _, name := range heavyNames {
		if name == "" {
			continue
		}
		if strings.Contains(desc, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// PartitionByWeight splits orders into heavy and regular groups.
func PartitionByWeight(orders []model.Order, heavyNames []string) (heavy, regular []model.Order) {
	for i := range orders {
		if IsHeavy(&orders[i], heavyNames) {
			heavy = append(heavy, orders[i])
		} else {
			regular = append(regular, orders[i])
		}
	}
	return heavy, regular
}
