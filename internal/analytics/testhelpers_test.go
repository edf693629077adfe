package analytics

import (
	"resalepulse/pkg/contracts/domain"
)

// tx builds a fully populated transaction row for tests.
func tx(month, town, flatType, price, area, lease string) domain.ResaleTransaction {
	return domain.ResaleTransaction{
		Month:          month,
		Town:           town,
		FlatType:       flatType,
		ResalePrice:    price,
		FloorAreaSqm:   area,
		RemainingLease: lease,
	}
}

// pricedTx builds a minimal valid row carrying only a month and a price.
func pricedTx(month, price string) domain.ResaleTransaction {
	return tx(month, "BEDOK", "4 ROOM", price, "", "")
}
