package utils

import (
	"fmt"
	"math/rand/v2"
)

// GenerateBarcode returns an identifier shaped like 153.42.55.622. It is not checksummed and
// not guaranteed unique; the unique index on product_variants.barcode is.
func GenerateBarcode() string {
	part1 := rand.IntN(900) + 100
	part2 := rand.IntN(90) + 10
	part3 := rand.IntN(90) + 10
	part4 := rand.IntN(900) + 100

	return fmt.Sprintf("%d.%d.%d.%d", part1, part2, part3, part4)
}
