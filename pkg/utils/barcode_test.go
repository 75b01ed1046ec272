package utils

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var barcodePattern = regexp.MustCompile(`^\d{3}\.\d{2}\.\d{2}\.\d{3}$`)

func TestGenerateBarcode(t *testing.T) {
	for i := 0; i < 500; i++ {
		barcode := GenerateBarcode()
		require.Regexp(t, barcodePattern, barcode)

		parts := strings.Split(barcode, ".")
		bounds := [][2]int{{100, 999}, {10, 99}, {10, 99}, {100, 999}}
		for j, part := range parts {
			value, err := strconv.Atoi(part)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, value, bounds[j][0])
			assert.LessOrEqual(t, value, bounds[j][1])
		}
	}
}
