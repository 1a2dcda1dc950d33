// Package units converts between the smallest indivisible on-chain units and
// display units for the assets the wallet tracks. Conversions are exact
// integer-to-decimal scalings; display values are for presentation only and
// must never feed back into transfer-amount math without going through the
// rounding helpers here.
package units

import "math"

const (
	// MicroSTXPerSTX is the number of micro-STX in one STX.
	MicroSTXPerSTX = 1_000_000

	// SatoshisPerBTC is the number of satoshis in one BTC.
	SatoshisPerBTC = 100_000_000
)

// MicroSTXToSTX converts an amount in micro-STX to display STX.
func MicroSTXToSTX(micro uint64) float64 {
	return float64(micro) / MicroSTXPerSTX
}

// STXToMicroSTX converts a display STX amount to micro-STX, rounding half away
// from zero. It is the conversion used when handing an amount to the signer.
func STXToMicroSTX(stx float64) uint64 {
	return uint64(math.Round(stx * MicroSTXPerSTX))
}

// SatoshisToBTC converts an amount in satoshis to display BTC.
func SatoshisToBTC(sats uint64) float64 {
	return float64(sats) / SatoshisPerBTC
}
