package dataset

import "math"

// Column names of the simulation log. FieldBlock is the natural key;
// FieldDay and FieldNetFlow are derived during Build.
const (
	FieldBlock             = "block"
	FieldDay               = "day"
	FieldNetworkRate       = "network_rate"
	FieldGenerationRate    = "generation_rate"
	FieldExchangeRate      = "exchange_rate"
	FieldWarehouseCapacity = "warehouse_capacity"
	FieldAlphaIn           = "AlphaPoints_per_block_in"
	FieldAlphaOut          = "AlphaPoints_per_block_out"
	FieldTokenPrice        = "token_price"
	FieldTxCost            = "average_transaction_cost_usd"
	FieldNetFlow           = "net_alpha_points_flow"
)

// RequiredColumns returns the column set a well-formed log is expected to
// carry. An empty input table still exposes these columns.
func RequiredColumns() []string {
	return []string{
		FieldBlock,
		FieldNetworkRate,
		FieldGenerationRate,
		FieldExchangeRate,
		FieldWarehouseCapacity,
		FieldAlphaIn,
		FieldAlphaOut,
		FieldTokenPrice,
		FieldTxCost,
	}
}

// Record is one raw row of the source table, values unparsed.
type Record map[string]string

// Table is the in-memory form of the source log handed over by the loader.
// Columns preserves the source column order.
type Table struct {
	Columns []string
	Records []Record
}

// Row is one typed row of a Dataset. Block is the natural key, held as a
// float64 so synthesized rows can sit between source positions. Values holds
// every numeric column including the derived day and net flow; missing or
// unparseable cells are NaN. Labels carries non-numeric columns untouched.
type Row struct {
	Block  float64
	Values map[string]float64
	Labels map[string]string
}

// Value returns the named numeric field. The block key is addressable by
// name like any other column.
func (r Row) Value(name string) (float64, bool) {
	if name == FieldBlock {
		return r.Block, true
	}
	v, ok := r.Values[name]
	return v, ok
}

// Day returns the derived day index, or -1 when it is not available.
func (r Row) Day() int {
	d, ok := r.Values[FieldDay]
	if !ok || math.IsNaN(d) {
		return -1
	}
	return int(d)
}
