package lockb

// Column names one fixed-stride field of the package table.
type Column int

// Columns in the order they are laid out after begin_at.
const (
	ColumnName Column = iota
	ColumnNameHash
	ColumnResolution
	ColumnDependencies
	ColumnResolutions
	ColumnMeta
	ColumnBin
	ColumnScripts

	numColumns
)

var columnStrides = [numColumns]uint64{
	ColumnName:         8,
	ColumnNameHash:     8,
	ColumnResolution:   64,
	ColumnDependencies: 8,
	ColumnResolutions:  8,
	ColumnMeta:         88,
	ColumnBin:          20,
	ColumnScripts:      48,
}

var columnNames = [numColumns]string{
	ColumnName:         "name",
	ColumnNameHash:     "name_hash",
	ColumnResolution:   "resolution",
	ColumnDependencies: "dependencies",
	ColumnResolutions:  "resolutions",
	ColumnMeta:         "meta",
	ColumnBin:          "bin",
	ColumnScripts:      "scripts",
}

// Stride returns the per-package width of the column in bytes.
func (c Column) Stride() int {
	return int(columnStrides[c])
}

func (c Column) String() string {
	return columnNames[c]
}

// RowSize is the sum of all column strides.
const RowSize = 8 + 8 + 64 + 8 + 8 + 88 + 20 + 48

// Table is the column-major package table. It keeps one view per column
// and slices rows out of them on demand.
type Table struct {
	columns [numColumns][]byte
	length  int
}

// readTable reads listLen rows of every column starting at beginAt.
func readTable(c *cursor, beginAt, listLen uint64) (Table, error) {
	t := Table{length: int(listLen)}
	if err := c.seek(beginAt); err != nil {
		return t, err
	}
	for col := range numColumns {
		stride := columnStrides[col]
		// listLen is below 2^32 and stride below 2^7, so the product fits.
		data, err := c.read(stride * listLen)
		if err != nil {
			return t, err
		}
		t.columns[col] = data
	}
	return t, nil
}

// Len returns the number of rows including the root at index 0.
func (t *Table) Len() int {
	return t.length
}

// Field returns the span of column col for row i.
func (t *Table) Field(i int, col Column) []byte {
	stride := col.Stride()
	start := i * stride
	return t.columns[col][start : start+stride : start+stride]
}
